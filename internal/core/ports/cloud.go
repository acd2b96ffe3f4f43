package ports

import (
	"context"

	"github.com/opsbench/opsctl/internal/core/domain"
	"github.com/opsbench/opsctl/internal/core/domain/billing"
)

// ClusterDescriber fetches cluster descriptors from the control plane
type ClusterDescriber interface {
	// DescribeCluster returns the endpoint and certificate data for name
	DescribeCluster(ctx context.Context, name string) (domain.ClusterDescriptor, error)
}

// Identity is the principal behind the active credentials
type Identity struct {
	Account string
	ARN     string
	UserID  string
}

// IdentityChecker verifies that usable credentials are configured
type IdentityChecker interface {
	// CallerIdentity returns the authenticated principal
	CallerIdentity(ctx context.Context) (Identity, error)
}

// CostReporter reads grouped spend from the billing API
type CostReporter interface {
	// CostAndUsage returns one record per billing interval in period
	CostAndUsage(ctx context.Context, period billing.Period) ([]billing.CostRecord, error)
}

// BucketProvisioner checks for and creates object storage buckets
type BucketProvisioner interface {
	// BucketExists reports whether name exists and is accessible
	BucketExists(ctx context.Context, name string) (bool, error)

	// CreateBucket creates name in region
	CreateBucket(ctx context.Context, name, region string) error
}

// PublicIPResolver discovers the caller's public address
type PublicIPResolver interface {
	// PublicIP returns the IPv4 address seen by an external echo service
	PublicIP(ctx context.Context) (string, error)
}

// ClusterProber talks to a cluster through a kubeconfig context
type ClusterProber interface {
	// ServerVersion returns the API server's git version for contextName
	ServerVersion(ctx context.Context, kubeconfigPath, contextName string) (string, error)
}
