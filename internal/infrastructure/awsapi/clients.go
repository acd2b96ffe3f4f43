package awsapi

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/opsbench/opsctl/internal/core/domain"
)

// costExplorerRegion is where the Cost Explorer API is served from
const costExplorerRegion = "us-east-1"

// Options selects the region and named profile used for SDK clients.
// Credentials themselves come from the SDK's default chain.
type Options struct {
	Region  string
	Profile string
}

// LoadConfig resolves an aws.Config. Extra load options are applied after
// the region and profile, which lets tests inject static credentials.
func LoadConfig(ctx context.Context, opts Options, extra ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}
	loadOpts = append(loadOpts, extra...)

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w: %w", domain.ErrUnauthenticated, err)
	}
	return cfg, nil
}

// Clients bundles the service clients built from one aws.Config
type Clients struct {
	EKS          *eks.Client
	STS          *sts.Client
	S3           *s3.Client
	CostExplorer *costexplorer.Client
	Region       string
}

// NewClients creates service clients sharing cfg
func NewClients(cfg aws.Config) *Clients {
	return &Clients{
		EKS: eks.NewFromConfig(cfg),
		STS: sts.NewFromConfig(cfg),
		S3:  s3.NewFromConfig(cfg),
		CostExplorer: costexplorer.NewFromConfig(cfg, func(o *costexplorer.Options) {
			o.Region = costExplorerRegion
		}),
		Region: cfg.Region,
	}
}
