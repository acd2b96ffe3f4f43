package di

import (
	"context"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/opsbench/opsctl/internal/core/domain"
	"github.com/opsbench/opsctl/internal/core/domain/billing"
	"github.com/opsbench/opsctl/internal/core/ports"
	"github.com/opsbench/opsctl/internal/infrastructure/awsapi"
)

// cloudSession resolves AWS credentials on first use, so commands that never
// call AWS do not need a working profile
type cloudSession struct {
	opts   awsapi.Options
	logger hclog.Logger

	once    sync.Once
	clients *awsapi.Clients
	err     error
}

func newCloudSession(opts awsapi.Options, logger hclog.Logger) *cloudSession {
	return &cloudSession{opts: opts, logger: logger.Named("aws")}
}

func (s *cloudSession) load(ctx context.Context) (*awsapi.Clients, error) {
	s.once.Do(func() {
		cfg, err := awsapi.LoadConfig(ctx, s.opts)
		if err != nil {
			s.err = err
			return
		}
		s.logger.Debug("aws configuration loaded", "region", cfg.Region, "profile", s.opts.Profile)
		s.clients = awsapi.NewClients(cfg)
	})
	return s.clients, s.err
}

type sessionDescriber struct{ session *cloudSession }

func (d sessionDescriber) DescribeCluster(ctx context.Context, name string) (domain.ClusterDescriptor, error) {
	clients, err := d.session.load(ctx)
	if err != nil {
		return domain.ClusterDescriptor{}, err
	}
	return awsapi.NewClusterDescriber(clients.EKS, clients.Region, d.session.logger).DescribeCluster(ctx, name)
}

type sessionIdentity struct{ session *cloudSession }

func (i sessionIdentity) CallerIdentity(ctx context.Context) (ports.Identity, error) {
	clients, err := i.session.load(ctx)
	if err != nil {
		return ports.Identity{}, err
	}
	return awsapi.NewIdentityChecker(clients.STS).CallerIdentity(ctx)
}

type sessionCosts struct{ session *cloudSession }

func (c sessionCosts) CostAndUsage(ctx context.Context, period billing.Period) ([]billing.CostRecord, error) {
	clients, err := c.session.load(ctx)
	if err != nil {
		return nil, err
	}
	return awsapi.NewCostReporter(clients.CostExplorer).CostAndUsage(ctx, period)
}

type sessionBuckets struct{ session *cloudSession }

func (b sessionBuckets) BucketExists(ctx context.Context, name string) (bool, error) {
	clients, err := b.session.load(ctx)
	if err != nil {
		return false, err
	}
	return awsapi.NewBucketProvisioner(clients.S3).BucketExists(ctx, name)
}

func (b sessionBuckets) CreateBucket(ctx context.Context, name, region string) error {
	clients, err := b.session.load(ctx)
	if err != nil {
		return err
	}
	return awsapi.NewBucketProvisioner(clients.S3).CreateBucket(ctx, name, region)
}
