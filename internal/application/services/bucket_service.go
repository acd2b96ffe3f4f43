package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/opsbench/opsctl/internal/core/ports"
)

// BucketService provisions the Terraform state bucket
type BucketService struct {
	buckets ports.BucketProvisioner
	logger  hclog.Logger
}

// NewBucketService creates a new bucket service
func NewBucketService(buckets ports.BucketProvisioner, logger hclog.Logger) *BucketService {
	return &BucketService{
		buckets: buckets,
		logger:  logger.Named("bucket"),
	}
}

// Ensure creates name in region unless it already exists. It reports
// whether a bucket was created.
func (s *BucketService) Ensure(ctx context.Context, name, region string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, fmt.Errorf("bucket name is required")
	}

	exists, err := s.buckets.BucketExists(ctx, name)
	if err != nil {
		return false, err
	}
	if exists {
		s.logger.Debug("bucket already exists", "bucket", name)
		return false, nil
	}

	s.logger.Info("creating bucket", "bucket", name, "region", region)
	if err := s.buckets.CreateBucket(ctx, name, region); err != nil {
		return false, err
	}
	return true, nil
}
