package awsapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/opsbench/opsctl/internal/core/domain"
)

// defaultBucketRegion rejects an explicit LocationConstraint
const defaultBucketRegion = "us-east-1"

// S3API is the subset of the S3 client used here
type S3API interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// BucketProvisioner implements ports.BucketProvisioner on S3
type BucketProvisioner struct {
	api S3API
}

// NewBucketProvisioner creates a bucket provisioner
func NewBucketProvisioner(api S3API) *BucketProvisioner {
	return &BucketProvisioner{api: api}
}

// BucketExists reports whether name exists. A bucket owned by another
// account surfaces as ErrPermissionDenied rather than false.
func (p *BucketProvisioner) BucketExists(ctx context.Context, name string) (bool, error) {
	_, err := p.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(name)})
	if err == nil {
		return true, nil
	}

	var notFound *s3types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}

	classified := classify(fmt.Sprintf("head bucket %s", name), err)
	if errors.Is(classified, domain.ErrNotFound) {
		return false, nil
	}
	return false, classified
}

// CreateBucket creates name in region. A bucket already owned by the
// caller counts as success.
func (p *BucketProvisioner) CreateBucket(ctx context.Context, name, region string) error {
	input := &s3.CreateBucketInput{Bucket: aws.String(name)}
	if region != "" && region != defaultBucketRegion {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(region),
		}
	}

	_, err := p.api.CreateBucket(ctx, input, func(o *s3.Options) {
		if region != "" {
			o.Region = region
		}
	})
	if err == nil {
		return nil
	}

	var owned *s3types.BucketAlreadyOwnedByYou
	if errors.As(err, &owned) {
		return nil
	}
	return classify(fmt.Sprintf("create bucket %s", name), err)
}
