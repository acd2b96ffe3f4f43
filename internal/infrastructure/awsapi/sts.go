package awsapi

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/opsbench/opsctl/internal/core/ports"
)

// STSAPI is the subset of the STS client used here
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// IdentityChecker implements ports.IdentityChecker on STS
type IdentityChecker struct {
	api STSAPI
}

// NewIdentityChecker creates an identity checker
func NewIdentityChecker(api STSAPI) *IdentityChecker {
	return &IdentityChecker{api: api}
}

// CallerIdentity returns the principal behind the configured credentials
func (c *IdentityChecker) CallerIdentity(ctx context.Context) (ports.Identity, error) {
	out, err := c.api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return ports.Identity{}, classify("get caller identity", err)
	}
	return ports.Identity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}
