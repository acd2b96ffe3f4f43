package awsapi

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	ekstypes "github.com/aws/aws-sdk-go-v2/service/eks/types"
	"github.com/hashicorp/go-hclog"

	"github.com/opsbench/opsctl/internal/core/domain"
)

// EKSAPI is the subset of the EKS client used here
type EKSAPI interface {
	DescribeCluster(ctx context.Context, params *eks.DescribeClusterInput, optFns ...func(*eks.Options)) (*eks.DescribeClusterOutput, error)
}

// ClusterDescriber implements ports.ClusterDescriber on EKS
type ClusterDescriber struct {
	api    EKSAPI
	region string
	logger hclog.Logger
}

// NewClusterDescriber creates a describer for clusters in region
func NewClusterDescriber(api EKSAPI, region string, logger hclog.Logger) *ClusterDescriber {
	return &ClusterDescriber{
		api:    api,
		region: region,
		logger: logger.Named("eks"),
	}
}

// DescribeCluster fetches endpoint and CA data for name
func (d *ClusterDescriber) DescribeCluster(ctx context.Context, name string) (domain.ClusterDescriptor, error) {
	d.logger.Debug("describing cluster", "name", name, "region", d.region)

	out, err := d.api.DescribeCluster(ctx, &eks.DescribeClusterInput{Name: aws.String(name)})
	if err != nil {
		return domain.ClusterDescriptor{}, classify(fmt.Sprintf("describe cluster %s", name), err)
	}
	if out == nil || out.Cluster == nil {
		return domain.ClusterDescriptor{}, fmt.Errorf("describe cluster %s: %w", name, domain.ErrNotFound)
	}

	cluster := out.Cluster
	if cluster.Status != ekstypes.ClusterStatusActive {
		d.logger.Warn("cluster is not active", "name", name, "status", string(cluster.Status))
	}

	desc := domain.ClusterDescriptor{
		ARN:      aws.ToString(cluster.Arn),
		Name:     aws.ToString(cluster.Name),
		Region:   d.region,
		Endpoint: aws.ToString(cluster.Endpoint),
	}
	if desc.Name == "" {
		desc.Name = name
	}
	if cluster.CertificateAuthority != nil {
		desc.CertificateAuthorityData = aws.ToString(cluster.CertificateAuthority.Data)
	}

	if err := desc.Validate(); err != nil {
		return domain.ClusterDescriptor{}, fmt.Errorf("describe cluster %s: %w", name, err)
	}
	return desc, nil
}
