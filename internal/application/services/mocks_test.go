package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/opsbench/opsctl/internal/core/domain"
	"github.com/opsbench/opsctl/internal/core/domain/billing"
	"github.com/opsbench/opsctl/internal/core/domain/kubeconfig"
	"github.com/opsbench/opsctl/internal/core/ports"
	"github.com/opsbench/opsctl/internal/infrastructure/filestore"
)

// Mock implementations

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Load(ctx context.Context) (*kubeconfig.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kubeconfig.Document), args.Error(1)
}

func (m *MockDocumentStore) Save(ctx context.Context, doc *kubeconfig.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentStore) Path() string {
	args := m.Called()
	return args.String(0)
}

type MockClusterDescriber struct {
	mock.Mock
}

func (m *MockClusterDescriber) DescribeCluster(ctx context.Context, name string) (domain.ClusterDescriptor, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.ClusterDescriptor), args.Error(1)
}

type MockIdentityChecker struct {
	mock.Mock
}

func (m *MockIdentityChecker) CallerIdentity(ctx context.Context) (ports.Identity, error) {
	args := m.Called(ctx)
	return args.Get(0).(ports.Identity), args.Error(1)
}

type MockCostReporter struct {
	mock.Mock
}

func (m *MockCostReporter) CostAndUsage(ctx context.Context, period billing.Period) ([]billing.CostRecord, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.CostRecord), args.Error(1)
}

type MockBucketProvisioner struct {
	mock.Mock
}

func (m *MockBucketProvisioner) BucketExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockBucketProvisioner) CreateBucket(ctx context.Context, name, region string) error {
	args := m.Called(ctx, name, region)
	return args.Error(0)
}

type MockClusterProber struct {
	mock.Mock
}

func (m *MockClusterProber) ServerVersion(ctx context.Context, kubeconfigPath, contextName string) (string, error) {
	args := m.Called(ctx, kubeconfigPath, contextName)
	return args.String(0), args.Error(1)
}

// memoryStore keeps the encoded document in memory so property tests can
// compare serialized output without touching the filesystem.
type memoryStore struct {
	data  []byte
	saves int
}

func (m *memoryStore) Load(_ context.Context) (*kubeconfig.Document, error) {
	if len(m.data) == 0 {
		return kubeconfig.NewDocument(), nil
	}
	return filestore.Decode(m.data)
}

func (m *memoryStore) Save(_ context.Context, doc *kubeconfig.Document) error {
	data, err := filestore.Encode(doc)
	if err != nil {
		return err
	}
	m.data = data
	m.saves++
	return nil
}

func (m *memoryStore) Path() string {
	return "memory"
}

type MockPublicIPResolver struct {
	mock.Mock
}

func (m *MockPublicIPResolver) PublicIP(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
