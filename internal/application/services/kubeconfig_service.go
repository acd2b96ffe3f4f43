package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/opsbench/opsctl/internal/core/domain/kubeconfig"
	"github.com/opsbench/opsctl/internal/core/ports"
)

// UpdateResult describes a completed kubeconfig registration
type UpdateResult struct {
	Path    string
	Context kubeconfig.EntryKey
	Cluster string
}

// ContextSummary is one context of the document, for listing
type ContextSummary struct {
	Name    kubeconfig.EntryKey
	Cluster string
	User    string
	Active  bool
}

// KubeconfigService handles cluster registration and inspection
type KubeconfigService struct {
	describer ports.ClusterDescriber
	engine    *MergeEngine
	store     ports.DocumentStore
	prober    ports.ClusterProber
	logger    hclog.Logger
}

// NewKubeconfigService creates a new kubeconfig service
func NewKubeconfigService(
	describer ports.ClusterDescriber,
	engine *MergeEngine,
	store ports.DocumentStore,
	prober ports.ClusterProber,
	logger hclog.Logger,
) *KubeconfigService {
	return &KubeconfigService{
		describer: describer,
		engine:    engine,
		store:     store,
		prober:    prober,
		logger:    logger.Named("kubeconfig"),
	}
}

// UpdateKubeconfig describes clusterName and registers it locally. A
// failed describe aborts before the document is touched.
func (s *KubeconfigService) UpdateKubeconfig(ctx context.Context, clusterName string) (*UpdateResult, error) {
	if strings.TrimSpace(clusterName) == "" {
		return nil, fmt.Errorf("cluster name is required")
	}
	if s.describer == nil {
		return nil, fmt.Errorf("cluster describer not configured")
	}

	s.logger.Debug("fetching cluster details", "cluster", clusterName)
	desc, err := s.describer.DescribeCluster(ctx, clusterName)
	if err != nil {
		return nil, err
	}

	doc, err := s.engine.Upsert(ctx, desc)
	if err != nil {
		return nil, err
	}

	return &UpdateResult{
		Path:    s.store.Path(),
		Context: doc.CurrentContext,
		Cluster: desc.Name,
	}, nil
}

// ListContexts returns the contexts of the local document in file order
func (s *KubeconfigService) ListContexts(ctx context.Context) ([]ContextSummary, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	summaries := make([]ContextSummary, 0, len(doc.Contexts))
	for _, e := range doc.Contexts {
		summary := ContextSummary{
			Name:   e.Name,
			Active: e.Name == doc.CurrentContext,
		}
		if payload, ok := e.Payload("context"); ok {
			summary.Cluster, _ = payload["cluster"].(string)
			summary.User, _ = payload["user"].(string)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Verify queries the API server behind contextName, or the current context
// when contextName is empty.
func (s *KubeconfigService) Verify(ctx context.Context, contextName string) (string, error) {
	if s.prober == nil {
		return "", fmt.Errorf("cluster prober not configured")
	}
	version, err := s.prober.ServerVersion(ctx, s.store.Path(), contextName)
	if err != nil {
		return "", err
	}
	s.logger.Debug("cluster reachable", "context", contextName, "version", version)
	return version, nil
}
