package services

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/opsbench/opsctl/internal/core/domain"
	"github.com/opsbench/opsctl/internal/core/domain/kubeconfig"
	"github.com/opsbench/opsctl/internal/core/ports"
)

// MergeOptions configures how descriptors become kubeconfig entries
type MergeOptions struct {
	Auth kubeconfig.ExecAuth
}

// DefaultMergeOptions returns options using the aws CLI token plugin
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{Auth: kubeconfig.DefaultExecAuth()}
}

// MergeEngine registers cluster descriptors into a kubeconfig document.
// Each Upsert is one load, merge and save; the engine keeps no state
// between calls.
type MergeEngine struct {
	store  ports.DocumentStore
	opts   MergeOptions
	logger hclog.Logger
}

// NewMergeEngine creates a merge engine writing through store
func NewMergeEngine(store ports.DocumentStore, opts MergeOptions, logger hclog.Logger) *MergeEngine {
	return &MergeEngine{
		store:  store,
		opts:   opts,
		logger: logger.Named("merge"),
	}
}

// Upsert merges desc into every collection, selects it as the current
// context and persists the document. Entries under other keys keep their
// content and order; the entry for desc ends up last in each collection.
// Nothing is written when the descriptor is invalid, and a failed save
// leaves the previous file in place.
func (e *MergeEngine) Upsert(ctx context.Context, desc domain.ClusterDescriptor) (*kubeconfig.Document, error) {
	key, entries, err := kubeconfig.ClusterEntries(desc, e.opts.Auth)
	if err != nil {
		return nil, err
	}

	doc, err := e.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	for _, re := range entries {
		if err := doc.Upsert(re.Role, re.Entry); err != nil {
			return nil, err
		}
	}
	previous := doc.CurrentContext
	doc.SetActive(key)

	if err := e.store.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save kubeconfig: %w", err)
	}

	e.logger.Info("kubeconfig updated",
		"path", e.store.Path(),
		"context", key.Value(),
		"previous_context", previous.Value())
	return doc, nil
}
