package kube

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/version"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/opsbench/opsctl/internal/core/domain"
)

// Prober implements ports.ClusterProber with client-go
type Prober struct {
	timeout time.Duration
}

// NewProber creates a prober whose requests give up after timeout
func NewProber(timeout time.Duration) *Prober {
	return &Prober{timeout: timeout}
}

// ServerVersion loads kubeconfigPath, selects contextName (the file's
// current-context when empty) and asks the API server for its version.
func (p *Prober) ServerVersion(ctx context.Context, kubeconfigPath, contextName string) (string, error) {
	rules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfigPath}
	overrides := &clientcmd.ConfigOverrides{CurrentContext: contextName}

	restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides).ClientConfig()
	if err != nil {
		return "", fmt.Errorf("failed to build client config: %w", err)
	}
	restConfig.Timeout = p.timeout

	client, err := discovery.NewDiscoveryClientForConfig(restConfig)
	if err != nil {
		return "", fmt.Errorf("failed to create discovery client: %w", err)
	}

	raw, err := client.RESTClient().Get().AbsPath("/version").Do(ctx).Raw()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrSourceUnreachable, restConfig.Host, err)
	}

	var info version.Info
	if err := json.Unmarshal(raw, &info); err != nil {
		return "", fmt.Errorf("failed to decode server version: %w", err)
	}
	return info.GitVersion, nil
}
