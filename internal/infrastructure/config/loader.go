package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"
)

// LookupFunc reads an environment variable
type LookupFunc func(key string) (string, bool)

// Source defines a layer of configuration
type Source interface {
	Load() (*Config, error)
	Priority() int
	Name() string
}

// Loader layers sources over the defaults
type Loader struct {
	sources []Source
}

// NewLoader creates a loader reading the process environment
func NewLoader() *Loader {
	return NewLoaderWithLookup(os.LookupEnv)
}

// NewLoaderWithLookup creates a loader reading variables through lookup
func NewLoaderWithLookup(lookup LookupFunc) *Loader {
	l := &Loader{}
	l.AddSource(NewEnvironmentSource(lookup))
	return l
}

// AddSource adds a configuration source
func (l *Loader) AddSource(source Source) {
	l.sources = append(l.sources, source)
}

// Load applies sources from lowest to highest priority (lower number wins).
// Extra sources apply to this call only and are not retained.
func (l *Loader) Load(extra ...Source) (*Config, error) {
	cfg := Default()

	sorted := make([]Source, 0, len(l.sources)+len(extra))
	sorted = append(sorted, l.sources...)
	for _, source := range extra {
		if source != nil {
			sorted = append(sorted, source)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})

	for _, source := range sorted {
		layer, err := source.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load %s configuration: %w", source.Name(), err)
		}
		cfg = merge(cfg, layer)
	}

	return cfg, nil
}

// merge overlays non-zero fields of source onto target
func merge(target, source *Config) *Config {
	if source == nil {
		return target
	}
	result := *target

	if source.Region != "" {
		result.Region = source.Region
	}
	if source.Profile != "" {
		result.Profile = source.Profile
	}
	if source.ClusterName != "" {
		result.ClusterName = source.ClusterName
	}
	if source.KubeconfigPath != "" {
		result.KubeconfigPath = source.KubeconfigPath
	}
	if source.BucketName != "" {
		result.BucketName = source.BucketName
	}
	if source.IPEndpoint != "" {
		result.IPEndpoint = source.IPEndpoint
	}
	if source.IPTimeout != 0 {
		result.IPTimeout = source.IPTimeout
	}
	if source.ExecCommand != "" {
		result.ExecCommand = source.ExecCommand
	}
	if source.Debug {
		result.Debug = true
	}
	if source.Quiet {
		result.Quiet = true
	}

	return &result
}

// EnvironmentSource loads configuration from environment variables. The
// OPSCTL_ names win over the generic ones used by other tooling.
type EnvironmentSource struct {
	lookup LookupFunc
}

// NewEnvironmentSource creates an environment source
func NewEnvironmentSource(lookup LookupFunc) *EnvironmentSource {
	return &EnvironmentSource{lookup: lookup}
}

// Load reads recognised variables
func (e *EnvironmentSource) Load() (*Config, error) {
	cfg := &Config{}

	cfg.Region = e.first("OPSCTL_REGION", "AWS_REGION", "AWS_DEFAULT_REGION", "REGION")
	cfg.Profile = e.first("OPSCTL_PROFILE", "AWS_PROFILE")
	cfg.ClusterName = e.first("OPSCTL_CLUSTER_NAME", "CLUSTER_NAME")
	cfg.BucketName = e.first("OPSCTL_TF_STATE_BUCKET", "TF_STATE_BUCKET")
	cfg.IPEndpoint = e.first("OPSCTL_IP_ENDPOINT")
	cfg.ExecCommand = e.first("OPSCTL_EXEC_COMMAND")

	if val := e.first("OPSCTL_KUBECONFIG"); val != "" {
		cfg.KubeconfigPath = val
	} else {
		path, err := DefaultKubeconfigPath(e.lookup)
		if err != nil {
			return nil, err
		}
		cfg.KubeconfigPath = path
	}

	if val := e.first("OPSCTL_IP_TIMEOUT"); val != "" {
		timeout, err := time.ParseDuration(val)
		if err != nil || timeout <= 0 {
			return nil, fmt.Errorf("invalid OPSCTL_IP_TIMEOUT %q", val)
		}
		cfg.IPTimeout = timeout
	}

	if val := e.first("OPSCTL_DEBUG"); val != "" {
		debug, err := strconv.ParseBool(val)
		if err != nil {
			return nil, fmt.Errorf("invalid OPSCTL_DEBUG %q", val)
		}
		cfg.Debug = debug
	}

	if val := e.first("OPSCTL_QUIET"); val != "" {
		quiet, err := strconv.ParseBool(val)
		if err != nil {
			return nil, fmt.Errorf("invalid OPSCTL_QUIET %q", val)
		}
		cfg.Quiet = quiet
	}

	return cfg, nil
}

func (e *EnvironmentSource) first(keys ...string) string {
	for _, key := range keys {
		if val, ok := e.lookup(key); ok && val != "" {
			return val
		}
	}
	return ""
}

// Priority returns the priority of this source (lower number = higher priority)
func (e *EnvironmentSource) Priority() int {
	return 10
}

// Name returns the name of this source
func (e *EnvironmentSource) Name() string {
	return "environment"
}

// StaticSource wraps already-resolved values, e.g. explicitly set flags
type StaticSource struct {
	cfg      *Config
	priority int
	name     string
}

// NewStaticSource creates a source returning cfg
func NewStaticSource(name string, priority int, cfg *Config) *StaticSource {
	return &StaticSource{cfg: cfg, priority: priority, name: name}
}

// Load returns the wrapped configuration
func (s *StaticSource) Load() (*Config, error) {
	return s.cfg, nil
}

// Priority returns the priority of this source (lower number = higher priority)
func (s *StaticSource) Priority() int {
	return s.priority
}

// Name returns the name of this source
func (s *StaticSource) Name() string {
	return s.name
}
