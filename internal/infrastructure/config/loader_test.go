package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		val, ok := env[key]
		return val, ok
	}
}

func TestDefault_Values(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "terraform-state-bucket-2727", cfg.BucketName)
	assert.Equal(t, "https://4.ident.me", cfg.IPEndpoint)
	assert.Equal(t, 5*time.Second, cfg.IPTimeout)
	assert.Equal(t, "aws", cfg.ExecCommand)
	assert.False(t, cfg.Debug)
}

func TestLoader_Environment(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		check       func(t *testing.T, cfg *Config)
		description string
	}{
		{
			name: "GenericNames",
			env: map[string]string{
				"REGION":          "eu-west-1",
				"TF_STATE_BUCKET": "state",
				"CLUSTER_NAME":    "demo",
				"KUBECONFIG":      "/tmp/kube/a" + string(filepath.ListSeparator) + "/tmp/kube/b",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "eu-west-1", cfg.Region)
				assert.Equal(t, "state", cfg.BucketName)
				assert.Equal(t, "demo", cfg.ClusterName)
				assert.Equal(t, "/tmp/kube/a", cfg.KubeconfigPath)
			},
			description: "variables used by the original scripts are honoured",
		},
		{
			name: "PrefixedNamesWin",
			env: map[string]string{
				"AWS_REGION":        "eu-west-1",
				"OPSCTL_REGION":     "ap-south-1",
				"AWS_PROFILE":       "default",
				"OPSCTL_PROFILE":    "ops",
				"OPSCTL_KUBECONFIG": "/srv/kubeconfig",
				"KUBECONFIG":        "/tmp/ignored",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "ap-south-1", cfg.Region)
				assert.Equal(t, "ops", cfg.Profile)
				assert.Equal(t, "/srv/kubeconfig", cfg.KubeconfigPath)
			},
			description: "OPSCTL_ variables override generic ones",
		},
		{
			name: "TimeoutAndDebug",
			env: map[string]string{
				"KUBECONFIG":        "/tmp/config",
				"OPSCTL_IP_TIMEOUT": "2s",
				"OPSCTL_DEBUG":      "true",
				"OPSCTL_QUIET":      "1",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 2*time.Second, cfg.IPTimeout)
				assert.True(t, cfg.Debug)
				assert.True(t, cfg.Quiet)
				assert.Equal(t, "us-east-1", cfg.Region, "defaults remain")
			},
			description: "typed variables are parsed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewLoaderWithLookup(envLookup(tt.env)).Load()

			require.NoError(t, err, tt.description)
			tt.check(t, cfg)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestLoader_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "BadTimeout", env: map[string]string{"KUBECONFIG": "/x", "OPSCTL_IP_TIMEOUT": "soon"}},
		{name: "NegativeTimeout", env: map[string]string{"KUBECONFIG": "/x", "OPSCTL_IP_TIMEOUT": "-1s"}},
		{name: "BadDebug", env: map[string]string{"KUBECONFIG": "/x", "OPSCTL_DEBUG": "maybe"}},
		{name: "BadQuiet", env: map[string]string{"KUBECONFIG": "/x", "OPSCTL_QUIET": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoaderWithLookup(envLookup(tt.env)).Load()
			assert.Error(t, err)
		})
	}
}

func TestLoader_StaticSourceOverridesEnvironment(t *testing.T) {
	loader := NewLoaderWithLookup(envLookup(map[string]string{
		"KUBECONFIG": "/tmp/config",
		"AWS_REGION": "eu-west-1",
	}))
	loader.AddSource(NewStaticSource("flags", 1, &Config{Region: "us-west-2", ClusterName: "flagged"}))

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "us-west-2", cfg.Region)
	assert.Equal(t, "flagged", cfg.ClusterName)
	assert.Equal(t, "/tmp/config", cfg.KubeconfigPath)
}

func TestLoader_ExtraSourcesApplyToOneCall(t *testing.T) {
	loader := NewLoaderWithLookup(envLookup(map[string]string{
		"KUBECONFIG": "/tmp/config",
		"AWS_REGION": "eu-west-1",
	}))

	flagged, err := loader.Load(NewStaticSource("flags", 0, &Config{Region: "ap-south-1", Quiet: true}))
	require.NoError(t, err)
	assert.Equal(t, "ap-south-1", flagged.Region)
	assert.True(t, flagged.Quiet)

	plain, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", plain.Region, "earlier overrides must not stick")
	assert.False(t, plain.Quiet)

	withNil, err := loader.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", withNil.Region)
}

func TestNewLoader_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("OPSCTL_REGION", "sa-east-1")
	t.Setenv("OPSCTL_KUBECONFIG", "/tmp/process-config")

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, "sa-east-1", cfg.Region)
	assert.Equal(t, "/tmp/process-config", cfg.KubeconfigPath)
}

func TestDefaultKubeconfigPath_HomeFallback(t *testing.T) {
	t.Setenv("HOME", "/home/operator")

	path, err := DefaultKubeconfigPath(envLookup(map[string]string{}))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/operator", ".kube", "config"), path)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.KubeconfigPath = "/tmp/config"
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{name: "MissingRegion", mutate: func(cfg *Config) { cfg.Region = "" }},
		{name: "MissingPath", mutate: func(cfg *Config) { cfg.KubeconfigPath = "" }},
		{name: "ZeroTimeout", mutate: func(cfg *Config) { cfg.IPTimeout = 0 }},
		{name: "MissingExec", mutate: func(cfg *Config) { cfg.ExecCommand = " " }},
	}

	require.NoError(t, valid().Validate())
	var nilConfig *Config
	assert.Error(t, nilConfig.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
