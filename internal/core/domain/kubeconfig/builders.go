package kubeconfig

import (
	"fmt"

	"github.com/opsbench/opsctl/internal/core/domain"
)

// ExecAuth describes the credential plugin written into user entries
type ExecAuth struct {
	APIVersion      string
	Command         string
	InteractiveMode string
	Profile         string
}

// DefaultExecAuth returns the aws CLI token plugin settings
func DefaultExecAuth() ExecAuth {
	return ExecAuth{
		APIVersion:      "client.authentication.k8s.io/v1beta1",
		Command:         "aws",
		InteractiveMode: "IfAvailable",
	}
}

// RoleEntry pairs a built entry with the collection it belongs to
type RoleEntry struct {
	Role  Role
	Entry Entry
}

// ClusterEntries builds the cluster, user and context entries that register
// desc, all keyed by the cluster ARN.
func ClusterEntries(desc domain.ClusterDescriptor, auth ExecAuth) (EntryKey, []RoleEntry, error) {
	if err := desc.Validate(); err != nil {
		return "", nil, err
	}
	key, err := NewEntryKey(desc.ARN)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrInvalidDescriptor, err)
	}

	cluster := map[string]any{"server": desc.Endpoint}
	if desc.CertificateAuthorityData != "" {
		cluster["certificate-authority-data"] = desc.CertificateAuthorityData
	}

	exec := map[string]any{
		"apiVersion": auth.APIVersion,
		"command":    auth.Command,
		"args": []any{
			"eks", "get-token",
			"--cluster-name", desc.Name,
			"--region", desc.Region,
		},
	}
	if auth.InteractiveMode != "" {
		exec["interactiveMode"] = auth.InteractiveMode
	}
	if auth.Profile != "" {
		exec["env"] = []any{
			map[string]any{"name": "AWS_PROFILE", "value": auth.Profile},
		}
	}

	payloads := []struct {
		role  Role
		field string
		value map[string]any
	}{
		{RoleClusters, "cluster", cluster},
		{RoleUsers, "user", map[string]any{"exec": exec}},
		{RoleContexts, "context", map[string]any{
			"cluster": key.Value(),
			"user":    key.Value(),
		}},
	}

	entries := make([]RoleEntry, 0, len(payloads))
	for _, p := range payloads {
		e, err := NewEntry(key, p.field, p.value)
		if err != nil {
			return "", nil, err
		}
		entries = append(entries, RoleEntry{Role: p.role, Entry: e})
	}
	return key, entries, nil
}
