package domain

import (
	"fmt"
	"strings"
)

// ClusterDescriptor is what the control plane reports about one cluster.
type ClusterDescriptor struct {
	ARN                      string
	Name                     string
	Region                   string
	Endpoint                 string
	CertificateAuthorityData string
}

// Validate checks the fields the kubeconfig entries are built from
func (d ClusterDescriptor) Validate() error {
	var missing []string
	if strings.TrimSpace(d.ARN) == "" {
		missing = append(missing, "arn")
	}
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(d.Region) == "" {
		missing = append(missing, "region")
	}
	if strings.TrimSpace(d.Endpoint) == "" {
		missing = append(missing, "endpoint")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidDescriptor, strings.Join(missing, ", "))
	}
	return nil
}

// String returns a short human-readable form
func (d ClusterDescriptor) String() string {
	return fmt.Sprintf("%s (%s)", d.Name, d.Region)
}
