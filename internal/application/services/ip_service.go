package services

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/opsbench/opsctl/internal/core/ports"
)

// IPService reports the caller's public address
type IPService struct {
	resolver ports.PublicIPResolver
	logger   hclog.Logger
}

// NewIPService creates a new IP service
func NewIPService(resolver ports.PublicIPResolver, logger hclog.Logger) *IPService {
	return &IPService{
		resolver: resolver,
		logger:   logger.Named("ip"),
	}
}

// Resolve returns the public IPv4 address of this host
func (s *IPService) Resolve(ctx context.Context) (string, error) {
	ip, err := s.resolver.PublicIP(ctx)
	if err != nil {
		s.logger.Debug("public ip lookup failed", "error", err)
		return "", err
	}
	return ip, nil
}
