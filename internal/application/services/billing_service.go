package services

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/juju/clock"

	"github.com/opsbench/opsctl/internal/core/domain/billing"
	"github.com/opsbench/opsctl/internal/core/ports"
)

// BillingReport is the month-to-date spend of the authenticated account
type BillingReport struct {
	Identity ports.Identity
	Period   billing.Period
	Records  []billing.CostRecord
	Total    float64
}

// BillingService reads spend from the cost API
type BillingService struct {
	identity ports.IdentityChecker
	costs    ports.CostReporter
	clock    clock.Clock
	logger   hclog.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(identity ports.IdentityChecker, costs ports.CostReporter, clk clock.Clock, logger hclog.Logger) *BillingService {
	return &BillingService{
		identity: identity,
		costs:    costs,
		clock:    clk,
		logger:   logger.Named("billing"),
	}
}

// MonthToDate checks credentials and returns spend from the first of the
// month through today
func (s *BillingService) MonthToDate(ctx context.Context) (*BillingReport, error) {
	identity, err := s.identity.CallerIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("authentication check failed: %w", err)
	}
	s.logger.Debug("authenticated", "account", identity.Account, "arn", identity.ARN)

	period := billing.MonthToDate(s.clock.Now())
	records, err := s.costs.CostAndUsage(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("cost query failed: %w", err)
	}

	return &BillingReport{
		Identity: identity,
		Period:   period,
		Records:  records,
		Total:    billing.Total(records),
	}, nil
}
