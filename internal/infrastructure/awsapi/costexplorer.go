package awsapi

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/opsbench/opsctl/internal/core/domain/billing"
)

// CostMetric is the spend metric requested from Cost Explorer
const CostMetric = "UnblendedCost"

// CostExplorerAPI is the subset of the Cost Explorer client used here
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

// CostReporter implements ports.CostReporter on Cost Explorer
type CostReporter struct {
	api CostExplorerAPI
}

// NewCostReporter creates a cost reporter
func NewCostReporter(api CostExplorerAPI) *CostReporter {
	return &CostReporter{api: api}
}

// CostAndUsage returns monthly unblended cost for period
func (r *CostReporter) CostAndUsage(ctx context.Context, period billing.Period) ([]billing.CostRecord, error) {
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &cetypes.DateInterval{
			Start: aws.String(period.StartString()),
			End:   aws.String(period.EndString()),
		},
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{CostMetric},
	}

	var records []billing.CostRecord
	for {
		out, err := r.api.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, classify("get cost and usage", err)
		}

		for _, result := range out.ResultsByTime {
			records = append(records, toRecord(result))
		}

		if aws.ToString(out.NextPageToken) == "" {
			break
		}
		input.NextPageToken = out.NextPageToken
	}

	return records, nil
}

func toRecord(result cetypes.ResultByTime) billing.CostRecord {
	record := billing.CostRecord{
		Estimated: result.Estimated,
		Unit:      "USD",
	}
	if result.TimePeriod != nil {
		record.Start = aws.ToString(result.TimePeriod.Start)
		record.End = aws.ToString(result.TimePeriod.End)
	}
	if metric, ok := result.Total[CostMetric]; ok {
		record.Amount = billing.ParseAmount(aws.ToString(metric.Amount))
		if unit := aws.ToString(metric.Unit); unit != "" {
			record.Unit = unit
		}
	}
	return record
}
