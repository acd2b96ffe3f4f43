package billing

import (
	"strconv"
	"time"
)

// DateLayout is the date format the cost API accepts and returns
const DateLayout = "2006-01-02"

// Period is a half-open date range [Start, End)
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthToDate returns the period from the first day of now's month through
// tomorrow, so today's partial spend is included.
func MonthToDate(now time.Time) Period {
	y, m, d := now.Date()
	return Period{
		Start: time.Date(y, m, 1, 0, 0, 0, 0, now.Location()),
		End:   time.Date(y, m, d+1, 0, 0, 0, 0, now.Location()),
	}
}

// StartString formats Start for the cost API
func (p Period) StartString() string {
	return p.Start.Format(DateLayout)
}

// EndString formats End for the cost API
func (p Period) EndString() string {
	return p.End.Format(DateLayout)
}

// CostRecord is one grouped row of spend
type CostRecord struct {
	Start     string
	End       string
	Amount    float64
	Unit      string
	Estimated bool
}

// ParseAmount converts a reported amount, treating unparseable values as zero
func ParseAmount(raw string) float64 {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return amount
}

// Total sums the amounts of records
func Total(records []CostRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.Amount
	}
	return total
}
