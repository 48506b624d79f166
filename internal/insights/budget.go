package insights

import "github.com/theirongolddev/finboard/internal/api"

// BucketReport is one budget bucket checked against spend.
type BucketReport struct {
	Name        string
	Allocated   float64
	Spent       float64
	Remaining   float64
	UsedPercent float64
	OverBudget  bool
}

// BudgetReport is the full needs/wants/savings check.
type BudgetReport struct {
	Month      string
	Buckets    []BucketReport
	Allocated  float64
	Spent      float64
	OverBudget bool
}

// CompareBudget flags every bucket whose spend exceeds its allocation.
// The report is over budget when any bucket is.
func CompareBudget(a api.BudgetAnalysis) BudgetReport {
	r := BudgetReport{Month: a.Month}
	for _, b := range []struct {
		name string
		u    api.BucketUsage
	}{
		{"Needs", a.Needs},
		{"Wants", a.Wants},
		{"Savings", a.Savings},
	} {
		br := BucketReport{
			Name:       b.name,
			Allocated:  b.u.Allocated,
			Spent:      b.u.Spent,
			Remaining:  b.u.Allocated - b.u.Spent,
			OverBudget: b.u.Spent > b.u.Allocated,
		}
		if b.u.Allocated > 0 {
			br.UsedPercent = b.u.Spent / b.u.Allocated * 100
		}
		r.Buckets = append(r.Buckets, br)
		r.Allocated += br.Allocated
		r.Spent += br.Spent
		if br.OverBudget {
			r.OverBudget = true
		}
	}
	return r
}

// SplitIncome applies a percentage split to a monthly income.
func SplitIncome(income float64, p api.BudgetPercentages) (needs, wants, savings float64) {
	return income * p.NeedsPercentage / 100,
		income * p.WantsPercentage / 100,
		income * p.SavingsPercentage / 100
}

// ValidSplit reports whether the percentages are non-negative and sum to 100.
func ValidSplit(p api.BudgetPercentages) bool {
	if p.NeedsPercentage < 0 || p.WantsPercentage < 0 || p.SavingsPercentage < 0 {
		return false
	}
	sum := p.NeedsPercentage + p.WantsPercentage + p.SavingsPercentage
	return sum > 99.999 && sum < 100.001
}
