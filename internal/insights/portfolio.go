package insights

import (
	"sort"

	"github.com/theirongolddev/finboard/internal/api"
)

// GoalProgress is the fraction of a goal reached, clamped to [0, 1].
func GoalProgress(g api.Goal) float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// HoldingValue is the current value of a holding, falling back to cost
// when no price has been fetched.
func HoldingValue(inv api.Investment) float64 {
	price := inv.CurrentPrice
	if price == 0 {
		price = inv.PurchasePrice
	}
	return inv.Quantity * price
}

// PortfolioShares weights holdings by value and groups them by type,
// largest first.
func PortfolioShares(invs []api.Investment) []api.AssetShare {
	byType := make(map[string]float64)
	var total float64
	for _, inv := range invs {
		v := HoldingValue(inv)
		t := inv.Type
		if t == "" {
			t = "OTHER"
		}
		byType[t] += v
		total += v
	}

	shares := make([]api.AssetShare, 0, len(byType))
	for t, v := range byType {
		s := api.AssetShare{Type: t, Value: v}
		if total > 0 {
			s.Percentage = v / total * 100
		}
		shares = append(shares, s)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Value != shares[j].Value {
			return shares[i].Value > shares[j].Value
		}
		return shares[i].Type < shares[j].Type
	})
	return shares
}
