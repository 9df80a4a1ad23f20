package loan

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/loanpath/backend/internal/model"
)

// Suggestion labels form a closed set the presentation layer keys on.
const (
	LabelLowerRate    = "Lower Rate"
	LabelLongerTenure = "Longer Tenure"
	LabelBalanced     = "Balanced"
)

const (
	// minSuggestedRate is the floor, in percent, below which a suggested
	// rate is never reduced.
	minSuggestedRate = 6
	// maxTermMonths caps suggested terms at 30 years.
	maxTermMonths = 360
)

// Suggest generates exactly three alternative financing scenarios from a
// base scenario and returns them sorted ascending by monthly payment.
// The transforms are fixed heuristics, not an optimizer: the UI expects
// exactly these three ranked options.
func Suggest(principal, annualRate decimal.Decimal, termMonths int) ([]model.SuggestionCandidate, error) {
	transforms := []struct {
		label string
		rate  decimal.Decimal
		term  int
	}{
		{LabelLowerRate, floorRate(annualRate.Sub(decimal.NewFromFloat(1.5))), termMonths},
		{LabelLongerTenure, annualRate, capTerm(termMonths + 24)},
		{LabelBalanced, floorRate(annualRate.Sub(decimal.NewFromFloat(0.75))), capTerm(termMonths + 12)},
	}

	candidates := make([]model.SuggestionCandidate, 0, len(transforms))
	for _, tr := range transforms {
		inst, err := ComputeInstallment(principal, tr.rate, tr.term)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, model.SuggestionCandidate{
			Label:          tr.label,
			AnnualRate:     tr.rate,
			TermMonths:     tr.term,
			MonthlyPayment: inst.MonthlyPayment,
			TotalPayment:   inst.TotalPayment,
			TotalInterest:  inst.TotalInterest,
		})
	}

	// Stable: ties keep generation order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MonthlyPayment.LessThan(candidates[j].MonthlyPayment)
	})
	return candidates, nil
}

func floorRate(rate decimal.Decimal) decimal.Decimal {
	if min := decimal.NewFromInt(minSuggestedRate); rate.LessThan(min) {
		return min
	}
	return rate
}

func capTerm(termMonths int) int {
	if termMonths > maxTermMonths {
		return maxTermMonths
	}
	return termMonths
}
