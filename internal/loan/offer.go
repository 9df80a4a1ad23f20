package loan

import (
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/loanpath/backend/internal/model"
)

// Offer rate and tenure fields originate from an uncontrolled external
// text source, so parsing never fails: anything unreadable resolves to a
// fallback value instead.
var (
	rateRangeRe  = regexp.MustCompile(`(\d+\.?\d*)%\s*-\s*(\d+\.?\d*)%`)
	rateSingleRe = regexp.MustCompile(`(\d+\.?\d*)%`)
	monthsUnitRe = regexp.MustCompile(`(?i)\d+\s*months`)
	yearsUnitRe  = regexp.MustCompile(`(?i)\d+\s*years?`)
	firstIntRe   = regexp.MustCompile(`\d+`)
)

// RateResult is the outcome of parsing an offer's interest-rate text.
// Fallback is set when no rate could be extracted.
type RateResult struct {
	Rate     decimal.Decimal
	Fallback bool
}

// TermResult is the outcome of parsing an offer's tenure text.
type TermResult struct {
	Months   int
	Fallback bool
}

// ParseMidRate extracts an annual rate from free text such as
// "10.5% - 16%" (arithmetic mean of the bounds) or "4%" (taken as is).
// Text with no percentage resolves to the fallback rate.
func ParseMidRate(text string, fallback decimal.Decimal) RateResult {
	if m := rateRangeRe.FindStringSubmatch(text); m != nil {
		lo, errLo := decimal.NewFromString(m[1])
		hi, errHi := decimal.NewFromString(m[2])
		if errLo == nil && errHi == nil {
			return RateResult{Rate: lo.Add(hi).Div(decimal.NewFromInt(2))}
		}
	}
	if m := rateSingleRe.FindStringSubmatch(text); m != nil {
		if rate, err := decimal.NewFromString(m[1]); err == nil {
			return RateResult{Rate: rate}
		}
	}
	return RateResult{Rate: fallback, Fallback: true}
}

// ParseTermMonths extracts a month count from free text such as
// "12-60 months" or "1-5 years". The first integer in the text is taken,
// not the range midpoint; a year unit multiplies it by 12. Text with no
// recognizable term resolves to the fallback.
func ParseTermMonths(text string, fallback int) TermResult {
	var multiplier int
	switch {
	case monthsUnitRe.MatchString(text):
		multiplier = 1
	case yearsUnitRe.MatchString(text):
		multiplier = 12
	default:
		return TermResult{Months: fallback, Fallback: true}
	}

	first := firstIntRe.FindString(text)
	n, err := strconv.Atoi(first)
	if err != nil {
		return TermResult{Months: fallback, Fallback: true}
	}
	return TermResult{Months: n * multiplier}
}

// CompareOffers recomputes installment figures for each offer against the
// requested principal, preserving input order. Unparseable rate or tenure
// text falls back to the supplied defaults rather than failing, since the
// comparison must degrade gracefully on malformed feed data.
func CompareOffers(offers []model.ExternalOffer, principal decimal.Decimal, fallbackTermMonths int, defaultRate decimal.Decimal) ([]model.OfferComparison, error) {
	comparisons := make([]model.OfferComparison, 0, len(offers))
	for _, offer := range offers {
		rate := ParseMidRate(offer.InterestRate, defaultRate)
		term := ParseTermMonths(offer.Tenure, fallbackTermMonths)

		inst, err := ComputeInstallment(principal, rate.Rate, term.Months)
		if err != nil {
			return nil, err
		}
		comparisons = append(comparisons, model.OfferComparison{
			Offer:          offer,
			AnnualRate:     rate.Rate,
			TermMonths:     term.Months,
			MonthlyPayment: inst.MonthlyPayment,
			TotalInterest:  inst.TotalInterest,
		})
	}
	return comparisons, nil
}
