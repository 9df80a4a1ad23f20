package loan

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/loanpath/backend/internal/model"
)

func TestParseMidRate(t *testing.T) {
	t.Parallel()

	fallback := decimal.NewFromInt(12)

	tests := []struct {
		name         string
		text         string
		wantRate     float64
		wantFallback bool
	}{
		{"range takes the midpoint", "10.5% - 16%", 13.25, false},
		{"single percentage taken as is", "4%", 4, false},
		{"range without spaces", "11%-17%", 14, false},
		{"percentage embedded in prose", "approx 9.75% flat", 9.75, false},
		{"empty text falls back", "", 12, true},
		{"no number falls back", "rate varies by profile", 12, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParseMidRate(tt.text, fallback)

			assert.True(t, got.Rate.Equal(decimal.NewFromFloat(tt.wantRate)), "got %s", got.Rate)
			assert.Equal(t, tt.wantFallback, got.Fallback)
		})
	}
}

func TestParseTermMonths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		text         string
		fallback     int
		wantMonths   int
		wantFallback bool
	}{
		{"month range takes the first number", "12-60 months", 60, 12, false},
		{"years multiply by twelve", "5 years", 60, 60, false},
		{"year range takes the first number", "1-5 years", 60, 12, false},
		{"singular year", "1 year", 60, 12, false},
		{"unit is case-insensitive", "48 MONTHS", 60, 48, false},
		{"empty text falls back", "", 60, 60, true},
		{"no unit falls back", "flexible tenure", 24, 24, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParseTermMonths(tt.text, tt.fallback)

			assert.Equal(t, tt.wantMonths, got.Months)
			assert.Equal(t, tt.wantFallback, got.Fallback)
		})
	}
}

func TestCompareOffers(t *testing.T) {
	t.Parallel()

	principal := decimal.NewFromInt(500000)
	defaultRate := decimal.NewFromInt(12)

	t.Run("preserves input order and recomputes figures", func(t *testing.T) {
		t.Parallel()

		offers := []model.ExternalOffer{
			{Company: "HDFC Bank", InterestRate: "10.5% - 16%", Tenure: "12-60 months"},
			{Company: "ICICI Bank", InterestRate: "11% - 17%", Tenure: "12-60 months"},
			{Company: "Bajaj Finserv", InterestRate: "12% - 18%", Tenure: "12-84 months"},
		}

		comparisons, err := CompareOffers(offers, principal, 60, defaultRate)

		assert.NoError(t, err)
		assert.Len(t, comparisons, 3)
		assert.Equal(t, "HDFC Bank", comparisons[0].Offer.Company)
		assert.Equal(t, "ICICI Bank", comparisons[1].Offer.Company)
		assert.Equal(t, "Bajaj Finserv", comparisons[2].Offer.Company)

		for _, c := range comparisons {
			assert.Equal(t, 12, c.TermMonths)
			assert.True(t, c.MonthlyPayment.IsPositive())
			assert.True(t, c.TotalInterest.IsPositive())
		}
	})

	t.Run("malformed text falls back instead of failing", func(t *testing.T) {
		t.Parallel()

		offers := []model.ExternalOffer{
			{Company: "Unknown Lender", InterestRate: "competitive", Tenure: "flexible"},
		}

		comparisons, err := CompareOffers(offers, principal, 60, defaultRate)

		assert.NoError(t, err)
		assert.Len(t, comparisons, 1)
		assert.True(t, comparisons[0].AnnualRate.Equal(defaultRate))
		assert.Equal(t, 60, comparisons[0].TermMonths)
	})

	t.Run("rejects an invalid principal", func(t *testing.T) {
		t.Parallel()

		offers := []model.ExternalOffer{{Company: "HDFC Bank", InterestRate: "12%", Tenure: "60 months"}}

		_, err := CompareOffers(offers, decimal.Zero, 60, defaultRate)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty feed yields an empty comparison", func(t *testing.T) {
		t.Parallel()

		comparisons, err := CompareOffers(nil, principal, 60, defaultRate)

		assert.NoError(t, err)
		assert.Empty(t, comparisons)
	})
}
