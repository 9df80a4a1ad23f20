// Package loan implements the affordability core: amortization math,
// suggestion ranking, offer comparison, and the application progress
// pipeline. Everything here is pure and safe for concurrent use.
package loan

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/loanpath/backend/internal/model"
)

// ErrInvalidInput indicates a non-positive principal or term, or a
// negative rate. Callers should validate user input before invoking the
// calculator and surface a validation message.
var ErrInvalidInput = errors.New("invalid loan input")

// ComputeInstallment computes the fixed monthly payment for a loan using
// the standard amortization formula M = P * r(1+r)^n / ((1+r)^n - 1),
// where r is the monthly periodic rate. The zero-rate case is handled as
// a straight-line split so total interest is exactly zero.
// Totals are derived from the monthly payment, so
// TotalPayment = MonthlyPayment * termMonths always holds. Results are
// unrounded; display rounding belongs to the currency formatter.
func ComputeInstallment(principal, annualRate decimal.Decimal, termMonths int) (model.Installment, error) {
	if !principal.IsPositive() {
		return model.Installment{}, fmt.Errorf("%w: principal must be positive", ErrInvalidInput)
	}
	if annualRate.IsNegative() {
		return model.Installment{}, fmt.Errorf("%w: annual rate must not be negative", ErrInvalidInput)
	}
	if termMonths <= 0 {
		return model.Installment{}, fmt.Errorf("%w: term must be at least one month", ErrInvalidInput)
	}

	months := decimal.NewFromInt(int64(termMonths))

	if annualRate.IsZero() {
		return model.Installment{
			MonthlyPayment: principal.Div(months),
			TotalPayment:   principal,
			TotalInterest:  decimal.Zero,
		}, nil
	}

	r := annualRate.InexactFloat64() / 12 / 100
	p := principal.InexactFloat64()
	n := float64(termMonths)

	pow := math.Pow(1+r, n)
	monthly := p * (r * pow) / (pow - 1)
	if math.IsNaN(monthly) || math.IsInf(monthly, 0) {
		return model.Installment{}, fmt.Errorf("%w: amortization did not produce a finite payment", ErrInvalidInput)
	}

	monthlyPayment := decimal.NewFromFloat(monthly)
	totalPayment := monthlyPayment.Mul(months)
	return model.Installment{
		MonthlyPayment: monthlyPayment,
		TotalPayment:   totalPayment,
		TotalInterest:  totalPayment.Sub(principal),
	}, nil
}
