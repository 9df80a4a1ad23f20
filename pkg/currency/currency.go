// Package currency formats monetary amounts for display.
// Amounts are decimal.Decimal throughout to avoid floating-point errors.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency represents an ISO 4217 currency code.
type Currency string

// Supported currencies.
const (
	INR Currency = "INR" // Indian Rupee
	USD Currency = "USD" // US Dollar
	EUR Currency = "EUR" // Euro
	GBP Currency = "GBP" // British Pound
)

// DefaultCurrency is the default currency when none is specified.
const DefaultCurrency = INR

// Info contains display metadata for a currency.
type Info struct {
	Code           Currency
	Name           string
	Symbol         string
	DecimalPlaces  int  // Whole-rupee display matches the tracker UI
	IndianGrouping bool // 12,34,567 instead of 1,234,567
}

var currencies = map[Currency]Info{
	INR: {Code: INR, Name: "Indian Rupee", Symbol: "₹", DecimalPlaces: 0, IndianGrouping: true},
	USD: {Code: USD, Name: "US Dollar", Symbol: "$", DecimalPlaces: 2},
	EUR: {Code: EUR, Name: "Euro", Symbol: "€", DecimalPlaces: 2},
	GBP: {Code: GBP, Name: "British Pound", Symbol: "£", DecimalPlaces: 2},
}

// IsValid checks if a currency code is supported.
func IsValid(code string) bool {
	_, ok := currencies[Currency(code)]
	return ok
}

// GetInfo returns metadata for a currency code.
func GetInfo(code Currency) (Info, bool) {
	info, ok := currencies[code]
	return info, ok
}

// Format renders an amount with the currency's symbol and digit grouping,
// e.g. Format(500000, INR) -> "₹5,00,000".
func Format(amount decimal.Decimal, curr Currency) string {
	info, ok := currencies[curr]
	if !ok {
		info = currencies[DefaultCurrency]
	}

	rounded := amount.Round(int32(info.DecimalPlaces))
	s := rounded.StringFixed(int32(info.DecimalPlaces))

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	grouped := groupDigits(intPart, info.IndianGrouping)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(info.Symbol)
	b.WriteString(grouped)
	b.WriteString(fracPart)
	return b.String()
}

// groupDigits inserts thousands separators. Indian grouping separates the
// last three digits, then pairs: 12,34,567.
func groupDigits(digits string, indian bool) string {
	if len(digits) <= 3 {
		return digits
	}

	var groups []string
	rest := digits

	groups = append(groups, rest[len(rest)-3:])
	rest = rest[:len(rest)-3]

	size := 3
	if indian {
		size = 2
	}
	for len(rest) > size {
		groups = append(groups, rest[len(rest)-size:])
		rest = rest[:len(rest)-size]
	}
	if rest != "" {
		groups = append(groups, rest)
	}

	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return strings.Join(groups, ",")
}
