package model

import (
	"strings"
	"unicode"
)

// PricingCategory distinguishes how a trip on a route is priced: a
// single leg, a paired round trip, or overtime work.
type PricingCategory string

const (
	CategorySingleLeg PricingCategory = "SINGLE_LEG"
	CategoryPaired    PricingCategory = "PAIRED"
	CategoryOvertime  PricingCategory = "OVERTIME"
)

// Pricing models: shift-based contracts settle per shift, non-shift
// contracts settle per trip.
const (
	PricingModelShift    = "SHIFT"
	PricingModelNonShift = "NON_SHIFT"
)

// Accrual document statuses. Anything else is stored verbatim as a
// custom status without timestamp side effects.
const (
	AccrualDraft    = "DRAFT"
	AccrualApproved = "APPROVED"
	AccrualInvoiced = "INVOICED"
)

// NormalizePricingCategory maps operator free text — historically
// Turkish screen labels like "ÇİFT SERVİS" or "MESAİ" — onto the
// canonical category. Unrecognized or empty input falls back to
// SINGLE_LEG, which matches how the legacy price matrices were read.
func NormalizePricingCategory(text string) PricingCategory {
	t := strings.ToUpperSpecial(unicode.TurkishCase, strings.TrimSpace(text))
	// Tolerate ASCII transliterations of the Turkish labels.
	t = strings.NewReplacer("Ç", "C", "İ", "I", "Ş", "S", "Ğ", "G", "Ü", "U", "Ö", "O").Replace(t)

	switch {
	case strings.Contains(t, "CIFT"),
		strings.Contains(t, "PAIR"),
		strings.Contains(t, "ROUND"),
		t == string(CategoryPaired):
		return CategoryPaired
	case strings.Contains(t, "MESAI"),
		strings.Contains(t, "OVERTIME"),
		strings.Contains(t, "FAZLA"),
		t == string(CategoryOvertime):
		return CategoryOvertime
	default:
		return CategorySingleLeg
	}
}
