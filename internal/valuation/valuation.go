// Package valuation holds the pure pricing rule: no I/O, no state, fully
// deterministic for a given candidate.
package valuation

import (
	"math"

	"FlipScout/internal/domain/models"
)

const (
	// FeeRate is the marketplace fee fraction applied to the median sale price.
	FeeRate = 0.13

	// Decision thresholds, boundaries inclusive.
	buyableNetCents  = 2000
	buyableMarginPct = 25.0
	watchNetCents    = 1000
	watchMarginPct   = 15.0

	// Confidence saturation points: 30 sales per 30 days, variance 0.25.
	salesSaturation    = 30.0
	varianceSaturation = 0.25
)

// EstimateShippingCents maps an optional weight in kilograms to a flat
// shipping estimate in cents. Total over all inputs; negative weights land in
// the lightest tier.
func EstimateShippingCents(weightKG *float64) int64 {
	switch {
	case weightKG == nil:
		return 1200
	case *weightKG < 0.5:
		return 600
	case *weightKG < 2.0:
		return 1200
	default:
		return 2000
	}
}

// Valuate scores one candidate against its market comparable.
//
// A missing or zero median / 30-day sales count is the low-confidence
// fallback: PASS with confidence 0.2 and no profit math. Otherwise net profit
// is median minus fees, shipping and acquisition price; margin is the markup
// of median over price; confidence blends sales velocity and price stability.
// Shipping always uses the no-weight flat rate: product weight is not
// threaded through the candidate query.
func Valuate(priceCents int64, medianCents, sales30 *int64, variance *float64) models.Valuation {
	if medianCents == nil || *medianCents == 0 || sales30 == nil || *sales30 == 0 {
		return models.Valuation{
			Status:     models.StatusPass,
			Confidence: 0.2,
			Rationale:  "Insufficient comps",
		}
	}

	med := *medianCents
	fees := int64(math.Floor(float64(med) * FeeRate))
	shipping := EstimateShippingCents(nil)
	net := med - fees - shipping - priceCents

	denom := priceCents
	if denom < 1 {
		denom = 1
	}
	margin := round1(100 * float64(med-priceCents) / float64(denom))

	v := 0.0
	if variance != nil {
		v = *variance
	}
	conf := round2(0.6*math.Min(float64(*sales30)/salesSaturation, 1.0) +
		0.4*(1.0-math.Min(v/varianceSaturation, 1.0)))

	switch {
	case net >= buyableNetCents && margin >= buyableMarginPct:
		return models.Valuation{Status: models.StatusBuyable, NetProfitCents: net, MarginPct: margin, Confidence: conf, Rationale: ">$20 net & ≥25% margin"}
	case net >= watchNetCents && margin >= watchMarginPct:
		return models.Valuation{Status: models.StatusWatch, NetProfitCents: net, MarginPct: margin, Confidence: conf, Rationale: ">$10 net & ≥15% margin"}
	default:
		return models.Valuation{Status: models.StatusPass, NetProfitCents: net, MarginPct: margin, Confidence: conf, Rationale: "Below thresholds"}
	}
}

// round1 / round2 round half-to-even at 1 and 2 decimals.
func round1(x float64) float64 { return math.RoundToEven(x*10) / 10 }
func round2(x float64) float64 { return math.RoundToEven(x*100) / 100 }
