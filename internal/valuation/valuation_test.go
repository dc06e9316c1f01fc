package valuation

import (
	"testing"

	"FlipScout/internal/domain/models"
)

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }

func TestEstimateShippingTiers(t *testing.T) {
	if got := EstimateShippingCents(nil); got != 1200 {
		t.Fatalf("nil weight: got %d", got)
	}
	if got := EstimateShippingCents(f64(0.3)); got != 600 {
		t.Fatalf("light: got %d", got)
	}
	if got := EstimateShippingCents(f64(0.5)); got != 1200 {
		t.Fatalf("0.5 boundary: got %d", got)
	}
	if got := EstimateShippingCents(f64(1.9)); got != 1200 {
		t.Fatalf("mid: got %d", got)
	}
	if got := EstimateShippingCents(f64(2.0)); got != 2000 {
		t.Fatalf("2.0 boundary: got %d", got)
	}
	if got := EstimateShippingCents(f64(12)); got != 2000 {
		t.Fatalf("heavy: got %d", got)
	}
	// Negative weights fall into the lightest tier, not an error.
	if got := EstimateShippingCents(f64(-1)); got != 600 {
		t.Fatalf("negative: got %d", got)
	}
}

func TestValuateInsufficientComps(t *testing.T) {
	cases := []struct {
		name    string
		median  *int64
		sales30 *int64
	}{
		{"both nil", nil, nil},
		{"median nil", nil, i64(10)},
		{"sales nil", i64(8000), nil},
		{"median zero", i64(0), i64(10)},
		{"sales zero", i64(8000), i64(0)},
	}
	for _, tc := range cases {
		got := Valuate(5000, tc.median, tc.sales30, nil)
		want := models.Valuation{Status: models.StatusPass, Confidence: 0.2, Rationale: "Insufficient comps"}
		if got != want {
			t.Fatalf("%s: got %+v", tc.name, got)
		}
	}
}

func TestValuateHighMarginLowNetIsPass(t *testing.T) {
	// fees=1040, shipping=1200, net=800: margin 60% cannot rescue a thin net.
	got := Valuate(5000, i64(8000), i64(30), f64(0))
	if got.Status != models.StatusPass {
		t.Fatalf("expected PASS, got %s", got.Status)
	}
	if got.NetProfitCents != 800 {
		t.Fatalf("net: got %d", got.NetProfitCents)
	}
	if got.MarginPct != 60.0 {
		t.Fatalf("margin: got %v", got.MarginPct)
	}
	if got.Confidence != 1.0 {
		t.Fatalf("confidence: got %v", got.Confidence)
	}
	if got.Rationale != "Below thresholds" {
		t.Fatalf("rationale: got %q", got.Rationale)
	}
}

func TestValuateBuyable(t *testing.T) {
	// fees=1040, shipping=1200, net=2760, margin=166.7.
	got := Valuate(3000, i64(8000), i64(30), f64(0))
	if got.Status != models.StatusBuyable {
		t.Fatalf("expected BUYABLE, got %s", got.Status)
	}
	if got.NetProfitCents != 2760 {
		t.Fatalf("net: got %d", got.NetProfitCents)
	}
	if got.MarginPct != 166.7 {
		t.Fatalf("margin: got %v", got.MarginPct)
	}
	if got.Confidence != 1.0 {
		t.Fatalf("confidence: got %v", got.Confidence)
	}
	if got.Rationale != ">$20 net & ≥25% margin" {
		t.Fatalf("rationale: got %q", got.Rationale)
	}
}

func TestValuateWatch(t *testing.T) {
	// median=10000: fees=1300, shipping=1200, price=6100 -> net=1400, margin=63.9.
	got := Valuate(6100, i64(10000), i64(15), f64(0.1))
	if got.Status != models.StatusWatch {
		t.Fatalf("expected WATCH, got %+v", got)
	}
	if got.NetProfitCents != 1400 {
		t.Fatalf("net: got %d", got.NetProfitCents)
	}
	// 0.6*0.5 + 0.4*(1-0.4) = 0.54
	if got.Confidence != 0.54 {
		t.Fatalf("confidence: got %v", got.Confidence)
	}
}

func TestValuateThresholdBoundariesInclusive(t *testing.T) {
	// Construct net exactly 2000 with margin well above 25:
	// median=8000 -> fees=1040, shipping=1200, price=3760 -> net=2000, margin=112.8.
	got := Valuate(3760, i64(8000), i64(30), f64(0))
	if got.NetProfitCents != 2000 {
		t.Fatalf("net: got %d", got.NetProfitCents)
	}
	if got.Status != models.StatusBuyable {
		t.Fatalf("net boundary should be inclusive, got %s", got.Status)
	}
}

func TestValuateZeroPriceGuard(t *testing.T) {
	// Division denominator floors at 1; a free listing must not divide by zero.
	got := Valuate(0, i64(8000), i64(30), f64(0))
	if got.MarginPct != 800000.0 {
		t.Fatalf("margin: got %v", got.MarginPct)
	}
	if got.Status != models.StatusBuyable {
		t.Fatalf("expected BUYABLE, got %s", got.Status)
	}
}

func TestConfidenceBounds(t *testing.T) {
	for _, sales := range []int64{1, 5, 30, 500} {
		for _, v := range []float64{0, 0.05, 0.25, 3.7} {
			got := Valuate(5000, i64(8000), i64(sales), f64(v))
			if got.Confidence < 0 || got.Confidence > 1 {
				t.Fatalf("confidence out of range: sales=%d var=%v conf=%v", sales, v, got.Confidence)
			}
		}
	}
}

func TestValuateDeterministic(t *testing.T) {
	a := Valuate(4200, i64(9100), i64(12), f64(0.07))
	b := Valuate(4200, i64(9100), i64(12), f64(0.07))
	if a != b {
		t.Fatalf("expected identical tuples: %+v vs %+v", a, b)
	}
}
