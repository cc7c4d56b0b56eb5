package match

import (
	"testing"

	"github.com/licitatech/tendermatch/pkg/tendermatch/catalog"
	"github.com/licitatech/tendermatch/pkg/tendermatch/normalize"
)

func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

func TestScoreMonotonicNonDecreasing(t *testing.T) {
	e := catalog.Equipment{
		ID: 1, Category: normalize.CategoryCamera, FormFactor: "bullet",
		Technology: "IP", PTZ: true, PoE: true, ResolutionMP: 4, IRRangeM: 30,
	}

	// progressively satisfied criteria
	steps := []normalize.Attributes{
		{},
		{Category: normalize.CategoryCamera},
		{Category: normalize.CategoryCamera, FormFactor: "bullet"},
		{Category: normalize.CategoryCamera, FormFactor: "bullet", Technology: "IP"},
		{Category: normalize.CategoryCamera, FormFactor: "bullet", Technology: "IP", PTZ: boolPtr(true)},
		{Category: normalize.CategoryCamera, FormFactor: "bullet", Technology: "IP", PTZ: boolPtr(true), MinResolutionMP: floatPtr(2)},
		{Category: normalize.CategoryCamera, FormFactor: "bullet", Technology: "IP", PTZ: boolPtr(true), MinResolutionMP: floatPtr(2), MinIRRangeM: floatPtr(20), PoE: boolPtr(true)},
	}

	prev := -1.0
	for i, attrs := range steps {
		score, _ := scoreCandidate(attrs, e)
		if score < prev {
			t.Errorf("step %d: score %v dropped below %v", i, score, prev)
		}
		if score > 1.0 {
			t.Errorf("step %d: score %v exceeds 1.0", i, score)
		}
		prev = score
	}
}

func TestScoreNeverExceedsOne(t *testing.T) {
	e := catalog.Equipment{
		ID: 1, Category: normalize.CategorySwitch, FormFactor: "rackmount",
		Technology: "gigabit", PoE: true, Ports: 48, PowerVA: 2000,
		ResolutionMP: 8, IRRangeM: 50, PTZ: true,
	}
	attrs := normalize.Attributes{
		Category: normalize.CategorySwitch, FormFactor: "rackmount", Technology: "gigabit",
		PTZ: boolPtr(true), PoE: boolPtr(true),
		MinResolutionMP: floatPtr(1), MinIRRangeM: floatPtr(1),
		MinPorts: intPtr(24), MinPowerVA: floatPtr(1000),
	}

	score, _ := scoreCandidate(attrs, e)
	if score != 1.0 {
		t.Errorf("fully satisfied score = %v, want capped 1.0", score)
	}
}

func TestRankByRulesPTZPrincipal(t *testing.T) {
	candidates := []catalog.Equipment{
		{ID: 1, Category: normalize.CategoryCamera, FormFactor: "bullet", Active: true},
		{ID: 2, Category: normalize.CategoryCamera, FormFactor: "speed dome", PTZ: true, Active: true},
		{ID: 3, Category: normalize.CategoryCamera, FormFactor: "dome", Active: true},
	}
	attrs := normalize.Attributes{
		Category: normalize.CategoryCamera,
		PTZ:      boolPtr(true),
	}

	suggestions := rankByRules(attrs, candidates)
	if len(suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(suggestions))
	}
	if !suggestions[0].IsPrincipal {
		t.Error("rank 1 must be principal")
	}
	if suggestions[0].Equipment.ID != 2 {
		t.Errorf("principal = equipment %d, want the PTZ candidate (2)", suggestions[0].Equipment.ID)
	}

	principals := 0
	for _, s := range suggestions {
		if s.IsPrincipal {
			principals++
		}
	}
	if principals != 1 {
		t.Errorf("suggestion set has %d principals, want exactly 1", principals)
	}
}

func TestRankByRulesTopThree(t *testing.T) {
	var candidates []catalog.Equipment
	for i := int64(1); i <= 6; i++ {
		candidates = append(candidates, catalog.Equipment{ID: i, Category: normalize.CategoryCamera})
	}

	suggestions := rankByRules(normalize.Attributes{Category: normalize.CategoryCamera}, candidates)
	if len(suggestions) != 3 {
		t.Fatalf("expected top 3, got %d", len(suggestions))
	}
	for i, s := range suggestions {
		if s.Rank != i+1 {
			t.Errorf("suggestion %d has rank %d", i, s.Rank)
		}
		if s.Rationale == "" {
			t.Errorf("suggestion %d has empty rationale", i)
		}
	}
}

func TestRankByRulesEmpty(t *testing.T) {
	if got := rankByRules(normalize.Attributes{}, nil); got != nil {
		t.Errorf("expected nil for empty candidates, got %v", got)
	}
}

func TestScoreGenericRationale(t *testing.T) {
	e := catalog.Equipment{ID: 1, Category: normalize.CategoryCamera}
	_, rationale := scoreCandidate(normalize.Attributes{Category: normalize.CategoryCamera}, e)
	if rationale != genericRationale {
		t.Errorf("rationale = %q, want generic label", rationale)
	}
}
