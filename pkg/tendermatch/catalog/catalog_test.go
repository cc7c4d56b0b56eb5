package catalog

import (
	"testing"

	"github.com/licitatech/tendermatch/pkg/tendermatch/normalize"
)

func boolPtr(b bool) *bool       { return &b }
func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

func TestQueryMatches(t *testing.T) {
	cam := Equipment{
		Category:     normalize.CategoryCamera,
		FormFactor:   "bullet",
		PTZ:          false,
		PoE:          true,
		ResolutionMP: 4,
		Active:       true,
	}

	cases := []struct {
		name string
		q    Query
		want bool
	}{
		{"category only", Query{Category: normalize.CategoryCamera}, true},
		{"wrong category", Query{Category: normalize.CategorySwitch}, false},
		{"form factor equal", Query{Category: normalize.CategoryCamera, FormFactor: "bullet"}, true},
		{"form factor differs", Query{Category: normalize.CategoryCamera, FormFactor: "dome"}, false},
		{"ptz equality", Query{Category: normalize.CategoryCamera, PTZ: boolPtr(true)}, false},
		{"poe equality", Query{Category: normalize.CategoryCamera, PoE: boolPtr(true)}, true},
		{"resolution met", Query{Category: normalize.CategoryCamera, MinResolutionMP: floatPtr(2)}, true},
		{"resolution not met", Query{Category: normalize.CategoryCamera, MinResolutionMP: floatPtr(8)}, false},
		{"active only passes", Query{Category: normalize.CategoryCamera, ActiveOnly: true}, true},
	}

	for _, c := range cases {
		if got := c.q.Matches(cam); got != c.want {
			t.Errorf("%s: Matches = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestQueryMatchesRetired(t *testing.T) {
	retired := Equipment{Category: normalize.CategoryCamera, Active: false}
	q := Query{Category: normalize.CategoryCamera, ActiveOnly: true}
	if q.Matches(retired) {
		t.Error("retired equipment must not match an active-only query")
	}
}

func TestQueryMatchesNumericFilters(t *testing.T) {
	sw := Equipment{Category: normalize.CategorySwitch, Ports: 24, Active: true}
	if !(Query{Category: normalize.CategorySwitch, MinPorts: intPtr(24)}).Matches(sw) {
		t.Error("24 ports should satisfy min 24")
	}
	if (Query{Category: normalize.CategorySwitch, MinPorts: intPtr(48)}).Matches(sw) {
		t.Error("24 ports should not satisfy min 48")
	}

	ups := Equipment{Category: normalize.CategoryUPSBackup, PowerVA: 1500, Active: true}
	if !(Query{Category: normalize.CategoryUPSBackup, MinPowerVA: floatPtr(1200)}).Matches(ups) {
		t.Error("1500VA should satisfy min 1200VA")
	}
}
