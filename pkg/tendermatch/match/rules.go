package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/licitatech/tendermatch/pkg/tendermatch/catalog"
	"github.com/licitatech/tendermatch/pkg/tendermatch/normalize"
)

// Deterministic scoring increments. The total is capped at 1.0.
const (
	baseScore       = 0.50
	bonusCategory   = 0.10
	bonusFormFactor = 0.10
	bonusTechnology = 0.05
	bonusPTZ        = 0.15
	bonusResolution = 0.10
	bonusIRRange    = 0.10
	bonusPoE        = 0.10
	bonusPorts      = 0.10
	bonusPower      = 0.10
)

// genericRationale labels a candidate that matched nothing beyond its
// category.
const genericRationale = "equipamento compatível"

// rankByRules is the deterministic safety net: it scores every
// candidate against the requirement, sorts descending and keeps the
// top three, marking rank 1 as principal. It is total over any
// non-empty candidate list.
func rankByRules(attrs normalize.Attributes, candidates []catalog.Equipment) []Suggestion {
	if len(candidates) == 0 {
		return nil
	}

	suggestions := make([]Suggestion, 0, len(candidates))
	for _, e := range candidates {
		score, rationale := scoreCandidate(attrs, e)
		suggestions = append(suggestions, Suggestion{
			Equipment: e,
			Score:     score,
			Rationale: rationale,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Equipment.ID < suggestions[j].Equipment.ID
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	for i := range suggestions {
		suggestions[i].Rank = i + 1
		suggestions[i].IsPrincipal = i == 0
	}
	return suggestions
}

// scoreCandidate accumulates fixed bonuses for every satisfied
// criterion and a human-readable rationale naming them.
func scoreCandidate(attrs normalize.Attributes, e catalog.Equipment) (float64, string) {
	score := baseScore
	var reasons []string

	if attrs.Category != "" && e.Category == attrs.Category {
		score += bonusCategory
		reasons = append(reasons, "mesma categoria")
	}
	if attrs.FormFactor != "" && strings.EqualFold(e.FormFactor, attrs.FormFactor) {
		score += bonusFormFactor
		reasons = append(reasons, "formato "+e.FormFactor)
	}
	if attrs.Technology != "" && e.Technology != "" &&
		strings.Contains(strings.ToLower(e.Technology), strings.ToLower(attrs.Technology)) {
		score += bonusTechnology
		reasons = append(reasons, "tecnologia "+e.Technology)
	}

	if attrs.PTZ != nil && e.PTZ == *attrs.PTZ {
		score += bonusPTZ
		if *attrs.PTZ {
			reasons = append(reasons, "PTZ")
		}
	}
	if attrs.MinResolutionMP != nil && e.ResolutionMP >= *attrs.MinResolutionMP {
		score += bonusResolution
		reasons = append(reasons, fmt.Sprintf("resolução %.0fMP atende o mínimo", e.ResolutionMP))
	}
	if attrs.MinIRRangeM != nil && e.IRRangeM >= *attrs.MinIRRangeM {
		score += bonusIRRange
		reasons = append(reasons, fmt.Sprintf("IR de %.0fm atende o mínimo", e.IRRangeM))
	}
	if attrs.PoE != nil && e.PoE == *attrs.PoE {
		score += bonusPoE
		if *attrs.PoE {
			reasons = append(reasons, "PoE")
		}
	}
	if attrs.MinPorts != nil && e.Ports >= *attrs.MinPorts {
		score += bonusPorts
		reasons = append(reasons, fmt.Sprintf("%d portas atende o mínimo", e.Ports))
	}
	if attrs.MinPowerVA != nil && e.PowerVA >= *attrs.MinPowerVA {
		score += bonusPower
		reasons = append(reasons, fmt.Sprintf("%.0fVA atende o mínimo", e.PowerVA))
	}

	if score > 1.0 {
		score = 1.0
	}
	if len(reasons) == 0 || (len(reasons) == 1 && reasons[0] == "mesma categoria") {
		return score, genericRationale
	}
	return score, strings.Join(reasons, ", ")
}
