package match

import (
	"fmt"
	"strings"

	"github.com/licitatech/tendermatch/pkg/tendermatch/catalog"
	"github.com/licitatech/tendermatch/pkg/tendermatch/normalize"
)

const rankingInstruction = `You rank equipment catalog candidates against a procurement requirement.

Score each candidate's adherence to the requirement between 0 and 1 and pick the best match as principal plus up to two alternatives.

Respond with exactly one JSON object and no other text:
{"principal": {"equipment_id": <id>, "score": <0..1>, "rationale": "<short reason>"}, "alternatives": [{"equipment_id": <id>, "score": <0..1>, "rationale": "<short reason>"}]}

Use only equipment_id values listed among the candidates.`

// buildRankingContent renders the requirement (structured attributes
// plus the raw description, which may carry nuance normalization
// dropped) and every candidate's specification fields.
func buildRankingContent(attrs normalize.Attributes, rawDescription string, candidates []catalog.Equipment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Requirement (category %s):\n", attrs.Category)
	writeAttr(&b, "technology", attrs.Technology)
	writeAttr(&b, "form_factor", attrs.FormFactor)
	writeAttr(&b, "lens_type", attrs.LensType)
	writeBoolAttr(&b, "ptz", attrs.PTZ)
	writeBoolAttr(&b, "varifocal", attrs.Varifocal)
	writeBoolAttr(&b, "poe", attrs.PoE)
	writeFloatAttr(&b, "min_resolution_mp", attrs.MinResolutionMP)
	writeFloatAttr(&b, "min_ir_range_m", attrs.MinIRRangeM)
	writeIntAttr(&b, "min_ports", attrs.MinPorts)
	writeFloatAttr(&b, "min_power_va", attrs.MinPowerVA)
	writeFloatAttr(&b, "min_storage_tb", attrs.MinStorageTB)
	writeIntAttr(&b, "min_channels", attrs.MinChannels)
	writeAttr(&b, "speed_class", attrs.SpeedClass)
	writeAttr(&b, "waveform", attrs.Waveform)

	fmt.Fprintf(&b, "\nOriginal description:\n%s\n", rawDescription)

	fmt.Fprintf(&b, "\nCandidates:\n")
	for _, e := range candidates {
		fmt.Fprintf(&b, "- equipment_id=%d code=%s name=%q category=%s", e.ID, e.Code, e.Name, e.Category)
		if e.Technology != "" {
			fmt.Fprintf(&b, " technology=%s", e.Technology)
		}
		if e.FormFactor != "" {
			fmt.Fprintf(&b, " form_factor=%q", e.FormFactor)
		}
		if e.LensType != "" {
			fmt.Fprintf(&b, " lens_type=%s", e.LensType)
		}
		fmt.Fprintf(&b, " ptz=%t poe=%t", e.PTZ, e.PoE)
		if e.ResolutionMP > 0 {
			fmt.Fprintf(&b, " resolution_mp=%g", e.ResolutionMP)
		}
		if e.IRRangeM > 0 {
			fmt.Fprintf(&b, " ir_range_m=%g", e.IRRangeM)
		}
		if e.Ports > 0 {
			fmt.Fprintf(&b, " ports=%d", e.Ports)
		}
		if e.PowerVA > 0 {
			fmt.Fprintf(&b, " power_va=%g", e.PowerVA)
		}
		if e.StorageTB > 0 {
			fmt.Fprintf(&b, " storage_tb=%g", e.StorageTB)
		}
		if e.Channels > 0 {
			fmt.Fprintf(&b, " channels=%d", e.Channels)
		}
		if e.SpeedClass != "" {
			fmt.Fprintf(&b, " speed_class=%s", e.SpeedClass)
		}
		if e.Waveform != "" {
			fmt.Fprintf(&b, " waveform=%s", e.Waveform)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func writeAttr(b *strings.Builder, name, val string) {
	if val != "" {
		fmt.Fprintf(b, "  %s: %s\n", name, val)
	}
}

func writeBoolAttr(b *strings.Builder, name string, val *bool) {
	if val != nil {
		fmt.Fprintf(b, "  %s: %t\n", name, *val)
	}
}

func writeFloatAttr(b *strings.Builder, name string, val *float64) {
	if val != nil {
		fmt.Fprintf(b, "  %s: %g\n", name, *val)
	}
}

func writeIntAttr(b *strings.Builder, name string, val *int) {
	if val != nil {
		fmt.Fprintf(b, "  %s: %d\n", name, *val)
	}
}
