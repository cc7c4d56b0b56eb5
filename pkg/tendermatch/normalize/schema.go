package normalize

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/licitatech/tendermatch/pkg/tendermatch/internalerr"
	"github.com/licitatech/tendermatch/pkg/tendermatch/jsonx"
)

// Category is the closed taxonomy every normalized item maps into.
type Category string

const (
	CategoryCamera    Category = "camera"
	CategorySwitch    Category = "switch"
	CategoryUPSBackup Category = "upsBackup"
	CategoryServer    Category = "server"
	CategoryRack      Category = "rack"
	CategoryAccessory Category = "accessory"
	CategorySoftware  Category = "software"
	CategoryOther     Category = "other"
)

// DefaultConfidence replaces a missing or unusable confidence value.
const DefaultConfidence = 0.8

var knownCategories = map[Category]struct{}{
	CategoryCamera:    {},
	CategorySwitch:    {},
	CategoryUPSBackup: {},
	CategoryServer:    {},
	CategoryRack:      {},
	CategoryAccessory: {},
	CategorySoftware:  {},
	CategoryOther:     {},
}

// Attributes is the structured form of one item description. Pointer
// fields distinguish "unknown" from an explicit false/zero.
type Attributes struct {
	Category Category `json:"category"`

	Technology string `json:"technology,omitempty"`
	FormFactor string `json:"form_factor,omitempty"`
	LensType   string `json:"lens_type,omitempty"`

	PTZ       *bool `json:"ptz,omitempty"`
	Varifocal *bool `json:"varifocal,omitempty"`
	PoE       *bool `json:"poe,omitempty"`

	MinResolutionMP *float64 `json:"min_resolution_mp,omitempty"`
	MinIRRangeM     *float64 `json:"min_ir_range_m,omitempty"`
	MinPorts        *int     `json:"min_ports,omitempty"`
	MinPowerVA      *float64 `json:"min_power_va,omitempty"`
	MinStorageTB    *float64 `json:"min_storage_tb,omitempty"`
	MinChannels     *int     `json:"min_channels,omitempty"`

	SpeedClass string `json:"speed_class,omitempty"`
	Waveform   string `json:"waveform,omitempty"`
	Notes      string `json:"notes,omitempty"`

	Confidence float64 `json:"confidence"`
}

// wireAttributes mirrors Attributes with the fields a model is allowed
// to get wrong typed loosely, so repairable deviations do not abort the
// whole decode.
type wireAttributes struct {
	Category string `json:"category"`

	Technology string `json:"technology"`
	FormFactor string `json:"form_factor"`
	LensType   string `json:"lens_type"`

	PTZ       *bool `json:"ptz"`
	Varifocal *bool `json:"varifocal"`
	PoE       *bool `json:"poe"`

	MinResolutionMP *float64 `json:"min_resolution_mp"`
	MinIRRangeM     *float64 `json:"min_ir_range_m"`
	MinPorts        *int     `json:"min_ports"`
	MinPowerVA      *float64 `json:"min_power_va"`
	MinStorageTB    *float64 `json:"min_storage_tb"`
	MinChannels     *int     `json:"min_channels"`

	SpeedClass string `json:"speed_class"`
	Waveform   string `json:"waveform"`
	Notes      string `json:"notes"`

	Confidence any `json:"confidence"`
}

// ParseAttributes turns an untrusted model reply into validated
// Attributes: the JSON object is recovered from any prose wrapper, the
// category is coerced into the closed taxonomy and the confidence is
// clamped or defaulted.
func ParseAttributes(reply string) (Attributes, error) {
	obj, err := jsonx.ExtractObject(reply)
	if err != nil {
		return Attributes{}, err
	}

	var wire wireAttributes
	if err := json.Unmarshal([]byte(obj), &wire); err != nil {
		return Attributes{}, fmt.Errorf("normalize: decode reply: %v: %w", err, internalerr.ErrValidation)
	}

	attrs := Attributes{
		Category:        CoerceCategory(wire.Category),
		Technology:      wire.Technology,
		FormFactor:      wire.FormFactor,
		LensType:        wire.LensType,
		PTZ:             wire.PTZ,
		Varifocal:       wire.Varifocal,
		PoE:             wire.PoE,
		MinResolutionMP: wire.MinResolutionMP,
		MinIRRangeM:     wire.MinIRRangeM,
		MinPorts:        wire.MinPorts,
		MinPowerVA:      wire.MinPowerVA,
		MinStorageTB:    wire.MinStorageTB,
		MinChannels:     wire.MinChannels,
		SpeedClass:      wire.SpeedClass,
		Waveform:        wire.Waveform,
		Notes:           wire.Notes,
		Confidence:      coerceConfidence(wire.Confidence),
	}
	return attrs, nil
}

// CoerceCategory maps any string onto the closed taxonomy; unknown
// values become CategoryOther, never pass through.
func CoerceCategory(s string) Category {
	c := Category(s)
	if _, ok := knownCategories[c]; ok {
		return c
	}
	return CategoryOther
}

// coerceConfidence trusts a provider-supplied value when it is a finite
// number, clamped into [0,1]. Anything else gets the fixed default.
func coerceConfidence(v any) float64 {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultConfidence
	}
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
