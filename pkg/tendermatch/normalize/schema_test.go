package normalize

import (
	"errors"
	"testing"

	"github.com/licitatech/tendermatch/pkg/tendermatch/internalerr"
)

func TestParseAttributesCamera(t *testing.T) {
	reply := `{"category":"camera","technology":"IP","form_factor":"bullet","ptz":false,"varifocal":true,"min_resolution_mp":4,"poe":true,"min_ir_range_m":30,"confidence":0.92}`

	attrs, err := ParseAttributes(reply)
	if err != nil {
		t.Fatalf("ParseAttributes: %v", err)
	}
	if attrs.Category != CategoryCamera {
		t.Errorf("category = %q, want camera", attrs.Category)
	}
	if attrs.PTZ == nil || *attrs.PTZ {
		t.Error("ptz should be explicit false")
	}
	if attrs.Varifocal == nil || !*attrs.Varifocal {
		t.Error("varifocal should be true")
	}
	if attrs.MinResolutionMP == nil || *attrs.MinResolutionMP != 4 {
		t.Error("min_resolution_mp should be 4")
	}
	if attrs.Confidence != 0.92 {
		t.Errorf("confidence = %v, want 0.92", attrs.Confidence)
	}
}

func TestParseAttributesProseWrapper(t *testing.T) {
	reply := "Sure! Here is the extraction:\n{\"category\":\"switch\",\"poe\":true,\"min_ports\":24,\"confidence\":0.7}\nHope this helps."
	attrs, err := ParseAttributes(reply)
	if err != nil {
		t.Fatalf("ParseAttributes: %v", err)
	}
	if attrs.Category != CategorySwitch {
		t.Errorf("category = %q, want switch", attrs.Category)
	}
	if attrs.MinPorts == nil || *attrs.MinPorts != 24 {
		t.Error("min_ports should be 24")
	}
}

func TestParseAttributesUnknownCategory(t *testing.T) {
	for _, cat := range []string{"CAMERA", "cameras", "notebook", "", "câmera"} {
		attrs, err := ParseAttributes(`{"category":"` + cat + `","confidence":0.5}`)
		if err != nil {
			t.Fatalf("ParseAttributes(%q): %v", cat, err)
		}
		if attrs.Category != CategoryOther {
			t.Errorf("category %q coerced to %q, want other", cat, attrs.Category)
		}
	}
}

func TestParseAttributesUnknownIsAbsent(t *testing.T) {
	attrs, err := ParseAttributes(`{"category":"camera","confidence":0.9}`)
	if err != nil {
		t.Fatalf("ParseAttributes: %v", err)
	}
	if attrs.PTZ != nil || attrs.PoE != nil || attrs.MinResolutionMP != nil {
		t.Error("absent fields must stay nil, never false/zero")
	}
}

func TestParseAttributesNoJSON(t *testing.T) {
	_, err := ParseAttributes("I could not process this item.")
	if !errors.Is(err, internalerr.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestCoerceConfidence(t *testing.T) {
	cases := []struct {
		reply string
		want  float64
	}{
		{`{"category":"camera","confidence":0.35}`, 0.35},
		{`{"category":"camera","confidence":1.7}`, 1},
		{`{"category":"camera","confidence":-0.2}`, 0},
		{`{"category":"camera","confidence":"high"}`, DefaultConfidence},
		{`{"category":"camera"}`, DefaultConfidence},
		{`{"category":"camera","confidence":null}`, DefaultConfidence},
	}

	for _, c := range cases {
		attrs, err := ParseAttributes(c.reply)
		if err != nil {
			t.Fatalf("ParseAttributes(%s): %v", c.reply, err)
		}
		if attrs.Confidence != c.want {
			t.Errorf("confidence for %s = %v, want %v", c.reply, attrs.Confidence, c.want)
		}
	}
}

func TestCoerceCategoryClosedEnum(t *testing.T) {
	known := []Category{
		CategoryCamera, CategorySwitch, CategoryUPSBackup, CategoryServer,
		CategoryRack, CategoryAccessory, CategorySoftware, CategoryOther,
	}
	for _, c := range known {
		if got := CoerceCategory(string(c)); got != c {
			t.Errorf("CoerceCategory(%q) = %q", c, got)
		}
	}
}
