package htmltext

import (
	"strings"
	"testing"
)

func TestExtractBlocksToLines(t *testing.T) {
	in := `<html><body>
<h1>GRUPO I – CAMPUS A</h1>
<p>1 - Câmera IP bullet 4MP 5 un</p>
<p>2 - Switch 24 portas PoE</p>
</body></html>`

	out := Extract(in)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	if lines[0] != "GRUPO I – CAMPUS A" {
		t.Errorf("line 1 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Câmera IP bullet") {
		t.Errorf("line 2 = %q", lines[1])
	}
}

func TestExtractDropsScriptAndStyle(t *testing.T) {
	in := `<html><head><style>body { color: red }</style></head><body>
<script>var tracking = true;</script>
<p>1 - Nobreak 1200VA</p>
</body></html>`

	out := Extract(in)
	if strings.Contains(out, "tracking") || strings.Contains(out, "color") {
		t.Errorf("script/style content leaked into %q", out)
	}
	if !strings.Contains(out, "Nobreak 1200VA") {
		t.Errorf("visible text missing from %q", out)
	}
}

func TestExtractPlainTextPassthrough(t *testing.T) {
	in := "1 - Câmera dome"
	if out := Extract(in); !strings.Contains(out, "Câmera dome") {
		t.Errorf("plain text mangled: %q", out)
	}
}

func TestIsHTML(t *testing.T) {
	if !IsHTML("<!DOCTYPE html><html><body>x</body></html>") {
		t.Error("doctype document should be detected")
	}
	if !IsHTML("<html lang=\"pt-BR\">...") {
		t.Error("html tag should be detected")
	}
	if IsHTML("GRUPO I - CAMPUS A\n1 - Câmera") {
		t.Error("plain text misdetected as HTML")
	}
}
