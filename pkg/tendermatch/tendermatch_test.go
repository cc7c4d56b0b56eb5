package tendermatch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/licitatech/tendermatch/pkg/tendermatch/catalog"
	"github.com/licitatech/tendermatch/pkg/tendermatch/catalog/memcatalog"
	"github.com/licitatech/tendermatch/pkg/tendermatch/internalerr"
	"github.com/licitatech/tendermatch/pkg/tendermatch/normalize"
	"github.com/licitatech/tendermatch/pkg/tendermatch/orchestrate"
	"github.com/licitatech/tendermatch/pkg/tendermatch/provider"
)

type fakeProvider struct{}

func (fakeProvider) Name() string { return "fake" }

func (fakeProvider) Generate(ctx context.Context, system, user string) (string, error) {
	if strings.Contains(user, "Candidates:") {
		// force the rule-based ranking path
		return "not json", nil
	}
	if strings.Contains(strings.ToLower(user), "switch") {
		return `{"category":"switch","poe":true,"min_ports":24,"confidence":0.9}`, nil
	}
	return `{"category":"camera","form_factor":"bullet","ptz":false,"confidence":0.85}`, nil
}

func testEngine(t *testing.T) *Engine {
	t.Helper()

	cat := memcatalog.New()
	cat.Add(catalog.Equipment{Code: "CAM-BUL", Name: "Câmera bullet 4MP", Category: normalize.CategoryCamera, FormFactor: "bullet", ResolutionMP: 4, Active: true})
	cat.Add(catalog.Equipment{Code: "CAM-DOME", Name: "Câmera dome 2MP", Category: normalize.CategoryCamera, FormFactor: "dome", ResolutionMP: 2, Active: true})
	cat.Add(catalog.Equipment{Code: "SW-24", Name: "Switch 24p PoE", Category: normalize.CategorySwitch, Ports: 24, PoE: true, Active: true})

	engine, err := New(Options{
		Catalog: cat,
		Chain:   provider.NewChain(fakeProvider{}),
		Timeout: time.Second,
		Pace:    time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}
	return engine
}

const sampleDocument = `EDITAL PREGÃO ELETRÔNICO Nº 42/2024
ÓRGÃO: Prefeitura Municipal

GRUPO I - CAMPUS CENTRO
1 - Câmera IP bullet 4MP 5 un
2 - Switch 24 portas PoE 1 un

GRUPO II - BLOCO B
1 - Câmera dome interna 2MP 3 un
`

func TestProcessDocument(t *testing.T) {
	engine := testEngine(t)

	report, err := engine.ProcessDocument(context.Background(), sampleDocument)
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(report.Groups))
	}
	if report.Metadata.TenderNumber != "42/2024" {
		t.Errorf("tender number = %q", report.Metadata.TenderNumber)
	}

	if report.Run.Errored != 0 {
		t.Fatalf("errored = %d, want 0", report.Run.Errored)
	}
	if report.Run.Processed != 3 {
		t.Errorf("processed = %d, want 3", report.Run.Processed)
	}
	for _, res := range report.Run.Results {
		if res.Status != orchestrate.StatusSuggested {
			t.Errorf("item %s status = %s", res.Key, res.Status)
		}
	}
}

func TestProcessDocumentHTML(t *testing.T) {
	engine := testEngine(t)

	doc := `<html><body>
<h1>GRUPO I - CAMPUS CENTRO</h1>
<p>1 - Câmera IP bullet 4MP 5 un</p>
</body></html>`

	report, err := engine.ProcessDocument(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Groups) != 1 || len(report.Groups[0].Items) != 1 {
		t.Fatalf("unexpected segmentation: %+v", report.Groups)
	}
	if report.Run.Processed != 1 {
		t.Errorf("processed = %d, want 1", report.Run.Processed)
	}
}

func TestProcessDocumentEmptyInput(t *testing.T) {
	engine := testEngine(t)

	_, err := engine.ProcessDocument(context.Background(), "   ")
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestNewRequiresCatalog(t *testing.T) {
	_, err := New(Options{})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestProcessItemsBypassesSegmentation(t *testing.T) {
	engine := testEngine(t)

	report := engine.ProcessItems(context.Background(), []orchestrate.Item{
		{Key: "x1", Description: "switch 24 portas poe"},
	})
	if report.Processed != 1 || report.WithSuggestions != 1 {
		t.Errorf("processed = %d, withSuggestions = %d", report.Processed, report.WithSuggestions)
	}
	principal := report.Results[0].Ranking.Suggestions[0]
	if principal.Equipment.Code != "SW-24" {
		t.Errorf("principal = %s, want SW-24", principal.Equipment.Code)
	}
}
