// Package tendermatch is the public facade over the tender pipeline:
// segment a procurement document, normalize its items, retrieve
// catalog candidates and rank suggestions per item.
package tendermatch

import (
	"context"
	"fmt"
	"time"

	"github.com/licitatech/tendermatch/pkg/tendermatch/catalog"
	"github.com/licitatech/tendermatch/pkg/tendermatch/htmltext"
	"github.com/licitatech/tendermatch/pkg/tendermatch/internalerr"
	"github.com/licitatech/tendermatch/pkg/tendermatch/match"
	"github.com/licitatech/tendermatch/pkg/tendermatch/normalize"
	"github.com/licitatech/tendermatch/pkg/tendermatch/orchestrate"
	"github.com/licitatech/tendermatch/pkg/tendermatch/provider"
	"github.com/licitatech/tendermatch/pkg/tendermatch/retrieve"
	"github.com/licitatech/tendermatch/pkg/tendermatch/segment"
)

// Options configures an Engine instance.
type Options struct {
	Catalog catalog.Catalog
	Chain   *provider.Chain

	// Timeout bounds each provider call. Zero means 30 seconds.
	Timeout time.Duration
	// Workers bounds concurrent items; NormalizeWorkers bounds the
	// normalizer's own pool. Zero means 3 for both.
	Workers          int
	NormalizeWorkers int
	// Pace spaces out launch windows. Zero means 500ms.
	Pace time.Duration
	// RetrievalLimit caps candidates per item. Zero means 10.
	RetrievalLimit int
	// Sink receives per-item results; nil discards them.
	Sink orchestrate.Sink
}

// Engine is the main pipeline facade.
type Engine struct {
	segmenter    *segment.Segmenter
	orchestrator *orchestrate.Orchestrator
}

// New wires the pipeline stages from the given dependencies.
func New(opts Options) (*Engine, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("%w: catalog is required", internalerr.ErrInvalidInput)
	}
	chain := opts.Chain
	if chain == nil {
		chain = provider.NewChain()
	}

	normalizer := normalize.NewNormalizer(chain, normalize.Config{
		Timeout: opts.Timeout,
		Workers: opts.NormalizeWorkers,
		Pace:    opts.Pace,
	})
	retriever := retrieve.NewRetriever(opts.Catalog, opts.RetrievalLimit)
	matcher := match.NewMatcher(chain, opts.Timeout)
	orchestrator := orchestrate.NewOrchestrator(normalizer, retriever, matcher, orchestrate.Config{
		Workers: opts.Workers,
		Pace:    opts.Pace,
		Sink:    opts.Sink,
	})

	return &Engine{
		segmenter:    segment.NewSegmenter(),
		orchestrator: orchestrator,
	}, nil
}

// DocumentReport is the outcome of processing one tender document.
type DocumentReport struct {
	Metadata segment.Metadata
	Groups   []segment.Group
	Run      orchestrate.Report
}

// ProcessDocument runs the full pipeline over a tender document given
// as plain text or HTML. Segmentation failures abort the whole call;
// per-item failures downstream are isolated inside the run report.
func (e *Engine) ProcessDocument(ctx context.Context, document string) (DocumentReport, error) {
	text := document
	if htmltext.IsHTML(text) {
		text = htmltext.Extract(text)
	}

	groups, err := e.segmenter.Segment(text)
	if err != nil {
		return DocumentReport{}, err
	}

	report := DocumentReport{
		Metadata: segment.DetectMetadata(text),
		Groups:   groups,
	}

	var items []orchestrate.Item
	for _, g := range groups {
		context_ := g.Name
		if g.Location != "" {
			context_ = g.Name + " - " + g.Location
		}
		for _, it := range g.Items {
			items = append(items, orchestrate.Item{
				Key:         fmt.Sprintf("g%d-i%d", g.Number, it.Number),
				Description: it.Description,
				Context:     context_,
			})
		}
	}

	report.Run = e.orchestrator.Run(ctx, items)
	return report, nil
}

// ProcessItems runs normalization, retrieval and ranking over
// already-segmented items, bypassing document parsing.
func (e *Engine) ProcessItems(ctx context.Context, items []orchestrate.Item) orchestrate.Report {
	return e.orchestrator.Run(ctx, items)
}
