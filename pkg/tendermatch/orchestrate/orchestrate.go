// Package orchestrate drives normalization, retrieval and ranking
// across the items of a document with bounded concurrency and
// per-item fault isolation.
package orchestrate

import (
	"context"
	"crypto/rand"
	"log"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/licitatech/tendermatch/pkg/tendermatch/match"
	"github.com/licitatech/tendermatch/pkg/tendermatch/normalize"
	"github.com/licitatech/tendermatch/pkg/tendermatch/retrieve"
)

// Item is one unit of work: a raw description plus the context of its
// group. Key identifies the item for result persistence; concurrent
// completions of different keys never touch each other's results.
type Item struct {
	Key         string
	Description string
	Context     string
}

// ItemResult is the full per-item outcome handed to the sink. On a
// re-run the previous attributes and ranking are replaced wholesale.
type ItemResult struct {
	Key        string
	Status     Status
	Attributes normalize.Attributes
	Ranking    match.Ranking
	Err        error
}

// Report aggregates one batch run so a reviewer can triage without
// re-running: items that got suggestions, items that legitimately got
// none, and items that failed with their reasons.
type Report struct {
	RunID              string
	Processed          int
	Errored            int
	WithSuggestions    int
	WithoutSuggestions int
	Results            []ItemResult
}

// Sink receives each item's result. Persistence is external to the
// pipeline; implementations must key storage by ItemResult.Key.
type Sink interface {
	SaveResult(ctx context.Context, res ItemResult) error
}

// NopSink discards results.
type NopSink struct{}

// SaveResult implements Sink.
func (NopSink) SaveResult(ctx context.Context, res ItemResult) error { return nil }

// Config tunes the orchestrator pool, sized independently of the
// normalizer's own batch settings.
type Config struct {
	Workers int
	Pace    time.Duration
	Sink    Sink
}

// Orchestrator runs the item pipeline stages in strict order per item,
// with no ordering guarantees across items.
type Orchestrator struct {
	normalizer *normalize.Normalizer
	retriever  *retrieve.Retriever
	matcher    *match.Matcher
	sink       Sink
	workers    int
	pace       time.Duration

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewOrchestrator wires the three pipeline stages.
func NewOrchestrator(n *normalize.Normalizer, r *retrieve.Retriever, m *match.Matcher, cfg Config) *Orchestrator {
	if cfg.Workers <= 0 {
		cfg.Workers = 3
	}
	if cfg.Pace <= 0 {
		cfg.Pace = 500 * time.Millisecond
	}
	if cfg.Sink == nil {
		cfg.Sink = NopSink{}
	}
	return &Orchestrator{
		normalizer: n,
		retriever:  r,
		matcher:    m,
		sink:       cfg.Sink,
		workers:    cfg.Workers,
		pace:       cfg.Pace,
		entropy:    ulid.Monotonic(rand.Reader, 0),
	}
}

// Run processes every item. One item's unrecoverable failure marks
// only that item errored and never aborts or blocks siblings. Once
// cancellation is observed no new work is launched; in-flight calls
// run to completion or timeout.
func (o *Orchestrator) Run(ctx context.Context, items []Item) Report {
	report := Report{
		RunID:   o.newRunID(),
		Results: make([]ItemResult, len(items)),
	}
	if len(items) == 0 {
		return report
	}

	limiter := rate.NewLimiter(rate.Every(o.pace), o.workers)
	sem := make(chan struct{}, o.workers)
	var wg sync.WaitGroup

	for i, item := range items {
		if err := limiter.Wait(ctx); err != nil {
			for j := i; j < len(items); j++ {
				report.Results[j] = ItemResult{Key: items[j].Key, Status: StatusError, Err: err}
			}
			break
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(slot int, it Item) {
			defer wg.Done()
			defer func() { <-sem }()

			res := o.processItem(ctx, it)
			if err := o.sink.SaveResult(ctx, res); err != nil {
				log.Printf("orchestrate: save result for %s: %v", it.Key, err)
				res.Status = StatusError
				res.Err = err
			}
			report.Results[slot] = res
		}(i, item)
	}

	wg.Wait()

	for _, res := range report.Results {
		switch {
		case res.Status == StatusError:
			report.Errored++
		case len(res.Ranking.Suggestions) > 0:
			report.Processed++
			report.WithSuggestions++
		default:
			report.Processed++
			report.WithoutSuggestions++
		}
	}
	return report
}

// processItem runs the strict per-item sequence: normalize, then
// retrieve, then rank.
func (o *Orchestrator) processItem(ctx context.Context, it Item) ItemResult {
	res := ItemResult{Key: it.Key, Status: StatusPending}

	attrs, err := o.normalizer.Normalize(ctx, it.Description, it.Context)
	if err != nil {
		res.Status = StatusError
		res.Err = err
		return res
	}
	res.Attributes = attrs
	res.Status = StatusNormalized

	candidates, err := o.retriever.Retrieve(ctx, attrs)
	if err != nil {
		res.Status = StatusError
		res.Err = err
		return res
	}

	// ranking is total: zero candidates yield an empty suggestion set
	res.Ranking = o.matcher.Match(ctx, attrs, it.Description, candidates)
	res.Status = StatusSuggested
	return res
}

func (o *Orchestrator) newRunID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return ulid.MustNew(ulid.Now(), o.entropy).String()
}
