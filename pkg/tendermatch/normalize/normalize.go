// Package normalize converts raw item descriptions into structured,
// validated attribute records via a text-generation provider chain.
package normalize

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/licitatech/tendermatch/pkg/tendermatch/internalerr"
	"github.com/licitatech/tendermatch/pkg/tendermatch/provider"
)

// Config tunes the normalizer. Zero values fall back to defaults.
type Config struct {
	// Timeout bounds each provider call.
	Timeout time.Duration
	// Workers is the batch concurrency width.
	Workers int
	// Pace is the delay between successive concurrency windows.
	Pace time.Duration
}

const (
	defaultTimeout = 30 * time.Second
	defaultWorkers = 3
	defaultPace    = 500 * time.Millisecond
)

// Normalizer turns one raw description into Attributes.
type Normalizer struct {
	chain   *provider.Chain
	timeout time.Duration
	workers int
	pace    time.Duration
}

// NewNormalizer creates a normalizer over the given provider chain.
func NewNormalizer(chain *provider.Chain, cfg Config) *Normalizer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.Pace <= 0 {
		cfg.Pace = defaultPace
	}
	return &Normalizer{
		chain:   chain,
		timeout: cfg.Timeout,
		workers: cfg.Workers,
		pace:    cfg.Pace,
	}
}

// Normalize submits one description (plus optional group context) to
// the provider chain and validates the reply. Each provider gets its
// own attempt: an unparseable reply from the primary falls through to
// the secondary, the same as a transport failure. With no provider
// configured it fails before any network call.
func (n *Normalizer) Normalize(ctx context.Context, description, context_ string) (Attributes, error) {
	if !n.chain.Configured() {
		return Attributes{}, fmt.Errorf("normalize: %w", internalerr.ErrNoProvider)
	}

	user := buildUserContent(description, context_)

	var lastErr error
	for _, p := range n.chain.Providers() {
		attrs, err := n.tryProvider(ctx, p, user)
		if err == nil {
			return attrs, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		log.Printf("normalize: provider %s failed, trying next: %v", p.Name(), err)
	}
	return Attributes{}, fmt.Errorf("normalize: all providers failed (last: %v): %w", lastErr, internalerr.ErrProvider)
}

func (n *Normalizer) tryProvider(ctx context.Context, p provider.Provider, user string) (Attributes, error) {
	callCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	reply, err := p.Generate(callCtx, systemInstruction, user)
	if err != nil {
		return Attributes{}, err
	}
	return ParseAttributes(reply)
}
