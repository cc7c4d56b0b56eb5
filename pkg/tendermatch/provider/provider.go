// Package provider abstracts the external text-generation endpoints the
// pipeline calls for normalization and ranking.
package provider

import (
	"context"
	"fmt"
	"log"

	"github.com/licitatech/tendermatch/pkg/tendermatch/internalerr"
)

// Provider submits a system instruction plus user content and returns
// the raw text of the model's reply.
type Provider interface {
	Name() string
	Generate(ctx context.Context, system, user string) (string, error)
}

// Chain tries an ordered list of providers. A provider failure is
// recoverable (the next one is tried) unless the context is done;
// an empty chain is fatal before any network call.
type Chain struct {
	providers []Provider
}

// NewChain builds a fallback chain, dropping nil entries.
func NewChain(providers ...Provider) *Chain {
	chain := &Chain{}
	for _, p := range providers {
		if p != nil {
			chain.providers = append(chain.providers, p)
		}
	}
	return chain
}

// Providers exposes the ordered provider list for callers that need to
// validate each provider's output before accepting it.
func (c *Chain) Providers() []Provider {
	if c == nil {
		return nil
	}
	return c.providers
}

// Configured reports whether at least one provider is usable.
func (c *Chain) Configured() bool {
	return c != nil && len(c.providers) > 0
}

// Generate walks the chain in order. It fails with ErrNoProvider when
// the chain is empty and with ErrProvider when every provider failed.
func (c *Chain) Generate(ctx context.Context, system, user string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("provider chain is empty: %w", internalerr.ErrNoProvider)
	}

	var lastErr error
	for _, p := range c.providers {
		out, err := p.Generate(ctx, system, user)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		log.Printf("provider %s failed, trying next: %v", p.Name(), err)
	}
	return "", fmt.Errorf("all providers failed (last: %v): %w", lastErr, internalerr.ErrProvider)
}
