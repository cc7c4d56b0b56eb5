// Package match ranks catalog candidates against a normalized
// requirement, via a text-generation provider when one is available
// and a deterministic rule scorer otherwise.
package match

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/licitatech/tendermatch/pkg/tendermatch/catalog"
	"github.com/licitatech/tendermatch/pkg/tendermatch/jsonx"
	"github.com/licitatech/tendermatch/pkg/tendermatch/normalize"
	"github.com/licitatech/tendermatch/pkg/tendermatch/provider"
)

// maxSuggestions is one principal plus up to two alternatives.
const maxSuggestions = 3

// Suggestion references one catalog record with its adherence score,
// rationale and rank. Exactly one suggestion of a non-empty ranking is
// principal.
type Suggestion struct {
	Equipment   catalog.Equipment
	Score       float64
	Rationale   string
	IsPrincipal bool
	Rank        int
}

// Ranking is one regenerated suggestion set.
type Ranking struct {
	ID          string
	Suggestions []Suggestion
	// FromRules reports that the deterministic scorer produced the
	// set (no provider configured, or the provider path failed).
	FromRules bool
}

// Matcher produces rankings.
type Matcher struct {
	chain   *provider.Chain
	timeout time.Duration

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewMatcher creates a matcher over the given provider chain. The
// chain may be empty; every ranking then comes from the rule scorer.
func NewMatcher(chain *provider.Chain, timeout time.Duration) *Matcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Matcher{
		chain:   chain,
		timeout: timeout,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Match ranks candidates against the requirement. It is total over any
// candidate list: an empty list yields an empty ranking and every
// provider-path failure falls back to the rule scorer, never an error.
func (m *Matcher) Match(ctx context.Context, attrs normalize.Attributes, rawDescription string, candidates []catalog.Equipment) Ranking {
	if len(candidates) == 0 {
		return Ranking{ID: m.newID()}
	}

	if m.chain.Configured() {
		suggestions, err := m.rankByProvider(ctx, attrs, rawDescription, candidates)
		if err == nil {
			return Ranking{ID: m.newID(), Suggestions: suggestions}
		}
		log.Printf("match: provider ranking failed, using rules: %v", err)
	}

	return Ranking{
		ID:          m.newID(),
		Suggestions: rankByRules(attrs, candidates),
		FromRules:   true,
	}
}

// wireRanking is the untrusted shape a ranking provider returns.
type wireRanking struct {
	Principal    *wireEntry  `json:"principal"`
	Alternatives []wireEntry `json:"alternatives"`
}

type wireEntry struct {
	EquipmentID int64   `json:"equipment_id"`
	Score       float64 `json:"score"`
	Rationale   string  `json:"rationale"`
}

func (m *Matcher) rankByProvider(ctx context.Context, attrs normalize.Attributes, rawDescription string, candidates []catalog.Equipment) ([]Suggestion, error) {
	callCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	reply, err := m.chain.Generate(callCtx, rankingInstruction, buildRankingContent(attrs, rawDescription, candidates))
	if err != nil {
		return nil, err
	}

	obj, err := jsonx.ExtractObject(reply)
	if err != nil {
		return nil, err
	}
	var wire wireRanking
	if err := json.Unmarshal([]byte(obj), &wire); err != nil {
		return nil, fmt.Errorf("match: decode ranking: %v", err)
	}
	if wire.Principal == nil {
		return nil, fmt.Errorf("match: ranking has no principal")
	}

	// Returned identifiers are never trusted blindly: anything not in
	// the actual candidate set is discarded.
	byID := make(map[int64]catalog.Equipment, len(candidates))
	for _, e := range candidates {
		byID[e.ID] = e
	}

	principal, ok := byID[wire.Principal.EquipmentID]
	if !ok {
		return nil, fmt.Errorf("match: principal id %d is not a candidate", wire.Principal.EquipmentID)
	}

	suggestions := []Suggestion{{
		Equipment:   principal,
		Score:       clampScore(wire.Principal.Score),
		Rationale:   defaultRationale(wire.Principal.Rationale),
		IsPrincipal: true,
		Rank:        1,
	}}
	seen := map[int64]struct{}{principal.ID: {}}

	for _, alt := range wire.Alternatives {
		if len(suggestions) == maxSuggestions {
			break
		}
		e, ok := byID[alt.EquipmentID]
		if !ok {
			log.Printf("match: discarding unknown equipment id %d from provider ranking", alt.EquipmentID)
			continue
		}
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		suggestions = append(suggestions, Suggestion{
			Equipment: e,
			Score:     clampScore(alt.Score),
			Rationale: defaultRationale(alt.Rationale),
			Rank:      len(suggestions) + 1,
		})
	}
	return suggestions, nil
}

func (m *Matcher) newID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ulid.MustNew(ulid.Now(), m.entropy).String()
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

func defaultRationale(r string) string {
	if r == "" {
		return genericRationale
	}
	return r
}
