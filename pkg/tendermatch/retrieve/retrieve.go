// Package retrieve turns normalized attributes into a bounded list of
// catalog candidates.
package retrieve

import (
	"context"

	"github.com/licitatech/tendermatch/pkg/tendermatch/catalog"
	"github.com/licitatech/tendermatch/pkg/tendermatch/normalize"
)

// DefaultLimit caps the candidate list when no limit is configured.
const DefaultLimit = 10

// Retriever queries the catalog for candidates matching a requirement.
type Retriever struct {
	catalog catalog.Catalog
	limit   int
}

// NewRetriever creates a retriever over the given catalog.
func NewRetriever(cat catalog.Catalog, limit int) *Retriever {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Retriever{catalog: cat, limit: limit}
}

// Retrieve runs a two-tier lookup: first with every meaningful
// category-specific hint, then with the category alone when the first
// query returns nothing. Only active records are considered, and an
// empty result is a valid outcome, never an error.
func (r *Retriever) Retrieve(ctx context.Context, attrs normalize.Attributes) ([]catalog.Equipment, error) {
	filtered := buildQuery(attrs, r.limit)
	out, err := r.catalog.Find(ctx, filtered)
	if err != nil {
		return nil, err
	}
	if len(out) > 0 {
		return out, nil
	}

	broad := catalog.Query{
		Category:   attrs.Category,
		ActiveOnly: true,
		Limit:      r.limit,
	}
	return r.catalog.Find(ctx, broad)
}

// buildQuery maps the attributes' present hints onto catalog filters.
func buildQuery(attrs normalize.Attributes, limit int) catalog.Query {
	q := catalog.Query{
		Category:   attrs.Category,
		ActiveOnly: true,
		Limit:      limit,
	}
	if attrs.FormFactor != "" {
		q.FormFactor = attrs.FormFactor
	}
	if attrs.PTZ != nil {
		q.PTZ = attrs.PTZ
	}
	if attrs.PoE != nil {
		q.PoE = attrs.PoE
	}
	if attrs.MinResolutionMP != nil {
		q.MinResolutionMP = attrs.MinResolutionMP
	}
	if attrs.MinPorts != nil {
		q.MinPorts = attrs.MinPorts
	}
	if attrs.MinPowerVA != nil {
		q.MinPowerVA = attrs.MinPowerVA
	}
	return q
}
