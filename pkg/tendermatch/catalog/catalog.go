// Package catalog defines the read-only equipment catalog interface
// the pipeline retrieves candidates from.
package catalog

import (
	"context"

	"github.com/licitatech/tendermatch/pkg/tendermatch/normalize"
)

// Equipment is one sellable/installable catalog record. Fields that do
// not apply to the record's category stay at their zero value.
type Equipment struct {
	ID   int64
	Code string
	Name string

	Category   normalize.Category
	Technology string
	FormFactor string
	LensType   string

	PTZ       bool
	Varifocal bool
	PoE       bool

	ResolutionMP float64
	IRRangeM     float64
	Ports        int
	PowerVA      float64
	StorageTB    float64
	Channels     int

	SpeedClass string
	Waveform   string

	Price  float64
	Active bool
}

// Query filters a catalog lookup. Pointer fields are applied only when
// set: equality for FormFactor/PTZ/PoE, greater-or-equal for the
// numeric minimums.
type Query struct {
	Category normalize.Category

	FormFactor      string
	PTZ             *bool
	PoE             *bool
	MinResolutionMP *float64
	MinPorts        *int
	MinPowerVA      *float64

	ActiveOnly bool
	Limit      int
}

// Catalog is the read-only query interface the retriever depends on.
type Catalog interface {
	Find(ctx context.Context, q Query) ([]Equipment, error)
}

// Matches applies the query's filters to one record. The sqlite store
// pushes these into SQL; the in-memory store and tests use this
// directly, so the two implementations cannot drift apart.
func (q Query) Matches(e Equipment) bool {
	if q.ActiveOnly && !e.Active {
		return false
	}
	if q.Category != "" && e.Category != q.Category {
		return false
	}
	if q.FormFactor != "" && e.FormFactor != q.FormFactor {
		return false
	}
	if q.PTZ != nil && e.PTZ != *q.PTZ {
		return false
	}
	if q.PoE != nil && e.PoE != *q.PoE {
		return false
	}
	if q.MinResolutionMP != nil && e.ResolutionMP < *q.MinResolutionMP {
		return false
	}
	if q.MinPorts != nil && e.Ports < *q.MinPorts {
		return false
	}
	if q.MinPowerVA != nil && e.PowerVA < *q.MinPowerVA {
		return false
	}
	return true
}
