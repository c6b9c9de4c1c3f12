// Package decompose splits an aggregate gap across the non-labor components
// of value added: depreciation, taxes on production and net profit.
package decompose

import (
	"github.com/okian/fairwage/internal/domain/model"
	"github.com/okian/fairwage/internal/domain/reference"
)

// CompensationGuard is the labor share at or above which no decomposition is
// attempted.
const CompensationGuard = 0.99

// Shares allocates gap using a value-added composition. Each non-labor
// component is renormalized by (1 - compensation) so the three percentages
// sum to 100.
func Shares(gap float64, s reference.ValueAddedShares) model.GapDecomposition {
	nonLabor := 1 - s.Compensation
	if s.Compensation >= CompensationGuard {
		return model.GapDecomposition{}
	}
	part := func(share float64) model.Share {
		f := share / nonLabor
		return model.Share{Amount: gap * f, Percentage: f * 100}
	}
	return model.GapDecomposition{
		Depreciation:      part(s.Depreciation),
		TaxesOnProduction: part(s.Taxes),
		NetProfit:         part(s.Profit),
		NonLaborShare:     nonLabor,
	}
}

// Decomposer looks up sector compositions.
type Decomposer struct {
	tables *reference.Tables
}

// New returns a decomposer over tables.
func New(tables *reference.Tables) *Decomposer {
	return &Decomposer{tables: tables}
}

// Decompose allocates gap using sectorKey's composition, or the national
// average when the sector is unknown.
func (d *Decomposer) Decompose(gap float64, sectorKey string) model.GapDecomposition {
	s, ok := d.tables.Sector(sectorKey)
	if !ok {
		s, _ = d.tables.Sector(reference.NationalAverage)
	}
	out := Shares(gap, s.Shares)
	out.SectorKey = s.Key
	return out
}
