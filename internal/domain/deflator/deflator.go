// Package deflator restates nominal dollars in constant base-year dollars.
//
// The index is normalized so the base year is exactly 1.000:
// index[y] = level[base] / level[y]. Converting from year X to year B is
// nominal * index[X] / index[B]. Income and fair value go through the same
// index, so the real gap is the nominal gap restated.
package deflator

import (
	"fmt"

	"github.com/okian/fairwage/internal/domain/model"
)

// Deflator converts between years over a fixed price index.
type Deflator struct {
	base  int
	index map[int]float64
}

// New builds a deflator from price levels keyed by year. Non-positive levels
// are ignored.
func New(levels map[int]float64, base int) (*Deflator, error) {
	b, ok := levels[base]
	if !ok || b <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrMissingBaseYear, base)
	}
	idx := make(map[int]float64, len(levels))
	for y, l := range levels {
		if l > 0 {
			idx[y] = b / l
		}
	}
	idx[base] = 1
	return &Deflator{base: base, index: idx}, nil
}

// BaseYear returns the constant-dollar year.
func (d *Deflator) BaseYear() int { return d.base }

// Index returns the factor for year.
func (d *Deflator) Index(year int) (float64, bool) {
	v, ok := d.index[year]
	return v, ok
}

// Convert restates nominal year-from dollars in year-to dollars. When either
// year is missing the nominal value is returned unchanged and ok is false.
func (d *Deflator) Convert(nominal float64, from, to int) (float64, bool) {
	fx, okx := d.Index(from)
	ft, okt := d.Index(to)
	if !okx || !okt {
		return nominal, false
	}
	return nominal * fx / ft, true
}

// Deflate restates year dollars in base-year dollars.
func (d *Deflator) Deflate(nominal float64, year int) (float64, bool) {
	return d.Convert(nominal, year, d.base)
}

// Inflate restates base-year dollars in year dollars; it is the inverse of
// Deflate.
func (d *Deflator) Inflate(value float64, year int) (float64, bool) {
	return d.Convert(value, d.base, year)
}

// Record deflates every money field of r. Deflated is false when the year has
// no index, and the real fields then repeat the nominal ones.
func (d *Deflator) Record(r model.CareerYearRecord) model.DeflatedYearRecord {
	out := model.DeflatedYearRecord{CareerYearRecord: r, BaseYear: d.base}
	f, ok := d.Index(r.Year)
	if !ok {
		f = 1
	}
	out.Deflated = ok
	out.IncomeReal = r.Income * f
	out.StandardIncomeReal = r.StandardIncome * f
	out.FairValueReal = r.FairValue * f
	out.UnpaidLaborReal = out.FairValueReal - out.IncomeReal
	out.ExcessRentReal = r.ExcessRent * f
	return out
}

// Records deflates a run's records in order. missing lists years that fell
// back to nominal dollars.
func (d *Deflator) Records(rs []model.CareerYearRecord) (out []model.DeflatedYearRecord, missing []int) {
	out = make([]model.DeflatedYearRecord, len(rs))
	for i, r := range rs {
		out[i] = d.Record(r)
		if !out[i].Deflated {
			missing = append(missing, r.Year)
		}
	}
	return out, missing
}
