// Package regional resolves state-level adjustments: the value-added ceiling
// that caps fair value and the price parity used by market comparisons.
package regional

import (
	"math"
	"strings"

	"github.com/okian/fairwage/internal/domain/reference"
)

// CeilingGrowthRate is the annual growth applied to value added per worker
// away from its reference year.
const CeilingGrowthRate = 0.02

// Adjuster resolves regional figures from reference tables.
type Adjuster struct {
	tables *reference.Tables
}

// NewAdjuster returns an adjuster over tables.
func NewAdjuster(tables *reference.Tables) *Adjuster {
	return &Adjuster{tables: tables}
}

// Ceiling returns the value added per worker for sectorKey in state, in
// year dollars. An empty or unknown state uses the national figure.
func (a *Adjuster) Ceiling(sectorKey, state string, year int) float64 {
	s, ok := a.tables.Sector(sectorKey)
	if !ok {
		s, _ = a.tables.Sector(reference.NationalAverage)
	}
	growth := math.Pow(1+CeilingGrowthRate, float64(year-reference.ValueAddedReferenceYear))
	return s.ValueAddedPerWorker * a.tables.StateOutputFactor(state) * growth
}

// PriceParity returns the state's regional price parity. The bool is false
// when the state is unknown, in which case 1.0 is returned.
func (a *Adjuster) PriceParity(state string) (float64, bool) {
	if v, ok := a.tables.RegionalPriceParity(state); ok {
		return v, true
	}
	return 1.0, false
}

// Location is a resolved worker location.
type Location struct {
	State string `json:"state,omitempty"`
	ZIP   string `json:"zip_code,omitempty"`
}

// Resolve picks a state from an explicit state or a ZIP code. An explicit
// state wins. The bool is false when neither yields a known state.
func (a *Adjuster) Resolve(zip, state string) (Location, bool) {
	state = strings.ToUpper(strings.TrimSpace(state))
	if state != "" {
		if _, ok := a.tables.RegionalPriceParity(state); ok {
			return Location{State: state, ZIP: zip}, true
		}
	}
	if st, ok := a.tables.StateForZIP(zip); ok {
		return Location{State: st, ZIP: zip}, true
	}
	return Location{ZIP: zip}, false
}
