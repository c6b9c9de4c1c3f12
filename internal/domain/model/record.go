// Package model contains the records passed between the valuation stages.
package model

import "github.com/google/uuid"

// CareerYearRecord is one year of a career valuation. Records are created by
// NewCareerYearRecord and never mutated afterward.
type CareerYearRecord struct {
	Year           int     `json:"year"`
	Income         float64 `json:"income"`          // nominal, interpolated actual
	StandardIncome float64 `json:"standard_income"` // nominal counterfactual
	FairValue      float64 `json:"fair_value"`
	UnpaidLabor    float64 `json:"unpaid_labor"` // FairValue - Income, may be negative
	ExcessRent     float64 `json:"excess_rent"`
}

// NewCareerYearRecord builds a record, deriving UnpaidLabor from fair value
// and income.
func NewCareerYearRecord(year int, income, standardIncome, fairValue, excessRent float64) CareerYearRecord {
	return CareerYearRecord{
		Year:           year,
		Income:         income,
		StandardIncome: standardIncome,
		FairValue:      fairValue,
		UnpaidLabor:    fairValue - income,
		ExcessRent:     excessRent,
	}
}

// DeflatedYearRecord is a CareerYearRecord restated in constant dollars.
// When Deflated is false no price index existed for the year and the real
// fields repeat the nominal ones.
type DeflatedYearRecord struct {
	CareerYearRecord
	IncomeReal         float64 `json:"income_real"`
	StandardIncomeReal float64 `json:"standard_income_real"`
	FairValueReal      float64 `json:"fair_value_real"`
	UnpaidLaborReal    float64 `json:"unpaid_labor_real"`
	ExcessRentReal     float64 `json:"excess_rent_real"`
	BaseYear           int     `json:"base_year"`
	Deflated           bool    `json:"deflated"`
}

// Run owns the records of one career valuation. Records are never shared
// between runs.
type Run struct {
	ID      uuid.UUID          `json:"id"`
	Records []CareerYearRecord `json:"records"`
}

// RunNamespace scopes run identifiers.
var RunNamespace = uuid.MustParse("6f1c2a9e-3b7d-5e40-9a51-0c8d2f4b7e13")

// NewRun wraps records in a run. The identifier is derived from key, so the
// same key always names the same run. The slice is copied.
func NewRun(key []byte, records []CareerYearRecord) Run {
	own := make([]CareerYearRecord, len(records))
	copy(own, records)
	return Run{ID: uuid.NewSHA1(RunNamespace, key), Records: own}
}

// Share is one component of a gap decomposition.
type Share struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// GapDecomposition splits a gap across the non-compensation components of
// value added. Percentages are of the non-compensation share and sum to 100.
type GapDecomposition struct {
	Depreciation      Share   `json:"depreciation"`
	TaxesOnProduction Share   `json:"taxesOnProduction"`
	NetProfit         Share   `json:"netProfit"`
	SectorKey         string  `json:"sector"`
	NonLaborShare     float64 `json:"nonCompensationShare"`
}
