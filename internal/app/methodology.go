package service

import (
	"github.com/shopspring/decimal"

	"github.com/okian/fairwage/internal/adapters/cpi"
	"github.com/okian/fairwage/internal/domain/reference"
	"github.com/okian/fairwage/internal/domain/sector"
)

// Citation names a published data source.
type Citation struct {
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
	Use       string `json:"use"`
}

// Methodology describes how an impact figure was produced.
type Methodology struct {
	Summary           string     `json:"summary"`
	Steps             []string   `json:"steps"`
	Sources           []Citation `json:"sources"`
	BlendHorizonYears int        `json:"blend_horizon_years"`
	HoursPerYear      float64    `json:"hours_per_year"`
}

// Provenance records which data a calculation used.
type Provenance struct {
	TablesVersion           string            `json:"tables_version"`
	CPISource               cpi.Source        `json:"cpi_source"`
	CPISeries               string            `json:"cpi_series"`
	BaseYear                int               `json:"base_year"`
	LatestDataYear          int               `json:"latest_data_year"`
	WageReferenceYear       int               `json:"wage_reference_year"`
	ValueAddedReferenceYear int               `json:"value_added_reference_year"`
	Sector                  sector.Resolution `json:"sector"`
	State                   string            `json:"state,omitempty"`
	ZIPCode                 string            `json:"zip_code,omitempty"`
	DeflatorMissingYears    []int             `json:"deflator_missing_years,omitempty"`
}

var citations = []Citation{
	{Name: "Productivity and Costs", Publisher: "U.S. Bureau of Labor Statistics", Use: "national and sector labor productivity and hourly compensation indices"},
	{Name: "Occupational Employment and Wage Statistics", Publisher: "U.S. Bureau of Labor Statistics", Use: "sector wage percentiles and role levels"},
	{Name: "Consumer Price Index for All Urban Consumers (CUUR0000SA0)", Publisher: "U.S. Bureau of Labor Statistics", Use: "inflation path and constant-dollar conversion"},
	{Name: "Employer Costs for Employee Compensation", Publisher: "U.S. Bureau of Labor Statistics", Use: "benefits multipliers by wage tier"},
	{Name: "Regional Price Parities", Publisher: "U.S. Bureau of Economic Analysis", Use: "state price levels"},
	{Name: "GDP by Industry and by State", Publisher: "U.S. Bureau of Economic Analysis", Use: "value added per worker and its composition"},
	{Name: "American Community Survey rent burden", Publisher: "U.S. Census Bureau / HUD", Use: "baseline rent-to-income ratio"},
}

func (s *Service) methodology() Methodology {
	return Methodology{
		Summary: "Fair value scales each year's income by how far productivity has outgrown wages in the worker's sector, " +
			"damped for above-median earners and capped by regional value added per worker.",
		Steps: []string{
			"Reconstruct yearly income from the starting and current salary along an inflation plus seniority path.",
			"Measure productivity over wage growth since the career start and since 1975, blending toward the long-run measure over the first " +
				"career years.",
			"Scale the divergence by the industry modifier and the square root of the occupation adjustment.",
			"Damp the premium by the ratio of the sector median wage to income when income is above the median.",
			"Cap fair value at the state value added per worker for the sector.",
			"Add rent paid above the year's baseline rent burden.",
			"Restate every year in constant dollars and split the real gap across depreciation, production taxes and profit.",
		},
		Sources:           citations,
		BlendHorizonYears: s.blendHorizon,
		HoursPerYear:      s.hoursPerYear,
	}
}

func (s *Service) provenance(levels cpi.Levels, res sector.Resolution, state, zip string, missing []int) Provenance {
	return Provenance{
		TablesVersion:           reference.Version,
		CPISource:               levels.Source,
		CPISeries:               levels.Series,
		BaseYear:                s.baseYear,
		LatestDataYear:          s.tables.LatestYear(),
		WageReferenceYear:       reference.OEWSReferenceYear,
		ValueAddedReferenceYear: reference.ValueAddedReferenceYear,
		Sector:                  res,
		State:                   state,
		ZIPCode:                 zip,
		DeflatorMissingYears:    missing,
	}
}

// round rounds half away from zero to places decimals.
func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// cents rounds a dollar amount.
func cents(v float64) float64 { return round(v, 2) }

// ratio rounds a dimensionless factor for presentation.
func ratio(v float64) float64 { return round(v, 6) }
