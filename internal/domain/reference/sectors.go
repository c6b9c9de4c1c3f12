package reference

type sectorDefinition struct {
	Sector
	Benchmarks []benchmark
}

var defaultRoles = []RoleLevel{
	{Value: "entry", Label: "Entry level", Percentile: 10},
	{Value: "junior", Label: "Junior / early career", Percentile: 25},
	{Value: "mid", Label: "Experienced individual contributor", Percentile: 50},
	{Value: "senior", Label: "Senior / specialist", Percentile: 75},
	{Value: "lead", Label: "Lead / manager", Percentile: 90},
}

func withRoles(extra ...RoleLevel) []RoleLevel {
	out := make([]RoleLevel, 0, len(defaultRoles)+len(extra))
	out = append(out, defaultRoles...)
	return append(out, extra...)
}

func bm(year int, productivity, wage float64) benchmark {
	return benchmark{year: year, point: SectorPoint{ProductivityIndex: productivity, WageIndex: wage}}
}

// sectorDefinitions lists every canonical sector. Wages are OEWS May 2024
// hourly figures; value added per worker is BEA GDP-by-industry over BLS
// employment; shares are the BEA income-side composition of value added;
// benefits tiers come from BLS Employer Costs for Employee Compensation.
// Sectors without benchmarks (or years before their first benchmark) use
// the national series.
var sectorDefinitions = []sectorDefinition{
	{
		Sector: Sector{
			Key: NationalAverage, Label: "All industries (national average)", GapModifier: 1.0,
			AvgTenureYears: 4.1, ValueAddedPerWorker: 150_000,
			Wages:    WagePercentiles{P10: 14.04, P25: 17.81, P50: 23.80, P75: 37.57, P90: 58.24, Mean: 32.66},
			Benefits: BenefitsTiers{Low: 1.26, Mid: 1.31, High: 1.38},
			Shares:   ValueAddedShares{Compensation: 0.53, Taxes: 0.07, Depreciation: 0.16, Profit: 0.24},
			Roles:    withRoles(),
			Aliases:  []string{"national", "all", "all_industries", "other", "general"},
		},
	},
	{
		Sector: Sector{
			Key: "manufacturing", Label: "Manufacturing", GapModifier: 1.20,
			AvgTenureYears: 5.1, ValueAddedPerWorker: 185_000,
			Wages:    WagePercentiles{P10: 15.30, P25: 18.40, P50: 23.45, P75: 32.20, P90: 46.10, Mean: 29.10},
			Benefits: BenefitsTiers{Low: 1.33, Mid: 1.42, High: 1.47},
			Shares:   ValueAddedShares{Compensation: 0.50, Taxes: 0.03, Depreciation: 0.14, Profit: 0.33},
			Roles: withRoles(
				RoleLevel{Value: "assembler", Label: "Assembler / production worker", Percentile: 25},
				RoleLevel{Value: "machinist", Label: "Machinist / skilled trades", Percentile: 50},
				RoleLevel{Value: "engineer", Label: "Engineer", Percentile: 75},
				RoleLevel{Value: "plant_manager", Label: "Plant manager", Percentile: 90},
			),
			Aliases: []string{"factory", "production", "industrial", "31", "32", "33"},
		},
		Benchmarks: []benchmark{
			bm(1975, 42.0, 95.0), bm(1987, 58.0, 93.5), bm(1995, 70.0, 92.0), bm(2000, 82.0, 94.5),
			bm(2007, 96.0, 95.5), bm(2010, 97.5, 97.0), bm(2015, 99.0, 98.5), bm(2017, 100.0, 100.0),
			bm(2020, 101.5, 104.0), bm(2024, 106.0, 103.0),
		},
	},
	{
		Sector: Sector{
			Key: "retail", Label: "Retail trade", GapModifier: 0.90,
			AvgTenureYears: 3.0, ValueAddedPerWorker: 85_000,
			Wages:    WagePercentiles{P10: 13.20, P25: 14.60, P50: 17.10, P75: 21.50, P90: 30.10, Mean: 20.90},
			Benefits: BenefitsTiers{Low: 1.18, Mid: 1.25, High: 1.32},
			Shares:   ValueAddedShares{Compensation: 0.52, Taxes: 0.14, Depreciation: 0.10, Profit: 0.24},
			Roles: withRoles(
				RoleLevel{Value: "cashier", Label: "Cashier / sales associate", Percentile: 10},
				RoleLevel{Value: "shift_lead", Label: "Shift lead", Percentile: 50},
				RoleLevel{Value: "store_manager", Label: "Store manager", Percentile: 90},
			),
			Aliases: []string{"retail_trade", "store", "grocery", "sales", "44", "45"},
		},
		Benchmarks: []benchmark{
			bm(1987, 52.0, 96.0), bm(2000, 74.0, 93.0), bm(2010, 90.0, 95.0), bm(2017, 100.0, 100.0),
			bm(2020, 112.0, 107.0), bm(2024, 118.0, 106.5),
		},
	},
	{
		Sector: Sector{
			Key: "healthcare", Label: "Health care and social assistance", GapModifier: 0.85,
			AvgTenureYears: 4.3, ValueAddedPerWorker: 95_000,
			Wages:    WagePercentiles{P10: 14.50, P25: 17.60, P50: 23.20, P75: 36.80, P90: 56.00, Mean: 32.90},
			Benefits: BenefitsTiers{Low: 1.28, Mid: 1.35, High: 1.40},
			Shares:   ValueAddedShares{Compensation: 0.78, Taxes: 0.02, Depreciation: 0.07, Profit: 0.13},
			Roles: withRoles(
				RoleLevel{Value: "aide", Label: "Aide / assistant", Percentile: 10},
				RoleLevel{Value: "technician", Label: "Technician / LPN", Percentile: 25},
				RoleLevel{Value: "nurse", Label: "Registered nurse", Percentile: 75},
				RoleLevel{Value: "practitioner", Label: "Practitioner / physician", Percentile: 90},
			),
			Aliases: []string{"health", "health_care", "hospital", "medical", "nursing", "62"},
		},
		Benchmarks: []benchmark{
			bm(1994, 88.0, 90.0), bm(2005, 94.0, 95.0), bm(2010, 96.0, 97.5), bm(2017, 100.0, 100.0),
			bm(2024, 104.5, 104.0),
		},
	},
	{
		Sector: Sector{
			Key: "technology", Label: "Information and software", GapModifier: 1.35,
			AvgTenureYears: 4.0, ValueAddedPerWorker: 390_000,
			Wages:    WagePercentiles{P10: 17.50, P25: 25.80, P50: 40.50, P75: 60.10, P90: 82.90, Mean: 46.40},
			Benefits: BenefitsTiers{Low: 1.24, Mid: 1.30, High: 1.36},
			Shares:   ValueAddedShares{Compensation: 0.34, Taxes: 0.04, Depreciation: 0.22, Profit: 0.40},
			Roles: withRoles(
				RoleLevel{Value: "support", Label: "Support / operations", Percentile: 25},
				RoleLevel{Value: "engineer", Label: "Software engineer", Percentile: 50},
				RoleLevel{Value: "staff_engineer", Label: "Staff / principal engineer", Percentile: 90},
			),
			Aliases: []string{"tech", "software", "information", "it", "saas", "internet", "51"},
		},
		Benchmarks: []benchmark{
			bm(1987, 38.0, 88.0), bm(1995, 48.0, 87.0), bm(2000, 60.0, 94.0), bm(2010, 82.0, 96.0),
			bm(2017, 100.0, 100.0), bm(2020, 112.0, 105.0), bm(2024, 128.0, 106.0),
		},
	},
	{
		Sector: Sector{
			Key: "finance", Label: "Finance and insurance", GapModifier: 1.25,
			AvgTenureYears: 4.6, ValueAddedPerWorker: 290_000,
			Wages:    WagePercentiles{P10: 17.80, P25: 22.60, P50: 32.40, P75: 50.80, P90: 78.00, Mean: 43.60},
			Benefits: BenefitsTiers{Low: 1.27, Mid: 1.34, High: 1.42},
			Shares:   ValueAddedShares{Compensation: 0.38, Taxes: 0.06, Depreciation: 0.14, Profit: 0.42},
			Roles: withRoles(
				RoleLevel{Value: "teller", Label: "Teller / clerk", Percentile: 10},
				RoleLevel{Value: "analyst", Label: "Analyst", Percentile: 50},
				RoleLevel{Value: "director", Label: "Director", Percentile: 90},
			),
			Aliases: []string{"banking", "bank", "insurance", "financial_services", "52"},
		},
		Benchmarks: []benchmark{
			bm(1987, 66.0, 86.0), bm(2000, 80.0, 92.0), bm(2010, 92.0, 96.0), bm(2017, 100.0, 100.0),
			bm(2024, 110.0, 104.5),
		},
	},
	{
		Sector: Sector{
			Key: "construction", Label: "Construction", GapModifier: 0.95,
			AvgTenureYears: 4.2, ValueAddedPerWorker: 120_000,
			Wages:    WagePercentiles{P10: 17.20, P25: 21.20, P50: 27.40, P75: 36.20, P90: 47.60, Mean: 31.10},
			Benefits: BenefitsTiers{Low: 1.30, Mid: 1.38, High: 1.44},
			Shares:   ValueAddedShares{Compensation: 0.66, Taxes: 0.02, Depreciation: 0.06, Profit: 0.26},
			Roles: withRoles(
				RoleLevel{Value: "laborer", Label: "Laborer / helper", Percentile: 10},
				RoleLevel{Value: "journeyman", Label: "Journeyman tradesperson", Percentile: 50},
				RoleLevel{Value: "foreman", Label: "Foreman / superintendent", Percentile: 90},
			),
			Aliases: []string{"building", "trades", "contractor", "23"},
		},
	},
	{
		Sector: Sector{
			Key: "education", Label: "Educational services", GapModifier: 0.70,
			AvgTenureYears: 5.3, ValueAddedPerWorker: 70_000,
			Wages:    WagePercentiles{P10: 13.50, P25: 17.80, P50: 25.40, P75: 36.30, P90: 50.20, Mean: 29.30},
			Benefits: BenefitsTiers{Low: 1.35, Mid: 1.45, High: 1.48},
			Shares:   ValueAddedShares{Compensation: 0.85, Taxes: 0.02, Depreciation: 0.07, Profit: 0.06},
			Roles: withRoles(
				RoleLevel{Value: "paraprofessional", Label: "Paraprofessional / aide", Percentile: 10},
				RoleLevel{Value: "teacher", Label: "Teacher", Percentile: 50},
				RoleLevel{Value: "administrator", Label: "Administrator", Percentile: 90},
			),
			Aliases: []string{"school", "teaching", "university", "academia", "61"},
		},
	},
	{
		Sector: Sector{
			Key: "hospitality", Label: "Accommodation and food services", GapModifier: 0.80,
			AvgTenureYears: 2.2, ValueAddedPerWorker: 55_000,
			Wages:    WagePercentiles{P10: 11.60, P25: 13.20, P50: 15.30, P75: 18.60, P90: 24.40, Mean: 17.40},
			Benefits: BenefitsTiers{Low: 1.14, Mid: 1.20, High: 1.28},
			Shares:   ValueAddedShares{Compensation: 0.62, Taxes: 0.09, Depreciation: 0.09, Profit: 0.20},
			Roles: withRoles(
				RoleLevel{Value: "server", Label: "Server / crew member", Percentile: 10},
				RoleLevel{Value: "cook", Label: "Cook", Percentile: 50},
				RoleLevel{Value: "general_manager", Label: "General manager", Percentile: 90},
			),
			Aliases: []string{"food_service", "restaurant", "restaurants", "hotel", "food", "accommodation", "72"},
		},
		Benchmarks: []benchmark{
			bm(1987, 92.0, 95.0), bm(2000, 95.0, 94.0), bm(2010, 97.0, 95.0), bm(2017, 100.0, 100.0),
			bm(2020, 96.0, 108.0), bm(2024, 104.0, 110.0),
		},
	},
	{
		Sector: Sector{
			Key: "transportation", Label: "Transportation and warehousing", GapModifier: 1.00,
			AvgTenureYears: 4.9, ValueAddedPerWorker: 115_000,
			Wages:    WagePercentiles{P10: 15.50, P25: 18.40, P50: 23.00, P75: 29.50, P90: 38.90, Mean: 26.20},
			Benefits: BenefitsTiers{Low: 1.32, Mid: 1.41, High: 1.46},
			Shares:   ValueAddedShares{Compensation: 0.55, Taxes: 0.05, Depreciation: 0.16, Profit: 0.24},
			Roles: withRoles(
				RoleLevel{Value: "warehouse", Label: "Warehouse associate", Percentile: 10},
				RoleLevel{Value: "driver", Label: "Driver", Percentile: 50},
				RoleLevel{Value: "dispatcher", Label: "Dispatcher / supervisor", Percentile: 75},
			),
			Aliases: []string{"logistics", "warehousing", "trucking", "shipping", "delivery", "48", "49"},
		},
		Benchmarks: []benchmark{
			bm(1987, 70.0, 102.0), bm(2000, 84.0, 95.0), bm(2010, 94.0, 96.0), bm(2017, 100.0, 100.0),
			bm(2024, 98.0, 103.0),
		},
	},
	{
		Sector: Sector{
			Key: "professional_services", Label: "Professional, scientific and technical services", GapModifier: 1.10,
			AvgTenureYears: 3.6, ValueAddedPerWorker: 180_000,
			Wages:    WagePercentiles{P10: 18.20, P25: 25.10, P50: 38.30, P75: 57.50, P90: 81.20, Mean: 44.80},
			Benefits: BenefitsTiers{Low: 1.23, Mid: 1.30, High: 1.37},
			Shares:   ValueAddedShares{Compensation: 0.72, Taxes: 0.03, Depreciation: 0.07, Profit: 0.18},
			Roles: withRoles(
				RoleLevel{Value: "associate", Label: "Associate", Percentile: 25},
				RoleLevel{Value: "consultant", Label: "Consultant", Percentile: 50},
				RoleLevel{Value: "partner", Label: "Partner / principal", Percentile: 90},
			),
			Aliases: []string{"professional", "consulting", "legal", "accounting", "engineering_services", "54"},
		},
		Benchmarks: []benchmark{
			bm(1997, 78.0, 90.0), bm(2007, 90.0, 95.0), bm(2017, 100.0, 100.0), bm(2024, 109.0, 104.0),
		},
	},
	{
		Sector: Sector{
			Key: "government", Label: "Public administration", GapModifier: 0.60,
			AvgTenureYears: 6.8, ValueAddedPerWorker: 120_000,
			Wages:    WagePercentiles{P10: 16.10, P25: 20.30, P50: 28.10, P75: 38.40, P90: 51.60, Mean: 32.10},
			Benefits: BenefitsTiers{Low: 1.45, Mid: 1.55, High: 1.60},
			Shares:   ValueAddedShares{Compensation: 0.80, Taxes: 0.0, Depreciation: 0.20, Profit: 0.0},
			Roles:    withRoles(),
			Aliases:  []string{"public_sector", "public_administration", "federal", "state_government", "municipal", "92"},
		},
	},
	{
		Sector: Sector{
			Key: "agriculture", Label: "Agriculture, forestry, fishing and hunting", GapModifier: 0.90,
			AvgTenureYears: 4.9, ValueAddedPerWorker: 110_000,
			Wages:    WagePercentiles{P10: 13.40, P25: 15.20, P50: 17.30, P75: 21.40, P90: 29.10, Mean: 20.30},
			Benefits: BenefitsTiers{Low: 1.15, Mid: 1.20, High: 1.27},
			Shares:   ValueAddedShares{Compensation: 0.25, Taxes: 0.02, Depreciation: 0.18, Profit: 0.55},
			Roles: withRoles(
				RoleLevel{Value: "farmworker", Label: "Farmworker", Percentile: 10},
				RoleLevel{Value: "equipment_operator", Label: "Equipment operator", Percentile: 50},
			),
			Aliases: []string{"farming", "farm", "forestry", "fishing", "11"},
		},
	},
}
