package fairvalue_test

import (
	"errors"
	"testing"

	"github.com/okian/fairwage/internal/domain/career"
	"github.com/okian/fairwage/internal/domain/fairvalue"
	"github.com/okian/fairwage/internal/domain/occupation"
	"github.com/okian/fairwage/internal/domain/reference"
	"github.com/okian/fairwage/internal/domain/regional"
	. "github.com/smartystreets/goconvey/convey"
)

func simulate(start int, startSalary, current float64) []career.YearIncome {
	path, err := career.NewSimulator(reference.Default()).Simulate(career.Input{
		StartYear: start, StartSalary: startSalary,
		CurrentSalary: current, CurrentYear: reference.LatestYear,
	})
	So(err, ShouldBeNil)
	return path
}

func TestEngine_Evaluate(t *testing.T) {
	Convey("Given an engine over the default tables", t, func() {
		tables := reference.Default()
		engine := fairvalue.NewEngine(tables)

		Convey("When evaluating a 2010-2024 manufacturing career from 40k to 70k", func() {
			path := simulate(2010, 40_000, 70_000)
			res, err := engine.Evaluate(fairvalue.Input{
				SectorKey: "manufacturing", GapModifier: 1.20,
				StartYear: 2010, CurrentSalary: 70_000, Path: path,
			})
			So(err, ShouldBeNil)

			Convey("Then one record per year is produced with exact endpoints", func() {
				So(len(res.Records), ShouldEqual, 15)
				So(res.Records[0].Income, ShouldEqual, 40_000)
				So(res.Records[14].Income, ShouldEqual, 70_000)
				So(res.Totals.Years, ShouldEqual, 15)
				So(res.Occupation.Method, ShouldEqual, occupation.MethodWageProxy)
			})

			Convey("Then the first year carries no divergence", func() {
				So(res.Details[0].BlendWeight, ShouldEqual, 0)
				So(res.Details[0].CareerRatio, ShouldAlmostEqual, 1, 1e-12)
				So(res.Records[0].UnpaidLabor, ShouldAlmostEqual, 0, 1e-9)
			})

			Convey("Then the impact is positive exactly when the blended ratio exceeds one", func() {
				above := false
				for _, d := range res.Details[1:] {
					if d.BlendedRatio > 1 {
						above = true
					}
				}
				So(above, ShouldBeTrue)
				So(res.Totals.CumulativeEconomicImpact, ShouldBeGreaterThan, 0)
				for i, d := range res.Details {
					if d.Capped {
						continue
					}
					r := res.Records[i]
					switch {
					case d.BlendedRatio > 1+1e-12:
						So(r.UnpaidLabor, ShouldBeGreaterThan, 0)
					case d.BlendedRatio < 1-1e-12:
						So(r.UnpaidLabor, ShouldBeLessThan, 0)
					}
				}
			})

			Convey("Then the totals are the sums of the records", func() {
				var unpaid, income float64
				for _, r := range res.Records {
					unpaid += r.UnpaidLabor
					income += r.Income
					So(r.UnpaidLabor, ShouldAlmostEqual, r.FairValue-r.Income, 1e-9)
				}
				So(res.Totals.UnrealizedProductivityGains, ShouldAlmostEqual, unpaid, 1e-6)
				So(res.Totals.TotalIncome, ShouldAlmostEqual, income, 1e-6)
				So(res.Totals.ExcessRentBurden, ShouldEqual, 0)
				So(res.Totals.CumulativeEconomicImpact, ShouldAlmostEqual, unpaid, 1e-6)
			})

			Convey("Then income above the median is damped", func() {
				last := res.Details[14]
				So(last.Median, ShouldBeLessThan, 70_000)
				So(last.Damping, ShouldAlmostEqual, last.Median/70_000, 1e-12)
			})
		})

		Convey("When salaries far exceed sector output", func() {
			path := simulate(1990, 900_000, 4_000_000)
			res, err := engine.Evaluate(fairvalue.Input{
				SectorKey: "retail", GapModifier: 0.9, State: "MS",
				StartYear: 1990, CurrentSalary: 4_000_000, Path: path,
			})
			So(err, ShouldBeNil)

			Convey("Then fair value never exceeds the ceiling and the gap goes negative", func() {
				ceil := regional.NewAdjuster(tables)
				for _, r := range res.Records {
					So(r.FairValue, ShouldBeLessThanOrEqualTo, ceil.Ceiling("retail", "MS", r.Year))
					So(r.UnpaidLabor, ShouldBeLessThan, 0)
				}
				So(res.Totals.CappedYears, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When checking the ceiling across sectors and states", func() {
			path := simulate(1980, 60_000, 250_000)
			ceil := regional.NewAdjuster(tables)
			for _, key := range tables.SectorKeys() {
				for _, st := range []string{"", "NY", "WV", "CA"} {
					s, _ := tables.Sector(key)
					res, err := engine.Evaluate(fairvalue.Input{
						SectorKey: key, GapModifier: s.GapModifier, Role: "lead", State: st,
						StartYear: 1980, CurrentSalary: 250_000, Path: path,
					})
					So(err, ShouldBeNil)
					for _, r := range res.Records {
						So(r.FairValue, ShouldBeLessThanOrEqualTo, ceil.Ceiling(key, st, r.Year))
					}
				}
			}
		})

		Convey("When the worker pays rent above the baseline burden", func() {
			path := simulate(2020, 30_000, 36_000)
			res, err := engine.Evaluate(fairvalue.Input{
				SectorKey: "hospitality", GapModifier: 0.8,
				StartYear: 2020, CurrentSalary: 36_000, MonthlyRent: 1_500, Path: path,
			})
			So(err, ShouldBeNil)

			Convey("Then excess rent is charged on each year's income", func() {
				So(res.RentRatio, ShouldAlmostEqual, 0.5, 1e-12)
				for _, r := range res.Records {
					nat, _ := tables.National(r.Year)
					So(r.ExcessRent, ShouldAlmostEqual, r.Income*(0.5-nat.BaselineRentBurden), 1e-6)
				}
				So(res.Totals.CumulativeEconomicImpact, ShouldAlmostEqual,
					res.Totals.UnrealizedProductivityGains+res.Totals.ExcessRentBurden, 1e-6)
			})
		})

		Convey("When a role is declared", func() {
			path := simulate(2015, 50_000, 80_000)
			res, err := engine.Evaluate(fairvalue.Input{
				SectorKey: "technology", GapModifier: 1.35, Role: "senior",
				StartYear: 2015, CurrentSalary: 80_000, Path: path,
			})
			So(err, ShouldBeNil)
			So(res.Occupation.Method, ShouldEqual, occupation.MethodRoleDeclared)
			So(res.Occupation.Percentile, ShouldEqual, 75)
		})

		Convey("When the input is invalid", func() {
			_, err := engine.Evaluate(fairvalue.Input{SectorKey: "retail", CurrentSalary: 1})
			So(errors.Is(err, fairvalue.ErrInvalidInput), ShouldBeTrue)

			_, err = engine.Evaluate(fairvalue.Input{Path: simulate(2020, 1, 1), CurrentSalary: 0})
			So(errors.Is(err, fairvalue.ErrInvalidInput), ShouldBeTrue)

			_, err = engine.Evaluate(fairvalue.Input{Path: simulate(2020, 1, 1), CurrentSalary: 1, MonthlyRent: -1})
			So(errors.Is(err, fairvalue.ErrInvalidInput), ShouldBeTrue)
		})
	})
}
