package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/okian/fairwage/internal/adapters/cpi"
	service "github.com/okian/fairwage/internal/app"
	"github.com/okian/fairwage/internal/domain/career"
	"github.com/okian/fairwage/internal/domain/model"
	"github.com/okian/fairwage/internal/domain/negotiation"
	"github.com/okian/fairwage/internal/domain/occupation"
	"github.com/okian/fairwage/internal/domain/reference"
	"github.com/okian/fairwage/internal/domain/worthgap"
	"github.com/okian/fairwage/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// staticCPI serves fixed levels.
type staticCPI struct {
	levels map[int]float64
	source cpi.Source
}

func (s staticCPI) Levels(context.Context) cpi.Levels {
	out := make(map[int]float64, len(s.levels))
	for y, v := range s.levels {
		out[y] = v
	}
	return cpi.Levels{Values: out, Source: s.source, Series: cpi.DefaultSeriesID}
}

func started(opts ...service.Option) *service.Service {
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func manufacturing() service.ImpactRequest {
	return service.ImpactRequest{
		StartYear: 2010, StartSalary: 40000, CurrentSalary: 70000, CurrentRent: 1500,
		Industry: "manufacturing", CurrentYear: 2024,
	}
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(
			service.WithMedianCache(100, time.Minute),
			service.WithBaseYear(2024),
		)

		Convey("When it has not been started", func() {
			stats := svc.GetStats()
			_, err := svc.Impact(context.Background(), manufacturing())

			Convey("Then stats are basic and calculations are refused", func() {
				So(stats["started"], ShouldEqual, false)
				So(svc.Size(), ShouldEqual, int64(0))
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})

		Convey("When it is started and stopped", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			So(svc.Start(context.Background()), ShouldBeNil)
			running := svc.GetStats()
			svc.Stop()
			svc.Stop()

			Convey("Then stats follow its state", func() {
				So(running["started"], ShouldEqual, true)
				So(running["tablesVersion"], ShouldEqual, reference.Version)
				So(running["sectors"], ShouldContain, "manufacturing")
				So(running["sectors"], ShouldContain, reference.NationalAverage)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Impact(t *testing.T) {
	Convey("Given a started service with local price levels", t, func() {
		svc := started()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When a 2010-2024 manufacturing career is evaluated", func() {
			resp, err := svc.Impact(ctx, manufacturing())
			So(err, ShouldBeNil)

			Convey("Then the breakdown spans fifteen years anchored on both salaries", func() {
				So(len(resp.YearlyBreakdown), ShouldEqual, 15)
				So(len(resp.YearlyBreakdownReal), ShouldEqual, 15)
				So(resp.YearlyBreakdown[0].Year, ShouldEqual, 2010)
				So(resp.YearlyBreakdown[0].Income, ShouldEqual, 40000)
				So(resp.YearlyBreakdown[14].Income, ShouldEqual, 70000)
				So(resp.Summary.Years, ShouldEqual, 15)
				So(resp.Summary.Sector, ShouldEqual, "manufacturing")
			})

			Convey("Then the cumulative impact is positive exactly when the blended ratio is", func() {
				var blendedPremium bool
				for _, row := range resp.YearlyBreakdown {
					if row.Factors.BlendedRatio > 1 {
						blendedPremium = true
					}
				}
				So(resp.Summary.UnrealizedProductivityGains > 0, ShouldEqual, blendedPremium)
			})

			Convey("Then the summary adds up", func() {
				s := resp.Summary
				So(s.CumulativeEconomicImpact, ShouldAlmostEqual, s.UnrealizedProductivityGains+s.ExcessRentBurden, 0.011)
				var unpaid float64
				for _, row := range resp.YearlyBreakdown {
					unpaid += row.UnpaidLabor
				}
				So(unpaid, ShouldAlmostEqual, s.UnrealizedProductivityGains, 0.1)
			})

			Convey("Then base-year dollars equal nominal ones and earlier years are inflated", func() {
				last := resp.YearlyBreakdownReal[14]
				So(last.Deflated, ShouldBeTrue)
				So(last.BaseYear, ShouldEqual, 2024)
				So(last.IncomeReal, ShouldEqual, last.Income)
				first := resp.YearlyBreakdownReal[0]
				So(first.IncomeReal, ShouldBeGreaterThan, first.Income)
			})

			Convey("Then the real gap is decomposed across non-labor value added", func() {
				g := resp.GapDecomposition
				So(g.SectorKey, ShouldEqual, "manufacturing")
				total := g.Depreciation.Amount + g.TaxesOnProduction.Amount + g.NetProfit.Amount
				So(total, ShouldAlmostEqual, resp.Summary.UnrealizedProductivityGainsReal, 0.05)
				pct := g.Depreciation.Percentage + g.TaxesOnProduction.Percentage + g.NetProfit.Percentage
				So(pct, ShouldAlmostEqual, 100, 0.02)
			})

			Convey("Then provenance and methodology are attached", func() {
				So(resp.CalculationID, ShouldNotBeEmpty)
				So(resp.DataProvenance.CPISource, ShouldEqual, cpi.SourceLocal)
				So(resp.DataProvenance.CPISeries, ShouldEqual, cpi.DefaultSeriesID)
				So(resp.DataProvenance.TablesVersion, ShouldEqual, reference.Version)
				So(len(resp.Methodology.Sources), ShouldBeGreaterThan, 0)
				So(resp.Warnings, ShouldBeEmpty)
				So(resp.Summary.Benefits.Multiplier, ShouldBeGreaterThan, 1)
				So(resp.Summary.Benefits.TotalCompensation, ShouldBeGreaterThan, 70000)
			})

			Convey("Then the response serializes with the documented field names", func() {
				raw, err := json.Marshal(resp)
				So(err, ShouldBeNil)
				var doc map[string]any
				So(json.Unmarshal(raw, &doc), ShouldBeNil)
				for _, k := range []string{"calculation_id", "summary", "yearly_breakdown", "yearly_breakdown_real",
					"gap_decomposition", "methodology", "data_provenance", "warnings"} {
					So(doc, ShouldContainKey, k)
				}
				summary := doc["summary"].(map[string]any)
				So(summary, ShouldContainKey, "cumulative_economic_impact")
				So(summary, ShouldContainKey, "unrealized_productivity_gains")
				So(summary, ShouldContainKey, "excess_rent_burden")
			})
		})

		Convey("When the industry is unknown", func() {
			req := manufacturing()
			req.Industry = "interpretive dance"
			resp, err := svc.Impact(ctx, req)

			Convey("Then the national average is used with a warning", func() {
				So(err, ShouldBeNil)
				So(resp.Summary.Sector, ShouldEqual, reference.NationalAverage)
				So(len(resp.Warnings), ShouldEqual, 1)
				So(resp.Warnings[0], ShouldContainSubstring, "interpretive dance")
				So(resp.DataProvenance.Sector.Fallback, ShouldBeTrue)
			})
		})

		Convey("When the role and location are unknown", func() {
			req := manufacturing()
			req.RoleLevel = "astronaut"
			req.ZIPCode = "00001"
			resp, err := svc.Impact(ctx, req)

			Convey("Then both fall back with warnings", func() {
				So(err, ShouldBeNil)
				So(len(resp.Warnings), ShouldEqual, 2)
				So(resp.Summary.Occupation.Method, ShouldEqual, occupation.MethodWageProxy)
			})
		})

		Convey("When the start year is out of range", func() {
			for _, req := range []service.ImpactRequest{
				{StartYear: 1970, StartSalary: 40000, CurrentSalary: 70000},
				{StartYear: 2030, StartSalary: 40000, CurrentSalary: 70000},
				{StartYear: 2010, StartSalary: 0, CurrentSalary: 70000},
				{StartYear: 2010, StartSalary: 40000, CurrentSalary: -1},
			} {
				_, err := svc.Impact(ctx, req)
				So(errors.Is(err, career.ErrInvalidRange), ShouldBeTrue)
			}
			So(svc.GetStats()["failures"], ShouldEqual, int64(4))
		})
	})

	Convey("Given a service whose price source fell back", t, func() {
		svc := started(service.WithCPIProvider(staticCPI{levels: reference.Default().CPILevels(), source: cpi.SourceLocalFallback}))
		defer svc.Stop()

		resp, err := svc.Impact(context.Background(), manufacturing())

		Convey("Then provenance is tagged LOCAL_FALLBACK", func() {
			So(err, ShouldBeNil)
			So(resp.DataProvenance.CPISource, ShouldEqual, cpi.SourceLocalFallback)
		})
	})

	Convey("Given a price source missing early years", t, func() {
		levels := reference.Default().CPILevels()
		delete(levels, 2010)
		delete(levels, 2011)
		svc := started(service.WithCPIProvider(staticCPI{levels: levels, source: cpi.SourceLive}))
		defer svc.Stop()

		resp, err := svc.Impact(context.Background(), manufacturing())

		Convey("Then those years pass through in nominal dollars and are reported", func() {
			So(err, ShouldBeNil)
			So(resp.YearlyBreakdownReal[0].Deflated, ShouldBeFalse)
			So(resp.YearlyBreakdownReal[0].IncomeReal, ShouldEqual, resp.YearlyBreakdownReal[0].Income)
			So(resp.YearlyBreakdownReal[2].Deflated, ShouldBeTrue)
			So(resp.DataProvenance.DeflatorMissingYears, ShouldResemble, []int{2010, 2011})
			So(len(resp.Warnings), ShouldEqual, 1)
		})
	})
}

func TestService_ImpactDeterminism(t *testing.T) {
	Convey("Given the same request evaluated twice", t, func() {
		svc := started()
		defer svc.Stop()
		req := manufacturing()
		req.RoleLevel = "engineer"
		req.State = "OH"

		a, errA := svc.Impact(context.Background(), req)
		b, errB := svc.Impact(context.Background(), req)
		So(errA, ShouldBeNil)
		So(errB, ShouldBeNil)

		Convey("Then the responses are byte-identical", func() {
			So(a.CalculationID, ShouldNotBeEmpty)
			So(a.CalculationID, ShouldEqual, b.CalculationID)
			So(cmp.Diff(a, b), ShouldBeEmpty)

			ja, err := json.Marshal(a)
			So(err, ShouldBeNil)
			jb, err := json.Marshal(b)
			So(err, ShouldBeNil)
			So(string(ja), ShouldEqual, string(jb))
		})

		Convey("Then a different request gets a different calculation id", func() {
			req.CurrentRent = 1500
			c, err := svc.Impact(context.Background(), req)
			So(err, ShouldBeNil)
			So(c.CalculationID, ShouldNotEqual, a.CalculationID)
		})
	})
}

func TestService_Worth(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := started()
		defer svc.Stop()
		ctx := context.Background()
		req := service.WorthRequest{CurrentWage: 15, Frequency: "hourly", ZIPCode: "94105", YearsExperience: 3, Industry: "retail"}

		Convey("When an underpaid retail worker is analyzed twice", func() {
			first, err := svc.Worth(ctx, req)
			So(err, ShouldBeNil)
			second, err := svc.Worth(ctx, req)
			So(err, ShouldBeNil)

			Convey("Then the gap is positive and decomposed", func() {
				So(first.WorthGap.Annual, ShouldBeGreaterThan, 0)
				So(first.LifetimeImpact, ShouldNotBeNil)
				So(first.GapDecomposition.SectorKey, ShouldEqual, "retail")
				total := first.GapDecomposition.Depreciation.Amount + first.GapDecomposition.TaxesOnProduction.Amount +
					first.GapDecomposition.NetProfit.Amount
				So(total, ShouldAlmostEqual, first.WorthGap.Annual, 0.05)
				So(first.Sector.SectorKey, ShouldEqual, "retail")
			})

			Convey("Then the cached second answer is byte-identical to the first", func() {
				So(svc.Size(), ShouldEqual, int64(1))
				stats := svc.GetStats()
				So(stats["cacheHits"], ShouldBeGreaterThanOrEqualTo, int64(1))

				ja, err := json.Marshal(first)
				So(err, ShouldBeNil)
				jb, err := json.Marshal(second)
				So(err, ShouldBeNil)
				So(string(jb), ShouldEqual, string(ja))
			})

			Convey("Then money is rounded to cents", func() {
				v := first.DeservedWage.Annual * 100
				So(math.Abs(v-math.Round(v)), ShouldBeLessThan, 1e-6)
			})
		})

		Convey("When the industry is unknown", func() {
			req.Industry = "space piracy"
			resp, err := svc.Worth(ctx, req)

			Convey("Then a warning is returned", func() {
				So(err, ShouldBeNil)
				So(resp.Warnings, ShouldNotBeEmpty)
				So(resp.Warnings[0], ShouldContainSubstring, "space piracy")
			})
		})

		Convey("When the wage or frequency is invalid", func() {
			_, err := svc.Worth(ctx, service.WorthRequest{CurrentWage: 0})
			So(errors.Is(err, worthgap.ErrInvalidWage), ShouldBeTrue)
			_, err = svc.Worth(ctx, service.WorthRequest{CurrentWage: 20, Frequency: "quarterly"})
			So(errors.Is(err, worthgap.ErrInvalidFrequency), ShouldBeTrue)
		})
	})
}

func TestService_Negotiation(t *testing.T) {
	Convey("Given a worker below the market median", t, func() {
		svc := service.New()
		script, err := svc.Negotiation(context.Background(), service.NegotiationRequest{
			CurrentSalary: 52000, MarketMedian: 61200, YearsAtCompany: 3,
		})

		Convey("Then the script targets the rounded median", func() {
			So(err, ShouldBeNil)
			So(script.TargetSalary, ShouldEqual, 61000)
			So(script.Opening, ShouldNotBeEmpty)
			So(len(script.CounterOffers), ShouldEqual, 3)
		})

		Convey("Then invalid inputs are rejected", func() {
			_, err := svc.Negotiation(context.Background(), service.NegotiationRequest{CurrentSalary: 52000})
			So(errors.Is(err, negotiation.ErrInvalidInput), ShouldBeTrue)
		})
	})
}

func TestService_Process(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := started()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When a well-formed impact job is processed", func() {
			raw, _ := json.Marshal(manufacturing())
			out, err := svc.Process(ctx, model.Job{Seq: 1, Kind: model.JobImpact, Request: raw})

			Convey("Then it returns an impact response", func() {
				So(err, ShouldBeNil)
				resp, ok := out.(service.ImpactResponse)
				So(ok, ShouldBeTrue)
				So(resp.Summary.Years, ShouldEqual, 15)
			})
		})

		Convey("When jobs are malformed", func() {
			_, err := svc.Process(ctx, model.Job{Kind: "payroll", Request: json.RawMessage(`{}`)})
			So(errors.Is(err, service.ErrUnknownJobKind), ShouldBeTrue)

			_, err = svc.Process(ctx, model.Job{Kind: model.JobWorth, Request: json.RawMessage(`{"wage":1}`)})
			So(errors.Is(err, service.ErrInvalidRequest), ShouldBeTrue)

			_, err = svc.Process(ctx, model.Job{Kind: model.JobNegotiation, Request: json.RawMessage(`{"current_salary":0,"market_median":1}`)})
			So(errors.Is(err, service.ErrInvalidRequest), ShouldBeTrue)
		})
	})
}
