package negotiation_test

import (
	"errors"
	"testing"

	"github.com/okian/fairwage/internal/domain/negotiation"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuild(t *testing.T) {
	Convey("Given a worker below the market median", t, func() {
		s, err := negotiation.Build(negotiation.Input{CurrentSalary: 52_000, MarketMedian: 61_200, YearsAtCompany: 4})
		So(err, ShouldBeNil)

		Convey("Then the script asks for the median", func() {
			So(s.TargetSalary, ShouldEqual, 61_000)
			So(s.Gap, ShouldEqual, 9_200)
			So(s.Opening, ShouldContainSubstring, "Over 4 years here")
			So(s.Opening, ShouldContainSubstring, "the market")
			So(s.Evidence[0], ShouldContainSubstring, "$61,200")
			So(s.Evidence[0], ShouldContainSubstring, "$52,000")
			So(s.Evidence[0], ShouldContainSubstring, "$9,200")
			So(s.Evidence[1], ShouldContainSubstring, "for 4 years")
			So(s.Resolution, ShouldContainSubstring, "$61,000")
		})

		Convey("Then counter-offers step down from the target", func() {
			So(len(s.CounterOffers), ShouldEqual, 3)
			So(s.CounterOffers[0].Amount, ShouldEqual, 56_500)
			So(s.CounterOffers[1].Amount, ShouldEqual, s.TargetSalary)
			So(s.CounterOffers[2].Amount, ShouldEqual, 52_000)
		})
	})

	Convey("Given a worker at or above the market", t, func() {
		s, err := negotiation.Build(negotiation.Input{CurrentSalary: 100_000, MarketMedian: 90_000, YearsAtCompany: 0.5})
		So(err, ShouldBeNil)

		Convey("Then a retention raise is requested", func() {
			So(s.TargetSalary, ShouldEqual, 103_000)
			So(s.Gap, ShouldEqual, 0)
			So(s.Opening, ShouldContainSubstring, "several months")
			So(s.Evidence[0], ShouldNotContainSubstring, "below")
		})
	})

	Convey("Given invalid input", t, func() {
		for _, in := range []negotiation.Input{
			{CurrentSalary: 0, MarketMedian: 1},
			{CurrentSalary: 1, MarketMedian: -1},
			{CurrentSalary: 1, MarketMedian: 1, YearsAtCompany: -1},
		} {
			_, err := negotiation.Build(in)
			So(errors.Is(err, negotiation.ErrInvalidInput), ShouldBeTrue)
		}
	})
}
