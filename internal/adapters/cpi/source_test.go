package cpi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/okian/fairwage/internal/adapters/cpi"
	. "github.com/smartystreets/goconvey/convey"
)

var local = map[int]float64{2022: 292.655, 2023: 304.702, 2024: 313.689}

func client() *http.Client {
	return &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
}

func blsBody(rows ...string) string {
	return fmt.Sprintf(`{"status":"REQUEST_SUCCEEDED","Results":{"series":[{"seriesID":"CUUR0000SA0","data":[%s]}]}}`,
		strings.Join(rows, ","))
}

func row(year int, period string, value float64) string {
	return fmt.Sprintf(`{"year":"%d","period":"%s","value":"%.3f"}`, year, period, value)
}

func TestFetcher_Levels(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	Convey("Given a fetcher with live data disabled", t, func() {
		f := cpi.NewFetcher(local, 2024)
		l := f.Levels(context.Background())

		Convey("Then the local table is returned", func() {
			So(l.Source, ShouldEqual, cpi.SourceLocal)
			So(l.Values, ShouldResemble, local)
			l.Values[2024] = 1
			So(f.Levels(context.Background()).Values[2024], ShouldEqual, 313.689)
		})
	})

	Convey("Given a BLS server publishing annual averages", t, func() {
		var hits atomic.Int32
		var query atomic.Value
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			query.Store(r.URL.Path + "?" + r.URL.RawQuery)
			_, _ = fmt.Fprint(w, blsBody(row(2024, "M13", 314.0), row(2024, "M12", 315.6), row(2021, "M13", 271.0)))
		}))
		defer srv.Close()

		f := cpi.NewFetcher(local, 2024, cpi.WithLive(true, srv.URL+"/publicAPI/v2/timeseries/data/"), cpi.WithHTTPClient(client()))

		Convey("When levels are requested twice", func() {
			first := f.Levels(context.Background())
			second := f.Levels(context.Background())

			Convey("Then live values overlay the local table and are memoized", func() {
				So(first.Source, ShouldEqual, cpi.SourceLive)
				So(first.Values[2024], ShouldEqual, 314.0)
				So(first.Values[2021], ShouldEqual, 271.0)
				So(first.Values[2023], ShouldEqual, 304.702)
				So(second.Source, ShouldEqual, cpi.SourceLive)
				So(hits.Load(), ShouldEqual, 1)
				q := query.Load().(string)
				So(q, ShouldContainSubstring, "/data/CUUR0000SA0")
				So(q, ShouldContainSubstring, "startyear=2005")
				So(q, ShouldContainSubstring, "annualaverage=true")
			})
		})
	})

	Convey("Given a caller whose context is already cancelled", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = fmt.Fprint(w, blsBody(row(2024, "M13", 314.0)))
		}))
		defer srv.Close()

		f := cpi.NewFetcher(local, 2024, cpi.WithLive(true, srv.URL), cpi.WithHTTPClient(client()))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		l := f.Levels(ctx)

		Convey("Then the shared fetch still completes with live data", func() {
			So(l.Source, ShouldEqual, cpi.SourceLive)
			So(l.Values[2024], ShouldEqual, 314.0)
			So(f.Levels(context.Background()).Source, ShouldEqual, cpi.SourceLive)
		})
	})

	Convey("Given a BLS server publishing only monthly values", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rows := make([]string, 0, 18)
			for m := 1; m <= 12; m++ {
				rows = append(rows, row(2023, fmt.Sprintf("M%02d", m), 300+float64(m)))
			}
			for m := 1; m <= 6; m++ {
				rows = append(rows, row(2024, fmt.Sprintf("M%02d", m), 400))
			}
			_, _ = fmt.Fprint(w, blsBody(rows...))
		}))
		defer srv.Close()

		f := cpi.NewFetcher(local, 2024, cpi.WithLive(true, srv.URL), cpi.WithHTTPClient(client()))
		l := f.Levels(context.Background())

		Convey("Then complete years are averaged and partial years are ignored", func() {
			So(l.Source, ShouldEqual, cpi.SourceLive)
			So(l.Values[2023], ShouldAlmostEqual, 306.5, 1e-9)
			So(l.Values[2024], ShouldEqual, 313.689)
		})
	})

	Convey("Given a failing BLS server", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		f := cpi.NewFetcher(local, 2024, cpi.WithLive(true, srv.URL), cpi.WithHTTPClient(client()))
		l := f.Levels(context.Background())

		Convey("Then the local table is returned tagged as a fallback", func() {
			So(l.Source, ShouldEqual, cpi.SourceLocalFallback)
			So(l.Values, ShouldResemble, local)
		})
	})

	Convey("Given a BLS server rejecting the request", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = fmt.Fprint(w, `{"status":"REQUEST_NOT_PROCESSED","message":["daily threshold"]}`)
		}))
		defer srv.Close()

		f := cpi.NewFetcher(local, 2024, cpi.WithLive(true, srv.URL), cpi.WithHTTPClient(client()))
		So(f.Levels(context.Background()).Source, ShouldEqual, cpi.SourceLocalFallback)
	})

	Convey("Given a BLS server slower than the timeout", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer srv.Close()

		f := cpi.NewFetcher(local, 2024,
			cpi.WithLive(true, srv.URL), cpi.WithHTTPClient(client()), cpi.WithTimeout(50*time.Millisecond))
		start := time.Now()
		l := f.Levels(context.Background())

		Convey("Then the fetch is abandoned and the local table is used", func() {
			So(l.Source, ShouldEqual, cpi.SourceLocalFallback)
			So(time.Since(start), ShouldBeLessThan, time.Second)
		})
	})
}

func TestFetchError(t *testing.T) {
	Convey("Given a fetch error with a cause", t, func() {
		cause := errors.New("connection refused")
		err := error(&cpi.FetchError{URL: "http://x", Message: "request failed", Cause: cause})

		Convey("Then it matches both the sentinel and the cause", func() {
			So(errors.Is(err, cpi.ErrFetch), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "request failed")
		})
	})
}
