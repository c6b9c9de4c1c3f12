// Package cpi supplies the CPI-U annual averages behind the deflator, either
// from the local reference table or live from the BLS public API with a
// local fallback.
package cpi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/okian/fairwage/internal/adapters/cache"
	"github.com/okian/fairwage/pkg/logger"
	"github.com/okian/fairwage/pkg/metrics"
)

// Source tags where price levels came from.
type Source string

const (
	SourceLocal         Source = "LOCAL"
	SourceLive          Source = "LIVE"
	SourceLocalFallback Source = "LOCAL_FALLBACK"
)

// Defaults for the live source.
const (
	DefaultURL       = "https://api.bls.gov/publicAPI/v2/timeseries/data/"
	DefaultSeriesID  = "CUUR0000SA0"
	DefaultTimeout   = 3 * time.Second
	DefaultTTL       = 24 * time.Hour
	DefaultUserAgent = "fairwage/1.0"
	maxResponseBytes = 4 << 20
	liveSpanYears    = 20 // BLS v2 returns at most 20 years per request
)

// Levels are CPI levels keyed by year.
type Levels struct {
	Values map[int]float64
	Source Source
	Series string
}

// Provider resolves price levels.
type Provider interface {
	Levels(ctx context.Context) Levels
}

// Fetcher serves local levels, optionally overlaid with live BLS data.
type Fetcher struct {
	local      map[int]float64
	latestYear int
	live       bool
	url        string
	seriesID   string
	apiKey     string
	timeout    time.Duration
	ttl        time.Duration
	client     *http.Client
	memo       *cache.Memory[map[int]float64]
	group      singleflight.Group
	logger     logger.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLive enables live fetching from url (DefaultURL when empty).
func WithLive(enabled bool, url string) Option {
	return func(f *Fetcher) {
		f.live = enabled
		if url != "" {
			f.url = url
		}
	}
}

// WithSeriesID sets the BLS series.
func WithSeriesID(id string) Option {
	return func(f *Fetcher) {
		if id != "" {
			f.seriesID = id
		}
	}
}

// WithAPIKey sets the BLS registration key.
func WithAPIKey(key string) Option {
	return func(f *Fetcher) { f.apiKey = key }
}

// WithTimeout bounds each live fetch.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithTTL sets how long a successful fetch is reused.
func WithTTL(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.ttl = d
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFetcher returns a fetcher over a copy of local levels, the most recent
// of which is latestYear.
func NewFetcher(local map[int]float64, latestYear int, opts ...Option) *Fetcher {
	own := make(map[int]float64, len(local))
	for y, v := range local {
		own[y] = v
	}
	f := &Fetcher{
		local:      own,
		latestYear: latestYear,
		url:        DefaultURL,
		seriesID:   DefaultSeriesID,
		timeout:    DefaultTimeout,
		ttl:        DefaultTTL,
		client:     &http.Client{},
		memo:       cache.NewMemory[map[int]float64](cache.WithMaxSize(1)),
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Levels returns the levels to deflate with. Live data, when enabled,
// overrides local years it covers; any live failure degrades to the local
// table tagged LOCAL_FALLBACK. Levels never fails.
func (f *Fetcher) Levels(ctx context.Context) Levels {
	if !f.live {
		metrics.RecordCPISource(string(SourceLocal))
		return Levels{Values: f.copyLocal(), Source: SourceLocal, Series: f.seriesID}
	}
	if v, ok := f.memo.Get(f.seriesID); ok {
		metrics.RecordCPISource(string(SourceLive))
		return Levels{Values: f.merge(v), Source: SourceLive, Series: f.seriesID}
	}

	// Shared by every waiter: one caller's cancellation must not fail the
	// others. fetch applies the timeout.
	res, err, _ := f.group.Do(f.seriesID, func() (any, error) {
		start := time.Now()
		live, err := f.fetch(context.WithoutCancel(ctx))
		metrics.RecordCPIFetchLatency(float64(time.Since(start).Milliseconds()))
		if err != nil {
			return nil, err
		}
		f.memo.Set(f.seriesID, live, f.ttl)
		return live, nil
	})
	if err != nil {
		f.logger.Warn(ctx, "live cpi unavailable, using local table",
			logger.String("series", f.seriesID), logger.Error(err))
		metrics.RecordCPISource(string(SourceLocalFallback))
		metrics.RecordErrorByComponent("cpi", "fetch_failed")
		return Levels{Values: f.copyLocal(), Source: SourceLocalFallback, Series: f.seriesID}
	}
	metrics.RecordCPISource(string(SourceLive))
	return Levels{Values: f.merge(res.(map[int]float64)), Source: SourceLive, Series: f.seriesID}
}

func (f *Fetcher) copyLocal() map[int]float64 {
	return f.merge(nil)
}

func (f *Fetcher) merge(live map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(f.local)+len(live))
	for y, v := range f.local {
		out[y] = v
	}
	for y, v := range live {
		out[y] = v
	}
	return out
}

type blsResponse struct {
	Status  string   `json:"status"`
	Message []string `json:"message"`
	Results struct {
		Series []struct {
			SeriesID string `json:"seriesID"`
			Data     []struct {
				Year   string `json:"year"`
				Period string `json:"period"`
				Value  string `json:"value"`
			} `json:"data"`
		} `json:"series"`
	} `json:"Results"`
}

func (f *Fetcher) fetch(ctx context.Context) (map[int]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	u, err := url.Parse(f.url)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &FetchError{URL: f.url, Message: "invalid URL", Cause: err}
	}
	u = u.JoinPath(f.seriesID)
	q := u.Query()
	q.Set("startyear", strconv.Itoa(f.latestYear-liveSpanYears+1))
	q.Set("endyear", strconv.Itoa(f.latestYear))
	q.Set("annualaverage", "true")
	if f.apiKey != "" {
		q.Set("registrationkey", f.apiKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{URL: f.url, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: f.url, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: f.url, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var body blsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return nil, &FetchError{URL: f.url, Message: "invalid response body", Cause: err}
	}
	if body.Status != "REQUEST_SUCCEEDED" {
		return nil, &FetchError{URL: f.url, Message: fmt.Sprintf("status %s %v", body.Status, body.Message)}
	}
	levels := annualAverages(body, f.seriesID)
	if len(levels) == 0 {
		return nil, &FetchError{URL: f.url, Message: "no annual data in response"}
	}
	return levels, nil
}

// annualAverages extracts one level per year: the published annual average
// (period M13) when present, otherwise the mean of twelve monthly values.
// Years with fewer than twelve months are skipped.
func annualAverages(body blsResponse, seriesID string) map[int]float64 {
	annual := map[int]float64{}
	sums := map[int]float64{}
	counts := map[int]int{}
	for _, s := range body.Results.Series {
		if s.SeriesID != "" && s.SeriesID != seriesID {
			continue
		}
		for _, d := range s.Data {
			year, err := strconv.Atoi(d.Year)
			if err != nil {
				continue
			}
			v, err := strconv.ParseFloat(d.Value, 64)
			if err != nil || v <= 0 {
				continue
			}
			switch {
			case d.Period == "M13":
				annual[year] = v
			case len(d.Period) == 3 && d.Period[0] == 'M':
				sums[year] += v
				counts[year]++
			}
		}
	}
	for y, n := range counts {
		if _, ok := annual[y]; !ok && n == 12 {
			annual[y] = sums[y] / 12
		}
	}
	return annual
}
