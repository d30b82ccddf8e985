package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"tallybook/internal/currency"
	"tallybook/pkg/types/quotes"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubRateFetcher struct {
	result *quotes.RateResult
	err    error
	calls  int
}

func (f *stubRateFetcher) FetchRates() (*quotes.RateResult, error) {
	f.calls++
	return f.result, f.err
}

type capturePublisher struct {
	published [][]byte
	err       error
}

func (p *capturePublisher) Publish(data []byte) error {
	p.published = append(p.published, data)
	return p.err
}

func newTestRateService(t *testing.T, fetcher quotes.RateFetcher, publisher *capturePublisher) *RateService {
	t.Helper()

	svc, err := NewRateService(
		WithRateContext(context.Background()),
		WithRateLogger(discardLogger),
		WithRateFetcher(fetcher),
		WithRatePublisher(publisher),
	)
	require.NoError(t, err)
	return svc
}

func TestNewRateService_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []RateOption
	}{
		{
			name: "missing everything",
			opts: nil,
		},
		{
			name: "missing fetcher",
			opts: []RateOption{
				WithRateContext(context.Background()),
				WithRateLogger(discardLogger),
				WithRatePublisher(&capturePublisher{}),
			},
		},
		{
			name: "missing publisher",
			opts: []RateOption{
				WithRateContext(context.Background()),
				WithRateLogger(discardLogger),
				WithRateFetcher(&stubRateFetcher{}),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRateService(tt.opts...)
			assert.ErrorIs(t, err, ErrInvalidRateConfig)
		})
	}
}

func TestRateService_SeedsDefaultRates(t *testing.T) {
	svc := newTestRateService(t, &stubRateFetcher{err: errors.New("offline")}, &capturePublisher{})

	rates := svc.Rates()
	assert.Equal(t, currency.DefaultRates(), rates)
}

func TestRateService_RefreshSwapsSnapshot(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &stubRateFetcher{result: &quotes.RateResult{
		Rates:     map[string]float64{"TWD": 1, "USD": 0.031, "JPY": 4.8},
		Timestamp: ts,
	}}
	publisher := &capturePublisher{}
	svc := newTestRateService(t, fetcher, publisher)

	require.NoError(t, svc.Refresh())

	snap := svc.Snapshot()
	assert.Equal(t, ts, snap.Timestamp)
	assert.InDelta(t, 0.031, snap.Rates[currency.USD], 1e-12)
	assert.InDelta(t, 4.8, snap.Rates[currency.JPY], 1e-12)
}

func TestRateService_RefreshFailureKeepsPriorTable(t *testing.T) {
	fetcher := &stubRateFetcher{result: &quotes.RateResult{
		Rates:     map[string]float64{"TWD": 1, "USD": 0.04},
		Timestamp: time.Now(),
	}}
	publisher := &capturePublisher{}
	svc := newTestRateService(t, fetcher, publisher)

	require.NoError(t, svc.Refresh())

	fetcher.result = nil
	fetcher.err = errors.New("upstream down")
	err := svc.Refresh()
	assert.Error(t, err)

	rates := svc.Rates()
	assert.InDelta(t, 0.04, rates[currency.USD], 1e-12)
}

func TestRateService_RefreshPublishesSnapshot(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &stubRateFetcher{result: &quotes.RateResult{
		Rates:     map[string]float64{"TWD": 1, "USD": 0.031},
		Timestamp: ts,
	}}
	publisher := &capturePublisher{}
	svc := newTestRateService(t, fetcher, publisher)

	require.NoError(t, svc.Refresh())
	require.Len(t, publisher.published, 1)

	var snap currency.Snapshot
	require.NoError(t, json.Unmarshal(publisher.published[0], &snap))
	assert.InDelta(t, 0.031, snap.Rates[currency.USD], 1e-12)
}

func TestRateService_PublishFailureDoesNotFailRefresh(t *testing.T) {
	fetcher := &stubRateFetcher{result: &quotes.RateResult{
		Rates:     map[string]float64{"TWD": 1},
		Timestamp: time.Now(),
	}}
	publisher := &capturePublisher{err: errors.New("no subscribers")}
	svc := newTestRateService(t, fetcher, publisher)

	assert.NoError(t, svc.Refresh())
}

func TestRateService_RatesReturnsCopy(t *testing.T) {
	svc := newTestRateService(t, &stubRateFetcher{}, &capturePublisher{})

	rates := svc.Rates()
	rates[currency.USD] = 999

	assert.NotEqual(t, 999.0, svc.Rates()[currency.USD])
}
