package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"tallybook/internal/currency"
	tickerScheduler "tallybook/pkg/integrations/scheduler"
	"tallybook/pkg/types/pubsub"
	"tallybook/pkg/types/quotes"
	"tallybook/pkg/types/scheduler"

	"github.com/pkg/errors"
)

var ErrInvalidRateConfig = errors.New("invalid rate service config")

// RateService keeps the current exchange-rate snapshot. It refreshes on a
// schedule and on demand; a failed fetch keeps the last known table. Every
// successful refresh is published so SSE subscribers see the new table.
type RateService struct {
	ctx       context.Context
	logger    *slog.Logger
	fetcher   quotes.RateFetcher
	publisher pubsub.Publisher
	interval  time.Duration
	scheduler scheduler.Scheduler

	mu       sync.RWMutex
	snapshot currency.Snapshot
}

type RateOption func(*RateService)

func WithRateContext(ctx context.Context) RateOption {
	return func(s *RateService) {
		s.ctx = ctx
	}
}

func WithRateLogger(l *slog.Logger) RateOption {
	return func(s *RateService) {
		s.logger = l
	}
}

func WithRateFetcher(f quotes.RateFetcher) RateOption {
	return func(s *RateService) {
		s.fetcher = f
	}
}

func WithRatePublisher(p pubsub.Publisher) RateOption {
	return func(s *RateService) {
		s.publisher = p
	}
}

func WithRateInterval(d time.Duration) RateOption {
	return func(s *RateService) {
		s.interval = d
	}
}

func (s *RateService) IsValid() error {
	switch {
	case s.ctx == nil:
		return errors.Wrap(ErrInvalidRateConfig, "ctx cannot be nil")
	case s.logger == nil:
		return errors.Wrap(ErrInvalidRateConfig, "logger cannot be nil")
	case s.fetcher == nil:
		return errors.Wrap(ErrInvalidRateConfig, "rate fetcher cannot be nil")
	case s.publisher == nil:
		return errors.Wrap(ErrInvalidRateConfig, "publisher cannot be nil")
	default:
		return nil
	}
}

func NewRateService(opts ...RateOption) (*RateService, error) {
	s := &RateService{
		interval: scheduler.IntervalHourly,
		snapshot: currency.Snapshot{Rates: currency.DefaultRates()},
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.IsValid(); err != nil {
		return nil, err
	}

	sched, err := tickerScheduler.New(
		tickerScheduler.WithContext(s.ctx),
		tickerScheduler.WithLogger(s.logger),
		tickerScheduler.WithInterval(s.interval),
		tickerScheduler.WithRunOnStart(),
		tickerScheduler.WithHandler(s.Refresh),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create scheduler")
	}
	s.scheduler = sched

	return s, nil
}

func (s *RateService) Start() error {
	return s.scheduler.Start()
}

func (s *RateService) Stop() {
	s.scheduler.Stop()
}

// Refresh fetches the current table. On failure the prior snapshot stays in
// place and the error is returned for logging.
func (s *RateService) Refresh() error {
	result, err := s.fetcher.FetchRates()
	if err != nil {
		s.logger.Warn("rate refresh failed, keeping last known table", "error", err)
		return errors.Wrap(err, "failed to fetch rates")
	}

	table := make(currency.RateTable, len(result.Rates))
	for code, rate := range result.Rates {
		table[currency.Code(code)] = rate
	}

	s.mu.Lock()
	s.snapshot = currency.Snapshot{Rates: table, Timestamp: result.Timestamp}
	snapshot := s.snapshot
	s.mu.Unlock()

	s.logger.Info("exchange rates refreshed", "currencies", len(table), "timestamp", result.Timestamp)

	data, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "failed to marshal rate snapshot")
	}
	if err := s.publisher.Publish(data); err != nil {
		s.logger.Warn("failed to publish rate update", "error", err)
	}
	return nil
}

// Rates returns a copy of the current table.
func (s *RateService) Rates() currency.RateTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Rates.Clone()
}

// Snapshot returns the current table together with its provider timestamp.
func (s *RateService) Snapshot() currency.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return currency.Snapshot{Rates: s.snapshot.Rates.Clone(), Timestamp: s.snapshot.Timestamp}
}
