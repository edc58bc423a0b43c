package storage

import (
	"context"
	"hourbot/internal/models"
	"hourbot/internal/providers"
	"hourbot/internal/storage/interfaces"
	"time"
)

// InstrumentedStore records duration and failures of every store call.
type InstrumentedStore struct {
	inner   interfaces.StoreInterface
	metrics providers.MetricsProviderInterface
}

func NewInstrumentedStore(inner interfaces.StoreInterface, metrics providers.MetricsProviderInterface) *InstrumentedStore {
	return &InstrumentedStore{inner: inner, metrics: metrics}
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	s.metrics.ObserveStoreDuration(op, time.Since(start))
	if err != nil {
		s.metrics.IncStoreErrors(op)
	}
}

func (s *InstrumentedStore) Name() string {
	return s.inner.Name()
}

func (s *InstrumentedStore) Append(ctx context.Context, identity string, hours float64, at time.Time) error {
	start := time.Now()
	err := s.inner.Append(ctx, identity, hours, at)
	s.observe("append", start, err)
	return err
}

func (s *InstrumentedStore) Reset(ctx context.Context, identity string, at time.Time) error {
	start := time.Now()
	err := s.inner.Reset(ctx, identity, at)
	s.observe("reset", start, err)
	return err
}

func (s *InstrumentedStore) AllEntries(ctx context.Context, identity string) ([]models.Entry, error) {
	start := time.Now()
	entries, err := s.inner.AllEntries(ctx, identity)
	s.observe("all_entries", start, err)
	return entries, err
}

func (s *InstrumentedStore) Close() error {
	return s.inner.Close()
}
