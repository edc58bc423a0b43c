package testutil

import (
	"context"
	"hourbot/internal/models"
	"hourbot/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many calls were recorded at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockStore implements interfaces.StoreInterface in memory.
// Set the *Err fields to make the matching call fail.
type MockStore struct {
	mu         sync.Mutex
	Entries    []models.Entry
	AppendErr  error
	ReadErr    error
	ResetErr   error
	ReadCalls  int
	WriteCalls int
	Closed     bool
}

func (m *MockStore) Name() string { return "mock" }

func (m *MockStore) Append(_ context.Context, identity string, hours float64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteCalls++
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Entries = append(m.Entries, models.NewEntry(identity, hours, at))
	return nil
}

func (m *MockStore) Reset(_ context.Context, identity string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteCalls++
	if m.ResetErr != nil {
		return m.ResetErr
	}
	m.Entries = append(m.Entries, models.NewResetEntry(identity, at))
	return nil
}

func (m *MockStore) AllEntries(_ context.Context, identity string) ([]models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadCalls++
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	out := make([]models.Entry, 0)
	for _, e := range m.Entries {
		if e.Identity == identity {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu          sync.Mutex
	Commands    map[string]int
	StoreErrors map[string]int
	StoreOps    map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Commands:    make(map[string]int),
		StoreErrors: make(map[string]int),
		StoreOps:    make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}

func (m *MockMetrics) IncCommandsTotal(command string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands[command]++
}

func (m *MockMetrics) IncStoreErrors(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreErrors[op]++
}

func (m *MockMetrics) ObserveStoreDuration(op string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreOps[op]++
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
