package providers

import (
	"hourbot/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freshRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	})
	return reg
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/whatsapp", 200)
	m.ObserveRequestDuration("/whatsapp", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncCommandsTotal("log")
	m.IncStoreErrors("append")
	m.ObserveStoreDuration("append", time.Millisecond)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	freshRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	reg := freshRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	mp := m.(*MetricsProvider)

	m.IncRequestsTotal("/whatsapp", 200)
	m.IncRequestsTotal("/whatsapp", 201)
	m.IncRequestsTotal("/whatsapp", 400)
	m.ObserveRequestDuration("/whatsapp", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncCommandsTotal("log")
	m.IncCommandsTotal("log")
	m.IncCommandsTotal("today")
	m.IncStoreErrors("append")
	m.ObserveStoreDuration("all_entries", 30*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(mp.requestsTotal.WithLabelValues("/whatsapp", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(mp.requestsTotal.WithLabelValues("/whatsapp", "4xx")))
	assert.Equal(t, 2.0, testutil.ToFloat64(mp.commandsTotal.WithLabelValues("log")))
	assert.Equal(t, 1.0, testutil.ToFloat64(mp.storeErrors.WithLabelValues("append")))
	assert.Equal(t, 1.0, testutil.ToFloat64(mp.cacheHits))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "hourbot_store_duration_seconds")
	assert.Contains(t, names, "hourbot_request_duration_seconds")
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
