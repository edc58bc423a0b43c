package storage

import (
	"context"
	"hourbot/internal/structures"
	"hourbot/internal/testutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDriver(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		creds  string
		id     string
		want   string
	}{
		{"auto without sheets config", "auto", "", "", "file"},
		{"empty driver", "", "", "", "file"},
		{"auto with only id", "auto", "", "sheet", "file"},
		{"auto with only creds", "auto", "{}", "", "file"},
		{"auto with sheets config", "auto", "{}", "sheet", "sheets"},
		{"explicit sqlite", "sqlite", "{}", "sheet", "sqlite"},
		{"explicit file", "file", "{}", "sheet", "file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &structures.Config{}
			conf.Storage.Driver = tt.driver
			conf.Sheets.CredentialsJSON = tt.creds
			conf.Sheets.SpreadsheetID = tt.id
			assert.Equal(t, tt.want, ResolveDriver(conf))
		})
	}
}

func TestNewStore_File(t *testing.T) {
	conf := &structures.Config{}
	conf.Storage.Driver = "file"
	conf.Persistence.FilePath = filepath.Join(t.TempDir(), "hours.json")
	metrics := testutil.NewMockMetrics()
	logger := &testutil.MockLogger{}

	store, err := NewStore(conf, PlainCompression{}, time.UTC, testutil.NewMockCache(), metrics, logger)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "file", store.Name())
	assert.IsType(t, &InstrumentedStore{}, store)
	assert.Equal(t, 1, logger.Count("info"))

	require.NoError(t, store.Append(context.Background(), "A", 1, time.Now()))
	assert.Equal(t, 1, metrics.StoreOps["append"])
}

func TestNewStore_SQLite(t *testing.T) {
	conf := &structures.Config{}
	conf.Storage.Driver = "sqlite"
	conf.Persistence.SQLitePath = filepath.Join(t.TempDir(), "hours.db")

	store, err := NewStore(conf, PlainCompression{}, time.UTC, testutil.NewMockCache(), testutil.NewMockMetrics(), &testutil.MockLogger{})
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, "sqlite", store.Name())
}

func TestNewStore_BrokenSheetsCredentialsDegrade(t *testing.T) {
	conf := &structures.Config{}
	conf.Storage.Driver = "auto"
	conf.Sheets.CredentialsJSON = "not-json"
	conf.Sheets.SpreadsheetID = "abc"
	metrics := testutil.NewMockMetrics()
	logger := &testutil.MockLogger{}

	store, err := NewStore(conf, PlainCompression{}, time.UTC, testutil.NewMockCache(), metrics, logger)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	assert.Equal(t, "sheets", store.Name())
	assert.Equal(t, 1, logger.Count("error"))

	ctx := context.Background()
	_, err = store.AllEntries(ctx, "A")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, store.Append(ctx, "A", 1, time.Now()), ErrStoreUnavailable)
	assert.ErrorIs(t, store.Reset(ctx, "A", time.Now()), ErrStoreUnavailable)
	assert.Equal(t, 1, metrics.StoreErrors["all_entries"])
}

func TestNewStore_SQLiteOpenFailureDegrades(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	conf := &structures.Config{}
	conf.Storage.Driver = "sqlite"
	conf.Persistence.SQLitePath = filepath.Join(blocker, "hours.db")

	store, err := NewStore(conf, PlainCompression{}, time.UTC, testutil.NewMockCache(), testutil.NewMockMetrics(), &testutil.MockLogger{})
	require.NoError(t, err)
	assert.IsType(t, &InstrumentedStore{}, store)

	_, err = store.AllEntries(context.Background(), "A")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestNewStore_UnknownDriver(t *testing.T) {
	conf := &structures.Config{}
	conf.Storage.Driver = "redis"
	_, err := NewStore(conf, PlainCompression{}, time.UTC, testutil.NewMockCache(), testutil.NewMockMetrics(), &testutil.MockLogger{})
	assert.Error(t, err)
}
