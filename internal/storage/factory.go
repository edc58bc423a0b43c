package storage

import (
	"context"
	"fmt"
	"hourbot/internal/providers"
	"hourbot/internal/storage/interfaces"
	"hourbot/internal/structures"
	"time"
)

// ResolveDriver picks the backend. "auto" means sheets when both the credentials
// and the spreadsheet id are configured, the local file otherwise.
func ResolveDriver(conf *structures.Config) string {
	if conf.Storage.Driver != "" && conf.Storage.Driver != "auto" {
		return conf.Storage.Driver
	}
	if conf.Sheets.CredentialsJSON != "" && conf.Sheets.SpreadsheetID != "" {
		return "sheets"
	}
	return "file"
}

// NewStore builds the configured backend and wraps it with caching and metrics.
// A backend that fails to connect is logged and replaced by an UnavailableStore,
// so the bot keeps serving and answers commands with a retry-later reply.
func NewStore(conf *structures.Config, compressor interfaces.CompressorInterface, loc *time.Location, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) (interfaces.StoreInterface, error) {
	var (
		store interfaces.StoreInterface
		err   error
	)

	driver := ResolveDriver(conf)
	switch driver {
	case "sheets":
		var sheetsStore *SpreadsheetStore
		if sheetsStore, err = NewSpreadsheetStore(context.Background(), conf.Sheets, loc); err == nil {
			store = sheetsStore
		}
	case "sqlite":
		var sqliteStore *SQLiteStore
		if sqliteStore, err = NewSQLiteStore(conf.Persistence.SQLitePath, loc); err == nil {
			store = sqliteStore
		}
	case "file":
		store = NewFileStore(conf.Persistence.FilePath, compressor, loc)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
	if err != nil {
		logger.Errorf(providers.TypeApp, "Failed to connect %s store: %s", driver, err)
		store = NewUnavailableStore(driver, err)
	}

	logger.Infof(providers.TypeApp, "Using %s store", store.Name())

	return NewInstrumentedStore(NewCachedStore(store, cache, logger), metrics), nil
}
