//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"hourbot/internal"
	"hourbot/internal/controllers"
	"hourbot/internal/providers"
	"hourbot/internal/services"
	"hourbot/internal/storage"
	"hourbot/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewLocationProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewCompressor,
		storage.NewStore,
		services.NewTrackerService,
		controllers.NewWebhookController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
