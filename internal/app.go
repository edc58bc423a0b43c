package internal

import (
	"context"
	"fmt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"hourbot/internal/controllers"
	"hourbot/internal/providers"
	"hourbot/internal/storage/interfaces"
	"hourbot/internal/structures"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

type App struct {
	WebServer *http.Server
	conf      *structures.Config
	logger    providers.Logger
	store     interfaces.StoreInterface
}

func NewApp(healthController *controllers.HealthController, store interfaces.StoreInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	// Inner mux: bot routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	// Wrap bot routes with metrics and access logging
	instrumentedAPI := providers.RequestLogMiddleware(logger, providers.MetricsMiddleware(metrics, router, apiMux))

	// Outer mux: infrastructure + instrumented bot routes
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      providers.RecoveryMiddleware(logger, mux),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		conf:   conf,
		logger: logger,
		store:  store,
	}
}

// Run serves until SIGINT/SIGTERM or a listener error, then shuts down gracefully
// and closes the store and the logger.
func (app *App) Run() error {
	defer app.logger.Close()
	defer func() {
		if err := app.store.Close(); err != nil {
			app.logger.Errorf(providers.TypeApp, "Store close error: %s", err)
		}
	}()

	app.logger.Infof(providers.TypeApp, "Starting %s with %s store", app.conf.AppName, app.store.Name())

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", app.conf.WebServer.Host, app.conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		app.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.WebServer.Shutdown(ctx); err != nil {
		return err
	}
	app.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}
