package internal

import (
	"hourbot/internal/controllers"
	"hourbot/internal/services"
	"hourbot/internal/structures"
	"hourbot/internal/testutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *structures.Config {
	conf := &structures.Config{AppName: "test"}
	conf.WebServer.Host = "127.0.0.1"
	conf.WebServer.Port = 5000
	conf.Webhook.Path = "/whatsapp"
	conf.Storage.Driver = "file"
	conf.Tracker.MaxHours = 24
	conf.Tracker.HistorySize = 5
	conf.Tracker.DailyDays = 7
	return conf
}

func testControllers(conf *structures.Config, store *testutil.MockStore, logger *testutil.MockLogger) (*controllers.WebhookController, *controllers.HealthController) {
	tracker := services.NewTrackerService(conf, store, logger, testutil.NewMockMetrics(), time.UTC)
	return controllers.NewWebhookController(logger, tracker), controllers.NewHealthController(store)
}

func TestInitRoutes_RegistersWebhookAndHome(t *testing.T) {
	conf := testConfig()
	wc, hc := testControllers(conf, &testutil.MockStore{}, &testutil.MockLogger{})

	router := InitRoutes(wc, hc, conf)
	routes := router.GetRoutes()
	require.Len(t, routes, 2)

	assert.True(t, router.Has("/whatsapp"))
	assert.True(t, router.Has("/"))
}

func TestInitRoutes_CustomWebhookPath(t *testing.T) {
	conf := testConfig()
	conf.Webhook.Path = "/sms"
	wc, hc := testControllers(conf, &testutil.MockStore{}, &testutil.MockLogger{})

	router := InitRoutes(wc, hc, conf)
	assert.True(t, router.Has("/sms"))
	assert.False(t, router.Has("/whatsapp"))
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	conf := testConfig()
	wc, hc := testControllers(conf, &testutil.MockStore{}, &testutil.MockLogger{})

	mux := http.NewServeMux()
	for _, r := range InitRoutes(wc, hc, conf).GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}

	// webhook only accepts POST
	req := httptest.NewRequest(http.MethodGet, "/whatsapp", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	// home only accepts GET/HEAD
	req = httptest.NewRequest(http.MethodPost, "/", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
