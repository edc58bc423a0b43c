package internal

import (
	"hourbot/internal/controllers"
	"hourbot/internal/providers"
	"hourbot/internal/structures"
	"net/http"
)

func InitRoutes(webhookController *controllers.WebhookController, healthController *controllers.HealthController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post(conf.Webhook.Path, http.HandlerFunc(webhookController.Receive))
	routers.Get("/", http.HandlerFunc(healthController.Home))
	return routers
}
