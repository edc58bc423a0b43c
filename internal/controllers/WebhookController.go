package controllers

import (
	"encoding/xml"
	"github.com/gookit/validate"
	"hourbot/internal/providers"
	"hourbot/internal/services"
	"net/http"
	"strings"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type WebhookController struct {
	logger  providers.Logger
	service services.TrackerServiceInterface
}

// webhookForm holds the provider fields the bot reads; everything else is ignored.
type webhookForm struct {
	From string `validate:"required"`
	Body string
}

// messagingResponse is the provider's reply envelope:
// <Response><Message>text</Message></Response>.
type messagingResponse struct {
	XMLName  xml.Name `xml:"Response"`
	Messages []string `xml:"Message"`
}

func NewWebhookController(logger providers.Logger, service services.TrackerServiceInterface) *WebhookController {
	return &WebhookController{
		logger:  logger,
		service: service,
	}
}

func (wc *WebhookController) Receive(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := webhookForm{
		From: strings.TrimSpace(r.Form.Get("From")),
		Body: r.Form.Get("Body"),
	}
	v := validate.Struct(&form)
	if !v.Validate() {
		wc.logger.Warnf(providers.TypePost, "Rejected webhook: %s", v.Errors.One())
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	reply := wc.service.Handle(r.Context(), form.From, form.Body)
	writeMessagingResponse(w, reply)
}

func writeMessagingResponse(w http.ResponseWriter, reply string) {
	body, err := xml.Marshal(messagingResponse{Messages: []string{reply}})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(body)
}
