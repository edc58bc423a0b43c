package controllers

import (
	"context"
	"encoding/xml"
	"hourbot/internal/testutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTracker struct {
	reply    string
	identity string
	text     string
	calls    int
}

func (s *stubTracker) Handle(_ context.Context, identity, text string) string {
	s.calls++
	s.identity = identity
	s.text = text
	return s.reply
}

func postForm(handler http.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestReceive_RepliesWithMessagingEnvelope(t *testing.T) {
	tracker := &stubTracker{reply: "📅 Today: 3.5h"}
	wc := NewWebhookController(&testutil.MockLogger{}, tracker)

	rr := postForm(wc.Receive, url.Values{
		"From":       {"whatsapp:+15550001"},
		"Body":       {"  Today "},
		"MessageSid": {"SM123"},
	})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/xml", rr.Header().Get("Content-Type"))
	assert.Equal(t,
		xml.Header+"<Response><Message>📅 Today: 3.5h</Message></Response>",
		rr.Body.String())
	assert.Equal(t, "whatsapp:+15550001", tracker.identity)
	assert.Equal(t, "  Today ", tracker.text)
}

func TestReceive_EscapesReply(t *testing.T) {
	tracker := &stubTracker{reply: "a < b & c"}
	wc := NewWebhookController(&testutil.MockLogger{}, tracker)

	rr := postForm(wc.Receive, url.Values{"From": {"+1"}, "Body": {"help"}})

	var resp messagingResponse
	require.NoError(t, xml.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"a < b & c"}, resp.Messages)
	assert.Contains(t, rr.Body.String(), "a &lt; b &amp; c")
}

func TestReceive_EmptyBodyStillAnswered(t *testing.T) {
	tracker := &stubTracker{reply: "help"}
	wc := NewWebhookController(&testutil.MockLogger{}, tracker)

	rr := postForm(wc.Receive, url.Values{"From": {"+1"}})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, tracker.calls)
	assert.Equal(t, "", tracker.text)
}

func TestReceive_MissingFromRejected(t *testing.T) {
	tracker := &stubTracker{}
	logger := &testutil.MockLogger{}
	wc := NewWebhookController(logger, tracker)

	rr := postForm(wc.Receive, url.Values{"Body": {"log 2"}, "From": {"   "}})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Zero(t, tracker.calls)
	assert.Equal(t, 1, logger.Count("warn"))
}

func TestReceive_OversizedBodyRejected(t *testing.T) {
	tracker := &stubTracker{}
	wc := NewWebhookController(&testutil.MockLogger{}, tracker)

	body := "From=%2B1&Body=" + strings.Repeat("x", maxRequestBodySize+1)
	req := httptest.NewRequest(http.MethodPost, "/whatsapp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	wc.Receive(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Zero(t, tracker.calls)
}
