package storage

import (
	"context"
	"errors"
	json "github.com/goccy/go-json"
	"hourbot/internal/structures"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type fakeSheet struct {
	mu       sync.Mutex
	rows     [][]interface{}
	appended [][]interface{}
	query    []string
	getQuery []string
	status   int
}

func (f *fakeSheet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"denied"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":append"):
		body, _ := io.ReadAll(r.Body)
		var vr sheets.ValueRange
		if err := json.Unmarshal(body, &vr); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.appended = append(f.appended, vr.Values...)
		f.rows = append(f.rows, vr.Values...)
		f.query = append(f.query, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-1"}`))
	case r.Method == http.MethodGet:
		f.getQuery = append(f.getQuery, r.URL.RawQuery)
		data, _ := json.Marshal(map[string]interface{}{
			"range":  "Sheet1!A1:C10",
			"values": f.rows,
		})
		_, _ = w.Write(data)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestSpreadsheetStore(t *testing.T, fake *fakeSheet) *SpreadsheetStore {
	t.Helper()
	ts := httptest.NewServer(fake)
	t.Cleanup(ts.Close)

	service, err := sheets.NewService(context.Background(),
		option.WithEndpoint(ts.URL+"/"),
		option.WithHTTPClient(ts.Client()),
	)
	require.NoError(t, err)

	return NewSpreadsheetStoreWithService(service, structures.SheetsConfig{
		SpreadsheetID: "sheet-1",
		Range:         "Sheet1!A:C",
		Timeout:       5 * time.Second,
	}, time.UTC)
}

func TestSpreadsheetStore_AllEntriesFiltersRows(t *testing.T) {
	fake := &fakeSheet{rows: [][]interface{}{
		{"Phone Number", "Hours", "Date"},
		{"whatsapp:+1", "2", "2024-01-01 09:00"},
		{"whatsapp:+2", "5", "2024-01-01 09:30"},
		{"whatsapp:+1", 1.5, "2024-01-01 18:00", "3.5"},
		{"whatsapp:+1", "0", "RESET - 2024-01-02 08:00"},
		{"whatsapp:+1"},
		{"whatsapp:+1", "3", "garbage"},
	}}
	store := newTestSpreadsheetStore(t, fake)

	entries, err := store.AllEntries(context.Background(), "whatsapp:+1")
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, 2.0, entries[0].Hours)
	assert.Equal(t, at(1, 9, 0), entries[0].Timestamp)
	assert.Equal(t, 1.5, entries[1].Hours)
	assert.True(t, entries[2].Reset)
	assert.Equal(t, at(2, 8, 0), entries[2].Timestamp)
	assert.False(t, entries[3].HasTimestamp())

	require.Len(t, fake.getQuery, 1)
	assert.Contains(t, fake.getQuery[0], "valueRenderOption=UNFORMATTED_VALUE")
	assert.Contains(t, fake.getQuery[0], "dateTimeRenderOption=FORMATTED_STRING")
}

func TestSpreadsheetStore_AppendAndReset(t *testing.T) {
	fake := &fakeSheet{}
	store := newTestSpreadsheetStore(t, fake)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "whatsapp:+1", 2.5, at(3, 14, 5)))
	require.NoError(t, store.Reset(ctx, "whatsapp:+1", at(3, 15, 0)))

	require.Len(t, fake.appended, 2)
	assert.Equal(t, []interface{}{"whatsapp:+1", 2.5, "2024-01-03 14:05"}, fake.appended[0])
	assert.Equal(t, []interface{}{"whatsapp:+1", float64(0), "RESET - 2024-01-03 15:00"}, fake.appended[1])
	assert.Contains(t, fake.query[0], "valueInputOption=RAW")
	assert.Contains(t, fake.query[0], "insertDataOption=INSERT_ROWS")

	entries, err := store.AllEntries(ctx, "whatsapp:+1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[1].Reset)
}

func TestSpreadsheetStore_BackendError(t *testing.T) {
	fake := &fakeSheet{status: http.StatusForbidden}
	store := newTestSpreadsheetStore(t, fake)
	ctx := context.Background()

	_, err := store.AllEntries(ctx, "whatsapp:+1")
	assert.True(t, errors.Is(err, ErrStoreUnavailable))

	err = store.Append(ctx, "whatsapp:+1", 1, at(1, 9, 0))
	assert.True(t, errors.Is(err, ErrStoreUnavailable))
}

func TestNewSpreadsheetStore_RequiresCredentials(t *testing.T) {
	_, err := NewSpreadsheetStore(context.Background(), structures.SheetsConfig{SpreadsheetID: "x"}, time.UTC)
	assert.True(t, errors.Is(err, ErrStoreUnavailable))

	_, err = NewSpreadsheetStore(context.Background(), structures.SheetsConfig{
		CredentialsJSON: "{broken",
		SpreadsheetID:   "x",
	}, time.UTC)
	assert.True(t, errors.Is(err, ErrStoreUnavailable))
}

func TestSheetURL(t *testing.T) {
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc", SheetURL("abc"))
	assert.Empty(t, SheetURL(""))
}
