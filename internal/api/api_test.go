package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itgubeeva-pixel/carecloud/internal"
	"github.com/itgubeeva-pixel/carecloud/internal/achievements"
	"github.com/itgubeeva-pixel/carecloud/internal/service"
	"github.com/itgubeeva-pixel/carecloud/internal/storage"
)

func newTestRouter(t *testing.T) (http.Handler, *service.Service) {
	t.Helper()
	store, err := storage.NewMemorySQLite(internal.NopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	svc := service.New(store, achievements.NewEvaluator(store, internal.NopLogger{}), internal.NopLogger{})
	return NewRouter(svc, internal.NopLogger{}), svc
}

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doGet(t, router, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestStatsUnknownUser(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doGet(t, router, "/api/stats/12345")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatsBadID(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doGet(t, router, "/api/stats/notanumber")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsKnownUser(t *testing.T) {
	router, svc := newTestRouter(t)

	_, err := svc.CommitEntry(context.Background(), service.CommitEntryRequest{
		TelegramID: 777, Username: "alice",
		Mood: 8, Energy: 7, Anxiety: 2, SleepHours: 7.5,
		Tags: []string{"sport"}, Note: "ran 5k",
	})
	require.NoError(t, err)

	rec := doGet(t, router, "/api/stats/777")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool         `json:"success"`
		Data    statsPayload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Data.TotalEntries)
	assert.Equal(t, 8.0, body.Data.AvgMood)
	assert.Equal(t, 1, body.Data.Streak)
	assert.NotEmpty(t, body.Data.Insights)
	require.Len(t, body.Data.Entries, 1)
	assert.Equal(t, []string{"sport"}, body.Data.Entries[0].Tags)
	assert.Equal(t, "ran 5k", body.Data.Entries[0].Note)
}
