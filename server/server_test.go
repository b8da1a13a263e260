package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocrserver/extraction"
	"ocrserver/internal/config"
	"ocrserver/units"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{Port: "8080", MatchMinScore: 95}
	registry := units.Default()
	return NewServer(cfg, registry, extraction.NewPipeline(registry, cfg.MatchMinScore))
}

func postJSON(t *testing.T, srv *Server, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "identity")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Accept-Encoding", "identity")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHandleExtractValue(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv, "/api/extraction/value", ExtractValueRequest{
		Text:       "Net Wt 2.5 kg approx",
		EntityName: "item_weight",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ExtractValueResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Prediction)
	assert.Equal(t, "2.5 kilogram", *resp.Prediction)
}

// Отсутствие предсказания — это null в ответе, а не ошибка HTTP
func TestHandleExtractValue_Absence(t *testing.T) {
	srv := newTestServer(t)

	tests := []ExtractValueRequest{
		{Text: "no measurements here", EntityName: "item_weight"},
		{Text: "Net Wt 2.5 kg approx", EntityName: "unknown_entity"},
	}

	for _, req := range tests {
		rec := postJSON(t, srv, "/api/extraction/value", req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ExtractValueResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Nil(t, resp.Prediction)
	}
}

func TestHandleExtractValue_BadRequest(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv, "/api/extraction/value", map[string]string{"text": "12 kg"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExtractUnits(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv, "/api/extraction/units", ExtractUnitsRequest{
		Text: "Box 10cm x 5 cm, Net Wt 2.5 kg",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Units []ExtractedUnit `json:"units"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Units, 3)
	assert.Equal(t, ExtractedUnit{"10", "centimetre"}, resp.Units[0])
	assert.Equal(t, ExtractedUnit{"2.5", "kilogram"}, resp.Units[2])
}
