package statusapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tcl125/fredbridge/internal/hosttransport"
)

func TestHandleTelemetryReturnsLastPoll(t *testing.T) {
	tr := hosttransport.NewMockTransport()
	defer tr.Close()
	s := New(tr)
	s.PollOnce()

	router := s.Router()
	req := httptest.NewRequest(http.MethodGet, "/telemetry", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "x_counts")
}

func TestHandleHealthReportsOK(t *testing.T) {
	tr := hosttransport.NewMockTransport()
	defer tr.Close()
	s := New(tr)
	s.PollOnce()

	router := s.Router()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
