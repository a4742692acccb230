package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateRunRejectsInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	CreateRun(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRunRejectsUnknownDataset(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs",
		strings.NewReader(`{"dataset": "weather"}`))
	rec := httptest.NewRecorder()

	CreateRun(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunIDFromPath(t *testing.T) {
	rec := httptest.NewRecorder()
	id, ok := runIDFromPath(rec, "/api/v1/runs/abc-123/errors", "/errors")
	assert.True(t, ok)
	assert.Equal(t, "abc-123", id)

	rec = httptest.NewRecorder()
	_, ok = runIDFromPath(rec, "/api/v1/runs//errors", "/errors")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	_, ok = runIDFromPath(rec, "/api/v1/runs/a/b/errors", "/errors")
	assert.False(t, ok)
}

func TestDownloadFileRequiresRunAndFile(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/download/run-1", nil)
	rec := httptest.NewRecorder()

	DownloadFile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
