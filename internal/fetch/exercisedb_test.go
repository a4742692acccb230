package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitness-data-pipeline/internal/model"
	"fitness-data-pipeline/pkg/utils"
)

func testFetcher(url, rawDir string) *ExerciseDBFetcher {
	return &ExerciseDBFetcher{
		Client:     &http.Client{Timeout: time.Second},
		URL:        url,
		UserAgent:  "test-agent",
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
		RawDir:     rawDir,
	}
}

func TestFetchSavesRawFileWithMetadata(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`[{"name": "Bench Press", "id": "Bench_Press"}]`))
	}))
	defer srv.Close()

	path, err := testFetcher(srv.URL, t.TempDir()).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-agent", gotUA)
	assert.Contains(t, path, "exercisedb_raw_")

	var raw struct {
		Metadata  model.Metadata   `json:"metadata"`
		Exercises []map[string]any `json:"exercises"`
	}
	require.NoError(t, utils.LoadJSON(path, &raw))
	assert.Equal(t, "ExerciseDB", raw.Metadata.String("source", ""))
	assert.Equal(t, srv.URL, raw.Metadata.String("source_url", ""))
	assert.NotEmpty(t, raw.Metadata.String("scraped_at", ""))
	require.Len(t, raw.Exercises, 1)
	assert.Equal(t, "Bench Press", raw.Exercises[0]["name"])
}

func TestFetchRetriesThenSucceeds(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := testFetcher(srv.URL, t.TempDir()).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetchGivesUpAfterMaxRetries(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testFetcher(srv.URL, t.TempDir()).Fetch(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetchRejectsNonArrayBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"}`))
	}))
	defer srv.Close()

	_, err := testFetcher(srv.URL, t.TempDir()).Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := testFetcher(srv.URL, t.TempDir())
	f.RetryDelay = time.Minute
	_, err := f.Fetch(ctx)
	assert.Error(t, err)
}
