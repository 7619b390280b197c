package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/borgmon/race-alarm/pkg/logger"
	"github.com/borgmon/race-alarm/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const remoteJSON = `[{"time":"14:00","place":"Ascot","details":"Handicap","runners":8}]`

func newTestLoader(source, format string) (*Loader, *logger.Mock) {
	log := logger.NewMock()
	return &Loader{
		Source:  source,
		Format:  format,
		Timeout: time.Second,
		Now:     func() time.Time { return time.Date(2025, 11, 5, 9, 0, 0, 0, time.UTC) },
		Log:     log,
	}, log
}

func TestLoadRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(remoteJSON))
	}))
	defer srv.Close()

	l, log := newTestLoader(srv.URL+"/races.json", models.CatalogFormatJSON)
	res := l.Load(context.Background())

	require.NoError(t, res.Err)
	assert.Equal(t, OriginRemote, res.Origin)
	assert.Equal(t, []models.Race{{Time: "14:00", Place: "Ascot", Details: "Handicap", Runners: 8}}, res.Races)
	assert.Empty(t, log.Errors())
}

func TestLoadFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{name: "status", handler: func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}},
		{name: "garbage", handler: func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>maintenance</html>"))
		}},
		{name: "invalid entries", handler: func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"time":"2pm","place":"Ascot"}]`))
		}},
		{name: "empty", handler: func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			l, log := newTestLoader(srv.URL, models.CatalogFormatJSON)
			res := l.Load(context.Background())

			assert.Error(t, res.Err)
			assert.Equal(t, OriginFallback, res.Origin)
			assert.Equal(t, Static(), res.Races)
			assert.Len(t, log.Errors(), 1)
		})
	}
}

func TestLoadTimeoutFallsBack(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	l, _ := newTestLoader(srv.URL, models.CatalogFormatJSON)
	l.Timeout = 50 * time.Millisecond
	res := l.Load(context.Background())
	assert.Equal(t, OriginFallback, res.Origin)
}

func TestLoadLocalFiles(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "races.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(remoteJSON), 0o600))

	l, _ := newTestLoader(jsonPath, models.CatalogFormatJSON)
	res := l.Load(context.Background())
	require.NoError(t, res.Err)
	assert.Len(t, res.Races, 1)

	icsPath := filepath.Join(dir, "today.ics")
	feed := icalFeed(vevent("1@cards", "DTSTART:20251105T143000", "Maiden Stakes", "York", "11")...)
	require.NoError(t, os.WriteFile(icsPath, []byte(feed), 0o600))

	l, _ = newTestLoader("file://"+icsPath, models.CatalogFormatICal)
	races, err := l.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Race{{Time: "14:30", Place: "York", Details: "Maiden Stakes", Runners: 11}}, races)
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	l, _ := newTestLoader(filepath.Join(t.TempDir(), "nope.json"), models.CatalogFormatJSON)
	res := l.Load(context.Background())
	assert.Equal(t, OriginFallback, res.Origin)
	assert.True(t, strings.Contains(res.Err.Error(), "catalog file"))
}

func TestNewLoaderFromConfig(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.CatalogURL = "https://example.com/today.ics"
	l := NewLoader(cfg, logger.Nop{})
	assert.Equal(t, models.CatalogFormatICal, l.Format)
	assert.Equal(t, 10*time.Second, l.Timeout)
}

func TestLoaderSetSource(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "races.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(remoteJSON), 0o600))

	l, _ := newTestLoader(filepath.Join(dir, "missing.json"), models.CatalogFormatJSON)
	assert.Equal(t, OriginFallback, l.Load(context.Background()).Origin)

	l.SetSource(jsonPath, models.CatalogFormatJSON)
	res := l.Load(context.Background())
	assert.Equal(t, OriginRemote, res.Origin)
	assert.Len(t, res.Races, 1)
}
