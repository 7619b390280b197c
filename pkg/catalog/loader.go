package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/borgmon/race-alarm/pkg/logger"
	"github.com/borgmon/race-alarm/pkg/models"
)

const maxCatalogBytes = 4 << 20

// Origin says where a loaded catalog came from.
type Origin string

const (
	OriginRemote   Origin = "remote"
	OriginFallback Origin = "fallback"
)

// Result is the outcome of Load. Races is never empty: on failure it holds
// the bundled card and Err records why the source was not used.
type Result struct {
	Races  []models.Race
	Origin Origin
	Err    error
}

// Loader fetches the catalog from an http(s) URL or a local file.
type Loader struct {
	Source  string
	Format  string // models.CatalogFormatJSON or models.CatalogFormatICal
	Client  *http.Client
	Timeout time.Duration
	Now     func() time.Time // selects the day for iCalendar feeds
	Log     logger.Logger

	mu sync.Mutex // guards Source and Format once the loader is shared
}

// NewLoader builds a Loader from the application config.
func NewLoader(cfg *models.Config, log logger.Logger) *Loader {
	return &Loader{
		Source:  cfg.CatalogURL,
		Format:  cfg.Format(),
		Client:  http.DefaultClient,
		Timeout: cfg.FetchTimeout(),
		Now:     time.Now,
		Log:     log,
	}
}

// SetSource points the loader at a new catalog source.
func (l *Loader) SetSource(source, format string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Source, l.Format = source, format
}

func (l *Loader) current() (source, format string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Source, l.Format
}

// Load fetches and validates the catalog, falling back to the bundled card
// on any failure. The source is authoritative when it loads.
func (l *Loader) Load(ctx context.Context) Result {
	source, _ := l.current()
	races, err := l.Fetch(ctx)
	if err != nil {
		l.Log.Error("Failed to fetch races from %s, falling back to local data: %v", source, err)
		return Result{Races: Static(), Origin: OriginFallback, Err: err}
	}
	l.Log.Info("Successfully fetched %d races from %s", len(races), source)
	return Result{Races: races, Origin: OriginRemote}
}

// Fetch reads, decodes and validates the source without falling back.
func (l *Loader) Fetch(ctx context.Context) ([]models.Race, error) {
	source, format := l.current()
	body, err := l.read(ctx, source)
	if err != nil {
		return nil, err
	}

	var races []models.Race
	switch format {
	case models.CatalogFormatICal:
		races, err = DecodeICal(bytes.NewReader(body), l.now())
	default:
		races, err = DecodeJSON(bytes.NewReader(body))
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(races); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return races, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		body, err := os.ReadFile(strings.TrimPrefix(source, "file://"))
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
		return body, nil
	}

	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func (l *Loader) now() time.Time {
	if l.Now == nil {
		return time.Now()
	}
	return l.Now()
}
