package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/civicviz/reasons311/internal/model"
)

// Fetcher opens a CSV source for reading.
type Fetcher interface {
	Open(ctx context.Context, source string) (io.ReadCloser, error)
	Schemes() []string
}

// Registry holds fetchers keyed by URL scheme.
type Registry struct {
	fetchers map[string]Fetcher
}

// NewRegistry creates an empty fetcher registry.
func NewRegistry() *Registry {
	return &Registry{fetchers: make(map[string]Fetcher)}
}

// Register adds a fetcher for each of its schemes. Panics on duplicate scheme.
func (r *Registry) Register(f Fetcher) {
	for _, s := range f.Schemes() {
		key := strings.ToLower(s)
		if _, ok := r.fetchers[key]; ok {
			panic("duplicate fetcher scheme: " + key)
		}
		r.fetchers[key] = f
	}
}

// Get returns the fetcher for a scheme, or nil.
func (r *Registry) Get(scheme string) Fetcher {
	return r.fetchers[strings.ToLower(scheme)]
}

// Resolve picks the fetcher for source. Bare paths use the "file" scheme.
func (r *Registry) Resolve(source string) (Fetcher, error) {
	scheme := SchemeOf(source)
	f := r.Get(scheme)
	if f == nil {
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedSource, scheme)
	}
	return f, nil
}

// DefaultRegistry returns a registry with file and HTTP(S) fetchers.
// A nil client means http.DefaultClient.
func DefaultRegistry(client *http.Client) *Registry {
	r := NewRegistry()
	r.Register(FileFetcher{})
	r.Register(&HTTPFetcher{Client: client})
	return r
}

// SchemeOf returns the lower-cased URL scheme of source, or "file" for plain
// paths (including Windows drive paths like C:\data.csv).
func SchemeOf(source string) string {
	u, err := url.Parse(source)
	if err != nil || len(u.Scheme) <= 1 {
		return "file"
	}
	return strings.ToLower(u.Scheme)
}

// FileFetcher reads local files.
type FileFetcher struct{}

// Schemes returns the schemes handled by FileFetcher.
func (FileFetcher) Schemes() []string { return []string{"file"} }

// Open opens a path or file:// URL.
func (FileFetcher) Open(_ context.Context, source string) (io.ReadCloser, error) {
	path := source
	if strings.HasPrefix(strings.ToLower(source), "file://") {
		u, err := url.Parse(source)
		if err != nil {
			return nil, fmt.Errorf("parsing file URL: %w", err)
		}
		path = u.Path
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return f, nil
}

// HTTPFetcher issues a GET for http and https sources.
type HTTPFetcher struct {
	Client *http.Client
}

// Schemes returns the schemes handled by HTTPFetcher.
func (*HTTPFetcher) Schemes() []string { return []string{"http", "https"} }

// Open fetches source. Any non-2xx status is an error.
func (h *HTTPFetcher) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, */*;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", source, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %s", source, resp.Status)
	}
	return resp.Body, nil
}

// Load fetches source, parses it, and coerces counts. Every failure is
// returned as a *DataLoadError.
func Load(ctx context.Context, reg *Registry, source string, cols Columns, log *zap.Logger) (model.Dataset, error) {
	if log == nil {
		log = zap.NewNop()
	}

	fetcher, err := reg.Resolve(source)
	if err != nil {
		return nil, &DataLoadError{Source: source, Err: err}
	}

	log.Debug("fetching dataset", zap.String("source", source), zap.String("scheme", SchemeOf(source)))
	rc, err := fetcher.Open(ctx, source)
	if err != nil {
		return nil, &DataLoadError{Source: source, Err: err}
	}
	defer rc.Close()

	rows, err := Read(rc, cols)
	if err != nil {
		return nil, &DataLoadError{Source: source, Err: err}
	}

	data := Coerce(rows)
	log.Debug("dataset loaded", zap.String("source", source), zap.Int("records", len(data)))
	return data, nil
}
