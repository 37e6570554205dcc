package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/shobi-backend/pkg/errors"
)

const maxDocumentBytes = 32 << 20

// Source yields the raw catalog document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, Format, error)
	String() string
}

// NewSource picks an HTTP source for http(s) locations and a file source otherwise.
// A non-empty format overrides detection.
func NewSource(location string, format Format, timeout time.Duration) Source {
	location = strings.TrimSpace(location)
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		return &HTTPSource{
			URL:    location,
			Format: format,
			Client: &http.Client{Timeout: timeout},
		}
	}
	return &FileSource{Path: location, Format: format}
}

// FileSource reads the document from the local filesystem.
type FileSource struct {
	Path   string
	Format Format
}

func (s *FileSource) Fetch(ctx context.Context) ([]byte, Format, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDataUnavailable, err, "read catalog file")
	}
	return data, detectFormat(s.Format, s.Path, ""), nil
}

func (s *FileSource) String() string { return s.Path }

// HTTPSource downloads the document with a bounded timeout.
type HTTPSource struct {
	URL    string
	Format Format
	Client *http.Client
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, Format, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDataUnavailable, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDataUnavailable, err, "fetch catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", pkgerrors.New(pkgerrors.CodeDataUnavailable, "fetch catalog").
			WithDetails(map[string]any{"status": resp.StatusCode})
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDataUnavailable, err, "read catalog response")
	}
	return data, detectFormat(s.Format, req.URL.Path, resp.Header.Get("Content-Type")), nil
}

func (s *HTTPSource) String() string { return s.URL }

func detectFormat(explicit Format, path, contentType string) Format {
	if explicit != "" {
		return explicit
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	if strings.Contains(strings.ToLower(contentType), "yaml") {
		return FormatYAML
	}
	return FormatJSON
}

// SourceLoader fetches and parses documents from a Source.
type SourceLoader struct {
	source  Source
	metrics loadObserver
}

type loadObserver interface {
	ObserveLoad(duration time.Duration, items, rejected int)
	ObserveFailure(duration time.Duration)
}

func NewSourceLoader(source Source, metrics loadObserver) *SourceLoader {
	return &SourceLoader{source: source, metrics: metrics}
}

// Load produces a fresh snapshot. Every failure carries CodeDataUnavailable.
func (l *SourceLoader) Load(ctx context.Context) (*Catalog, error) {
	start := time.Now()
	data, format, err := l.source.Fetch(ctx)
	if err != nil {
		l.observeFailure(start)
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeDataUnavailable, err, "fetch catalog")
		}
		return nil, err
	}
	cat, err := Parse(data, format)
	if err != nil {
		l.observeFailure(start)
		return nil, err
	}
	cat.Source = l.source.String()
	cat.LoadedAt = time.Now().UTC()
	if l.metrics != nil {
		l.metrics.ObserveLoad(time.Since(start), cat.Len(), cat.Rejected)
	}
	return cat, nil
}

func (l *SourceLoader) observeFailure(start time.Time) {
	if l.metrics != nil {
		l.metrics.ObserveFailure(time.Since(start))
	}
}

func (l *SourceLoader) String() string {
	return fmt.Sprintf("catalog loader(%s)", l.source)
}
