package feed

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"governanceevents/internal/domain"
)

// FileSource reads the feed from a local CSV file.
type FileSource struct {
	Path   string
	Parser Parser
}

// Load parses the whole file on every call.
func (s *FileSource) Load(_ context.Context) ([]*domain.Event, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open events feed: %w", err)
	}
	defer f.Close()
	return s.Parser.Parse(f)
}

// HTTPSource fetches the feed from a URL.
type HTTPSource struct {
	URL    string
	Client *http.Client
	Parser Parser
}

// Load fetches and parses the feed. A non-2xx response is an error.
func (s *HTTPSource) Load(ctx context.Context) ([]*domain.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch events feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch events feed: unexpected status %d", resp.StatusCode)
	}
	return s.Parser.Parse(resp.Body)
}

// NewSource returns an HTTPSource for http(s) locations and a FileSource otherwise.
func NewSource(location string, p Parser) domain.EventSource {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return &HTTPSource{URL: location, Parser: p}
	}
	return &FileSource{Path: location, Parser: p}
}
