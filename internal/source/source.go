// Package source reads topology bytes from a file path or an http(s) URL.
package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultTimeout bounds a URL fetch when the caller's client has none.
const DefaultTimeout = 30 * time.Second

// FetchError reports a location that could not be read.
type FetchError struct {
	Location string
	Status   int // HTTP status, 0 for transport and file errors
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.Location, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Location, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher loads the raw bytes behind a location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// Loader is the default Fetcher.
type Loader struct {
	Client *http.Client
	Logger *slog.Logger
}

func New(log *slog.Logger) *Loader {
	return &Loader{Client: &http.Client{Timeout: DefaultTimeout}, Logger: log}
}

// IsURL reports whether location is fetched over HTTP.
func IsURL(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

func (l *Loader) Fetch(ctx context.Context, location string) ([]byte, error) {
	log := l.Logger
	if log == nil {
		log = slog.Default()
	}
	t0 := time.Now()
	var (
		data []byte
		err  error
	)
	if IsURL(location) {
		data, err = l.fetchURL(ctx, location)
	} else {
		data, err = readFile(location)
	}
	if err != nil {
		log.Error("fetch_error", "location", location, "err", err)
		return nil, err
	}
	log.Debug("fetch_ok", "location", location, "bytes", len(data), "duration_ms", time.Since(t0).Milliseconds())
	return data, nil
}

func (l *Loader) fetchURL(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, &FetchError{Location: location, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Location: location, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Location: location, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Location: location, Err: err}
	}
	return data, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FetchError{Location: path, Err: err}
	}
	return data, nil
}
