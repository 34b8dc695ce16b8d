// Package fixture reads the static JSON reference files used to seed an
// empty store and to contribute pre-booked appointments.
package fixture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ErrFetchFailed is returned when a fixture file cannot be retrieved. It is
// never fatal to callers: a missing fixture contributes nothing.
var ErrFetchFailed = errors.New("fixture fetch failed")

const (
	FileAccounts     = "accounts.json"
	FilePatients     = "patients.json"
	FileDoctors      = "doctors.json"
	FileMedicines    = "medicines.json"
	FileAppointments = "appointments.json"
)

// Source retrieves the raw bytes of a named fixture file.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// HTTPSource fetches fixtures relative to a base URL.
type HTTPSource struct {
	baseURL   string
	client    *http.Client
	cacheBust bool
	now       func() time.Time
}

// NewHTTPSource creates a source under baseURL. With cacheBust set every
// request carries a `_=<unix-ms>` query parameter so intermediaries never
// serve a stale copy.
func NewHTTPSource(baseURL string, client *http.Client, cacheBust bool) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPSource{baseURL: baseURL, client: client, cacheBust: cacheBust, now: time.Now}
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	u, err := url.Parse(s.baseURL + "/" + name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, name, err)
	}
	if s.cacheBust {
		q := u.Query()
		q.Set("_", strconv.FormatInt(s.now().UnixMilli(), 10))
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, name, err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d", ErrFetchFailed, name, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, name, err)
	}
	return body, nil
}

// DirSource reads fixtures from a local directory.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (s *DirSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, name, err)
	}
	return data, nil
}
