// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"cinetrack/internal/catalog"
	"cinetrack/internal/wishlist"
)

// MockCatalog is a test double for the catalog client.
type MockCatalog struct {
	NowPlayingPage catalog.Page
	PopularPage    catalog.Page
	Movies         map[int64]catalog.Movie
	DetailErr      error
}

func (m *MockCatalog) NowPlaying(ctx context.Context, page int) catalog.Page {
	return m.NowPlayingPage
}

func (m *MockCatalog) Popular(ctx context.Context, page int) catalog.Page {
	return m.PopularPage
}

func (m *MockCatalog) Featured(ctx context.Context) (*catalog.Movie, error) {
	if len(m.PopularPage.Movies) == 0 {
		return nil, errors.New("no movies")
	}
	return &m.PopularPage.Movies[0], nil
}

func (m *MockCatalog) Detail(ctx context.Context, movieID int64) (*catalog.Movie, error) {
	if m.DetailErr != nil {
		return nil, m.DetailErr
	}
	movie, ok := m.Movies[movieID]
	if !ok {
		return nil, errors.New("movie not found")
	}
	return &movie, nil
}

// MockWishlist is a test double for the wishlist manager's Load.
type MockWishlist struct {
	Entries wishlist.Entries
}

func (m *MockWishlist) Load(userEmail string) wishlist.Entries {
	if m.Entries == nil {
		return wishlist.Entries{}
	}
	return m.Entries
}

// FailingStore is a storage.Store double whose operations always fail.
type FailingStore struct{}

func (FailingStore) Get(key string) (string, bool, error) {
	return "", false, errors.New("get failed")
}

func (FailingStore) Set(key, value string) error { return errors.New("set failed") }

func (FailingStore) Delete(key string) error { return errors.New("delete failed") }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
