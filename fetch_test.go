package localsearch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultFetcher_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.json")
	if err := os.WriteFile(path, []byte(testPayload), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := (&DefaultFetcher{}).Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != testPayload {
		t.Errorf("Fetch() = %q", data)
	}
}

func TestDefaultFetcher_MissingFile(t *testing.T) {
	_, err := (&DefaultFetcher{}).Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.xml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Fetch() error = %v, want not exist", err)
	}
}

func TestDefaultFetcher_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search.xml":
			_, _ = w.Write([]byte("<search/>"))
		default:
			http.Error(w, "gone", http.StatusGone)
		}
	}))
	defer srv.Close()

	f := &DefaultFetcher{Client: srv.Client(), BaseURL: srv.URL + "/"}

	data, err := f.Fetch(context.Background(), "search.xml")
	if err != nil {
		t.Fatalf("Fetch(relative) error = %v", err)
	}
	if string(data) != "<search/>" {
		t.Errorf("Fetch(relative) = %q", data)
	}

	if _, err := f.Fetch(context.Background(), srv.URL+"/missing.xml"); err == nil {
		t.Error("Fetch() error = nil for a 410 response")
	}
}

func TestDefaultFetcher_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (&DefaultFetcher{Client: srv.Client()}).Fetch(ctx, srv.URL); !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
}

func TestDefaultFetcher_EmptyPath(t *testing.T) {
	if _, err := (&DefaultFetcher{}).Fetch(context.Background(), ""); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("Fetch() error = %v, want ErrEmptyPath", err)
	}
}
