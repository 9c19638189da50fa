package resource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPHandlerFetchesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("hello world"))
	}))
	defer srv.Close()

	data, mimeType, err := NewHTTPHandler().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "hello world" || mimeType != "text/plain" {
		t.Fatalf("Fetch = (%q, %q), want (%q, %q)", data, mimeType, "hello world", "text/plain")
	}
}

func TestHTTPHandlerNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, _, err := NewHTTPHandler().Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Fetch 404 = %v, want ErrNotFound", err)
	}
}

func TestHTTPHandlerDeclaredSizeOverLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "999999999999")
		w.Header().Set("Content-Type", "application/octet-stream")
	}))
	defer srv.Close()

	_, _, err := NewHTTPHandler().Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("Fetch oversized declared length = %v, want ErrTooLarge", err)
	}
}

func TestHTTPHandlerUnsupportedScheme(t *testing.T) {
	_, _, err := NewHTTPHandler().Fetch(context.Background(), "ftp://example.com/a")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Fetch ftp scheme = %v, want ErrUnsupported", err)
	}
}

func TestHTTPHandlerSVGNeedsRasterization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write([]byte("<svg></svg>"))
	}))
	defer srv.Close()

	_, mimeType, err := NewHTTPHandler().Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrNeedsRasterization) {
		t.Fatalf("Fetch svg = %v, want ErrNeedsRasterization", err)
	}
	if mimeType != "image/svg+xml" {
		t.Fatalf("Fetch svg mimeType = %q, want image/svg+xml", mimeType)
	}
}
