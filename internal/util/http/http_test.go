package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); !strings.HasPrefix(got, UserAgentName+"/") {
			t.Errorf("User-Agent = %q, want prefix %q", got, UserAgentName+"/")
		}
		if got := r.Header.Get("X-Custom"); got != "value" {
			t.Errorf("X-Custom header = %q, want %q", got, "value")
		}
		fmt.Fprint(w, "payload")
	}))
	defer srv.Close()

	data, err := Fetch(context.Background(), srv.URL, FetchOptions{
		Headers: map[string]string{"X-Custom": "value"},
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("Fetch() = %q, want %q", data, "payload")
	}
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL, FetchOptions{})
	if err == nil {
		t.Fatal("Fetch() expected error for 404 response, got nil")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("Fetch() error = %v, want status code in message", err)
	}
}

func TestFetchSizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("x", 64))
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.URL, FetchOptions{MaxBytes: 16}); err == nil {
		t.Error("Fetch() expected error for oversized body, got nil")
	}
}

func TestFetchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "payload")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Fetch(ctx, srv.URL, FetchOptions{}); err == nil {
		t.Error("Fetch() expected error for cancelled context, got nil")
	}
}

func TestFetchInvalidURL(t *testing.T) {
	if _, err := Fetch(context.Background(), "://not-a-url", FetchOptions{}); err == nil {
		t.Error("Fetch() expected error for malformed URL, got nil")
	}
}
