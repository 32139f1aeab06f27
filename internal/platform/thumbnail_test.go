package platform

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestThumbnailService_FetchCaches(t *testing.T) {
	var hits int32
	payload := []byte("\x89PNG fake image")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write(payload)
	}))
	defer srv.Close()

	s := NewThumbnailService()

	for i := 0; i < 2; i++ {
		data, err := s.Fetch(context.Background(), srv.URL+"/thumb.png")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !bytes.Equal(data, payload) {
			t.Errorf("Unexpected payload %q", data)
		}
	}

	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("Expected a single request, got %d", hits)
	}
}

func TestThumbnailService_FetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write(bytes.Repeat([]byte("a"), 64))
	}))
	defer srv.Close()

	s := NewThumbnailService()
	s.maxBytes = 32

	tests := []struct {
		name string
		url  string
	}{
		{"empty url", ""},
		{"not found", srv.URL + "/missing"},
		{"too large", srv.URL + "/big"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Fetch(context.Background(), tt.url); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
