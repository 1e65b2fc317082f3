package embed

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"length mismatch", []float32{1, 2}, []float32{1}, 0},
		{"empty", nil, nil, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestLexicalSimilarity(t *testing.T) {
	var s LexicalSimilarity
	ctx := context.Background()

	same, _ := s.Similarity(ctx, "A escola forma cidadãos.", "a ESCOLA forma cidadãos")
	if math.Abs(same-1) > 1e-9 {
		t.Errorf("identical bags = %f, want 1", same)
	}

	none, _ := s.Similarity(ctx, "governo federal", "escola pública")
	if none != 0 {
		t.Errorf("disjoint bags = %f, want 0", none)
	}

	empty, _ := s.Similarity(ctx, "", "algo")
	if empty != 0 {
		t.Errorf("empty = %f, want 0", empty)
	}
}

func newOllamaServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			json.NewEncoder(w).Encode(ollamaTagsResponse{Models: []ollamaModel{{Name: "nomic-embed-text:latest"}}})
		case "/api/embed":
			atomic.AddInt32(calls, 1)
			var req ollamaEmbedRequest
			json.NewDecoder(r.Body).Decode(&req)
			vec := []float32{1, 0}
			if req.Input == "b" {
				vec = []float32{0, 1}
			}
			json.NewEncoder(w).Encode(ollamaEmbedResponse{Embeddings: [][]float32{vec}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOllamaEmbedder_AvailableMatchesLatestTag(t *testing.T) {
	var calls int32
	srv := newOllamaServer(t, &calls)

	e := NewOllamaEmbedder(OllamaConfig{Endpoint: srv.URL, Model: "nomic-embed-text"})
	if !e.Available() {
		t.Error("Available() = false, want true")
	}

	other := NewOllamaEmbedder(OllamaConfig{Endpoint: srv.URL, Model: "mxbai"})
	if other.Available() {
		t.Error("Available() = true for missing model")
	}
}

func TestOllamaEmbedder_EmbedMemoizes(t *testing.T) {
	var calls int32
	srv := newOllamaServer(t, &calls)
	e := NewOllamaEmbedder(OllamaConfig{Endpoint: srv.URL, Model: "nomic-embed-text"})

	for range 3 {
		if _, err := e.Embed(context.Background(), "a"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server calls = %d, want 1", got)
	}
}

func TestEmbeddingSimilarity(t *testing.T) {
	var calls int32
	srv := newOllamaServer(t, &calls)
	s := NewEmbeddingSimilarity(NewOllamaEmbedder(OllamaConfig{Endpoint: srv.URL, Model: "nomic-embed-text"}))

	got, err := s.Similarity(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("got %f, want 0", got)
	}

	got, _ = s.Similarity(context.Background(), "a", "a")
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("got %f, want 1", got)
	}
}

func TestOllamaEmbedder_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := NewOllamaEmbedder(OllamaConfig{Endpoint: srv.URL, Model: "m"})
	if _, err := e.Embed(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}
}
