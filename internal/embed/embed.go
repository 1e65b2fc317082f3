// Package embed provides text embeddings and sentence similarity.
package embed

import (
	"context"
	"math"
)

// Embedder generates vector embeddings from text.
type Embedder interface {
	// Available reports whether the embedding service is reachable.
	Available() bool
	// Embed returns the embedding of text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Similarity scores how related two sentences are, in [0, 1].
type Similarity interface {
	Name() string
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// CosineSimilarity returns the cosine of the angle between a and b.
// Mismatched lengths and zero vectors yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// EmbeddingSimilarity scores sentence pairs by embedding cosine.
type EmbeddingSimilarity struct {
	embedder Embedder
}

// NewEmbeddingSimilarity wraps an Embedder.
func NewEmbeddingSimilarity(e Embedder) *EmbeddingSimilarity {
	return &EmbeddingSimilarity{embedder: e}
}

// Name returns "embedding".
func (s *EmbeddingSimilarity) Name() string { return "embedding" }

// Similarity embeds both sentences and returns their cosine, clamped to [0, 1].
func (s *EmbeddingSimilarity) Similarity(ctx context.Context, a, b string) (float64, error) {
	va, err := s.embedder.Embed(ctx, a)
	if err != nil {
		return 0, err
	}
	vb, err := s.embedder.Embed(ctx, b)
	if err != nil {
		return 0, err
	}
	return clamp01(CosineSimilarity(va, vb)), nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
