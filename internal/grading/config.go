package grading

import (
	"os"
	"strconv"
	"time"

	"github.com/abhisek/redacao/internal/embed"
	"github.com/abhisek/redacao/internal/markers"
	"github.com/abhisek/redacao/internal/nlp"
)

// Config holds service configuration.
type Config struct {
	// MarkersPath is an optional YAML marker file; empty uses the built-in tables.
	MarkersPath string

	// UDPipe is used for parsing when its endpoint is set.
	UDPipe nlp.UDPipeConfig
	// Ollama is used for sentence similarity when its endpoint is set and
	// the model is available.
	Ollama embed.OllamaConfig

	// ExternalTimeout bounds each collaborator call.
	ExternalTimeout time.Duration
	// Workers bounds concurrent collaborator calls.
	Workers int
	// RunHistory is how many grading runs are kept. Zero keeps all.
	RunHistory int

	ElementStrictness    markers.Strictness
	ConnectiveStrictness markers.Strictness
}

// DefaultConfig returns the offline defaults: no UDPipe, no Ollama.
func DefaultConfig() Config {
	udpipe := nlp.DefaultUDPipeConfig()
	udpipe.Endpoint = ""
	ollama := embed.DefaultOllamaConfig()
	ollama.Endpoint = ""

	return Config{
		UDPipe:          udpipe,
		Ollama:          ollama,
		ExternalTimeout: 10 * time.Second,
		Workers:         3,
		RunHistory:      100,

		ElementStrictness:    markers.Substring,
		ConnectiveStrictness: markers.WordBoundary,
	}
}

// ConfigFromEnv overlays REDACAO_* environment variables on DefaultConfig.
// Malformed values keep their defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	for key, dst := range map[string]*string{
		"REDACAO_MARKERS":      &cfg.MarkersPath,
		"REDACAO_UDPIPE_URL":   &cfg.UDPipe.Endpoint,
		"REDACAO_UDPIPE_MODEL": &cfg.UDPipe.Model,
		"REDACAO_OLLAMA_URL":   &cfg.Ollama.Endpoint,
		"REDACAO_OLLAMA_MODEL": &cfg.Ollama.Model,
	} {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("REDACAO_EXTERNAL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ExternalTimeout = d
		}
	}
	if v := os.Getenv("REDACAO_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}

	for key, dst := range map[string]*markers.Strictness{
		"REDACAO_ELEMENT_STRICTNESS":    &cfg.ElementStrictness,
		"REDACAO_CONNECTIVE_STRICTNESS": &cfg.ConnectiveStrictness,
	} {
		if v := os.Getenv(key); v != "" {
			if st, err := markers.ParseStrictness(v); err == nil {
				*dst = st
			}
		}
	}

	return cfg
}
