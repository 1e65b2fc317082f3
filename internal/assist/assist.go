// Package assist adapts an LLM provider to the optional collaborator
// interfaces of the analysis core: paragraph element classification,
// connective proposals, competency justifications and error finding.
//
// Every adapter is thin. Prompts ask for JSON matching a schema, malformed
// replies are retried a bounded number of times, and any remaining failure
// is returned to the caller, which falls back to its deterministic path.
package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/charmbracelet/log"

	"github.com/abhisek/redacao/internal/llm"
	"github.com/abhisek/redacao/internal/logging"
)

// Config holds generation settings shared by the adapters.
type Config struct {
	MaxTokens   int
	Temperature float64
	// ParseRetries is how many extra attempts a malformed reply gets.
	ParseRetries int
	// MaxEssayChars truncates essays embedded in prompts.
	MaxEssayChars int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     1024,
		Temperature:   0.2,
		ParseRetries:  2,
		MaxEssayChars: 6000,
	}
}

type client struct {
	provider llm.Provider
	cfg      Config
	logger   *log.Logger
}

func newClient(provider llm.Provider, cfg Config, logger *log.Logger) client {
	return client{provider: provider, cfg: cfg, logger: logging.OrDiscard(logger)}
}

// generate sends req and decodes the reply into out, which must be a
// non-nil pointer. Replies that fail schema validation or decoding are
// retried up to cfg.ParseRetries times; any other provider error is returned
// at once. out is zeroed before every decode, so fields of a rejected reply
// never leak into the accepted one.
func (c client) generate(ctx context.Context, purpose, system, user string, schema *llm.Schema, out any) error {
	ctx = llm.WithPurpose(ctx, purpose)
	req := llm.UserPrompt(system, user)
	req.Schema = schema
	req.MaxTokens = c.cfg.MaxTokens
	req.Temperature = c.cfg.Temperature

	var lastErr error
	for attempt := 0; attempt <= c.cfg.ParseRetries; attempt++ {
		resp, err := c.provider.Generate(ctx, req)
		if err != nil {
			var inv *llm.ErrInvalidResponse
			if !errors.As(err, &inv) {
				return fmt.Errorf("%s: %w", purpose, err)
			}
			lastErr = err
		} else if err := decodeFresh(resp.Content, out); err != nil {
			lastErr = &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
		} else {
			return nil
		}
		c.logger.Debug("malformed LLM reply", "purpose", purpose, "attempt", attempt+1, "err", lastErr)
	}
	return fmt.Errorf("%s: %d malformed replies: %w", purpose, c.cfg.ParseRetries+1, lastErr)
}

func decodeFresh(data []byte, out any) error {
	if v := reflect.ValueOf(out); v.Kind() == reflect.Pointer && !v.IsNil() {
		v.Elem().SetZero()
	}
	return json.Unmarshal(data, out)
}

func (c client) truncate(essay string) string {
	if c.cfg.MaxEssayChars <= 0 || len(essay) <= c.cfg.MaxEssayChars {
		return essay
	}
	// Cut on a rune boundary.
	cut := c.cfg.MaxEssayChars
	for cut > 0 && !isRuneStart(essay[cut]) {
		cut--
	}
	return essay[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
