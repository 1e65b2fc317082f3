package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// UDPipeConfig configures the UDPipe REST client.
type UDPipeConfig struct {
	Endpoint string        // e.g. "https://lindat.mff.cuni.cz/services/udpipe/api"
	Model    string        // e.g. "portuguese-bosque"
	Timeout  time.Duration // per request
	Interval time.Duration // minimum spacing between requests
}

// DefaultUDPipeConfig returns settings for the public LINDAT service.
func DefaultUDPipeConfig() UDPipeConfig {
	return UDPipeConfig{
		Endpoint: "https://lindat.mff.cuni.cz/services/udpipe/api",
		Model:    "portuguese-bosque",
		Timeout:  20 * time.Second,
		Interval: 500 * time.Millisecond,
	}
}

// UDPipeParser tokenizes, tags and parses text with a UDPipe REST server.
type UDPipeParser struct {
	endpoint string
	model    string
	client   *http.Client
	limiter  *rate.Limiter
}

type udpipeResponse struct {
	Model  string `json:"model"`
	Result string `json:"result"`
}

// NewUDPipeParser creates a UDPipe client.
func NewUDPipeParser(cfg UDPipeConfig) *UDPipeParser {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	limit := rate.Inf
	if cfg.Interval > 0 {
		limit = rate.Every(cfg.Interval)
	}
	return &UDPipeParser{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		model:    cfg.Model,
		client:   &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Name returns "udpipe".
func (p *UDPipeParser) Name() string { return "udpipe" }

// Parse sends text to the /process endpoint and decodes the CoNLL-U result.
func (p *UDPipeParser) Parse(ctx context.Context, text string) (*Doc, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("udpipe: rate limiter: %w", err)
	}

	form := url.Values{}
	form.Set("data", text)
	form.Set("tokenizer", "")
	form.Set("tagger", "")
	form.Set("parser", "")
	if p.model != "" {
		form.Set("model", p.model)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/process", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("udpipe: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("udpipe: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("udpipe: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("udpipe: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out udpipeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("udpipe: decode response: %w", err)
	}

	doc, err := ParseCoNLLU(out.Result)
	if err != nil {
		return nil, fmt.Errorf("udpipe: %w", err)
	}
	doc.Parser = p.Name()
	return doc, nil
}
