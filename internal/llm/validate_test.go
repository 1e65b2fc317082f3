package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func gradeSchema() *Schema {
	return &Schema{
		Name:        "test-grade",
		Description: "Competency grade",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"nota":          map[string]any{"type": "integer", "minimum": 0, "maximum": 200},
				"justificativa": map[string]any{"type": "string"},
				"nivel":         map[string]any{"type": "string", "enum": []any{"fraco", "regular", "bom"}},
			},
			"required": []any{"nota", "justificativa"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"nota":160,"justificativa":"Bom domínio.","nivel":"bom"}`, false},
		{"without optional", `{"nota":120,"justificativa":"Regular."}`, false},
		{"missing required", `{"nota":120}`, true},
		{"wrong type", `{"nota":"cento e vinte","justificativa":"x"}`, true},
		{"out of range", `{"nota":240,"justificativa":"x"}`, true},
		{"invalid enum", `{"nota":80,"justificativa":"x","nivel":"ótimo"}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateResponse(gradeSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			var invErr *ErrInvalidResponse
			if err != nil && !errors.As(err, &invErr) {
				t.Errorf("got %T, want *ErrInvalidResponse", err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`texto livre`)
	got, err := validateResponse(nil, raw)
	if err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
	if string(got) != "texto livre" {
		t.Errorf("got %q, want input unchanged", got)
	}
}

func TestValidateResponse_StripsCodeFence(t *testing.T) {
	raw := json.RawMessage("```json\n{\"nota\":200,\"justificativa\":\"Excelente.\"}\n```\n")
	got, err := validateResponse(gradeSchema(), raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `{"nota":200,"justificativa":"Excelente."}`; string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestValidateResponse_NestedArrays(t *testing.T) {
	schema := &Schema{
		Name:        "test-elements",
		Description: "Paragraph elements",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"presentes": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"ausentes":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required": []any{"presentes", "ausentes"},
		},
	}

	valid := json.RawMessage(`{"presentes":["tese"],"ausentes":["contexto"]}`)
	if _, err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"presentes":[1,2],"ausentes":[]}`)
	if _, err := validateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for wrong array item type")
	}
}

func TestCheckContent_TruncatedStructuredOutput(t *testing.T) {
	req := Request{Schema: gradeSchema()}
	_, err := checkContent(req, json.RawMessage(`{"nota":16`), "max_tokens")
	var maxErr *ErrMaxTokensExceeded
	if !errors.As(err, &maxErr) {
		t.Fatalf("got %v, want *ErrMaxTokensExceeded", err)
	}

	// Plain text is passed through even when truncated.
	got, err := checkContent(Request{}, json.RawMessage(`Nota: 16`), "max_tokens")
	if err != nil || string(got) != "Nota: 16" {
		t.Errorf("got %q, %v", got, err)
	}
}
