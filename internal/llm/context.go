package llm

import "context"

// Purposes recorded in the request log, one per essay assistant.
const (
	PurposeElements    = "elements"
	PurposeConnectives = "connectives"
	PurposeJustify     = "justify"
	PurposeErrors      = "errors"
)

type purposeKey struct{}

// WithPurpose labels the requests made with ctx. The label is written to the
// request log and selects the mock queue in tests.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
