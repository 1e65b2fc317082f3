package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "elements"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}

	// The sequence must continue rather than restart.
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "elements"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	events, _ = s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if events[0].Sequence <= events[1].Sequence {
		t.Errorf("sequences %d, %d not increasing", events[1].Sequence, events[0].Sequence)
	}
}

func TestLLMEvents_AppendQueryGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	inputs := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "elements", InputTokens: 100, OutputTokens: 20, LatencyMs: 300, Success: true, RequestBody: "[user]\nparágrafo", ResponseBody: `{"presentes":[]}`},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "connectives", InputTokens: 50, OutputTokens: 10, LatencyMs: 100, Success: true},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "elements", LatencyMs: 500, Success: false, ErrorMessage: "rate limited"},
	}
	for _, in := range inputs {
		if err := repo.AppendLLMRequest(ctx, in); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	if all[0].ErrorMessage != "rate limited" {
		t.Errorf("newest event = %+v, want the failed one", all[0])
	}

	limited, _ := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if len(limited) != 2 {
		t.Errorf("limit: got %d, want 2", len(limited))
	}

	byPurpose, _ := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "elements"})
	if len(byPurpose) != 2 {
		t.Errorf("purpose filter: got %d, want 2", len(byPurpose))
	}

	after, _ := repo.QueryLLMEvents(ctx, QueryOpts{After: all[1].Sequence})
	if len(after) != 1 {
		t.Errorf("after filter: got %d, want 1", len(after))
	}

	oldest := all[2]
	got, err := repo.GetLLMEvent(ctx, oldest.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RequestBody != "[user]\nparágrafo" || !got.Success {
		t.Errorf("get = %+v", got)
	}
	if time.Since(got.Timestamp) > time.Minute {
		t.Errorf("timestamp %v not recent", got.Timestamp)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("missing event = %v, %v", missing, err)
	}
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, in := range []LLMRequestEventData{
		{Model: "m1", Purpose: "elements", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Model: "m1", Purpose: "elements", InputTokens: 30, OutputTokens: 5, LatencyMs: 300, Success: true},
		{Model: "m2", Purpose: "justify", InputTokens: 7, OutputTokens: 3, LatencyMs: 50, Success: true},
		{Model: "m2", Purpose: "justify", Success: false},
	} {
		if err := repo.AppendLLMRequest(ctx, in); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	purposes, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(purposes) != 2 {
		t.Fatalf("got %d purposes, want 2", len(purposes))
	}
	for _, p := range purposes {
		if p.Purpose == "elements" && (p.Calls != 2 || p.InputTokens != 40 || p.AvgLatencyMs != 200) {
			t.Errorf("elements usage = %+v", p)
		}
	}

	models, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(models) != 2 || models[1].Model != "m2" || models[1].Calls != 1 {
		t.Errorf("model usage = %+v", models)
	}
}

func TestRuns_SaveRecentGetPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()

	for i, id := range []string{"run-a", "run-b", "run-c"} {
		run := &Run{RunID: id, Theme: "educação", Total: 600 + 40*i, Data: json.RawMessage(`{"total":1}`)}
		if err := repo.Save(ctx, run); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
		if run.ID == 0 || run.Sequence == 0 {
			t.Errorf("save did not assign ids: %+v", run)
		}
	}

	recent, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].RunID != "run-c" {
		t.Errorf("recent = %+v", recent)
	}

	got, err := repo.Get(ctx, "run-a")
	if err != nil || got == nil {
		t.Fatalf("get: %v, %v", got, err)
	}
	if got.Total != 600 || string(got.Data) != `{"total":1}` || got.Theme != "educação" {
		t.Errorf("get = %+v", got)
	}

	if err := repo.Prune(ctx, 1); err != nil {
		t.Fatalf("prune: %v", err)
	}
	all, _ := repo.Recent(ctx, 0)
	if len(all) != 1 || all[0].RunID != "run-c" {
		t.Errorf("after prune = %+v", all)
	}

	if missing, err := repo.Get(ctx, "nope"); err != nil || missing != nil {
		t.Errorf("missing run = %v, %v", missing, err)
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	want := filepath.Join(t.TempDir(), "sub", "x.db")
	t.Setenv("REDACAO_DB", want)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("REDACAO_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dir, "redacao", "redacao.db"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
