package report

import (
	"fmt"
	"strings"

	"github.com/abhisek/redacao/internal/llm"
	"github.com/abhisek/redacao/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

// LLMEvents renders the request log as a table, newest first.
func (r *Renderer) LLMEvents(events []store.LLMRequestEvent) string {
	if len(events) == 0 {
		return "No LLM events found.\n"
	}

	var b strings.Builder
	b.WriteString(r.st.Heading.Render(fmt.Sprintf("%-5s  %-19s  %-12s  %-28s  %6s  %6s  %7s  %s",
		"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")))
	b.WriteString("\n")
	b.WriteString(r.rule(100))
	for _, e := range events {
		ok := r.st.Good.Render("✓")
		if !e.Success {
			ok = r.st.Bad.Render("✗")
		}
		fmt.Fprintf(&b, "%-5d  %-19s  %-12s  %-28s  %6d  %6d  %7d  %s\n",
			e.ID, e.Timestamp.Local().Format(timeLayout), e.Purpose, clip(e.Model, 28),
			e.InputTokens, e.OutputTokens, e.LatencyMs, ok)
	}
	return b.String()
}

// LLMEvent renders one request with its full request and response bodies.
func (r *Renderer) LLMEvent(e *store.LLMRequestEvent) string {
	var b strings.Builder
	field := func(name, value string) {
		fmt.Fprintf(&b, "%s %s\n", r.st.Label.Render(fmt.Sprintf("%-10s", name+":")), value)
	}
	field("ID", fmt.Sprint(e.ID))
	field("Time", e.Timestamp.Local().Format(timeLayout))
	field("Provider", e.Provider)
	field("Model", e.Model)
	field("Purpose", e.Purpose)
	field("Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
	field("Latency", fmt.Sprintf("%dms", e.LatencyMs))
	field("Success", fmt.Sprint(e.Success))
	if e.ErrorMessage != "" {
		field("Error", r.st.Bad.Render(e.ErrorMessage))
	}

	for _, section := range []struct{ title, body string }{
		{"REQUEST", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		b.WriteString("\n")
		b.WriteString(r.rule(60))
		b.WriteString(r.st.Heading.Render(section.title) + "\n")
		b.WriteString(r.rule(60))
		if section.body == "" {
			b.WriteString(r.st.Dim.Render("(not captured)") + "\n")
			continue
		}
		b.WriteString(strings.TrimRight(section.body, "\n") + "\n")
	}
	return b.String()
}

// LLMUsage renders token usage per purpose and estimated cost per model.
func (r *Renderer) LLMUsage(purposes []store.PurposeUsage, models []store.ModelUsage) string {
	if len(purposes) == 0 {
		return "No LLM usage recorded yet.\n"
	}

	var b strings.Builder
	b.WriteString(r.st.Title.Render("Usage by purpose") + "\n")
	b.WriteString(r.rule(72))
	fmt.Fprintf(&b, "%-16s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	b.WriteString(r.rule(72))

	var calls, in, out int
	for _, u := range purposes {
		fmt.Fprintf(&b, "%-16s  %6d  %10d  %10d  %10d  %8d\n",
			u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	b.WriteString(r.rule(72))
	fmt.Fprintf(&b, "%-16s  %6d  %10d  %10d  %10d\n", "TOTAL", calls, in, out, in+out)

	if len(models) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(r.st.Title.Render("Estimated cost (USD)") + "\n")
	b.WriteString(r.rule(72))
	fmt.Fprintf(&b, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	b.WriteString(r.rule(72))

	var total float64
	var unknown []string
	for _, m := range models {
		cost := "?"
		if c := llm.LookupCost(m.Model); c != nil {
			usd := c.Cost(m.InputTokens, m.OutputTokens)
			total += usd
			cost = formatCost(usd)
		} else {
			unknown = append(unknown, m.Model)
		}
		fmt.Fprintf(&b, "%-32s  %6d  %10d  %10d  %10s\n",
			clip(m.Model, 32), m.Calls, m.InputTokens, m.OutputTokens, cost)
	}
	b.WriteString(r.rule(72))
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(&b, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
	if len(unknown) > 0 {
		b.WriteString(r.st.Warn.Render("Pricing unavailable for: "+strings.Join(unknown, ", ")) + "\n")
	}
	return b.String()
}

func (r *Renderer) rule(n int) string {
	return r.st.Dim.Render(strings.Repeat("─", min(n, r.width))) + "\n"
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
