package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

const (
	barFilled = "█"
	barEmpty  = "░"
)

// bar renders fraction (0..1) as a horizontal bar followed by suffix. The
// bar shrinks to fit width but never below four cells.
func (r *Renderer) bar(label string, fraction float64, suffix string, width int) string {
	var b strings.Builder
	if label != "" {
		b.WriteString(r.st.Label.Render(label))
		b.WriteString("  ")
	}

	barWidth := max(width-lipgloss.Width(b.String())-lipgloss.Width(suffix)-2, 4)
	filled := min(max(int(float64(barWidth)*fraction+0.5), 0), barWidth)

	b.WriteString(r.st.BarFilled.Render(strings.Repeat(barFilled, filled)))
	b.WriteString(r.st.BarEmpty.Render(strings.Repeat(barEmpty, barWidth-filled)))
	if suffix != "" {
		b.WriteString("  ")
		b.WriteString(r.st.Value.Render(suffix))
	}
	return b.String()
}

func percent(v float64) string {
	return fmt.Sprintf("%d%%", int(v*100+0.5))
}
