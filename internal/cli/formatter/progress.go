package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = clamp01(pct)
	if width < 2 {
		width = 2
	}

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderDayProgress renders a path's counter as one block per day followed
// by "n/total". An unknown counter renders as a dim "unknown" so it is never
// mistaken for zero.
func RenderDayProgress(count, total int, known bool) string {
	if !known {
		return StyleYellow.Render("? ") + Dim("unknown")
	}
	if total <= 0 {
		return Dim("no days")
	}
	done := min(max(count, 0), total)
	bar := StyleGreen.Render(strings.Repeat(filledBlock, done)) +
		StyleDim.Render(strings.Repeat(emptyBlock, total-done))
	label := fmt.Sprintf("%d/%d", done, total)
	if done == total {
		label = StyleGreen.Render(label + " ✔")
	}
	return bar + " " + label
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
