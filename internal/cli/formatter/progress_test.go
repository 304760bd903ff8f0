package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name    string
		pct     float64
		width   int
		wantPct string
	}{
		{"empty", 0, 10, "  0%"},
		{"half", 0.5, 10, " 50%"},
		{"full", 1, 10, "100%"},
		{"over 100% clamps", 1.5, 10, "100%"},
		{"negative clamps", -0.5, 10, "  0%"},
		{"tiny width clamps to 2", 0.5, 1, " 50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgress(tt.pct, tt.width)
			assert.True(t, strings.HasPrefix(got, "["))
			assert.True(t, strings.HasSuffix(got, tt.wantPct), got)
		})
	}
}

func TestRenderDayProgress(t *testing.T) {
	got := RenderDayProgress(2, 5, true)
	assert.Contains(t, got, "2/5")
	assert.Equal(t, 2, strings.Count(got, filledBlock))
	assert.Equal(t, 3, strings.Count(got, emptyBlock))

	done := RenderDayProgress(7, 5, true)
	assert.Contains(t, done, "5/5")
	assert.Contains(t, done, "✔")

	unknown := RenderDayProgress(0, 5, false)
	assert.Contains(t, unknown, "unknown")
	assert.NotContains(t, unknown, "0/5", "an unknown counter must not read as zero")
}
