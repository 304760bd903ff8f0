package formatter

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Markdown renders screen bodies. Renderers are cached per wrap width.
type Markdown struct {
	style string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// NewMarkdown returns a renderer for a glamour style name ("dark", "light",
// "notty", "ascii" or "auto"). An empty style means plain text.
func NewMarkdown(style string) *Markdown {
	return &Markdown{style: style, renderers: make(map[int]*glamour.TermRenderer)}
}

// Render converts md to styled terminal text wrapped at width. When styling
// is off or glamour fails, the trimmed source is returned.
func (m *Markdown) Render(md string, width int) string {
	if m == nil || m.style == "" || strings.TrimSpace(md) == "" {
		return strings.TrimSpace(md)
	}
	r, err := m.renderer(width)
	if err != nil {
		return strings.TrimSpace(md)
	}
	out, err := r.Render(md)
	if err != nil {
		return strings.TrimSpace(md)
	}
	return strings.Trim(out, "\n")
}

func (m *Markdown) renderer(width int) (*glamour.TermRenderer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.renderers[width]; ok {
		return r, nil
	}
	styleOpt := glamour.WithStylePath(m.style)
	if m.style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(max(width, 0)))
	if err != nil {
		return nil, err
	}
	m.renderers[width] = r
	return r, nil
}
