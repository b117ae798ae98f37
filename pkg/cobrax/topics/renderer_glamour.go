package topics

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// GlamourRenderer renders markdown topics for the terminal. Other formats
// pass through unchanged.
type GlamourRenderer struct {
	Style string // "auto", a built-in style name ("dark", "light", "notty") or a path to a JSON style
	Width int    // word wrap column, 0 keeps glamour's default
}

// NewGlamourRenderer returns a renderer with auto-detected style wrapping at width.
func NewGlamourRenderer(width int) *GlamourRenderer {
	return &GlamourRenderer{Style: "auto", Width: width}
}

func (r *GlamourRenderer) options() []glamour.TermRendererOption {
	var options []glamour.TermRendererOption
	switch {
	case r.Style == "" || r.Style == "auto":
		options = append(options, glamour.WithAutoStyle())
	case isStandardStyle(r.Style):
		options = append(options, glamour.WithStandardStyle(r.Style))
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}
	return options
}

func isStandardStyle(name string) bool {
	_, ok := styles.DefaultStyles[name]
	return ok
}

// Render converts markdown to terminal output, falling back to the raw
// content if glamour fails.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	renderer, err := glamour.NewTermRenderer(r.options()...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
