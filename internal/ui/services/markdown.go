package services

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// MarkdownRenderer turns markdown into terminal output.
type MarkdownRenderer interface {
	Render(content string, width int) (string, error)
}

// GlamourRenderer renders with glamour using a fixed style, so output does
// not depend on querying the terminal.
type GlamourRenderer struct {
	style string
}

// NewGlamourRenderer returns a renderer using the dark style.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{style: styles.DarkStyle}
}

// NewPlainRenderer returns a renderer that emits no colors.
func NewPlainRenderer() *GlamourRenderer {
	return &GlamourRenderer{style: styles.NoTTYStyle}
}

func (g *GlamourRenderer) Render(content string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(g.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(content)
}
