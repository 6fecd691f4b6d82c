package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/aleister1102/grammarwhiz/internal/differ"
	"github.com/charmbracelet/lipgloss"
)

var (
	destructive = lipgloss.Color("#e53935")
	success     = lipgloss.Color("#8BC34A")
	muted       = lipgloss.Color("#6a7385")
)

// ConsoleRenderer renders scripts for a terminal. Deleted text is struck
// through, inserted text highlighted. With markers enabled spans are also
// wrapped as [-text-] and {+text+} so they survive terminals without styling.
type ConsoleRenderer struct {
	deleteStyle lipgloss.Style
	insertStyle lipgloss.Style
	titleStyle  lipgloss.Style
	noteStyle   lipgloss.Style
	markers     bool
}

// NewConsoleRenderer creates a renderer whose color support follows out.
func NewConsoleRenderer(out io.Writer, markers bool) *ConsoleRenderer {
	r := lipgloss.NewRenderer(out)
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return &ConsoleRenderer{
		deleteStyle: base.Strikethrough(true).Foreground(destructive),
		insertStyle: base.Bold(true).Underline(true).Foreground(success),
		titleStyle:  base.Bold(true),
		noteStyle:   base.Foreground(muted),
		markers:     markers,
	}
}

// Console renders script with a renderer bound to out.
func Console(out io.Writer, script differ.Script, markers bool) string {
	return NewConsoleRenderer(out, markers).Diff(script)
}

// Diff renders the script in operation order.
func (c *ConsoleRenderer) Diff(script differ.Script) string {
	var b strings.Builder
	for _, d := range script {
		switch d.Type {
		case differ.Delete:
			c.writeSpan(&b, d.Text, c.deleteStyle, "[-", "-]")
		case differ.Insert:
			c.writeSpan(&b, d.Text, c.insertStyle, "{+", "+}")
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

// writeSpan styles each line separately; lipgloss pads multi-line blocks.
func (c *ConsoleRenderer) writeSpan(b *strings.Builder, text string, style lipgloss.Style, open, close string) {
	if c.markers {
		text = open + text + close
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		if line != "" {
			b.WriteString(style.Render(line))
		}
	}
}

// Explanations renders a numbered list of the service's explanations.
func (c *ConsoleRenderer) Explanations(explanations []string) string {
	if len(explanations) == 0 {
		return c.noteStyle.Render("No explanations provided.")
	}
	var b strings.Builder
	b.WriteString(c.titleStyle.Render("Explanations"))
	for i, e := range explanations {
		fmt.Fprintf(&b, "\n%d. %s", i+1, e)
	}
	return b.String()
}

// Summary renders the change statistics.
func (c *ConsoleRenderer) Summary(stats differ.DiffStatistics) string {
	return c.noteStyle.Render(Summary(stats))
}
