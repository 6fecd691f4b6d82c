package renderer

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/aleister1102/grammarwhiz/internal/differ"
	"github.com/aleister1102/grammarwhiz/internal/models"
)

//go:embed templates/report.html.tmpl
var reportTemplateFS embed.FS

const reportTemplateName = "report.html.tmpl"

// HTML renders a script as an HTML fragment in operation order.
// Deleted spans become <del>, inserted spans <ins>, equal spans plain text.
func HTML(script differ.Script) template.HTML {
	var b strings.Builder
	for _, d := range script {
		escaped := template.HTMLEscapeString(d.Text)
		switch d.Type {
		case differ.Insert:
			b.WriteString(`<ins class="gw-ins">`)
			b.WriteString(escaped)
			b.WriteString(`</ins>`)
		case differ.Delete:
			b.WriteString(`<del class="gw-del">`)
			b.WriteString(escaped)
			b.WriteString(`</del>`)
		default:
			b.WriteString(escaped)
		}
	}
	return template.HTML(b.String())
}

// Summary describes the amount of change in one line.
func Summary(stats differ.DiffStatistics) string {
	if stats.IsIdentical {
		return "No textual changes detected."
	}
	return fmt.Sprintf("%d changes: %d characters added (+), %d deleted (-).",
		stats.Changes, stats.CharsAdded, stats.CharsDeleted)
}

// ReportData feeds the standalone HTML report.
type ReportData struct {
	Title        string
	Scenario     models.Scenario
	GeneratedAt  time.Time
	Script       differ.Script
	Stats        differ.DiffStatistics
	Explanations []string
}

// HTMLReporter writes standalone HTML pages for a proofreading session.
type HTMLReporter struct {
	template *template.Template
}

// NewHTMLReporter parses the embedded report template.
func NewHTMLReporter() (*HTMLReporter, error) {
	content, err := reportTemplateFS.ReadFile("templates/" + reportTemplateName)
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded report template: %w", err)
	}

	tmpl, err := template.New(reportTemplateName).Funcs(template.FuncMap{
		"diffHTML": HTML,
		"summary":  Summary,
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02 15:04:05")
		},
	}).Parse(strings.ReplaceAll(string(content), "\r\n", "\n"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded report template: %w", err)
	}
	return &HTMLReporter{template: tmpl}, nil
}

// Write renders data as a complete HTML document.
func (r *HTMLReporter) Write(w io.Writer, data ReportData) error {
	if data.Title == "" {
		data.Title = "GrammarWhiz"
	}
	if err := r.template.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
