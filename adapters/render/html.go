package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"venturelens/domain/evaluation"
	"venturelens/domain/report"
	"venturelens/internal/errors"
)

// HTMLRenderer renders a full evaluation into a standalone HTML report.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"markdown": renderMarkdown,
		"lower":    func(v any) string { return strings.ToLower(fmt.Sprint(v)) },
		"pct":      func(w float64) string { return fmt.Sprintf("%.0f%%", w*100) },
		"score10":  func(s float64) string { return fmt.Sprintf("%.1f/10", s/2) },
	}).Parse(reportTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse report template")
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

type reportView struct {
	Result     *evaluation.Result
	Commentary *report.Commentary
}

// Render produces the HTML document for one completed evaluation.
func (r *HTMLRenderer) Render(result *evaluation.Result, commentary *report.Commentary) ([]byte, error) {
	if result == nil || result.Startup == nil {
		return nil, errors.InvalidInput("evaluation result is incomplete")
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, reportView{Result: result, Commentary: commentary}); err != nil {
		return nil, errors.Wrap(err, "failed to render report")
	}
	return buf.Bytes(), nil
}

// renderMarkdown converts model-written markdown to HTML with raw inline
// HTML stripped.
func renderMarkdown(text string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	out := markdown.ToHTML([]byte(text), p, renderer)
	return template.HTML(out)
}
