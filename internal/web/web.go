package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"image-identifier/internal/pipeline"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Renderer renders the identifier page.
type Renderer struct {
	templates *template.Template
}

// LineView is one result line with the element it renders as. An empty Tag
// renders nothing.
type LineView struct {
	Text string
	Tag  string
}

// PageView is everything the page template needs.
type PageView struct {
	SessionID string
	Lines     []LineView
	Keywords  []string
	Questions []string
	Message   string // plain-text error or notice shown where the result goes
	HasResult bool
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render writes the full page.
func (r *Renderer) Render(w io.Writer, view PageView) error {
	return r.templates.ExecuteTemplate(w, "page.tmpl", view)
}

// NewPageView builds the view of a session result.
func NewPageView(sessionID string, res pipeline.Result) PageView {
	view := PageView{
		SessionID: sessionID,
		Keywords:  res.Keywords,
		Questions: res.Questions,
		HasResult: !res.Empty(),
	}
	for _, line := range res.Lines {
		view.Lines = append(view.Lines, LineView{Text: line.Text, Tag: tagFor(line.Kind)})
	}
	return view
}

func tagFor(kind pipeline.LineKind) string {
	switch kind {
	case pipeline.Heading:
		return "h4"
	case pipeline.ListItem:
		return "li"
	case pipeline.Paragraph:
		return "p"
	default:
		return ""
	}
}
