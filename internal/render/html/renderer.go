// Package html renders result views as HTML fragments and pages.
package html

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"countrylookup/internal/country"
	"countrylookup/internal/view"
)

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(embeddedTemplates, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

type resultData struct {
	Kind    string
	Message string
	Cards   []country.Card
}

func newResultData(v view.ResultView) resultData {
	data := resultData{Kind: v.Kind.String()}
	switch v.Kind {
	case view.KindLoading:
		data.Message = view.LoadingMessage
	case view.KindError:
		data.Message = v.Message
	case view.KindCards:
		data.Cards = country.NewCards(v.Records)
	}
	return data
}

// Fragment renders the content of the output region for v.
func (r *Renderer) Fragment(v view.ResultView) (template.HTML, error) {
	var buf bytes.Buffer
	err := r.tmpl.ExecuteTemplate(&buf, "result", newResultData(v))
	if err != nil {
		return "", fmt.Errorf("render result: %w", err)
	}
	sanitized := resultSanitizer().SanitizeBytes(buf.Bytes())
	return template.HTML(sanitized), nil
}

// Render writes the content of the output region for v, it fully replaces
// whatever the region showed before.
func (r *Renderer) Render(w io.Writer, v view.ResultView) error {
	fragment, err := r.Fragment(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, string(fragment))
	return err
}

type Page struct {
	Query string
	// View is rendered into the output region, a nil View leaves it empty.
	View *view.ResultView
}

type pageData struct {
	Query          string
	Results        template.HTML
	LoadingMessage string
}

func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	data := pageData{
		Query:          page.Query,
		LoadingMessage: view.LoadingMessage,
	}
	if page.View != nil {
		fragment, err := r.Fragment(*page.View)
		if err != nil {
			return err
		}
		data.Results = fragment
	}

	err := r.tmpl.ExecuteTemplate(w, "page", data)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
