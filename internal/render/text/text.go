// Package text renders result views as terminal tables.
package text

import (
	"fmt"
	"io"

	"countrylookup/internal/country"
	"countrylookup/internal/view"

	"github.com/jedib0t/go-pretty/v6/table"
)

type Renderer struct {
	style table.Style
}

func NewRenderer() Renderer {
	return Renderer{style: table.StyleRounded}
}

func (r Renderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(r.style)
	return t
}

// Render writes v to w, one table per card in the order given.
func (r Renderer) Render(w io.Writer, v view.ResultView) error {
	switch v.Kind {
	case view.KindNone:
		return nil
	case view.KindLoading:
		_, err := fmt.Fprintln(w, view.LoadingMessage)
		return err
	case view.KindError:
		_, err := fmt.Fprintf(w, "Error: %s\n", v.Message)
		return err
	}

	for _, card := range country.NewCards(v.Records) {
		_, err := fmt.Fprintln(w, r.renderCard(card))
		if err != nil {
			return err
		}
	}
	return nil
}

func (r Renderer) renderCard(card country.Card) string {
	t := r.newTable()
	t.SetTitle(card.Name)

	flag := card.FlagURL
	if flag == "" {
		flag = country.NotAvailable
	}
	t.AppendRow(table.Row{"Flag", fmt.Sprintf("%s (%s)", flag, card.FlagAlt)})

	for _, field := range card.Fields() {
		value := field.Value
		if field.Label == "Region" && card.Subregion != "" {
			value = fmt.Sprintf("%s [%s]", value, card.Subregion)
		}
		t.AppendRow(table.Row{field.Label, value})
	}
	return t.Render()
}
