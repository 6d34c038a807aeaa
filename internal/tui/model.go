// Package tui is the interactive terminal surface: one text input, Enter to
// search and the output region below it.
package tui

import (
	"context"
	"strings"

	"countrylookup/internal/assert"
	"countrylookup/internal/country"
	"countrylookup/internal/view"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Fetcher is implemented by *dispatch.Dispatcher.
type Fetcher interface {
	FetchCountryData(ctx context.Context, rawInput string, sink view.Sink) view.ResultView
}

// DispatchedMsg is sent once a dispatch started by Enter has finished.
type DispatchedMsg struct {
	Result view.ResultView
}

// RegionReplacedMsg asks for a repaint after a dispatch replaced the region
// from outside the update loop.
type RegionReplacedMsg struct{}

type Model struct {
	ctx     context.Context
	fetcher Fetcher
	region  *view.Region
	input   textinput.Model
}

var _ tea.Model = Model{}

func NewModel(ctx context.Context, fetcher Fetcher, region *view.Region) Model {
	assert.NotNil(fetcher)
	assert.NotNil(region)

	ti := textinput.New()
	ti.Placeholder = "Enter a country name..."
	ti.Width = 40
	ti.Focus()

	return Model{
		ctx:     ctx,
		fetcher: fetcher,
		region:  region,
		input:   ti,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m, m.submit()
		}
	case DispatchedMsg, RegionReplacedMsg:
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit shows Loading right away so the next frame already has it, the
// dispatch itself runs off the update loop.
func (m Model) submit() tea.Cmd {
	raw := m.input.Value()
	if strings.TrimSpace(raw) != "" {
		m.region.Replace(view.Loading())
	}

	ctx, fetcher, region := m.ctx, m.fetcher, m.region
	return func() tea.Msg {
		result := fetcher.FetchCountryData(ctx, raw, region)
		return DispatchedMsg{Result: result}
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Country Lookup"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(styles.Hint.Render("Enter: search  Esc: quit"))
	b.WriteString("\n")

	current, _ := m.region.Current()
	if current.Kind != view.KindNone {
		b.WriteString(RenderView(current))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderView renders the content of the output region.
func RenderView(v view.ResultView) string {
	switch v.Kind {
	case view.KindNone:
		return ""
	case view.KindLoading:
		return styles.Loading.Render(view.LoadingMessage)
	case view.KindError:
		return styles.Error.Render(v.Message)
	}

	cards := country.NewCards(v.Records)
	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		rendered = append(rendered, renderCard(card))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func renderCard(card country.Card) string {
	lines := []string{
		styles.CardTitle.Render(card.Name),
		styles.Hint.Render(card.FlagAlt),
	}
	for _, field := range card.Fields() {
		value := styles.Value.Render(field.Value)
		if field.Label == "Region" && card.Subregion != "" {
			value += " " + styles.Badge.Render(card.Subregion)
		}
		lines = append(lines, styles.Label.Render(field.Label)+value)
	}
	return styles.Card.Render(strings.Join(lines, "\n"))
}

// Run blocks until the user quits or ctx is done.
func Run(ctx context.Context, fetcher Fetcher) error {
	region := view.NewRegion()
	program := tea.NewProgram(
		NewModel(ctx, fetcher, region),
		tea.WithContext(ctx),
	)
	repaintOnReplace(region, program.Send)
	_, err := program.Run()
	return err
}

// repaintOnReplace sends RegionReplacedMsg on every replace. Sending happens off
// the calling goroutine since Update itself replaces the region.
func repaintOnReplace(region *view.Region, send func(tea.Msg)) {
	region.OnReplace(func(view.ResultView) {
		go send(RegionReplacedMsg{})
	})
}
