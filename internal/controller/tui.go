package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "covermark.dev/covermark/internal/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true).Padding(1, 1, 0, 1)
)

type browseKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
	Quit  key.Binding
}

func newBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "sites"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// browseModel is the Bubble Tea model behind `covermark browse`: a list of
// marks, with a per-mark detail view of hit and check sites.
type browseModel struct {
	correlations []*m.Correlation
	cursor       int
	selected     *m.Correlation
	keys         browseKeyMap
	width        int
	height       int
}

func newBrowseModel(index m.Index) browseModel {
	return browseModel{
		correlations: index.Sorted(),
		keys:         newBrowseKeyMap(),
	}
}

// Init implements tea.Model.
func (b browseModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keys.Quit):
			return b, tea.Quit

		case key.Matches(msg, b.keys.Up):
			if b.selected == nil && b.cursor > 0 {
				b.cursor--
			}

		case key.Matches(msg, b.keys.Down):
			if b.selected == nil && b.cursor < len(b.correlations)-1 {
				b.cursor++
			}

		case key.Matches(msg, b.keys.Enter):
			if b.selected == nil && len(b.correlations) > 0 {
				b.selected = b.correlations[b.cursor]
			}

		case key.Matches(msg, b.keys.Back):
			b.selected = nil
		}
	}

	return b, nil
}

// View implements tea.Model.
func (b browseModel) View() string {
	if b.selected != nil {
		return b.detailView()
	}

	return b.listView()
}

func (b browseModel) listView() string {
	var builder strings.Builder

	builder.WriteString(titleStyle.Render("covermark marks"))
	builder.WriteString("\n\n")

	for i, c := range b.correlations {
		cursor := "  "
		if i == b.cursor {
			cursor = cursorStyle.Render("▸ ")
		}

		line := fmt.Sprintf("%s%s  %s", cursor, c.Name, styledStatus(c))
		if i == b.cursor {
			line = selectedStyle.Render(line)
		}

		builder.WriteString(line)
		builder.WriteString("\n")
	}

	builder.WriteString(helpStyle.Render(b.helpLine(false)))

	return builder.String()
}

func (b browseModel) detailView() string {
	var builder strings.Builder

	builder.WriteString(titleStyle.Render(fmt.Sprintf("mark %q", b.selected.Name)))
	builder.WriteString("\n\n")

	builder.WriteString("checked by:\n")
	if len(b.selected.Checks) == 0 {
		builder.WriteString("  " + badStyle.Render("(no tests check this mark)") + "\n")
	}

	for _, site := range b.selected.Checks {
		builder.WriteString("  " + formatSite(site) + "\n")
	}

	builder.WriteString("\nhit at:\n")
	if len(b.selected.Hits) == 0 {
		builder.WriteString("  " + staleStyle.Render("(nothing hits this mark)") + "\n")
	}

	for _, site := range b.selected.Hits {
		builder.WriteString("  " + formatSite(site) + "\n")
	}

	builder.WriteString(helpStyle.Render(b.helpLine(true)))

	return builder.String()
}

func (b browseModel) helpLine(detail bool) string {
	bindings := []key.Binding{b.keys.Up, b.keys.Down, b.keys.Enter, b.keys.Quit}
	if detail {
		bindings = []key.Binding{b.keys.Back, b.keys.Quit}
	}

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, fmt.Sprintf("%s %s", help.Key, help.Desc))
	}

	return strings.Join(parts, " • ")
}
