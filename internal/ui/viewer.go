package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// RenderFunc produces the annotated buffer text for a viewport width. The
// viewer calls it again whenever the window is resized, so auto-width
// renders track the terminal.
type RenderFunc func(width int) (string, error)

const headerHeight = 2
const footerHeight = 1

type viewerModel struct {
	title  string
	render RenderFunc
	vp     viewport.Model
	width  int
	ready  bool
	err    error
}

// NewViewer returns a Bubble Tea model that shows annotated buffer text in
// a scrollable viewport.
func NewViewer(title string, render RenderFunc) tea.Model {
	return &viewerModel{title: title, render: render}
}

func (m *viewerModel) Init() tea.Cmd {
	return nil
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width <= 0 || msg.Height <= 0 {
			return m, nil
		}
		m.width = msg.Width
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - headerHeight - footerHeight
		}
		content, err := m.render(msg.Width)
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.vp.SetContent(content)
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *viewerModel) View() string {
	if !m.ready {
		return "loading..."
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	footStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(truncate(m.title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(footStyle.Render(fmt.Sprintf("%3.0f%%  q to quit", m.vp.ScrollPercent()*100)))
	return b.String()
}

// Err reports the render error that ended the session, if any.
func (m *viewerModel) Err() error {
	return m.err
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
