package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/clrhost/property"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	droppedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Strikethrough(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type reviewEntry struct {
	key     string
	value   string
	dropped bool
}

type reviewState int

const (
	stateBrowse reviewState = iota
	stateEdit
)

// reviewModel lets the user edit or drop properties before launch.
type reviewModel struct {
	assembly string
	entries  []reviewEntry
	input    textinput.Model
	selected int
	state    reviewState
	launch   bool
}

func newReviewModel(bag *property.Bag, assembly string) *reviewModel {
	m := &reviewModel{
		assembly: assembly,
		entries:  make([]reviewEntry, 0, bag.Count()),
		state:    stateBrowse,
	}
	for k, v := range bag.All() {
		m.entries = append(m.entries, reviewEntry{key: k, value: v})
	}
	return m
}

func (m *reviewModel) Init() tea.Cmd {
	return nil
}

func (m *reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.state == stateEdit {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if key.String() == "ctrl+c" {
		m.launch = false
		return m, tea.Quit
	}

	if m.state == stateEdit {
		switch key.String() {
		case "enter":
			m.entries[m.selected].value = m.input.Value()
			m.state = stateBrowse
			m.input.Blur()
			return m, nil
		case "esc":
			m.state = stateBrowse
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "q", "esc":
		m.launch = false
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.entries)-1 {
			m.selected++
		}

	case "x", "delete":
		if len(m.entries) > 0 {
			m.entries[m.selected].dropped = !m.entries[m.selected].dropped
		}

	case "enter":
		if len(m.entries) > 0 && !m.entries[m.selected].dropped {
			return m, m.startEdit()
		}

	case "r":
		m.launch = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *reviewModel) startEdit() tea.Cmd {
	e := m.entries[m.selected]
	ti := textinput.New()
	ti.Prompt = e.key + "="
	ti.Width = 60
	ti.SetValue(e.value)
	m.input = ti
	m.state = stateEdit
	return m.input.Focus()
}

// bag returns the reviewed properties in their original order.
func (m *reviewModel) bag() *property.Bag {
	b := property.NewBag()
	for _, e := range m.entries {
		if !e.dropped {
			b.Add(e.key, e.value)
		}
	}
	return b
}

func (m *reviewModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Runtime properties"))
	b.WriteString(" ")
	b.WriteString(m.assembly)
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString("No properties set.\n")
	}

	for i, e := range m.entries {
		if m.state == stateEdit && i == m.selected {
			b.WriteString("> ")
			b.WriteString(m.input.View())
			b.WriteString("\n")
			continue
		}

		line := fmt.Sprintf("%s=%s", e.key, e.value)
		switch {
		case i == m.selected:
			b.WriteString(selectedStyle.Render("> " + line))
		case e.dropped:
			b.WriteString("  " + droppedStyle.Render(line))
		default:
			b.WriteString("  " + keyStyle.Render(e.key) + "=" + valueStyle.Render(e.value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.state == stateEdit {
		b.WriteString(helpStyle.Render("enter save • esc cancel"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ select • enter edit • x drop • r launch • q quit"))
	}

	return b.String()
}

func runInteractive(bag *property.Bag, assembly string) (*property.Bag, bool, error) {
	p := tea.NewProgram(newReviewModel(bag, assembly), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, false, err
	}
	m := final.(*reviewModel)
	if !m.launch {
		return nil, false, nil
	}
	return m.bag(), true, nil
}
