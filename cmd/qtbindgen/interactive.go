package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/qtbind/ir"
)

type modelState int

const (
	stateSelectObject modelState = iota
	stateBrowseMembers
	stateFilter
	stateShowMember
)

type interactiveModel struct {
	file     *ir.File
	filter   textinput.Model
	filename string
	members  []member
	visible  []int
	selected int
	cursor   int
	state    modelState
}

func newInteractiveModel(filename string, f *ir.File) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "name or kind"
	ti.Prompt = "filter: "
	ti.Width = 40

	return &interactiveModel{
		file:     f,
		filename: filename,
		filter:   ti,
		state:    stateSelectObject,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) openObject() {
	m.members = members(&m.file.Objects[m.selected])
	m.filter.SetValue("")
	m.applyFilter()
	m.state = stateBrowseMembers
}

func (m *interactiveModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for i, mb := range m.members {
		if q == "" || strings.Contains(strings.ToLower(mb.name), q) || strings.HasPrefix(mb.kind, q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = 0
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateFilter {
		switch key.String() {
		case "enter", "esc":
			m.filter.Blur()
			m.state = stateBrowseMembers
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		switch m.state {
		case stateSelectObject:
			if m.selected > 0 {
				m.selected--
			}
		case stateBrowseMembers:
			if m.cursor > 0 {
				m.cursor--
			}
		}

	case "down", "j":
		switch m.state {
		case stateSelectObject:
			if m.selected < len(m.file.Objects)-1 {
				m.selected++
			}
		case stateBrowseMembers:
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		}

	case "/":
		if m.state == stateBrowseMembers {
			m.state = stateFilter
			return m, m.filter.Focus()
		}

	case "enter":
		switch m.state {
		case stateSelectObject:
			if len(m.file.Objects) > 0 {
				m.cursor = 0
				m.openObject()
			}
		case stateBrowseMembers:
			if len(m.visible) > 0 {
				m.state = stateShowMember
			}
		case stateShowMember:
			m.state = stateBrowseMembers
		}

	case "esc":
		switch m.state {
		case stateBrowseMembers:
			m.state = stateSelectObject
			m.members = nil
			m.visible = nil
		case stateShowMember:
			m.state = stateBrowseMembers
		}
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	if len(m.file.Objects) == 0 {
		return errorStyle.Render("No objects in "+m.filename) + "\n\n" + helpStyle.Render("q quit")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("qtbind inspector"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectObject:
		b.WriteString("Select an object:\n\n")
		for i := range m.file.Objects {
			o := &m.file.Objects[i]
			line := fmt.Sprintf("%s (%d properties, %d signals, %d invokables)",
				o.QualifiedName(), len(o.Properties), len(o.Signals), len(o.Invokables))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter open • q quit"))

	case stateBrowseMembers, stateFilter:
		b.WriteString(objectTitle(&m.file.Objects[m.selected]))
		b.WriteString("\n\n")
		if m.state == stateFilter || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		for i, idx := range m.visible {
			line := formatMember(m.members[idx])
			if i == m.cursor && m.state == stateBrowseMembers {
				b.WriteString(selectedStyle.Render("> ") + line)
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.state == stateFilter {
			b.WriteString(helpStyle.Render("enter apply • esc done"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • / filter • enter details • esc back • q quit"))
		}

	case stateShowMember:
		mb := m.members[m.visible[m.cursor]]
		fmt.Fprintf(&b, "%s %s\n\n", typeStyle.Render(mb.kind), nameStyle.Render(mb.name))
		b.WriteString(detailStyle.Render(mb.detail))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter/esc back • q quit"))
	}

	return b.String()
}

func runInteractive(filename string, f *ir.File) error {
	p := tea.NewProgram(newInteractiveModel(filename, f), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
