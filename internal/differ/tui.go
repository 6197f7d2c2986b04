// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrSelectionAborted is returned when the user quits the field picker.
var ErrSelectionAborted = errors.New("field selection aborted")

// SelectFields asks the user to pick comparison fields from candidates. The
// picker draws on stderr so stdout stays reserved for the report. The result
// follows candidate order.
func SelectFields(candidates, preselected []string) ([]string, error) {
	if len(candidates) == 0 {
		return nil, invalidf("there are no fields to compare")
	}

	p := tea.NewProgram(newPicker(candidates, preselected), tea.WithOutput(os.Stderr))
	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("field picker failed: %w", err)
	}

	final := m.(picker)
	if final.aborted {
		return nil, ErrSelectionAborted
	}
	return final.chosen(), nil
}

var (
	pickerTitleStyle  = lipgloss.NewStyle().Bold(true)
	pickerCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f6be00"))
	pickerMarkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00c8f0"))
	pickerHintStyle   = lipgloss.NewStyle().Faint(true)
	pickerWarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e05050"))
)

type picker struct {
	items    []string
	selected map[string]bool
	filter   textinput.Model
	cursor   int
	aborted  bool
	warning  string
}

func newPicker(items, preselected []string) picker {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "/ "
	ti.CharLimit = 256
	ti.Focus()

	selected := make(map[string]bool, len(preselected))
	for _, p := range preselected {
		selected[p] = true
	}

	return picker{items: items, selected: selected, filter: ti}
}

func (m picker) Init() tea.Cmd { return textinput.Blink }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		visible := m.visible()
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(visible)-1 {
				m.cursor++
			}
			return m, nil
		case " ", "space":
			if len(visible) > 0 {
				item := visible[m.cursor]
				m.selected[item] = !m.selected[item]
				m.warning = ""
			}
			return m, nil
		case "ctrl+a":
			// Toggle every visible item to the same state.
			all := true
			for _, item := range visible {
				if !m.selected[item] {
					all = false
					break
				}
			}
			for _, item := range visible {
				m.selected[item] = !all
			}
			m.warning = ""
			return m, nil
		case "enter":
			if len(m.chosen()) == 0 {
				m.warning = "select at least one field"
				return m, nil
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	return m, cmd
}

func (m picker) View() string {
	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render("Select fields to compare:"))
	b.WriteString("\n\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(pickerHintStyle.Render("  no field matches"))
		b.WriteString("\n")
	}
	for i, item := range visible {
		cursor := " "
		if m.cursor == i {
			cursor = pickerCursorStyle.Render(">")
		}
		mark := " "
		if m.selected[item] {
			mark = pickerMarkStyle.Render("x")
		}
		fmt.Fprintf(&b, "%s [%s] %s\n", cursor, mark, item)
	}

	if m.warning != "" {
		b.WriteString("\n" + pickerWarnStyle.Render(m.warning) + "\n")
	}
	b.WriteString(pickerHintStyle.Render("\nSPACE: toggle, CTRL+A: toggle all, ENTER: go, ESC: quit\n"))
	return b.String()
}

// visible returns the items matching the filter text, case-insensitively.
func (m picker) visible() []string {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if needle == "" {
		return m.items
	}
	var out []string
	for _, item := range m.items {
		if strings.Contains(strings.ToLower(item), needle) {
			out = append(out, item)
		}
	}
	return out
}

// chosen returns the selected items in item order.
func (m picker) chosen() []string {
	var out []string
	for _, item := range m.items {
		if m.selected[item] {
			out = append(out, item)
		}
	}
	return out
}
