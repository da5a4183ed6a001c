package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dunamismax/go-cli/models"
	"github.com/dunamismax/go-cli/todo"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	inputStyle = lipgloss.NewStyle().
			Margin(1, 0, 1, 0)
	tableStyle = lipgloss.NewStyle().
			Margin(0, 0, 1, 0)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

type model struct {
	textInput textinput.Model
	table     table.Model
	storage   *todo.Storage
	list      *todo.List
	visible   []int // item ID per table row
	err       error
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	var enter = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("⏎", "add/toggle"),
	)
	var toggleFocus = key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "toggle focus"),
	)
	var remove = key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, enter):
			if m.textInput.Focused() {
				return m.addFromInput(), nil
			}
			if m.table.Focused() {
				return m.toggleSelected(), nil
			}
		case key.Matches(msg, remove):
			if m.table.Focused() {
				return m.deleteSelected(), nil
			}
		case key.Matches(msg, toggleFocus):
			if m.textInput.Focused() {
				m.textInput.Blur()
				m.table.Focus()
			} else {
				m.table.Blur()
				m.textInput.Focus()
			}
			return m, nil
		case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
			return m, tea.Quit
		}

		if m.textInput.Focused() {
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
		if m.table.Focused() {
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		// If neither is focused, pass to both to catch navigation or typing
		var tiCmd, tCmd tea.Cmd
		m.textInput, tiCmd = m.textInput.Update(msg)
		m.table, tCmd = m.table.Update(msg)
		return m, tea.Batch(tiCmd, tCmd)

	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(msg.Height - 9)
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(inputStyle.Render(m.textInput.View()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(fmt.Sprintf("Error: %v\n", m.err))
	}
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n")

	stats := m.list.Stats()
	b.WriteString(fmt.Sprintf("%d items, %d done (%.0f%%)\n",
		stats.Total, stats.Completed, stats.CompletionRate))

	return baseStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			b.String(),
			helpStyle.Render("Press Enter to add (in input) or toggle done (in table), Tab to toggle focus, x to delete, Esc to quit."),
		),
	)
}

func (m model) addFromInput() model {
	title := strings.TrimSpace(m.textInput.Value())
	if title == "" {
		return m
	}
	if _, err := m.list.Add(title, "", models.PriorityMedium, nil, nil); err != nil {
		m.err = err
		return m
	}
	return m.persist()
}

func (m model) toggleSelected() model {
	id, ok := m.selectedID()
	if !ok {
		return m
	}
	item, err := m.list.Get(id)
	if err != nil {
		m.err = err
		return m
	}
	if item.Status == models.StatusCompleted {
		_, err = m.list.Reopen(id)
	} else {
		_, err = m.list.Complete(id)
	}
	if err != nil {
		m.err = err
		return m
	}
	return m.persist()
}

func (m model) deleteSelected() model {
	id, ok := m.selectedID()
	if !ok {
		return m
	}
	if err := m.list.Delete(id); err != nil {
		m.err = err
		return m
	}
	return m.persist()
}

// persist saves the list and rebuilds the table.
func (m model) persist() model {
	if err := m.storage.Save(m.list); err != nil {
		m.err = err
		return m
	}
	m.err = nil
	m.textInput.SetValue("")
	m.refreshTable()
	return m
}

func (m model) selectedID() (int, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.visible) {
		return 0, false
	}
	return m.visible[cursor], true
}

func (m *model) refreshTable() {
	rows := []table.Row{}
	m.visible = m.visible[:0]
	for i := range m.list.Items {
		item := &m.list.Items[i]
		due := ""
		if item.DueDate != nil {
			due = item.DueDate.Format("2006-01-02")
		}
		m.visible = append(m.visible, item.ID)
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", item.ID),
			statusLabel(item.Status),
			string(item.Priority),
			item.Title,
			due,
		})
	}
	m.table.SetRows(rows)
}
