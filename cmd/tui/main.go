package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/dunamismax/go-cli/todo"
)

func main() {
	todoFile := flag.String("file", "todos.json", "Path of the todo file")
	flag.Parse()

	storage := todo.NewStorage(*todoFile)
	list, err := storage.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", *todoFile, err)
		os.Exit(1)
	}

	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		width = 100 // fallback
	}

	idCol := 4
	statusCol := 12
	priCol := 8
	dueCol := 12
	titleCol := width - idCol - statusCol - priCol - dueCol - 10
	if titleCol < 20 {
		titleCol = 20
	}

	ti := textinput.New()
	ti.Placeholder = "Add a new todo..."
	ti.Focus()
	ti.Width = 50

	columns := []table.Column{
		{Title: "ID", Width: idCol},
		{Title: "Status", Width: statusCol},
		{Title: "Pri", Width: priCol},
		{Title: "Title", Width: titleCol},
		{Title: "Due", Width: dueCol},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows([]table.Row{}),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(styles)

	m := model{
		textInput: ti,
		table:     t,
		storage:   storage,
		list:      list,
	}
	m.refreshTable()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting program: %v\n", err)
		os.Exit(1)
	}
}
