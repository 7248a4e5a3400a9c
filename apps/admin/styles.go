package main

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#39D353")).Bold(true)
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8250DF"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E7681"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#2DA44E")).Bold(true)
)
