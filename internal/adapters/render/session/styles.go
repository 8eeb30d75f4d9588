package session

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	wallet    lipgloss.Style
	position  lipgloss.Style
	link      lipgloss.Style
	submitter lipgloss.Style
	mine      lipgloss.Style
	hint      lipgloss.Style
	warning   lipgloss.Style
	section   lipgloss.Style
	empty     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		wallet:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		position:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		link:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		submitter: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		mine:      lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		hint:      lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:   lipgloss.NewStyle().MarginTop(1),
		empty:     lipgloss.NewStyle().Faint(true),
	}
}
