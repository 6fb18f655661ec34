package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds every lipgloss style used by the board.
type Styles struct {
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Sidebar      lipgloss.Style
	SidebarItem  lipgloss.Style
	SidebarFocus lipgloss.Style
	Column       lipgloss.Style
	ColumnFocus  lipgloss.Style
	ColumnDrag   lipgloss.Style
	ColumnTitle  lipgloss.Style
	Card         lipgloss.Style
	CardFocus    lipgloss.Style
	CardDrag     lipgloss.Style
	PriorityHigh lipgloss.Style
	PriorityMed  lipgloss.Style
	PriorityLow  lipgloss.Style
	Notice       lipgloss.Style
	ErrorNotice  lipgloss.Style
	Help         lipgloss.Style
	FormLabel    lipgloss.Style
	Overlay      lipgloss.Style
}

// DefaultStyles returns the default board theme.
func DefaultStyles() *Styles {
	border := lipgloss.RoundedBorder()
	return &Styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Subtitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Sidebar:      lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color("240")).Padding(0, 1).Width(24),
		SidebarItem:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		SidebarFocus: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Column:       lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color("240")).Padding(0, 1).Width(28),
		ColumnFocus:  lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color("205")).Padding(0, 1).Width(28),
		ColumnDrag:   lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color("220")).Padding(0, 1).Width(28),
		ColumnTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		Card:         lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1).Width(24),
		CardFocus:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1).Width(24),
		CardDrag:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("220")).Padding(0, 1).Width(24),
		PriorityHigh: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		PriorityMed:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		PriorityLow:  lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		Notice:       lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		ErrorNotice:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Help:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		FormLabel:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		Overlay:      lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color("205")).Padding(1, 2),
	}
}
