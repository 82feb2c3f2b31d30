package theme

import "github.com/charmbracelet/lipgloss"

// DefaultTheme returns the default dark theme
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		// Background colors
		Background: lipgloss.Color("235"),
		Foreground: lipgloss.Color("252"),

		// UI elements
		Border:        lipgloss.Color("240"),
		BorderFocused: lipgloss.Color("62"),
		Selection:     lipgloss.Color("237"),
		Cursor:        lipgloss.Color("248"),

		// Status colors
		Success: lipgloss.Color("42"),
		Warning: lipgloss.Color("220"),
		Error:   lipgloss.Color("196"),
		Info:    lipgloss.Color("75"),

		// Table colors
		TableHeader:      lipgloss.Color("62"),
		TableRowSelected: lipgloss.Color("237"),

		// Schema panel colors
		ObjectLarge:  lipgloss.Color("196"),
		ObjectMedium: lipgloss.Color("220"),
		ObjectSmall:  lipgloss.Color("252"),
		Metadata:     lipgloss.Color("244"),
		ActiveConn:   lipgloss.Color("42"),
		InactiveConn: lipgloss.Color("244"),
	}
}
