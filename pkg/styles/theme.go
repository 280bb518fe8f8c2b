// Package styles provides centralized style and color definitions for terminal output.
//
// Colors use lipgloss.AdaptiveColor so output stays readable on both light and
// dark terminal backgrounds. Light variants are darker and more saturated;
// dark variants follow the Dracula palette.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// ColorError is used for error messages and critical issues.
	ColorError = lipgloss.AdaptiveColor{
		Light: "#D73737",
		Dark:  "#FF5555",
	}

	// ColorWarning is used for warning messages and cautionary information.
	ColorWarning = lipgloss.AdaptiveColor{
		Light: "#E67E22",
		Dark:  "#FFB86C",
	}

	// ColorSuccess is used for success messages and confirmations.
	ColorSuccess = lipgloss.AdaptiveColor{
		Light: "#27AE60",
		Dark:  "#50FA7B",
	}

	// ColorInfo is used for informational messages.
	ColorInfo = lipgloss.AdaptiveColor{
		Light: "#2980B9",
		Dark:  "#8BE9FD",
	}

	// ColorPurple is used for file paths, keys, and highlights.
	ColorPurple = lipgloss.AdaptiveColor{
		Light: "#8E44AD",
		Dark:  "#BD93F9",
	}

	// ColorComment is used for secondary/muted information like line numbers.
	ColorComment = lipgloss.AdaptiveColor{
		Light: "#6C7A89",
		Dark:  "#6272A4",
	}

	// ColorForeground is used for primary text content.
	ColorForeground = lipgloss.AdaptiveColor{
		Light: "#2C3E50",
		Dark:  "#F8F8F2",
	}

	// ColorBorder is used for table borders and dividers.
	ColorBorder = lipgloss.AdaptiveColor{
		Light: "#BDC3C7",
		Dark:  "#44475A",
	}

	// ColorTableAltRow is used for alternating row backgrounds in tables.
	ColorTableAltRow = lipgloss.AdaptiveColor{
		Light: "#F5F5F5",
		Dark:  "#1A1A1A",
	}
)

// RoundedBorder is the primary border style for tables and boxes.
var RoundedBorder = lipgloss.RoundedBorder()

// Pre-configured styles for common use cases.
var (
	// Error style for error messages.
	Error = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	// Warning style for warning messages.
	Warning = lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)

	// Success style for success messages.
	Success = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)

	// Info style for informational messages.
	Info = lipgloss.NewStyle().Foreground(ColorInfo)

	// FilePath style for file and directory paths.
	FilePath = lipgloss.NewStyle().Foreground(ColorPurple)

	// Key style for translation keys in reports.
	Key = lipgloss.NewStyle().Foreground(ColorPurple)

	// LineNumber style for line numbers in diagnostics.
	LineNumber = lipgloss.NewStyle().Foreground(ColorComment)

	// Header style for section headers.
	Header = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)

	// TableTitle style for table captions.
	TableTitle = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)

	// TableHeader style for the table header row.
	TableHeader = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)

	// TableCell style for ordinary table cells.
	TableCell = lipgloss.NewStyle().Foreground(ColorForeground)

	// TableTotal style for the totals row.
	TableTotal = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)

	// TableBorder style for the table frame.
	TableBorder = lipgloss.NewStyle().Foreground(ColorBorder)
)
