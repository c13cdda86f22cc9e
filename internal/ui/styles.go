// Package ui holds shared lipgloss styles and the meter/progress
// widgets used by the tuning screens.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorInTune  = lipgloss.Color("#00FF00")
	ColorWarning = lipgloss.Color("#FFFF00")
	ColorOffKey  = lipgloss.Color("#FF0000")
	ColorAccent  = lipgloss.Color("#00FFFF")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

// Base styles reused by the screens.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	NoteStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	InTuneStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorInTune)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	OffKeyStyle = lipgloss.NewStyle().
			Foreground(ColorOffKey)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorOffKey).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	ListeningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	StepTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	PhaseStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)
