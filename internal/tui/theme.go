package tui

import "github.com/charmbracelet/lipgloss"

// ────────────────────────────────────────────────────────────
// Color palette, GitHub Dark
// ────────────────────────────────────────────────────────────
//
// All colors are defined here. No ad-hoc color literals anywhere.

var (
	// Base
	colorBg        = lipgloss.Color("#0d1117")
	colorBgSurface = lipgloss.Color("#1c2128")

	// Text
	colorText      = lipgloss.Color("#e6edf3")
	colorTextDim   = lipgloss.Color("#8b949e")
	colorTextMuted = lipgloss.Color("#484f58")

	// Accents
	colorBlue  = lipgloss.Color("#58a6ff")
	colorGreen = lipgloss.Color("#3fb950")
	colorRed   = lipgloss.Color("#f85149")

	// Structural
	colorDivider   = lipgloss.Color("#30363d")
	colorHighlight = lipgloss.Color("#1f6feb")
)

// ────────────────────────────────────────────────────────────
// Component Styles
// ────────────────────────────────────────────────────────────

// Header bar
var (
	headerBarStyle = lipgloss.NewStyle().
			Background(colorBgSurface).
			Foreground(colorText).
			Padding(0, 1)

	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorBlue)

	headerSepStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	headerMetaStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)
)

// Counter cards
var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDivider).
			Padding(0, 1).
			Width(cardWidth).
			Align(lipgloss.Center)

	cardSelectedStyle = cardStyle.
				BorderForeground(colorHighlight)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	cardCountStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	cardMinusStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	cardPlusStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	cardMetaStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)
)

// Name input
var (
	inputBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBgSurface).
			Padding(0, 1)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	inputCursorStyle = lipgloss.NewStyle().
				Background(colorBlue).
				Foreground(colorBg)

	inputIdleStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Padding(0, 1)
)

// Selected counter detail
var (
	detailLabelStyle = lipgloss.NewStyle().
				Foreground(colorBlue)

	detailValueStyle = lipgloss.NewStyle().
				Foreground(colorText)
)

// Footer / status bar
var (
	statusStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBgSurface).
			Padding(0, 1)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Background(colorBgSurface).
				Padding(0, 1)

	hintKeyStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	hintDescStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	emptyStateStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Padding(2, 4)
)
