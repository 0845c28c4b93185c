package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader produces the top bar:
//
//	TALLY  |  3 counters  |  41 events
func renderHeader(m *Model) string {
	brand := headerBrandStyle.Render("TALLY")
	sep := headerSepStyle.Render(" │ ")

	parts := []string{
		brand,
		sep,
		headerMetaStyle.Render(plural(m.binder.Len(), "counter")),
		sep,
		headerMetaStyle.Render(plural(m.binder.Total(), "event")),
	}

	return headerBarStyle.Width(m.width).Render(strings.Join(parts, ""))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// renderInput produces the name input line. Outside input mode it shows
// how to open it.
func renderInput(m *Model) string {
	if !m.inputMode {
		return inputIdleStyle.Render("press n to add a counter")
	}
	cursor := inputCursorStyle.Render(" ")
	return inputBarStyle.Width(m.width).Render(
		inputPromptStyle.Render("name ") + m.input + cursor)
}

// renderFooter produces the bottom status bar with keyboard hints.
func renderFooter(m *Model) string {
	var left, right string

	if m.statusMsg != "" {
		style := statusStyle
		if m.statusErr {
			style = statusErrorStyle
		}
		left = style.Render(m.statusMsg)
	}

	if m.inputMode {
		right = renderHints([]hint{
			{"enter", "create"},
			{"esc", "cancel"},
		})
	} else {
		right = renderHints([]hint{
			{"←→", "select"},
			{"+", "add"},
			{"-", "remove"},
			{"n", "new"},
			{"e", "export"},
			{"q", "quit"},
		})
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Background(colorBgSurface).
		Width(m.width).
		Render(bar)
}

type hint struct {
	key  string
	desc string
}

func renderHints(hints []hint) string {
	var parts []string
	for _, h := range hints {
		parts = append(parts,
			hintKeyStyle.Render(h.key)+" "+hintDescStyle.Render(h.desc))
	}
	return strings.Join(parts, hintDescStyle.Render("  "))
}
