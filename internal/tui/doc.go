// Package tui implements the Tally terminal user interface.
//
// Built with Charmbracelet's BubbleTea and Lipgloss.
//
// Component architecture:
//
//	model.go    root model, message routing, Init/Update/View
//	binder.go   one card per counter, kept in sync with the registry
//	cards.go    card grid rendering and mouse hit-testing
//	header.go   top bar, name input line and footer hints
//	theme.go    centralized color + style definitions
//	helpers.go  truncation and integer helpers
package tui
