// Package ui renders styled terminal output for the CLI.
//
// All styling goes through a single [Palette] of named [lipgloss.Style]
// values, so command handlers never touch colors directly. Rendering
// functions return strings; the caller decides where they go.
package ui
