package ui

import (
	"fmt"
	"strings"

	"github.com/dmholland/queuectl/internal/models"
	"github.com/dmholland/queuectl/internal/shared"
)

// Title renders a section heading.
func Title(s string) string { return styles.title.Render(s) }

// Success renders a confirmation line.
func Success(s string) string { return styles.ok.Render(s) }

// Error renders a failure line.
func Error(s string) string { return styles.err.Render(s) }

// Warn renders a caution line.
func Warn(s string) string { return styles.warn.Render(s) }

// Help renders secondary, de-emphasized text.
func Help(s string) string { return styles.help.Render(s) }

// RenderQueue renders a snapshot as a numbered track listing with a header.
func RenderQueue(snap *models.QueueSnapshot) string {
	var b strings.Builder

	b.WriteString(Title(snap.Player))
	b.WriteString("\n")
	b.WriteString(Help(fmt.Sprintf("%d tracks, %s total",
		len(snap.Tracks), shared.FormatDuration(snap.TotalLength()))))
	b.WriteString("\n\n")

	width := len(fmt.Sprintf("%d", len(snap.Tracks)))
	for i, m := range snap.Tracks {
		b.WriteString(fmt.Sprintf("%*d. %s\n", width, i+1, renderTrack(m)))
	}

	return b.String()
}

// RenderPlayers renders discovered bus names, marking the active one.
func RenderPlayers(names []string, active string) string {
	var b strings.Builder
	b.WriteString(Title("Players"))
	b.WriteString("\n")
	for _, name := range names {
		if name == active {
			b.WriteString(Success("* " + name))
		} else {
			b.WriteString("  " + name)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderTrack(m models.Metadata) string {
	title := m.Title
	if title == "" {
		// Nothing cached for this id.
		if id, ok := m.TrackID(); ok {
			return Warn(id.String() + " (no metadata)")
		}
		return Warn("(unknown track)")
	}

	line := title
	if artist := m.Artist(); artist != "" {
		line = artist + " - " + title
	}
	if m.Length > 0 {
		line += " " + Help("["+shared.FormatDuration(m.Length)+"]")
	}
	return line
}
