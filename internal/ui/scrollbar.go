package ui

import (
	"strings"

	"github.com/wilbur182/campusdesk/internal/styles"
)

const (
	trackGlyph = "│"
	thumbGlyph = "┃"
	newerGlyph = "↓"
)

// ChatScrollbar describes the chat viewport for its scrollbar column.
type ChatScrollbar struct {
	Lines  int // rendered conversation lines
	Offset int // first visible line
	Height int // visible rows
}

// Render returns a one-column string of Height rows. When the whole
// conversation fits it is a column of spaces so the chat width stays fixed.
// When the reader has scrolled away from the newest message the bottom cell
// shows an arrow.
func (s ChatScrollbar) Render() string {
	if s.Height < 1 {
		return ""
	}
	rows := make([]string, s.Height)
	if s.Lines <= s.Height {
		for i := range rows {
			rows[i] = " "
		}
		return strings.Join(rows, "\n")
	}

	thumb := s.Height * s.Height / s.Lines
	thumb = max(1, min(thumb, s.Height))

	below := s.Lines - s.Height
	pos := s.Offset * (s.Height - thumb) / below
	pos = max(0, min(pos, s.Height-thumb))

	for i := range rows {
		if i >= pos && i < pos+thumb {
			rows[i] = styles.ScrollThumb.Render(thumbGlyph)
		} else {
			rows[i] = styles.ScrollTrack.Render(trackGlyph)
		}
	}
	if s.Offset < below && s.Height > 1 {
		rows[s.Height-1] = styles.ScrollNewer.Render(newerGlyph)
	}
	return strings.Join(rows, "\n")
}
