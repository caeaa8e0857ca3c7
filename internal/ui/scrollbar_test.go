package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func column(s ChatScrollbar) []string {
	return strings.Split(ansi.Strip(s.Render()), "\n")
}

func TestChatScrollbar(t *testing.T) {
	assert.Empty(t, ChatScrollbar{Height: 0}.Render())

	spacer := ChatScrollbar{Lines: 3, Height: 4}.Render()
	assert.Equal(t, strings.Repeat(" \n", 3)+" ", spacer)

	assert.Equal(t, []string{"┃", "│", "│", "↓"}, column(ChatScrollbar{Lines: 20, Offset: 0, Height: 4}),
		"top of a long chat points at newer messages")
	assert.Equal(t, []string{"│", "│", "┃", "↓"}, column(ChatScrollbar{Lines: 20, Offset: 12, Height: 4}))
	assert.Equal(t, []string{"│", "│", "│", "┃"}, column(ChatScrollbar{Lines: 20, Offset: 16, Height: 4}),
		"no arrow once the newest line is visible")
}

func TestChatScrollbarSingleRow(t *testing.T) {
	assert.Equal(t, []string{"┃"}, column(ChatScrollbar{Lines: 20, Offset: 0, Height: 1}))
}
