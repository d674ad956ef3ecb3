package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/cellbuf"
)

// Canvas composes lipgloss-rendered blocks into a cell buffer so prompts can
// be drawn over the host view without breaking its escape sequences.
type Canvas struct {
	screen *cellbuf.Screen
	writer *cellbuf.ScreenWriter
	width  int
	height int
}

func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{
		ShowCursor: false,
		AltScreen:  false,
	})
	return &Canvas{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// DrawStringAt writes block starting at x,y.
func (c *Canvas) DrawStringAt(x, y int, block string) {
	if c == nil || block == "" {
		return
	}
	c.drawBlockAt(x, y, splitLines(block))
}

// centerOverlay draws overlay centered within the canvas.
func (c *Canvas) centerOverlay(overlay string) {
	lines := splitLines(overlay)
	if len(lines) == 0 || c == nil {
		return
	}
	startX := (c.width - maxLineWidth(lines)) / 2
	startY := (c.height - len(lines)) / 2
	c.drawBlockAt(startX, startY, lines)
}

// bottomRightOverlay anchors overlay to the bottom-right corner, padding
// cells in from each edge.
func (c *Canvas) bottomRightOverlay(overlay string, padding int) {
	lines := splitLines(overlay)
	if len(lines) == 0 || c == nil {
		return
	}
	if padding < 0 {
		padding = 0
	}
	startX := c.width - maxLineWidth(lines) - padding
	startY := c.height - len(lines) - padding
	c.drawBlockAt(startX, startY, lines)
}

func (c *Canvas) drawBlockAt(x, y int, lines []string) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	for i, line := range lines {
		row := y + i
		if row >= c.height {
			break
		}
		if line == "" {
			continue
		}
		c.writer.PrintCropAt(x, row, line, "")
	}
}

// Render returns the composed frame as a newline-delimited string.
func (c *Canvas) Render() string {
	if c == nil || c.screen == nil {
		return ""
	}
	raw := cellbuf.Render(c.screen)
	_ = c.screen.Close()
	return strings.ReplaceAll(raw, "\r\n", "\n")
}
