package render

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/artpalette/internal/colour"
)

// ANSI escape codes for truecolour terminals.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
)

func background(c colour.RGB) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
}

func foreground(c colour.RGB) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, c.R, c.G, c.B, ansiSuffix)
}

// block returns a solid block of width spaces on a c background.
func block(c colour.RGB, width int) string {
	return background(c) + strings.Repeat(" ", width) + ansiReset
}

// labelledBlock centres text in a block, drawn in black or white for contrast.
func labelledBlock(c colour.RGB, text string, width int) string {
	if len(text) > width {
		text = text[:width]
	}
	pad := (width - len(text)) / 2
	text = strings.Repeat(" ", pad) + text + strings.Repeat(" ", width-len(text)-pad)

	fg := colour.ToRGB(colour.ReadableOn(rgbColor(c)))
	return background(c) + foreground(fg) + text + ansiReset
}
