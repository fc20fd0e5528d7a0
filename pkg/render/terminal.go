package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Draw presents the framebuffer on a terminal screen. Each cell shows two
// vertically stacked pixels using ▀ with the top pixel as foreground and the
// bottom pixel as background, so the framebuffer height should be twice the
// number of rows in area.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: fb.GetPixel(x, topY),
					Bg: fb.GetPixel(x, botY),
				},
			})
		}
	}
}

// TerminalSize returns the framebuffer size that fills a terminal of the
// given columns and rows.
func TerminalSize(cols, rows int) (width, height int) {
	return max(cols, 0), max(rows, 0) * 2
}
