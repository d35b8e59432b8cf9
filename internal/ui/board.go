package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

var (
	pageColor = color.NRGBA{R: 245, G: 246, B: 248, A: 255}
	gridColor = color.NRGBA{R: 220, G: 220, B: 220, A: 100}
)

// NewBoard builds the scrolling page the overlay annotates: a ruled sheet
// of the given size, so scrolling is visible under the ink.
func NewBoard(size fyne.Size, gridSize float32) *container.Scroll {
	bg := canvas.NewRectangle(pageColor)
	bg.SetMinSize(size)

	grid := container.NewWithoutLayout(createGrid(size, gridSize)...)
	return container.NewScroll(container.NewStack(bg, grid))
}

func createGrid(size fyne.Size, step float32) []fyne.CanvasObject {
	if step <= 0 {
		return nil
	}
	var lines []fyne.CanvasObject
	for x := float32(0); x < size.Width; x += step {
		lines = append(lines, gridLine(fyne.NewPos(x, 0), fyne.NewPos(x, size.Height)))
	}
	for y := float32(0); y < size.Height; y += step {
		lines = append(lines, gridLine(fyne.NewPos(0, y), fyne.NewPos(size.Width, y)))
	}
	return lines
}

func gridLine(from, to fyne.Position) *canvas.Line {
	line := canvas.NewLine(gridColor)
	line.Position1 = from
	line.Position2 = to
	line.StrokeWidth = 0.5
	return line
}
