package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/KirkDiggler/termtris/internal/entities/tetromino"
	"github.com/KirkDiggler/termtris/internal/orchestrators/game"
)

// Canvas is the part of tcell.Screen the renderer draws on
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Clear()
	Show()
}

var kindColors = map[tetromino.Kind]tcell.Color{
	tetromino.KindSquare:  tcell.ColorYellow,
	tetromino.KindLongBar: tcell.ColorAqua,
	tetromino.KindL:       tcell.ColorOrange,
	tetromino.KindJ:       tcell.ColorBlue,
	tetromino.KindZ:       tcell.ColorRed,
	tetromino.KindS:       tcell.ColorGreen,
	tetromino.KindT:       tcell.ColorPurple,
}

// ColorFor returns the color a kind is drawn with
func ColorFor(k tetromino.Kind) tcell.Color {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return tcell.ColorWhite
}

const (
	// each grid cell is two terminal columns wide
	cellWidth = 2
	blockRune = '█'

	sidebarGap = 3
)

var (
	defaultStyle = tcell.StyleDefault
	borderStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	labelStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	bannerStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed).Bold(true)
)

// Renderer draws snapshots. The well's top-left border sits at (0,0);
// grid row r is terminal row r and grid column c starts at terminal column 1+2c.
type Renderer struct {
	canvas Canvas
}

// NewRenderer creates a renderer for canvas
func NewRenderer(canvas Canvas) *Renderer {
	return &Renderer{canvas: canvas}
}

// CellOrigin returns the terminal position of a grid cell's left half
func CellOrigin(c tetromino.Cell) (x, y int) {
	return 1 + c.Col*cellWidth, c.Row
}

// Draw renders one full frame
func (r *Renderer) Draw(snap *game.Snapshot) {
	r.canvas.Clear()
	if snap == nil {
		r.canvas.Show()
		return
	}

	r.drawWell(snap.Width, snap.Height)

	for cell, kind := range snap.Grid {
		r.drawCell(cell, kind)
	}
	if snap.Active != nil {
		for _, cell := range snap.Active.Cells {
			r.drawCell(cell, snap.Active.Kind)
		}
	}

	sidebarX := 2 + snap.Width*cellWidth + sidebarGap
	r.drawSidebar(sidebarX, snap)

	if snap.State == game.StateGameOver {
		r.drawBanner(snap)
	}

	r.canvas.Show()
}

func (r *Renderer) drawWell(width, height int) {
	right := 1 + width*cellWidth
	bottom := height + 1

	for y := 1; y < bottom; y++ {
		r.canvas.SetContent(0, y, '│', nil, borderStyle)
		r.canvas.SetContent(right, y, '│', nil, borderStyle)
	}
	for x := 1; x < right; x++ {
		r.canvas.SetContent(x, 0, '─', nil, borderStyle)
		r.canvas.SetContent(x, bottom, '─', nil, borderStyle)
	}
	r.canvas.SetContent(0, 0, '┌', nil, borderStyle)
	r.canvas.SetContent(right, 0, '┐', nil, borderStyle)
	r.canvas.SetContent(0, bottom, '└', nil, borderStyle)
	r.canvas.SetContent(right, bottom, '┘', nil, borderStyle)
}

func (r *Renderer) drawCell(c tetromino.Cell, k tetromino.Kind) {
	x, y := CellOrigin(c)
	style := defaultStyle.Foreground(ColorFor(k))
	for i := 0; i < cellWidth; i++ {
		r.canvas.SetContent(x+i, y, blockRune, nil, style)
	}
}

func (r *Renderer) drawSidebar(x int, snap *game.Snapshot) {
	r.drawText(x, 1, "NEXT", labelStyle)

	// spawn orientations stay within rows 0..1 and cols -2..1 of the pivot
	pivot := tetromino.Cell{Row: 0, Col: 2}
	style := defaultStyle.Foreground(ColorFor(snap.Next))
	for _, c := range tetromino.CellsAt(snap.Next, tetromino.SpawnOrientation(snap.Next), pivot) {
		px := x + c.Col*cellWidth
		py := 3 + c.Row
		for i := 0; i < cellWidth; i++ {
			r.canvas.SetContent(px+i, py, blockRune, nil, style)
		}
	}

	p := snap.Progression
	r.drawText(x, 7, fmt.Sprintf("SCORE %d", p.Score), labelStyle)
	r.drawText(x, 8, fmt.Sprintf("LEVEL %d", p.Level), labelStyle)
	r.drawText(x, 9, fmt.Sprintf("LINES %d", p.LinesCleared), labelStyle)

	r.drawText(x, 11, "←/h →/l  move", defaultStyle)
	r.drawText(x, 12, "↓/j      drop", defaultStyle)
	r.drawText(x, 13, "↑/x z    rotate", defaultStyle)
	r.drawText(x, 14, "q        quit", defaultStyle)
}

func (r *Renderer) drawBanner(snap *game.Snapshot) {
	lines := []string{" GAME OVER ", fmt.Sprintf(" score %d ", snap.Progression.Score), " press any key "}
	wellWidth := snap.Width * cellWidth
	top := snap.Height/2 - 1
	for i, line := range lines {
		x := 1 + (wellWidth-len([]rune(line)))/2
		if x < 1 {
			x = 1
		}
		r.drawText(x, top+i, line, bannerStyle)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		r.canvas.SetContent(x, y, ch, nil, style)
		x++
	}
}
