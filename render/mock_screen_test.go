package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// MockScreen is a minimal tcell.Screen that records drawn cells
type MockScreen struct {
	tcell.Screen
	width, height int
	cells         map[[2]int]mockCell
	shows         int
}

type mockCell struct {
	r     rune
	style tcell.Style
}

func newMockScreen(w, h int) *MockScreen {
	return &MockScreen{width: w, height: h, cells: make(map[[2]int]mockCell)}
}

func (m *MockScreen) Size() (int, int) { return m.width, m.height }
func (m *MockScreen) Clear()           { m.cells = make(map[[2]int]mockCell) }
func (m *MockScreen) Show()            { m.shows++ }

func (m *MockScreen) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	m.cells[[2]int{x, y}] = mockCell{r: mainc, style: style}
}

// row returns the text of row y, skipping the filler cell after wide runes
func (m *MockScreen) row(y int) string {
	var b strings.Builder
	for x := 0; x < m.width; x++ {
		c, ok := m.cells[[2]int{x, y}]
		if !ok || c.r == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(c.r)
		if runewidth.RuneWidth(c.r) == 2 {
			x++
		}
	}
	return b.String()
}

// text returns every row joined by newlines
func (m *MockScreen) text() string {
	rows := make([]string, m.height)
	for y := range rows {
		rows[y] = m.row(y)
	}
	return strings.Join(rows, "\n")
}

// find returns the first cell holding r
func (m *MockScreen) find(r rune) (x, y int, ok bool) {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.cells[[2]int{x, y}].r == r {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}
