package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/witalewski/cortina/theme"
)

// Semitone offsets of the white keys within an octave
var whiteSemis = [7]int{0, 2, 4, 5, 7, 9, 11}

// Whether a black key sits to the upper right of each white key
var blackAfter = [7]bool{true, true, false, true, true, true, false}

const cellWidth = 2

// Piano renders a clickable keyboard as colored cells, black keys
// offset above the whites. BaseNote must be a C for the layout to line
// up with the note math.
type Piano struct {
	BaseNote uint8
	Octaves  int
}

func NewPiano(baseNote uint8, octaves int) *Piano {
	return &Piano{BaseNote: baseNote, Octaves: octaves}
}

func (p *Piano) whiteCount() int { return p.Octaves * 7 }

// Width returns the rendered width in terminal cells
func (p *Piano) Width() int { return p.whiteCount() * cellWidth }

// Height returns the rendered height in terminal cells
func (p *Piano) Height() int { return 3 }

func (p *Piano) noteAtWhite(w int) int {
	return int(p.BaseNote) + 12*(w/7) + whiteSemis[w%7]
}

// View renders the keyboard. Held notes take the held color, hinted
// notes the hint color.
func (p *Piano) View(held, hints []uint8, th *theme.Theme) string {
	sym := string(th.Symbols.Key)

	colorFor := func(note int, base lipgloss.Color) lipgloss.Color {
		switch {
		case containsNote(held, note):
			return th.Held()
		case containsNote(hints, note):
			return th.Hint()
		default:
			return base
		}
	}

	var black, white, labels strings.Builder
	for w := 0; w < p.whiteCount(); w++ {
		note := p.noteAtWhite(w)

		if blackAfter[w%7] && note+1 <= 127 {
			style := lipgloss.NewStyle().Foreground(colorFor(note+1, th.Muted()))
			black.WriteString(" ")
			black.WriteString(style.Render(sym))
		} else {
			black.WriteString("  ")
		}

		if note <= 127 {
			style := lipgloss.NewStyle().Foreground(colorFor(note, th.FG()))
			white.WriteString(style.Render(sym))
			white.WriteString(" ")
		} else {
			white.WriteString("  ")
		}

		// Octave label under each C
		if w%7 == 0 && note <= 127 {
			labels.WriteString(fmt.Sprintf("%-14s", fmt.Sprintf("C%d", note/12-1)))
		}
	}

	return black.String() + "\n" + white.String() + "\n" + labels.String()
}

// HitTest maps terminal coordinates relative to the widget's top left
// to the key under them
func (p *Piano) HitTest(x, y int) (uint8, bool) {
	if x < 0 {
		return 0, false
	}
	w := x / cellWidth
	if w >= p.whiteCount() {
		return 0, false
	}

	switch y {
	case 0:
		if x%cellWidth == 1 && blackAfter[w%7] {
			if note := p.noteAtWhite(w) + 1; note <= 127 {
				return uint8(note), true
			}
		}
	case 1:
		if note := p.noteAtWhite(w); note <= 127 {
			return uint8(note), true
		}
	}
	return 0, false
}

func containsNote(notes []uint8, note int) bool {
	for _, n := range notes {
		if int(n) == note {
			return true
		}
	}
	return false
}
