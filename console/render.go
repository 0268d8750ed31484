package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"minesweeper/viewmodel"
)

// HiddenMark is printed for cells the player has not uncovered.
const HiddenMark = "H"

// Styles colours the board. The zero value renders plain text.
type Styles struct {
	enabled bool
	header  lipgloss.Style
	hidden  lipgloss.Style
	mine    lipgloss.Style
	counts  [9]lipgloss.Style
}

// countColors follows the usual minesweeper palette, ANSI 256 codes.
var countColors = [9]string{"8", "12", "2", "9", "4", "1", "6", "0", "7"}

// DefaultStyles returns the coloured palette.
func DefaultStyles() Styles {
	s := Styles{
		enabled: true,
		header:  lipgloss.NewStyle().Faint(true),
		hidden:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		mine:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
	for i, c := range countColors {
		s.counts[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
		if i > 0 {
			s.counts[i] = s.counts[i].Bold(true)
		}
	}
	return s
}

func (s Styles) paint(st lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return st.Render(text)
}

func (s Styles) cell(v viewmodel.CellView) string {
	switch {
	case v.State == viewmodel.StateHidden:
		return s.paint(s.hidden, HiddenMark)
	case v.IsMine:
		return s.paint(s.mine, v.Value)
	case v.Count >= 0 && v.Count < len(s.counts):
		return s.paint(s.counts[v.Count], v.Value)
	default:
		return v.Value
	}
}

// Render draws the board: a header of column indices, then each row
// prefixed with its index. Hidden cells show HiddenMark, revealed cells
// their value.
func Render(v viewmodel.GameView, s Styles) string {
	rowWidth := len(strconv.Itoa(v.Rows-1)) + 1
	colWidth := len(strconv.Itoa(v.Columns-1)) + 1

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", rowWidth))
	for c := 0; c < v.Columns; c++ {
		sb.WriteString(s.paint(s.header, fmt.Sprintf("%-*d", colWidth, c)))
	}
	sb.WriteByte('\n')

	for r, row := range v.Cells {
		sb.WriteString(s.paint(s.header, fmt.Sprintf("%-*d", rowWidth, r)))
		for _, cell := range row {
			sb.WriteString(s.cell(cell))
			sb.WriteString(strings.Repeat(" ", colWidth-1))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
