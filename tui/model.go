// Package tui is a full-screen bubbletea front end for a game session.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"minesweeper/console"
	"minesweeper/game"
	"minesweeper/logging"
	"minesweeper/solver"
	"minesweeper/viewmodel"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	hiddenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	mineStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
	boardStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("2")).
			Padding(0, 1)
)

// Model is the bubbletea model for one session.
type Model struct {
	session  *game.Session
	bot      *solver.Solver
	log      *logrus.Logger
	savePath string

	row, col int
	message  string

	// editing is set while the save file name is being typed
	editing bool
	input   textinput.Model
}

// New returns a model for s. bot may be nil to disable hints.
func New(s *game.Session, bot *solver.Solver, savePath string, log *logrus.Logger) Model {
	if log == nil {
		log = logging.Nop()
	}
	ti := textinput.New()
	ti.Prompt = "Save as: "
	ti.CharLimit = 255
	ti.Width = 40
	return Model{session: s, bot: bot, savePath: savePath, log: log, input: ti}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Cursor returns the selected cell.
func (m Model) Cursor() game.Coord {
	return game.Coord{Row: m.row, Column: m.col}
}

// Message returns the last feedback line.
func (m Model) Message() string { return m.message }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editing {
		return m.handleSaveInput(key)
	}

	g := m.session.Grid()
	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		m.row = max(0, m.row-1)
	case "down", "j":
		m.row = min(g.Rows()-1, m.row+1)
	case "left", "h":
		m.col = max(0, m.col-1)
	case "right", "l":
		m.col = min(g.Columns()-1, m.col+1)
	case "enter", " ":
		m = m.reveal()
	case "?":
		m = m.hint()
	case "s":
		m.editing = true
		m.message = ""
		m.input.SetValue(m.savePath)
		m.input.CursorEnd()
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) handleSaveInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		m.message = "Save cancelled"
		return m, nil
	case "enter":
		m.editing = false
		m.input.Blur()
		m.savePath = strings.TrimSpace(m.input.Value())
		return m.save(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m Model) reveal() Model {
	v, err := m.session.MakeMove(m.row, m.col)
	if err != nil {
		m.message = err.Error()
		return m
	}
	m.log.WithFields(logrus.Fields{"row": m.row, "column": m.col, "value": v.String()}).Debug("move played")

	switch m.session.Status() {
	case game.Lost:
		m.message = "Boom. You lose."
	case game.Won:
		m.message = "All clear. You win!"
	default:
		m.message = ""
	}
	return m
}

func (m Model) hint() Model {
	if m.bot == nil || m.session.Status().Over() {
		m.message = console.MsgNoHint
		return m
	}
	mv := m.bot.NextMove()
	if mv == nil {
		m.message = console.MsgNoHint
		return m
	}
	m.row, m.col = mv.Row, mv.Column
	if mv.IsGuess {
		m.message = "Hint: no safe cell known, this one is a guess"
	} else {
		m.message = "Hint: this cell is safe"
	}
	return m
}

func (m Model) save() Model {
	if err := console.SaveFile(m.savePath, m.session.Grid()); err != nil {
		m.log.WithError(err).WithField("file", m.savePath).Warn("save failed")
		m.message = console.MsgSaveFailed
		return m
	}
	m.log.WithField("file", m.savePath).Info("game saved")
	m.message = fmt.Sprintf("%s: %s", console.MsgSaveDone, m.savePath)
	return m
}

func (m Model) View() string {
	v := viewmodel.New(m.session)

	var board strings.Builder
	for r, row := range v.Cells {
		for c, cell := range row {
			text := console.HiddenMark
			style := hiddenStyle
			if cell.State == viewmodel.StateOpened {
				text = cell.Value
				switch {
				case cell.IsMine:
					style = mineStyle
				case cell.Count == 0:
					text = "."
					style = lipgloss.NewStyle()
				default:
					style = numberStyle
				}
			}
			if r == m.row && c == m.col {
				style = style.Inherit(cursorStyle)
			}
			board.WriteString(style.Render(text))
			if c < len(row)-1 {
				board.WriteByte(' ')
			}
		}
		if r < len(v.Cells)-1 {
			board.WriteByte('\n')
		}
	}

	footer := m.message
	help := "arrows/hjkl move • enter reveal • ? hint • s save • q quit"
	if m.editing {
		footer = m.input.View()
		help = "enter save • esc cancel"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("minesweeper"),
		boardStyle.Render(board.String()),
		fmt.Sprintf("Game status: %s   cell %d %d", v.Status, m.row, m.col),
		footer,
		helpStyle.Render(help),
	)
}
