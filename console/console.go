// Package console runs a game as a read-eval-print loop over plain text
// streams: it prints the board and the game status, offers the available
// actions and applies the player's choice.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"minesweeper/game"
	"minesweeper/logging"
	"minesweeper/solver"
	"minesweeper/viewmodel"
)

// Messages printed by the loop.
const (
	MsgSaveFailed    = "Save operation failed"
	MsgSaveDone      = "Save operation done"
	MsgGoodbye       = "Goodbye :)"
	MsgIllegalMove   = "Illegal move values"
	MsgIllegalChoice = "Illegal choice"
	MsgNoHint        = "No hint available"
)

// Menu choices.
const (
	choiceSave = "1"
	choiceExit = "2"
	choiceMove = "3"
	choiceHint = "4"
)

// Options configures a Console.
type Options struct {
	Styles Styles
	Logger *logrus.Logger
	// Solver answers hints. Nil disables the hint action.
	Solver *solver.Solver
}

// Console plays one session against an input and an output stream.
type Console struct {
	session *game.Session
	in      *bufio.Scanner
	out     io.Writer
	styles  Styles
	log     *logrus.Logger
	bot     *solver.Solver
}

// New returns a console for s reading choices from in and writing to out.
func New(s *game.Session, in io.Reader, out io.Writer, opts Options) *Console {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Console{
		session: s,
		in:      bufio.NewScanner(in),
		out:     out,
		styles:  opts.Styles,
		log:     log,
		bot:     opts.Solver,
	}
}

// Run loops until the player exits or the input ends. It only returns an
// error when reading the input fails.
func (c *Console) Run() error {
	for {
		status := c.session.Status()
		c.printTurn(status)

		choice, ok := c.prompt("Enter selection: ")
		if !ok {
			return c.in.Err()
		}

		switch {
		case choice == choiceSave:
			c.save()
		case choice == choiceExit:
			c.println(MsgGoodbye)
			return nil
		case choice == choiceMove && !status.Over():
			c.move()
		case choice == choiceHint && !status.Over() && c.bot != nil:
			c.hint()
		default:
			c.println(MsgIllegalChoice)
		}
	}
}

func (c *Console) printTurn(status game.Status) {
	fmt.Fprint(c.out, Render(viewmodel.New(c.session), c.styles))
	fmt.Fprintf(c.out, "Game status: %s\n", status)

	actions := "(1) Save | (2) Exit"
	if !status.Over() {
		actions += " | (3) Move"
		if c.bot != nil {
			actions += " | (4) Hint"
		}
	}
	fmt.Fprintf(c.out, "Available actions: %s\n", actions)
}

func (c *Console) save() {
	name, ok := c.prompt("Enter filename: ")
	if !ok {
		return
	}
	if err := SaveFile(name, c.session.Grid()); err != nil {
		c.log.WithError(err).WithField("file", name).Warn("save failed")
		c.println(MsgSaveFailed)
		return
	}
	c.log.WithField("file", name).Info("game saved")
	c.println(MsgSaveDone)
}

func (c *Console) move() {
	line, ok := c.prompt("Enter row then column (space separated): ")
	if !ok {
		return
	}
	row, col, err := parseMove(line)
	if err != nil {
		c.log.WithError(err).WithField("input", line).Debug("bad move input")
		c.println(MsgIllegalMove)
		return
	}

	v, err := c.session.MakeMove(row, col)
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{"row": row, "column": col}).Debug("move rejected")
		c.println(MsgIllegalMove)
		return
	}
	c.log.WithFields(logrus.Fields{
		"row":    row,
		"column": col,
		"value":  v.String(),
		"status": c.session.Status().String(),
	}).Debug("move played")
}

func (c *Console) hint() {
	m := c.bot.NextMove()
	if m == nil {
		c.println(MsgNoHint)
		return
	}
	kind := "safe"
	if m.IsGuess {
		kind = "guess"
	}
	fmt.Fprintf(c.out, "Hint: %d %d (%s)\n", m.Row, m.Column, kind)
}

func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) println(msg string) {
	fmt.Fprintln(c.out, msg)
}

var errMoveFormat = errors.New("want two integers separated by a space")

func parseMove(line string) (row, col int, err error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return 0, 0, errMoveFormat
	}
	if row, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("row: %w", err)
	}
	if col, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("column: %w", err)
	}
	return row, col, nil
}

// SaveFile writes g's snapshot to path.
func SaveFile(path string, g *game.Grid) error {
	if path == "" {
		return errors.New("empty file name")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := g.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// LoadFile reads a snapshot from path.
func LoadFile(path string) (*game.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return game.ReadGrid(f)
}
