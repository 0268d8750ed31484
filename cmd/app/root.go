package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"minesweeper/config"
	"minesweeper/console"
	"minesweeper/game"
	"minesweeper/logging"
	"minesweeper/solver"
)

// Messages for startup failures.
const (
	msgBadInputFile = "Badly-formatted input file"
	msgBadBoard     = "Illegal rows/columns/mines values"
)

// app carries what every command needs once flags and config are read.
type app struct {
	in  io.Reader
	out io.Writer

	cfgFile string
	input   string

	cfg     *config.Config
	log     *logrus.Logger
	logFile *os.File
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	root := &cobra.Command{
		Use:   "minesweeper",
		Short: "Play minesweeper in the terminal",
		Long: `Play minesweeper on a board of up to 20 rows and 50 columns.

A board is either generated from --rows, --columns and --mines or loaded
from a snapshot file given with --input, in which case the other board
flags are ignored.`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
		PersistentPostRun: func(cmd *cobra.Command, args []string) { a.close() },
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.play()
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/minesweeper/minesweeper.yaml)")
	flags.StringVarP(&a.input, "input", "i", "", "name of input file")
	flags.IntP("rows", "r", 1, "number of rows")
	flags.IntP("columns", "c", 2, "number of columns")
	flags.IntP("mines", "m", 1, "number of mines")
	flags.Uint64("seed", 0, "random seed for mine placement and hints (0 = time based)")
	flags.String("log-level", logging.LevelWarn, "log level (debug, info, warn, error)")
	flags.Bool("color", true, "colour the board when writing to a terminal")

	bindFlag(root, "board.rows", "rows")
	bindFlag(root, "board.columns", "columns")
	bindFlag(root, "board.mines", "mines")
	bindFlag(root, "game.seed", "seed")
	bindFlag(root, "logging.level", "log-level")
	bindFlag(root, "display.color", "color")

	root.AddCommand(newTUICmd(a), newAutoplayCmd(a))
	return root
}

// bindFlag binds a config key to one of cmd's persistent flags and panics
// when the flag does not exist.
func bindFlag(cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		panic(fmt.Sprintf("bind %s: no flag --%s", key, flag))
	}
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("bind %s: %v", key, err))
	}
}

func (a *app) setup() error {
	if err := config.Init(a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	var logOut io.Writer = os.Stderr
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		a.logFile = f
		logOut = f
	}
	a.log = logging.New(cfg.Logging.Level, logOut)
	return nil
}

func (a *app) close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// rng returns a seeded source when a seed is configured, nil otherwise.
// offset keeps the hint solver's stream apart from mine placement.
func (a *app) rng(offset uint64) *rand.Rand {
	if a.cfg.Game.Seed == 0 {
		return nil
	}
	s := a.cfg.Game.Seed + offset
	return rand.New(rand.NewPCG(s, s))
}

// newSession loads the input file or generates a board. ok is false when
// the failure message has already been printed.
func (a *app) newSession() (s *game.Session, ok bool) {
	if a.input != "" {
		g, err := console.LoadFile(a.input)
		if err != nil {
			a.log.WithError(err).WithField("file", a.input).Warn("could not load board")
			fmt.Fprintln(a.out, msgBadInputFile)
			return nil, false
		}
		a.log.WithFields(logrus.Fields{"file": a.input, "rows": g.Rows(), "columns": g.Columns()}).Info("board loaded")
		return game.NewSession(g), true
	}

	b := a.cfg.Board
	g, err := game.NewGrid(b.Rows, b.Columns)
	if err == nil {
		err = g.PlaceMines(b.Mines, a.rng(0))
	}
	if err != nil {
		a.log.WithError(err).WithFields(logrus.Fields{"rows": b.Rows, "columns": b.Columns, "mines": b.Mines}).Warn("could not build board")
		fmt.Fprintln(a.out, msgBadBoard)
		return nil, false
	}
	a.log.WithFields(logrus.Fields{"rows": b.Rows, "columns": b.Columns, "mines": b.Mines}).Info("board generated")
	return game.NewSession(g), true
}

func (a *app) styles() console.Styles {
	if !a.cfg.Display.Color {
		return console.Styles{}
	}
	f, ok := a.out.(*os.File)
	if !ok || !term.IsTerminal(f.Fd()) {
		return console.Styles{}
	}
	return console.DefaultStyles()
}

func (a *app) play() error {
	s, ok := a.newSession()
	if !ok {
		return nil
	}
	c := console.New(s, a.in, a.out, console.Options{
		Styles: a.styles(),
		Logger: a.log,
		Solver: solver.New(s.Grid(), a.rng(1)),
	})
	return c.Run()
}
