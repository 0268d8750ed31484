package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"minesweeper/game"
	"minesweeper/solver"
	"minesweeper/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Play in a full-screen terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := a.newSession()
			if !ok {
				return nil
			}
			bot := solver.New(s.Grid(), a.rng(1))
			return tui.Run(tui.New(s, bot, a.cfg.Game.SnapshotPath, a.log))
		},
	}
}

func newAutoplayCmd(a *app) *cobra.Command {
	var games int
	cmd := &cobra.Command{
		Use:   "autoplay",
		Short: "Let the solver play generated boards and report its record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if games < 1 {
				return fmt.Errorf("--games must be at least 1, got %d", games)
			}
			res, err := autoplay(a, games)
			if err != nil {
				a.log.WithError(err).Warn("autoplay aborted")
				fmt.Fprintln(a.out, msgBadBoard)
				return nil
			}
			fmt.Fprintf(a.out, "Played %d games: %d won, %d lost (%.1f%% win rate)\n",
				res.games, res.won, res.lost, 100*float64(res.won)/float64(res.games))
			return nil
		},
	}
	cmd.Flags().IntVarP(&games, "games", "n", 100, "number of games to play")
	return cmd
}

type record struct {
	games, won, lost, guesses int
}

// autoplay plays n boards of the configured size with the solver choosing
// every move. A fixed seed makes the whole run reproducible.
func autoplay(a *app, n int) (record, error) {
	b := a.cfg.Board
	mines, moves := a.rng(0), a.rng(1)
	if mines == nil {
		seed := uint64(time.Now().UnixNano())
		mines = rand.New(rand.NewPCG(seed, seed+1))
		moves = rand.New(rand.NewPCG(seed+1, seed))
	}

	var res record
	for i := 0; i < n; i++ {
		g, err := game.NewGrid(b.Rows, b.Columns)
		if err != nil {
			return res, err
		}
		if err := g.PlaceMines(b.Mines, mines); err != nil {
			return res, err
		}
		s := game.NewSession(g)
		bot := solver.New(g, moves)

		steps := 0
		for !s.Status().Over() {
			mv := bot.NextMove()
			if mv == nil {
				break
			}
			if mv.IsGuess {
				res.guesses++
			}
			if _, err := s.MakeMove(mv.Row, mv.Column); err != nil {
				return res, fmt.Errorf("game %d: solver chose (%d, %d): %w", i, mv.Row, mv.Column, err)
			}
			steps++
		}

		res.games++
		status := s.Status()
		if status == game.Won {
			res.won++
		} else {
			res.lost++
		}
		a.log.WithFields(logrus.Fields{"game": i, "status": status.String(), "moves": steps}).Debug("game finished")
	}
	a.log.WithFields(logrus.Fields{"games": res.games, "won": res.won, "guesses": res.guesses}).Info("autoplay done")
	return res, nil
}
