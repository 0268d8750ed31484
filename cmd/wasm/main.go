//go:build js && wasm

package main

import (
	"encoding/json"
	"strings"
	"syscall/js"

	"minesweeper/game"
	"minesweeper/solver"
	"minesweeper/viewmodel"
)

// browserGame はページで遊んでいるゲームの状態を保持します
type browserGame struct {
	session *game.Session
	bot     *solver.Solver
}

var current = &browserGame{}

func (b *browserGame) start(g *game.Grid) string {
	b.session = game.NewSession(g)
	b.bot = solver.New(g, nil)
	return viewmodel.JSON(b.session)
}

func (b *browserGame) NewGame(rows, columns, mines int) string {
	g, err := game.NewGrid(rows, columns)
	if err == nil {
		err = g.PlaceMines(mines, nil)
	}
	if err != nil {
		return errorJSON(err)
	}
	return b.start(g)
}

func (b *browserGame) Open(row, column int) string {
	if b.session == nil {
		return "{}"
	}
	if _, err := b.session.MakeMove(row, column); err != nil {
		return errorJSON(err)
	}
	return viewmodel.JSON(b.session)
}

func (b *browserGame) BotStep() string {
	if b.session == nil || b.session.Status().Over() {
		return viewmodel.JSON(b.session)
	}
	if m := b.bot.NextMove(); m != nil {
		if _, err := b.session.MakeMove(m.Row, m.Column); err != nil {
			return errorJSON(err)
		}
	}
	return viewmodel.JSON(b.session)
}

// Save は現在の盤面の保存テキストを返します
func (b *browserGame) Save() string {
	if b.session == nil {
		return ""
	}
	return b.session.Grid().Text()
}

func (b *browserGame) Load(text string) string {
	g, err := game.ReadGrid(strings.NewReader(text))
	if err != nil {
		return errorJSON(err)
	}
	return b.start(g)
}

func errorJSON(err error) string {
	out, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(out)
}

func newGameWrapper(this js.Value, args []js.Value) interface{} {
	rows, columns, mines := 10, 10, 10
	if len(args) >= 3 {
		rows = args[0].Int()
		columns = args[1].Int()
		mines = args[2].Int()
	}
	return current.NewGame(rows, columns, mines)
}

func openCellWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	return current.Open(args[0].Int(), args[1].Int())
}

func botStepWrapper(this js.Value, args []js.Value) interface{} {
	return current.BotStep()
}

func saveWrapper(this js.Value, args []js.Value) interface{} {
	return current.Save()
}

func loadWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	return current.Load(args[0].String())
}

func main() {
	c := make(chan struct{})

	js.Global().Set("goNewGame", js.FuncOf(newGameWrapper))
	js.Global().Set("goOpenCell", js.FuncOf(openCellWrapper))
	js.Global().Set("goBotStep", js.FuncOf(botStepWrapper))
	js.Global().Set("goSave", js.FuncOf(saveWrapper))
	js.Global().Set("goLoad", js.FuncOf(loadWrapper))

	println("Go WebAssembly initialized")
	<-c
}
