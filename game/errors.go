package game

import (
	"errors"
	"fmt"
)

var (
	// ErrSizeOutOfBounds は行数 1..20、列数 2..50 の範囲外のとき
	ErrSizeOutOfBounds = errors.New("grid size out of bounds")
	// ErrInvalidMineCount は地雷数が範囲外か、すでに配置済みのとき
	ErrInvalidMineCount = errors.New("invalid mine count")
	// ErrMalformedInput は保存テキストが読めないとき
	ErrMalformedInput = errors.New("malformed grid input")
	// ErrDimensionMismatch は保存テキストの行や列の数が盤面と合わないとき
	ErrDimensionMismatch = errors.New("grid dimensions mismatch")
	// ErrIndexOutOfRange は座標が盤面の外のとき
	ErrIndexOutOfRange = errors.New("cell index out of range")
	// ErrAlreadyRevealed はすでに開いているマスを開けようとしたとき
	ErrAlreadyRevealed = errors.New("cell already revealed")
	// ErrGameOver は勝敗が決まった後に未開封のマスを開けようとしたとき
	ErrGameOver = errors.New("game is over")
)

// CellError はエラーと原因になった座標をまとめます
type CellError struct {
	Row    int
	Column int
	Err    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("cell (%d, %d): %v", e.Row, e.Column, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }

// ParseError は保存テキストのどこで読み込みに失敗したかを表します
// Line は1始まりの行番号で、入力全体の失敗なら 0 です
// Token は行全体の失敗なら空です
type ParseError struct {
	Line  int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line == 0:
		return e.Err.Error()
	case e.Token != "":
		return fmt.Sprintf("line %d: token %q: %v", e.Line, e.Token, e.Err)
	default:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }
