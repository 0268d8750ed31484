package game

import "strconv"

// 盤面サイズの上限と下限
const (
	MinRows    = 1
	MaxRows    = 20
	MinColumns = 2
	MaxColumns = 50
)

// Value はマスの中身です（地雷、または周囲8マスの地雷の数）
type Value int8

// Mine は地雷を表します
const Mine Value = -1

// IsMine は地雷かどうかを返します
func (v Value) IsMine() bool { return v == Mine }

// Count は周囲の地雷数を返します（地雷なら -1）
func (v Value) Count() int { return int(v) }

// String は地雷なら "*"、それ以外は数字を返します
func (v Value) String() string {
	if v.IsMine() {
		return "*"
	}
	return strconv.Itoa(int(v))
}

// Visibility はマスが開けられたかどうかです
type Visibility uint8

const (
	Hidden Visibility = iota
	Revealed
)

func (v Visibility) String() string {
	if v == Revealed {
		return "S"
	}
	return "H"
}

// Cell は1つのマスの情報を持ちます
type Cell struct {
	Value      Value      // 地雷か周囲の地雷の数
	Visibility Visibility // すでに開けられたか
}

// Coord は行と列でマスを指します
type Coord struct {
	Row    int
	Column int
}

// Grid はゲーム盤面全体を持ちます
type Grid struct {
	rows    int      // 縦のマス数
	columns int      // 横のマス数
	cells   [][]Cell // 2次元配列でマスを管理
}

// Status は盤面から求めたゲームの状態です
type Status int

const (
	NotStarted Status = iota
	InProgress
	Won
	Lost
)

// String はプレイヤーに表示する状態名を返します
func (s Status) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case InProgress:
		return "InProgress"
	case Won:
		return "Win"
	case Lost:
		return "Lose"
	default:
		return "Unknown"
	}
}

// Over は勝敗が決まったかどうかを返します
func (s Status) Over() bool {
	return s == Won || s == Lost
}
