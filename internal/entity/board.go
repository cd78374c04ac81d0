package entity

import (
	"fmt"

	"github.com/rocketscienceinc/supertictactoe/internal/apperror"
)

const BoardSize = 9

const CenterCell = 4

var (
	// WinCombos is evaluated in order: rows, columns, diagonals.
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}

	CornerCells = [4]int{0, 2, 6, 8}
)

// Board holds the 3x3 grid in row-major order.
type Board [BoardSize]Mark

// WinLine describes a completed triple.
type WinLine struct {
	Mark  Mark   `json:"mark"`
	Cells [3]int `json:"cells"`
}

func InRange(index int) bool {
	return index >= 0 && index < BoardSize
}

// PlaceMark sets the cell at index. The board is left untouched on error.
func (that *Board) PlaceMark(index int, mark Mark) error {
	if !InRange(index) {
		return fmt.Errorf("%w: cell %d out of range", apperror.ErrInvalidMove, index)
	}

	if !mark.IsValid() {
		return fmt.Errorf("%w: mark %q", apperror.ErrInvalidMove, mark)
	}

	if that[index] != Empty {
		return fmt.Errorf("%w: cell %d is already occupied", apperror.ErrInvalidMove, index)
	}

	that[index] = mark

	return nil
}

func (that *Board) IsEmpty(index int) bool {
	return InRange(index) && that[index] == Empty
}

// CheckWin returns the first completed triple in WinCombos order.
func (that *Board) CheckWin() (WinLine, bool) {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != Empty && a == b && b == c {
			return WinLine{Mark: a, Cells: combo}, true
		}
	}

	return WinLine{}, false
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

func (that *Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == Empty {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that *Board) Reset() {
	*that = Board{}
}
