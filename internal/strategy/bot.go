package strategy

import (
	"fmt"

	"github.com/rocketscienceinc/supertictactoe/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe/internal/entity"
)

// Bot picks squares and mini-games for an AI player.
type Bot struct {
	mark       entity.Mark
	difficulty entity.Difficulty
	rng        Rand
}

func NewBot(mark entity.Mark, difficulty entity.Difficulty, rng Rand) *Bot {
	return &Bot{
		mark:       mark,
		difficulty: difficulty,
		rng:        rng,
	}
}

// BlunderChance is the probability that the bot plays a random empty square.
func BlunderChance(difficulty entity.Difficulty) float64 {
	return ProfileFor(difficulty).BlunderChance
}

// ChooseSquare returns the index the bot wants to claim next.
func (that *Bot) ChooseSquare(board entity.Board) (int, error) {
	empty := board.EmptyCells()
	if len(empty) == 0 {
		return -1, fmt.Errorf("%w: board is full", apperror.ErrNoAvailableMoves)
	}

	if that.rng.Float64() < BlunderChance(that.difficulty) {
		return that.pick(empty), nil
	}

	if cell, ok := findWinningMove(board, that.mark); ok {
		return cell, nil
	}

	if cell, ok := findWinningMove(board, that.mark.Opponent()); ok {
		return cell, nil
	}

	if board[entity.CenterCell] == entity.Empty {
		return entity.CenterCell, nil
	}

	corners := make([]int, 0, len(entity.CornerCells))
	for _, cell := range entity.CornerCells {
		if board[cell] == entity.Empty {
			corners = append(corners, cell)
		}
	}

	if len(corners) > 0 {
		return that.pick(corners), nil
	}

	return that.pick(empty), nil
}

// ChooseMiniGame picks uniformly among every known mini-game.
func (that *Bot) ChooseMiniGame() entity.MiniGameType {
	types := entity.MiniGameTypes()
	return types[that.rng.Intn(len(types))]
}

func (that *Bot) pick(cells []int) int {
	return cells[that.rng.Intn(len(cells))]
}

// findWinningMove returns the vacancy that completes a line for mark.
func findWinningMove(board entity.Board, mark entity.Mark) (int, bool) {
	for _, combo := range entity.WinCombos {
		if cell, ok := completesLine(board, combo, mark); ok {
			return cell, true
		}
	}

	return -1, false
}

func completesLine(board entity.Board, combo [3]int, mark entity.Mark) (int, bool) {
	a, b, c := combo[0], combo[1], combo[2]

	switch {
	case board[a] == mark && board[b] == mark && board[c] == entity.Empty:
		return c, true
	case board[a] == mark && board[c] == mark && board[b] == entity.Empty:
		return b, true
	case board[b] == mark && board[c] == mark && board[a] == entity.Empty:
		return a, true
	default:
		return -1, false
	}
}
