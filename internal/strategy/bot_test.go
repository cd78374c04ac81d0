package strategy

import (
	"testing"

	"github.com/rocketscienceinc/supertictactoe/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays fixed values; once a script runs out it keeps returning
// 0 for Intn and 0.99 for Float64 (never blunders).
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (that *scriptedRand) Intn(n int) int {
	if len(that.ints) == 0 {
		return 0
	}

	value := that.ints[0]
	that.ints = that.ints[1:]

	return value % n
}

func (that *scriptedRand) Float64() float64 {
	if len(that.floats) == 0 {
		return 0.99
	}

	value := that.floats[0]
	that.floats = that.floats[1:]

	return value
}

func TestBot_ChooseSquare(t *testing.T) {
	t.Run("Blunders into a random empty square", func(t *testing.T) {
		// Given: an easy bot whose roll is under the 0.40 blunder chance
		rng := &scriptedRand{floats: []float64{0.39}, ints: []int{2}}
		bot := NewBot(entity.O, entity.Easy, rng)
		board := entity.Board{0: entity.O, 1: entity.O, 3: entity.X, 4: entity.X}

		// When: the bot chooses
		cell, err := bot.ChooseSquare(board)

		// Then: it skips the winning move and takes the third empty cell
		require.NoError(t, err)
		assert.Equal(t, board.EmptyCells()[2], cell)
	})

	t.Run("Roll at the blunder threshold thinks", func(t *testing.T) {
		rng := &scriptedRand{floats: []float64{0.20}}
		bot := NewBot(entity.O, entity.Medium, rng)
		board := entity.Board{0: entity.O, 1: entity.O, 3: entity.X, 4: entity.X}

		cell, err := bot.ChooseSquare(board)

		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Wins before blocking", func(t *testing.T) {
		// Given: both sides have an open two
		bot := NewBot(entity.O, entity.Hard, &scriptedRand{})
		board := entity.Board{0: entity.X, 1: entity.X, 6: entity.O, 7: entity.O}

		// When: the bot chooses
		cell, err := bot.ChooseSquare(board)

		// Then: it completes its own line
		require.NoError(t, err)
		assert.Equal(t, 8, cell)
	})

	t.Run("Blocks the opponent", func(t *testing.T) {
		bot := NewBot(entity.O, entity.Hard, &scriptedRand{})
		board := entity.Board{0: entity.X, 1: entity.X, 4: entity.O}

		cell, err := bot.ChooseSquare(board)

		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Finds the gap in the middle of a line", func(t *testing.T) {
		bot := NewBot(entity.X, entity.Hard, &scriptedRand{})
		board := entity.Board{0: entity.X, 2: entity.X, 4: entity.O}

		cell, err := bot.ChooseSquare(board)

		require.NoError(t, err)
		assert.Equal(t, 1, cell)
	})

	t.Run("Takes the center on an empty board", func(t *testing.T) {
		bot := NewBot(entity.X, entity.Medium, &scriptedRand{})

		cell, err := bot.ChooseSquare(entity.Board{})

		require.NoError(t, err)
		assert.Equal(t, entity.CenterCell, cell)
	})

	t.Run("Takes a corner when the center is gone", func(t *testing.T) {
		// Given: only the center is taken
		rng := &scriptedRand{ints: []int{3}}
		bot := NewBot(entity.O, entity.Hard, rng)
		board := entity.Board{4: entity.X}

		// When: the bot chooses
		cell, err := bot.ChooseSquare(board)

		// Then: the fourth free corner is picked
		require.NoError(t, err)
		assert.Equal(t, 8, cell)
	})

	t.Run("Falls back to any empty square", func(t *testing.T) {
		// Given: corners and center are filled and nobody can complete a line
		rng := &scriptedRand{ints: []int{1}}
		bot := NewBot(entity.O, entity.Hard, rng)
		board := entity.Board{
			entity.X, entity.Empty, entity.O,
			entity.O, entity.X, entity.X,
			entity.X, entity.Empty, entity.O,
		}

		// When: the bot chooses
		cell, err := bot.ChooseSquare(board)

		// Then: the second remaining edge is picked
		require.NoError(t, err)
		assert.Equal(t, 7, cell)
	})

	t.Run("Full board has no move", func(t *testing.T) {
		bot := NewBot(entity.O, entity.Hard, &scriptedRand{})
		board := entity.Board{
			entity.X, entity.O, entity.X,
			entity.X, entity.O, entity.O,
			entity.O, entity.X, entity.X,
		}

		cell, err := bot.ChooseSquare(board)

		require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
		assert.Equal(t, -1, cell)
	})
}

func TestBot_ChooseMiniGame(t *testing.T) {
	t.Run("Maps the roll onto the mini-game list", func(t *testing.T) {
		bot := NewBot(entity.O, entity.Easy, &scriptedRand{ints: []int{0, 3, 4}})

		assert.Equal(t, entity.Reaction, bot.ChooseMiniGame())
		assert.Equal(t, entity.QuickMath, bot.ChooseMiniGame())
		assert.Equal(t, entity.TargetShooter, bot.ChooseMiniGame())
	})

	t.Run("Same seed gives the same choices", func(t *testing.T) {
		first := NewBot(entity.O, entity.Hard, NewRand(42))
		second := NewBot(entity.O, entity.Hard, NewRand(42))

		for range 20 {
			assert.Equal(t, first.ChooseMiniGame(), second.ChooseMiniGame())
		}
	})

	t.Run("Every choice is a known mini-game", func(t *testing.T) {
		bot := NewBot(entity.X, entity.Medium, NewRand(7))

		for range 100 {
			assert.True(t, bot.ChooseMiniGame().IsValid())
		}
	})
}

func TestBlunderChance(t *testing.T) {
	assert.InDelta(t, 0.40, BlunderChance(entity.Easy), 1e-9)
	assert.InDelta(t, 0.20, BlunderChance(entity.Medium), 1e-9)
	assert.InDelta(t, 0.05, BlunderChance(entity.Hard), 1e-9)
	assert.InDelta(t, 0.20, BlunderChance("unknown"), 1e-9)
}
