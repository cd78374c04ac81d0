package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/supertictactoe/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe/internal/entity"
	"github.com/rocketscienceinc/supertictactoe/internal/strategy"
)

type statisticsDep interface {
	UpdateStatistics(ctx context.Context, mutate func(stats *entity.Statistics)) entity.Statistics
}

// Listener receives a copy of the session after every successful mutation.
type Listener func(session entity.Session)

type subscription struct {
	id       uint64
	listener Listener
}

// Orchestrator owns the authoritative session and drives it through
// menu -> playing <-> mini-game -> game-over.
//
// It is not safe for concurrent use: every call must run to completion before
// the next one starts. Listeners run synchronously inside the mutating call,
// in subscription order; a listener that calls back into a mutator is rejected
// with apperror.ErrReentrantCall. Listener panics are not recovered.
type Orchestrator struct {
	logger *slog.Logger
	stats  statisticsDep
	rng    strategy.Rand

	session entity.Session

	subscriptions []subscription
	nextID        uint64
	notifying     bool
}

func NewOrchestrator(logger *slog.Logger, stats statisticsDep, rng strategy.Rand) *Orchestrator {
	return &Orchestrator{
		logger:  logger.With("component", "orchestrator"),
		stats:   stats,
		rng:     rng,
		session: entity.NewSession(),
	}
}

// Snapshot returns a copy of the current session.
func (that *Orchestrator) Snapshot() entity.Session {
	return that.session.Clone()
}

// Subscribe registers listener and returns a function that removes it.
func (that *Orchestrator) Subscribe(listener Listener) func() {
	that.nextID++
	id := that.nextID

	that.subscriptions = append(that.subscriptions, subscription{id: id, listener: listener})

	return func() {
		for i, sub := range that.subscriptions {
			if sub.id == id {
				that.subscriptions = append(that.subscriptions[:i:i], that.subscriptions[i+1:]...)
				return
			}
		}
	}
}

// StartGame begins a fresh game between exactly two players; the first one moves first.
func (that *Orchestrator) StartGame(ctx context.Context, players []*entity.Player) (entity.Session, error) {
	if err := that.guard(); err != nil {
		return that.Snapshot(), err
	}

	if that.session.Status == entity.StatusPlaying || that.session.Status == entity.StatusMiniGame {
		return that.reject("StartGame", fmt.Errorf("%w: game already in progress", apperror.ErrWrongStatus))
	}

	if err := validatePlayers(players); err != nil {
		return that.reject("StartGame", err)
	}

	roster := make([]entity.Player, 0, len(players))
	for _, player := range players {
		copied := *player
		copied.Score = 0
		roster = append(roster, copied)
	}

	that.begin(ctx, roster)
	that.logger.Info("game started", "players", len(roster), "first", roster[0].Mark)

	return that.commit()
}

// Restart replays a finished game with the same players and their scores.
func (that *Orchestrator) Restart(ctx context.Context) (entity.Session, error) {
	if err := that.guard(); err != nil {
		return that.Snapshot(), err
	}

	if that.session.Status != entity.StatusGameOver {
		return that.reject("Restart", fmt.Errorf("%w: restart needs a finished game", apperror.ErrWrongStatus))
	}

	that.begin(ctx, that.session.Players)
	that.logger.Info("game restarted")

	return that.commit()
}

// ResetState drops the session and returns to the menu. Settings and statistics are untouched.
func (that *Orchestrator) ResetState(_ context.Context) (entity.Session, error) {
	if err := that.guard(); err != nil {
		return that.Snapshot(), err
	}

	that.session = entity.NewSession()

	return that.commit()
}

// SelectSquare records the square the current player wants to fight for.
// The mini-game is chosen afterwards with StartMiniGame.
func (that *Orchestrator) SelectSquare(_ context.Context, playerID string, index int) (entity.Session, error) {
	if err := that.guard(); err != nil {
		return that.Snapshot(), err
	}

	if err := that.checkSelect(playerID, index); err != nil {
		return that.reject("SelectSquare", err)
	}

	that.session.SelectedSquare = &index

	return that.commit()
}

// StartMiniGame launches gameType for the selected square.
func (that *Orchestrator) StartMiniGame(_ context.Context, gameType entity.MiniGameType, index int) (entity.Session, error) {
	if err := that.guard(); err != nil {
		return that.Snapshot(), err
	}

	if that.session.Status != entity.StatusPlaying {
		return that.reject("StartMiniGame", fmt.Errorf("%w: %s", apperror.ErrWrongStatus, that.session.Status))
	}

	if that.session.SelectedSquare == nil {
		return that.reject("StartMiniGame", apperror.ErrNoSelection)
	}

	if err := that.checkMiniGame(gameType, index); err != nil {
		return that.reject("StartMiniGame", err)
	}

	if *that.session.SelectedSquare != index {
		return that.reject("StartMiniGame", fmt.Errorf("%w: selected %d, got %d",
			apperror.ErrSquareMismatch, *that.session.SelectedSquare, index))
	}

	that.enterMiniGame(gameType, index)

	return that.commit()
}

// SelectSquareWithMiniGame selects the square and starts the mini-game in one step.
// Nothing changes unless both steps are valid.
func (that *Orchestrator) SelectSquareWithMiniGame(
	_ context.Context,
	playerID string,
	index int,
	gameType entity.MiniGameType,
) (entity.Session, error) {
	if err := that.guard(); err != nil {
		return that.Snapshot(), err
	}

	if err := that.checkSelect(playerID, index); err != nil {
		return that.reject("SelectSquareWithMiniGame", err)
	}

	if err := that.checkMiniGame(gameType, index); err != nil {
		return that.reject("SelectSquareWithMiniGame", err)
	}

	that.enterMiniGame(gameType, index)

	return that.commit()
}

// PlayAITurn lets the current AI player pick a square and a mini-game.
func (that *Orchestrator) PlayAITurn(ctx context.Context) (entity.Session, error) {
	if err := that.guard(); err != nil {
		return that.Snapshot(), err
	}

	if that.session.Status != entity.StatusPlaying {
		return that.reject("PlayAITurn", fmt.Errorf("%w: %s", apperror.ErrWrongStatus, that.session.Status))
	}

	current, _ := that.session.Current()
	if !current.IsAI() {
		return that.reject("PlayAITurn", apperror.ErrNotAITurn)
	}

	bot := strategy.NewBot(current.Mark, current.Difficulty, that.rng)

	square, err := bot.ChooseSquare(that.session.Board)
	if err != nil {
		return that.reject("PlayAITurn", err)
	}

	gameType := bot.ChooseMiniGame()
	that.logger.Debug("ai decided", "player", current.ID, "square", square, "mini_game", gameType)

	return that.SelectSquareWithMiniGame(ctx, current.ID, square, gameType)
}

// EndMiniGame applies the outcome of the running mini-game. An empty winnerID
// means nobody won: the square stays free but the turn still passes.
func (that *Orchestrator) EndMiniGame(ctx context.Context, winnerID string) (entity.Session, error) {
	if err := that.guard(); err != nil {
		return that.Snapshot(), err
	}

	if that.session.Status != entity.StatusMiniGame {
		return that.reject("EndMiniGame", fmt.Errorf("%w: %s", apperror.ErrWrongStatus, that.session.Status))
	}

	var (
		winner    entity.Player
		hasWinner bool
	)

	if winnerID != "" {
		winner, hasWinner = that.session.PlayerByID(winnerID)
		if !hasWinner {
			return that.reject("EndMiniGame", fmt.Errorf("%w: %s", apperror.ErrUnknownPlayer, winnerID))
		}
	}

	gameType := that.session.ActiveMiniGame
	square := *that.session.PendingSquare

	if hasWinner {
		if err := that.session.Board.PlaceMark(square, winner.Mark); err != nil {
			// unreachable while the mini-game invariant holds
			return that.reject("EndMiniGame", err)
		}
	}

	that.session.ActiveMiniGame = ""
	that.session.PendingSquare = nil

	result := that.finish()

	that.stats.UpdateStatistics(ctx, func(stats *entity.Statistics) {
		counter := stats.MiniGameStats[gameType]
		counter.Played++
		if hasWinner && winner.IsHuman() {
			counter.Won++
		}
		stats.MiniGameStats[gameType] = counter

		if result != nil {
			that.recordOutcome(stats, result)
		}
	})

	if result == nil {
		that.session.Status = entity.StatusPlaying
		that.advance()
	}

	return that.commit()
}

func (that *Orchestrator) begin(ctx context.Context, roster []entity.Player) {
	session := entity.NewSession()
	session.Players = append(session.Players, roster...)
	session.CurrentPlayer = 0
	session.Status = entity.StatusPlaying

	that.session = session

	opponent, hasAI := that.session.AI()

	that.stats.UpdateStatistics(ctx, func(stats *entity.Statistics) {
		stats.GamesPlayed++

		if hasAI {
			counter := stats.ByDifficulty[opponent.Difficulty]
			counter.Played++
			stats.ByDifficulty[opponent.Difficulty] = counter
		}
	})
}

// finish moves the session to game-over when the board is decided.
func (that *Orchestrator) finish() *entity.Result {
	if line, ok := that.session.Board.CheckWin(); ok {
		result := &entity.Result{Line: &line}

		for i := range that.session.Players {
			if that.session.Players[i].Mark == line.Mark {
				that.session.Players[i].Score++
				result.WinnerID = that.session.Players[i].ID
			}
		}

		that.session.Status = entity.StatusGameOver
		that.session.Result = result
		that.logger.Info("game over", "winner", result.WinnerID, "mark", line.Mark)

		return result
	}

	if that.session.Board.IsFull() {
		that.session.Status = entity.StatusGameOver
		that.session.Result = &entity.Result{Tie: true}
		that.logger.Info("game over", "tie", true)

		return that.session.Result
	}

	return nil
}

// recordOutcome books a finished game from the human player's point of view.
func (that *Orchestrator) recordOutcome(stats *entity.Statistics, result *entity.Result) {
	if result.Tie {
		stats.GamesTied++
		return
	}

	if _, hasHuman := that.session.Human(); !hasHuman {
		return
	}

	winner, _ := that.session.PlayerByID(result.WinnerID)
	if !winner.IsHuman() {
		stats.GamesLost++
		return
	}

	stats.GamesWon++

	if opponent, hasAI := that.session.AI(); hasAI {
		counter := stats.ByDifficulty[opponent.Difficulty]
		counter.Won++
		stats.ByDifficulty[opponent.Difficulty] = counter
	}
}

func (that *Orchestrator) advance() {
	that.session.CurrentPlayer = (that.session.CurrentPlayer + 1) % len(that.session.Players)
}

func (that *Orchestrator) enterMiniGame(gameType entity.MiniGameType, index int) {
	that.session.SelectedSquare = nil
	that.session.ActiveMiniGame = gameType
	that.session.PendingSquare = &index
	that.session.Status = entity.StatusMiniGame
}

func (that *Orchestrator) checkSelect(playerID string, index int) error {
	if that.session.Status != entity.StatusPlaying {
		return fmt.Errorf("%w: %s", apperror.ErrWrongStatus, that.session.Status)
	}

	current, _ := that.session.Current()
	if current.ID != playerID {
		return apperror.ErrNotYourTurn
	}

	return checkSquare(that.session.Board, index)
}

func (that *Orchestrator) checkMiniGame(gameType entity.MiniGameType, index int) error {
	if !gameType.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownMiniGame, gameType)
	}

	return checkSquare(that.session.Board, index)
}

func checkSquare(board entity.Board, index int) error {
	if !entity.InRange(index) {
		return fmt.Errorf("%w: cell %d out of range", apperror.ErrInvalidMove, index)
	}

	if !board.IsEmpty(index) {
		return fmt.Errorf("%w: cell %d is already occupied", apperror.ErrInvalidMove, index)
	}

	return nil
}

func validatePlayers(players []*entity.Player) error {
	if len(players) != 2 {
		return fmt.Errorf("%w: need exactly 2 players, got %d", apperror.ErrInvalidPlayers, len(players))
	}

	first, second := players[0], players[1]
	if first == nil || second == nil {
		return fmt.Errorf("%w: nil player", apperror.ErrInvalidPlayers)
	}

	if !first.Mark.IsValid() || !second.Mark.IsValid() || first.Mark == second.Mark {
		return fmt.Errorf("%w: marks must be X and O", apperror.ErrInvalidPlayers)
	}

	if first.ID == "" || first.ID == second.ID {
		return fmt.Errorf("%w: player ids must be distinct", apperror.ErrInvalidPlayers)
	}

	for _, player := range players {
		if player.IsAI() && !player.Difficulty.IsValid() {
			return fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, player.Difficulty)
		}

		if !player.IsAI() && !player.IsHuman() {
			return fmt.Errorf("%w: unknown kind %q", apperror.ErrInvalidPlayers, player.Kind)
		}
	}

	return nil
}

func (that *Orchestrator) guard() error {
	if that.notifying {
		return apperror.ErrReentrantCall
	}

	return nil
}

func (that *Orchestrator) reject(method string, err error) (entity.Session, error) {
	that.logger.Debug("operation rejected", "method", method, "error", err)

	return that.Snapshot(), err
}

// commit refreshes derived fields and notifies listeners once.
func (that *Orchestrator) commit() (entity.Session, error) {
	that.session.CurrentPlayerID = ""
	if current, ok := that.session.Current(); ok {
		that.session.CurrentPlayerID = current.ID
	}

	snapshot := that.Snapshot()

	that.notifying = true
	defer func() { that.notifying = false }()

	subscriptions := append([]subscription(nil), that.subscriptions...)
	for _, sub := range subscriptions {
		sub.listener(snapshot.Clone())
	}

	return snapshot, nil
}
