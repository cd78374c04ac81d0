package entity

// Result is set once a session reaches game-over.
type Result struct {
	WinnerID string   `json:"winner_id,omitempty"`
	Line     *WinLine `json:"line,omitempty"`
	Tie      bool     `json:"tie"`
}

// Session is a snapshot of one game in progress. Values handed out by the
// orchestrator are deep copies and may be kept by the receiver.
type Session struct {
	Board           Board        `json:"board"`
	Players         []Player     `json:"players"`
	CurrentPlayer   int          `json:"current_player"`
	CurrentPlayerID string       `json:"current_player_id,omitempty"`
	Status          Status       `json:"status"`
	ActiveMiniGame  MiniGameType `json:"active_mini_game,omitempty"`
	PendingSquare   *int         `json:"pending_square,omitempty"`
	SelectedSquare  *int         `json:"selected_square,omitempty"`
	Result          *Result      `json:"result,omitempty"`
}

func NewSession() Session {
	return Session{
		Players:       []Player{},
		CurrentPlayer: -1,
		Status:        StatusMenu,
	}
}

// Current returns the player whose turn it is, if any.
func (that Session) Current() (Player, bool) {
	if that.CurrentPlayer < 0 || that.CurrentPlayer >= len(that.Players) {
		return Player{}, false
	}

	return that.Players[that.CurrentPlayer], true
}

func (that Session) PlayerByID(id string) (Player, bool) {
	for _, player := range that.Players {
		if player.ID == id {
			return player, true
		}
	}

	return Player{}, false
}

func (that Session) Human() (Player, bool) {
	for _, player := range that.Players {
		if player.IsHuman() {
			return player, true
		}
	}

	return Player{}, false
}

func (that Session) AI() (Player, bool) {
	for _, player := range that.Players {
		if player.IsAI() {
			return player, true
		}
	}

	return Player{}, false
}

// Clone returns a copy that shares no memory with the receiver.
func (that Session) Clone() Session {
	clone := that
	clone.Players = append([]Player{}, that.Players...)
	clone.PendingSquare = copyInt(that.PendingSquare)
	clone.SelectedSquare = copyInt(that.SelectedSquare)

	if that.Result != nil {
		result := *that.Result
		if that.Result.Line != nil {
			line := *that.Result.Line
			result.Line = &line
		}
		clone.Result = &result
	}

	return clone
}

func copyInt(value *int) *int {
	if value == nil {
		return nil
	}

	v := *value
	return &v
}
