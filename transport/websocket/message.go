package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/supertictactoe/internal/entity"
)

const (
	actionState         = "state"
	actionError         = "error"
	actionGameStart     = "game:start"
	actionGameSelect    = "game:select"
	actionMiniGameStart = "game:minigame:start"
	actionMiniGameEnd   = "game:minigame:end"
	actionGameAITurn    = "game:ai-turn"
	actionGameRestart   = "game:restart"
	actionGameReset     = "game:reset"
)

// Message is the envelope of everything sent over the socket in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ErrorPayload struct {
	Request string `json:"request,omitempty"`
	Error   string `json:"error"`
}

type StartPayload struct {
	Mark       entity.Mark       `json:"mark"`
	Opponent   entity.PlayerKind `json:"opponent"`
	Difficulty entity.Difficulty `json:"difficulty"`
}

// SelectPayload picks a square; with MiniGame set the fight starts right away.
type SelectPayload struct {
	PlayerID string              `json:"player_id"`
	Square   int                 `json:"square"`
	MiniGame entity.MiniGameType `json:"mini_game,omitempty"`
}

type MiniGameStartPayload struct {
	Type   entity.MiniGameType `json:"type"`
	Square int                 `json:"square"`
}

type MiniGameEndPayload struct {
	WinnerID string `json:"winner_id"`
}

func encode(action string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{Action: action, Payload: raw})
}
