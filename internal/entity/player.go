package entity

import "github.com/google/uuid"

type PlayerKind string

const (
	HumanKind PlayerKind = "human"
	AIKind    PlayerKind = "ai"
)

const (
	ColorX = 0x4a7afe
	ColorO = 0xff5252
)

type Player struct {
	ID         string     `json:"id"`
	Kind       PlayerKind `json:"kind"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Mark       Mark       `json:"mark"`
	Score      int        `json:"score"`
	Color      int        `json:"color"`
}

func NewHumanPlayer(mark Mark) *Player {
	return &Player{
		ID:    uuid.NewString(),
		Kind:  HumanKind,
		Mark:  mark,
		Color: DefaultColor(mark),
	}
}

func NewAIPlayer(mark Mark, difficulty Difficulty) *Player {
	return &Player{
		ID:         uuid.NewString(),
		Kind:       AIKind,
		Difficulty: difficulty,
		Mark:       mark,
		Color:      DefaultColor(mark),
	}
}

func (that *Player) IsHuman() bool {
	return that.Kind == HumanKind
}

func (that *Player) IsAI() bool {
	return that.Kind == AIKind
}

func DefaultColor(mark Mark) int {
	if mark == O {
		return ColorO
	}
	return ColorX
}
