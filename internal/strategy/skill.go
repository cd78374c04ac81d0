package strategy

import (
	"time"

	"github.com/rocketscienceinc/supertictactoe/internal/entity"
)

// perfectReactionMS is the reaction target the AI aims at in the reaction mini-game.
const perfectReactionMS = 1000

// Range is a closed-open interval [Min, Max).
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Profile bundles every skill parameter of one difficulty tier.
type Profile struct {
	Difficulty        entity.Difficulty `json:"difficulty"`
	BlunderChance     float64           `json:"blunder_chance"`
	ThinkingDelayMS   int64             `json:"thinking_delay_ms"`
	ReactionTimeMS    Range             `json:"reaction_time_ms"`
	MemoryAccuracy    float64           `json:"memory_accuracy"`
	RunnerSpeed       float64           `json:"runner_speed"`
	JumpTimingErrorS  Range             `json:"jump_timing_error_s"`
	MathAnswerDelayMS Range             `json:"math_answer_delay_ms"`
	MathAccuracy      float64           `json:"math_accuracy"`
	TargetAccuracy    float64           `json:"target_accuracy"`
	TargetReactionMS  Range             `json:"target_reaction_ms"`
}

var profiles = map[entity.Difficulty]Profile{
	entity.Easy: {
		Difficulty:        entity.Easy,
		BlunderChance:     0.40,
		ThinkingDelayMS:   1000,
		ReactionTimeMS:    Range{Min: perfectReactionMS - 150, Max: perfectReactionMS + 150},
		MemoryAccuracy:    0.5,
		RunnerSpeed:       0.8,
		JumpTimingErrorS:  Range{Min: -0.2, Max: 0.2},
		MathAnswerDelayMS: Range{Min: 1500, Max: 2500},
		MathAccuracy:      0.7,
		TargetAccuracy:    0.5,
		TargetReactionMS:  Range{Min: 600, Max: 1000},
	},
	entity.Medium: {
		Difficulty:        entity.Medium,
		BlunderChance:     0.20,
		ThinkingDelayMS:   700,
		ReactionTimeMS:    Range{Min: perfectReactionMS - 100, Max: perfectReactionMS + 100},
		MemoryAccuracy:    0.75,
		RunnerSpeed:       0.9,
		JumpTimingErrorS:  Range{Min: -0.1, Max: 0.1},
		MathAnswerDelayMS: Range{Min: 800, Max: 1500},
		MathAccuracy:      0.85,
		TargetAccuracy:    0.75,
		TargetReactionMS:  Range{Min: 400, Max: 700},
	},
	entity.Hard: {
		Difficulty:        entity.Hard,
		BlunderChance:     0.05,
		ThinkingDelayMS:   400,
		ReactionTimeMS:    Range{Min: perfectReactionMS - 30, Max: perfectReactionMS + 70},
		MemoryAccuracy:    0.9,
		RunnerSpeed:       1.0,
		JumpTimingErrorS:  Range{Min: -0.05, Max: 0.05},
		MathAnswerDelayMS: Range{Min: 300, Max: 600},
		MathAccuracy:      0.95,
		TargetAccuracy:    0.9,
		TargetReactionMS:  Range{Min: 200, Max: 400},
	},
}

// ProfileFor returns the skill table of a difficulty. Unknown tiers get Medium.
func ProfileFor(difficulty entity.Difficulty) Profile {
	if profile, ok := profiles[difficulty]; ok {
		return profile
	}
	return profiles[entity.Medium]
}

func ThinkingDelay(difficulty entity.Difficulty) time.Duration {
	return time.Duration(ProfileFor(difficulty).ThinkingDelayMS) * time.Millisecond
}

func ReactionTimeRange(difficulty entity.Difficulty) Range {
	return ProfileFor(difficulty).ReactionTimeMS
}

func MemoryAccuracy(difficulty entity.Difficulty) float64 {
	return ProfileFor(difficulty).MemoryAccuracy
}

func RunnerSpeed(difficulty entity.Difficulty) float64 {
	return ProfileFor(difficulty).RunnerSpeed
}

func JumpTimingErrorRange(difficulty entity.Difficulty) Range {
	return ProfileFor(difficulty).JumpTimingErrorS
}

func MathAnswerDelayRange(difficulty entity.Difficulty) Range {
	return ProfileFor(difficulty).MathAnswerDelayMS
}

func MathAccuracy(difficulty entity.Difficulty) float64 {
	return ProfileFor(difficulty).MathAccuracy
}

func TargetAccuracy(difficulty entity.Difficulty) float64 {
	return ProfileFor(difficulty).TargetAccuracy
}

func TargetReactionRange(difficulty entity.Difficulty) Range {
	return ProfileFor(difficulty).TargetReactionMS
}

// Skill draws concrete values from a difficulty's ranges.
type Skill struct {
	profile Profile
	rng     Rand
}

func NewSkill(difficulty entity.Difficulty, rng Rand) *Skill {
	return &Skill{
		profile: ProfileFor(difficulty),
		rng:     rng,
	}
}

// ReactionTime returns the AI's reaction in milliseconds.
func (that *Skill) ReactionTime() float64 {
	return that.sample(that.profile.ReactionTimeMS)
}

// JumpTimingError returns the jump error in seconds.
func (that *Skill) JumpTimingError() float64 {
	return that.sample(that.profile.JumpTimingErrorS)
}

func (that *Skill) MathAnswerDelay() time.Duration {
	return time.Duration(that.sample(that.profile.MathAnswerDelayMS)) * time.Millisecond
}

func (that *Skill) TargetReaction() time.Duration {
	return time.Duration(that.sample(that.profile.TargetReactionMS)) * time.Millisecond
}

func (that *Skill) RemembersCard() bool {
	return that.rng.Float64() < that.profile.MemoryAccuracy
}

func (that *Skill) AnswersCorrectly() bool {
	return that.rng.Float64() < that.profile.MathAccuracy
}

func (that *Skill) HitsTarget() bool {
	return that.rng.Float64() < that.profile.TargetAccuracy
}

func (that *Skill) sample(r Range) float64 {
	return uniform(that.rng, r.Min, r.Max)
}
