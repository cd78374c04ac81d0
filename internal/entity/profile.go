package entity

// Counter is a played/won pair.
type Counter struct {
	Played int `json:"played"`
	Won    int `json:"won"`
}

type Settings struct {
	AIDifficulty Difficulty `json:"aiDifficulty"`
	SoundEnabled bool       `json:"soundEnabled"`
	MusicEnabled bool       `json:"musicEnabled"`
}

// SettingsPatch carries a partial settings update; nil fields are left alone.
type SettingsPatch struct {
	AIDifficulty *Difficulty `json:"aiDifficulty,omitempty"`
	SoundEnabled *bool       `json:"soundEnabled,omitempty"`
	MusicEnabled *bool       `json:"musicEnabled,omitempty"`
}

type Statistics struct {
	GamesPlayed   int                      `json:"gamesPlayed"`
	GamesWon      int                      `json:"gamesWon"`
	GamesLost     int                      `json:"gamesLost"`
	GamesTied     int                      `json:"gamesTied"`
	ByDifficulty  map[Difficulty]Counter   `json:"byDifficulty"`
	MiniGameStats map[MiniGameType]Counter `json:"miniGameStats"`
}

// Profile is the persisted blob: settings together with statistics.
type Profile struct {
	Settings   Settings   `json:"settings"`
	Statistics Statistics `json:"statistics"`
}

func DefaultSettings() Settings {
	return Settings{
		AIDifficulty: Medium,
		SoundEnabled: true,
		MusicEnabled: true,
	}
}

func NewStatistics() Statistics {
	stats := Statistics{
		ByDifficulty:  make(map[Difficulty]Counter, len(Difficulties())),
		MiniGameStats: make(map[MiniGameType]Counter, len(MiniGameTypes())),
	}

	for _, difficulty := range Difficulties() {
		stats.ByDifficulty[difficulty] = Counter{}
	}

	for _, gameType := range MiniGameTypes() {
		stats.MiniGameStats[gameType] = Counter{}
	}

	return stats
}

func DefaultProfile() Profile {
	return Profile{
		Settings:   DefaultSettings(),
		Statistics: NewStatistics(),
	}
}

// Apply merges the non-nil fields of patch. Unknown difficulties are ignored.
func (that Settings) Apply(patch SettingsPatch) Settings {
	if patch.AIDifficulty != nil && patch.AIDifficulty.IsValid() {
		that.AIDifficulty = *patch.AIDifficulty
	}

	if patch.SoundEnabled != nil {
		that.SoundEnabled = *patch.SoundEnabled
	}

	if patch.MusicEnabled != nil {
		that.MusicEnabled = *patch.MusicEnabled
	}

	return that
}

// Normalize fills in missing entries of a decoded profile.
func (that *Profile) Normalize() {
	if !that.Settings.AIDifficulty.IsValid() {
		that.Settings.AIDifficulty = Medium
	}

	stats := NewStatistics()
	for difficulty, counter := range that.Statistics.ByDifficulty {
		if difficulty.IsValid() {
			stats.ByDifficulty[difficulty] = counter
		}
	}

	for gameType, counter := range that.Statistics.MiniGameStats {
		if gameType.IsValid() {
			stats.MiniGameStats[gameType] = counter
		}
	}

	that.Statistics.ByDifficulty = stats.ByDifficulty
	that.Statistics.MiniGameStats = stats.MiniGameStats
}

func (that Statistics) Clone() Statistics {
	clone := that
	clone.ByDifficulty = make(map[Difficulty]Counter, len(that.ByDifficulty))
	clone.MiniGameStats = make(map[MiniGameType]Counter, len(that.MiniGameStats))

	for key, counter := range that.ByDifficulty {
		clone.ByDifficulty[key] = counter
	}

	for key, counter := range that.MiniGameStats {
		clone.MiniGameStats[key] = counter
	}

	return clone
}

// Consistent reports whether no counter claims more wins than games.
func (that Statistics) Consistent() bool {
	if that.GamesWon+that.GamesLost+that.GamesTied > that.GamesPlayed {
		return false
	}

	for _, counter := range that.ByDifficulty {
		if counter.Won > counter.Played {
			return false
		}
	}

	for _, counter := range that.MiniGameStats {
		if counter.Won > counter.Played {
			return false
		}
	}

	return true
}
