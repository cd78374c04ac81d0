package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/supertictactoe/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe/internal/entity"
	"github.com/rocketscienceinc/supertictactoe/internal/repository"
	mockedService "github.com/rocketscienceinc/supertictactoe/mocks/service"
	"github.com/rocketscienceinc/supertictactoe/testing/suite"
)

var errRedisDown = errors.New("redis down")

func TestProfileService_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns defaults when nothing is stored", func(t *testing.T) {
		// Given: a repository without a blob
		mockRepo := mockedService.NewMockprofileRepoDep(t)
		mockRepo.EXPECT().
			Get(mock.Anything).
			Return("", repository.ErrProfileNotFound).
			Once()

		profileService := NewProfileService(suite.NewLogger(), mockRepo)

		// When: loading
		settings, stats := profileService.Load(ctx)

		// Then: defaults are returned
		assert.Equal(t, entity.DefaultSettings(), settings)
		assert.Equal(t, entity.NewStatistics(), stats)
	})

	t.Run("Swallows a corrupt blob", func(t *testing.T) {
		// Given: a repository holding garbage
		mockRepo := mockedService.NewMockprofileRepoDep(t)
		mockRepo.EXPECT().
			Get(mock.Anything).
			Return("{not json", nil).
			Once()

		profileService := NewProfileService(suite.NewLogger(), mockRepo)

		// When: loading
		settings, stats := profileService.Load(ctx)

		// Then: defaults are returned instead of an error
		assert.Equal(t, entity.DefaultSettings(), settings)
		assert.Equal(t, entity.NewStatistics(), stats)
	})

	t.Run("Swallows a failing repository", func(t *testing.T) {
		mockRepo := mockedService.NewMockprofileRepoDep(t)
		mockRepo.EXPECT().
			Get(mock.Anything).
			Return("", errRedisDown).
			Once()

		profileService := NewProfileService(suite.NewLogger(), mockRepo)

		settings, _ := profileService.Load(ctx)

		assert.Equal(t, entity.DefaultSettings(), settings)
	})

	t.Run("Fills in counters missing from an older blob", func(t *testing.T) {
		mockRepo := mockedService.NewMockprofileRepoDep(t)
		mockRepo.EXPECT().
			Get(mock.Anything).
			Return(`{"settings":{"aiDifficulty":"hard","soundEnabled":false,"musicEnabled":true},"statistics":{"gamesPlayed":4,"gamesWon":2}}`, nil).
			Once()

		profileService := NewProfileService(suite.NewLogger(), mockRepo)

		settings, stats := profileService.Load(ctx)

		assert.Equal(t, entity.Hard, settings.AIDifficulty)
		assert.False(t, settings.SoundEnabled)
		assert.Equal(t, 4, stats.GamesPlayed)
		assert.Equal(t, 2, stats.GamesWon)
		assert.Len(t, stats.MiniGameStats, len(entity.MiniGameTypes()))
		assert.Equal(t, entity.Counter{}, stats.ByDifficulty[entity.Easy])
	})
}

func TestProfileService_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryProfileRepository()

	// Given: non-default settings and statistics
	settings := entity.Settings{AIDifficulty: entity.Easy, SoundEnabled: false, MusicEnabled: true}
	stats := entity.NewStatistics()
	stats.GamesPlayed = 7
	stats.GamesWon = 3
	stats.GamesLost = 2
	stats.GamesTied = 1
	stats.ByDifficulty[entity.Hard] = entity.Counter{Played: 5, Won: 2}
	stats.MiniGameStats[entity.SpeedRunner] = entity.Counter{Played: 9, Won: 4}

	// When: one service saves and a fresh one loads
	require.NoError(t, NewProfileService(suite.NewLogger(), repo).Save(ctx, settings, stats))
	loadedSettings, loadedStats := NewProfileService(suite.NewLogger(), repo).Load(ctx)

	// Then: both round-trip field for field
	assert.Equal(t, settings, loadedSettings)
	assert.Equal(t, stats, loadedStats)
}

func TestProfileService_BlobShape(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryProfileRepository()

	require.NoError(t, NewProfileService(suite.NewLogger(), repo).Save(ctx, entity.DefaultSettings(), entity.NewStatistics()))

	blob, err := repo.Get(ctx)
	require.NoError(t, err)

	expected := `{
		"settings": {"aiDifficulty": "medium", "soundEnabled": true, "musicEnabled": true},
		"statistics": {
			"gamesPlayed": 0, "gamesWon": 0, "gamesLost": 0, "gamesTied": 0,
			"byDifficulty": {
				"easy": {"played": 0, "won": 0},
				"medium": {"played": 0, "won": 0},
				"hard": {"played": 0, "won": 0}
			},
			"miniGameStats": {
				"reaction": {"played": 0, "won": 0},
				"memory": {"played": 0, "won": 0},
				"speed-runner": {"played": 0, "won": 0},
				"quick-math": {"played": 0, "won": 0},
				"target-shooter": {"played": 0, "won": 0}
			}
		}
	}`
	assert.JSONEq(t, expected, blob)
}

func TestProfileService_UpdateSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("Merges only provided fields and flushes", func(t *testing.T) {
		// Given: a service with default settings
		mockRepo := mockedService.NewMockprofileRepoDep(t)
		mockRepo.EXPECT().
			Set(mock.Anything, mock.MatchedBy(func(blob string) bool {
				var profile entity.Profile
				if err := json.Unmarshal([]byte(blob), &profile); err != nil {
					return false
				}
				return profile.Settings.AIDifficulty == entity.Hard && profile.Settings.SoundEnabled
			})).
			Return(nil).
			Once()

		profileService := NewProfileService(suite.NewLogger(), mockRepo)
		hard := entity.Hard

		// When: only the difficulty is patched
		settings := profileService.UpdateSettings(ctx, entity.SettingsPatch{AIDifficulty: &hard})

		// Then: the rest is untouched
		assert.Equal(t, entity.Settings{AIDifficulty: entity.Hard, SoundEnabled: true, MusicEnabled: true}, settings)
		assert.Equal(t, settings, profileService.Settings())
	})

	t.Run("Keeps the update in memory when the write fails", func(t *testing.T) {
		// Given: a repository that rejects writes
		mockRepo := mockedService.NewMockprofileRepoDep(t)
		mockRepo.EXPECT().
			Set(mock.Anything, mock.AnythingOfType("string")).
			Return(errRedisDown).
			Once()

		profileService := NewProfileService(suite.NewLogger(), mockRepo)
		music := false

		// When: updating
		settings := profileService.UpdateSettings(ctx, entity.SettingsPatch{MusicEnabled: &music})

		// Then: the failure is not surfaced and the session keeps the new value
		assert.False(t, settings.MusicEnabled)
		assert.False(t, profileService.Settings().MusicEnabled)
	})
}

func TestProfileService_Statistics(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryProfileRepository()
	profileService := NewProfileService(suite.NewLogger(), repo)

	t.Run("UpdateStatistics mutates and returns a copy", func(t *testing.T) {
		stats := profileService.UpdateStatistics(ctx, func(stats *entity.Statistics) {
			stats.GamesPlayed++
			stats.ByDifficulty[entity.Easy] = entity.Counter{Played: 1}
		})

		stats.ByDifficulty[entity.Easy] = entity.Counter{Played: 100}

		assert.Equal(t, 1, profileService.Statistics().GamesPlayed)
		assert.Equal(t, entity.Counter{Played: 1}, profileService.Statistics().ByDifficulty[entity.Easy])
	})

	t.Run("ResetStatistics zeroes counters and keeps settings", func(t *testing.T) {
		easy := entity.Easy
		profileService.UpdateSettings(ctx, entity.SettingsPatch{AIDifficulty: &easy})

		stats := profileService.ResetStatistics(ctx)

		assert.Equal(t, entity.NewStatistics(), stats)
		settings, loadedStats := NewProfileService(suite.NewLogger(), repo).Load(ctx)
		assert.Equal(t, entity.Easy, settings.AIDifficulty)
		assert.Equal(t, entity.NewStatistics(), loadedStats)
	})

	t.Run("ClearAll removes the blob", func(t *testing.T) {
		profileService.ClearAll(ctx)

		_, err := repo.Get(ctx)
		require.ErrorIs(t, err, repository.ErrProfileNotFound)
		assert.Equal(t, entity.DefaultSettings(), profileService.Settings())
	})
}

func TestProfileService_SaveRejectsUnknownDifficulty(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryProfileRepository()
	profileService := NewProfileService(suite.NewLogger(), repo)

	// Given: settings with a difficulty that does not exist
	settings := entity.DefaultSettings()
	settings.AIDifficulty = "nightmare"

	// When: saving them
	err := profileService.Save(ctx, settings, entity.NewStatistics())

	// Then: the save is refused and nothing changes in memory or in storage
	require.ErrorIs(t, err, apperror.ErrInvalidArgument)
	assert.Equal(t, entity.DefaultSettings(), profileService.Settings())

	_, err = repo.Get(ctx)
	require.ErrorIs(t, err, repository.ErrProfileNotFound)
}
