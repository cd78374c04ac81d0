package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/supertictactoe/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe/internal/entity"
	"github.com/rocketscienceinc/supertictactoe/internal/repository"
)

type profileRepoDep interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, blob string) error
	Delete(ctx context.Context) error
}

// ProfileService owns the player's settings and statistics. It keeps them in
// memory and flushes the whole profile on every mutation. Storage failures are
// logged and swallowed so the game stays playable without persistence.
type ProfileService struct {
	logger *slog.Logger
	repo   profileRepoDep

	mu      sync.RWMutex
	profile entity.Profile
}

func NewProfileService(logger *slog.Logger, repo profileRepoDep) *ProfileService {
	return &ProfileService{
		logger:  logger.With("component", "profile"),
		repo:    repo,
		profile: entity.DefaultProfile(),
	}
}

// Load replaces the in-memory profile with the persisted one, or defaults.
func (that *ProfileService) Load(ctx context.Context) (entity.Settings, entity.Statistics) {
	log := that.logger.With("method", "Load")

	profile, err := that.read(ctx)
	switch {
	case errors.Is(err, repository.ErrProfileNotFound):
		log.Debug("no stored profile, using defaults")
		profile = entity.DefaultProfile()
	case err != nil:
		log.Error("failed to load profile, using defaults", "error", err)
		profile = entity.DefaultProfile()
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.profile = profile

	return that.profile.Settings, that.profile.Statistics.Clone()
}

// Save overwrites the stored profile. An unknown difficulty is rejected and
// nothing is written; missing statistics entries are zero-filled.
func (that *ProfileService) Save(ctx context.Context, settings entity.Settings, stats entity.Statistics) error {
	if !settings.AIDifficulty.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, settings.AIDifficulty)
	}

	profile := entity.Profile{Settings: settings, Statistics: stats.Clone()}
	profile.Normalize()

	that.mu.Lock()
	defer that.mu.Unlock()

	that.profile = profile
	that.flush(ctx)

	return nil
}

func (that *ProfileService) UpdateSettings(ctx context.Context, patch entity.SettingsPatch) entity.Settings {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.profile.Settings = that.profile.Settings.Apply(patch)
	that.flush(ctx)

	return that.profile.Settings
}

// UpdateStatistics applies mutate to the live counters and flushes.
func (that *ProfileService) UpdateStatistics(ctx context.Context, mutate func(stats *entity.Statistics)) entity.Statistics {
	that.mu.Lock()
	defer that.mu.Unlock()

	mutate(&that.profile.Statistics)
	that.flush(ctx)

	return that.profile.Statistics.Clone()
}

// ResetStatistics zeroes every counter and keeps the settings.
func (that *ProfileService) ResetStatistics(ctx context.Context) entity.Statistics {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.profile.Statistics = entity.NewStatistics()
	that.flush(ctx)

	return that.profile.Statistics.Clone()
}

// ClearAll drops the stored blob and returns to defaults.
func (that *ProfileService) ClearAll(ctx context.Context) {
	log := that.logger.With("method", "ClearAll")

	that.mu.Lock()
	defer that.mu.Unlock()

	that.profile = entity.DefaultProfile()

	if err := that.repo.Delete(ctx); err != nil {
		log.Error("failed to delete profile", "error", fmt.Errorf("%w: %w", apperror.ErrPersistenceFailure, err))
	}
}

func (that *ProfileService) Settings() entity.Settings {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.profile.Settings
}

func (that *ProfileService) Statistics() entity.Statistics {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.profile.Statistics.Clone()
}

func (that *ProfileService) read(ctx context.Context) (entity.Profile, error) {
	blob, err := that.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return entity.Profile{}, err
		}
		return entity.Profile{}, fmt.Errorf("%w: %w", apperror.ErrPersistenceFailure, err)
	}

	var profile entity.Profile
	if err = json.Unmarshal([]byte(blob), &profile); err != nil {
		return entity.Profile{}, fmt.Errorf("%w: failed to unmarshal profile: %w", apperror.ErrPersistenceFailure, err)
	}

	profile.Normalize()

	return profile, nil
}

// flush must be called with mu held.
func (that *ProfileService) flush(ctx context.Context) {
	log := that.logger.With("method", "flush")

	blob, err := json.Marshal(that.profile)
	if err != nil {
		log.Error("failed to marshal profile, write dropped", "error", err)
		return
	}

	if err = that.repo.Set(ctx, string(blob)); err != nil {
		log.Error("failed to save profile, write dropped", "error", fmt.Errorf("%w: %w", apperror.ErrPersistenceFailure, err))
	}
}
