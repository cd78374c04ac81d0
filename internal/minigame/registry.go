package minigame

import (
	"fmt"
	"sync"

	"github.com/rocketscienceinc/supertictactoe/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe/internal/entity"
)

type Factory func() MiniGame

type Registry struct {
	mu        sync.RWMutex
	factories map[entity.MiniGameType]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[entity.MiniGameType]Factory)}
}

// NewDefaultRegistry registers a client-driven Timed game for every known type.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()

	for _, gameType := range entity.MiniGameTypes() {
		_ = registry.Register(gameType, func() MiniGame { return NewTimed(gameType) })
	}

	return registry
}

func (that *Registry) Register(gameType entity.MiniGameType, factory Factory) error {
	if !gameType.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownMiniGame, gameType)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.factories[gameType] = factory

	return nil
}

// New builds a fresh, uninitialised mini-game of the given type.
func (that *Registry) New(gameType entity.MiniGameType) (MiniGame, error) {
	that.mu.RLock()
	factory, ok := that.factories[gameType]
	that.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownMiniGame, gameType)
	}

	return factory(), nil
}
