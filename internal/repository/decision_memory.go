package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type memDecision struct {
	mu        sync.RWMutex
	decisions map[string]entity.Decision
}

// NewMemoryDecisionRepository - keeps decisions in process memory for the lifetime of the repository.
func NewMemoryDecisionRepository() DecisionRepository {
	return &memDecision{
		decisions: make(map[string]entity.Decision),
	}
}

func (that *memDecision) Save(_ context.Context, key string, decision entity.Decision) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.decisions[key] = decision

	return nil
}

func (that *memDecision) GetByKey(_ context.Context, key string) (entity.Decision, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	decision, ok := that.decisions[key]
	if !ok {
		return entity.Decision{}, ErrDecisionNotFound
	}

	return decision, nil
}
