package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var ErrDecisionNotFound = errors.New("decision not found")

type DecisionRepository interface {
	Save(ctx context.Context, key string, decision entity.Decision) error
	GetByKey(ctx context.Context, key string) (entity.Decision, error)
}

type dbDecision struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDecisionRepository - stores decisions in redis; a zero ttl keeps them forever.
func NewDecisionRepository(client *redis.Client, ttl time.Duration) DecisionRepository {
	return &dbDecision{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbDecision) Save(ctx context.Context, key string, decision entity.Decision) error {
	decisionJSON, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("could not marshal decision: %w", err)
	}

	err = that.client.Set(ctx, decisionKey(key), decisionJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set decision: %w", err)
	}

	return nil
}

func (that *dbDecision) GetByKey(ctx context.Context, key string) (entity.Decision, error) {
	response, err := that.client.Get(ctx, decisionKey(key)).Result()

	if errors.Is(err, redis.Nil) {
		return entity.Decision{}, ErrDecisionNotFound
	}

	if err != nil {
		return entity.Decision{}, fmt.Errorf("failed to get decision by key: %w", err)
	}

	var decision entity.Decision
	if err = json.Unmarshal([]byte(response), &decision); err != nil {
		return entity.Decision{}, fmt.Errorf("failed to unmarshal decision: %w", err)
	}

	return decision, nil
}

func decisionKey(key string) string {
	return "decision:" + key
}
