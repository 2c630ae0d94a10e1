package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	decisionRepo := NewDecisionRepository(st.Storage, 0)

	// Given: a searched decision
	decision := entity.Decision{Move: entity.Move{Row: 0, Col: 0}, Score: 0}

	// When: Save is called
	err := decisionRepo.Save(ctx, "3x3/3:....X....:8:O:XO", decision)

	// Then: no error should be returned, and the decision is stored
	require.NoError(t, err)
}

func TestDecisionRepository_GetByKey(t *testing.T) {
	t.Run("GetByKey_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		decisionRepo := NewDecisionRepository(st.Storage, 0)

		// Given: a stored decision
		key := "3x3/3:XX.OO....:5:X:XO"
		decision := entity.Decision{Move: entity.Move{Row: 0, Col: 2}, Score: 1}

		err := decisionRepo.Save(ctx, key, decision)
		require.NoError(t, err)

		// When: GetByKey is called with the same key
		retrieved, err := decisionRepo.GetByKey(ctx, key)

		// Then: the retrieved decision should match the saved one
		require.NoError(t, err)
		assert.Equal(t, decision, retrieved)
	})

	t.Run("GetByKey_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		decisionRepo := NewDecisionRepository(st.Storage, 0)

		// When: GetByKey is called with an unknown key
		retrieved, err := decisionRepo.GetByKey(ctx, "unknown")

		// Then: an ErrDecisionNotFound error should be returned
		require.ErrorIs(t, err, ErrDecisionNotFound)
		assert.Equal(t, entity.Decision{}, retrieved)
	})

	t.Run("GetByKey_Expired", func(t *testing.T) {
		ctx, st := suite.New(t)

		decisionRepo := NewDecisionRepository(st.Storage, time.Second)

		// Given: a decision stored with a short ttl
		key := "3x3/3:.........:9:X:XO"
		err := decisionRepo.Save(ctx, key, entity.Decision{})
		require.NoError(t, err)

		// When: the ttl passes
		ttl, err := st.Storage.TTL(ctx, decisionKey(key)).Result()
		require.NoError(t, err)
		assert.Positive(t, ttl)

		require.Eventually(t, func() bool {
			_, err = decisionRepo.GetByKey(ctx, key)
			return err != nil
		}, 5*time.Second, 100*time.Millisecond)

		// Then: the decision is gone
		require.ErrorIs(t, err, ErrDecisionNotFound)
	})
}
