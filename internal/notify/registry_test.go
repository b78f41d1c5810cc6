package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/recipe-hub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	r := NewRegistry()
	r.Register(models.TargetUser, func(_ context.Context, id uint) (string, error) {
		if id == 1 {
			return "alice", nil
		}
		return "", errors.New("no such user")
	})

	name, err := r.Resolve(context.Background(), UserTarget(1))
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	_, err = r.Resolve(context.Background(), UserTarget(2))
	assert.Error(t, err)

	_, err = r.Resolve(context.Background(), RecipeTarget(1))
	assert.ErrorContains(t, err, `unknown notification target kind "recipe"`)
}

func TestTargets(t *testing.T) {
	assert.Equal(t, models.TargetRef{Kind: "user", ID: 3}, UserTarget(3))
	assert.Equal(t, models.TargetRef{Kind: "recipe", ID: 4}, RecipeTarget(4))
}
