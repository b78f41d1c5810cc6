// Package notify resolves the tagged targets carried by notifications.
package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/anonto42/recipe-hub/backend/internal/models"
)

// Loader returns a short display string for the object with the given id
type Loader func(ctx context.Context, id uint) (string, error)

// Registry maps target kinds to loaders
type Registry struct {
	mu      sync.RWMutex
	loaders map[string]Loader
}

func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]Loader)}
}

func (r *Registry) Register(kind string, loader Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders[kind] = loader
}

// Resolve loads the display string of ref. Unknown kinds are an error.
func (r *Registry) Resolve(ctx context.Context, ref models.TargetRef) (string, error) {
	r.mu.RLock()
	loader, ok := r.loaders[ref.Kind]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unknown notification target kind %q", ref.Kind)
	}
	return loader(ctx, ref.ID)
}

func UserTarget(id uint) models.TargetRef {
	return models.TargetRef{Kind: models.TargetUser, ID: id}
}

func RecipeTarget(id uint) models.TargetRef {
	return models.TargetRef{Kind: models.TargetRecipe, ID: id}
}
