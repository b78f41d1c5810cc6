package repositories

import (
	"context"

	"github.com/anonto42/recipe-hub/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository defines the interface for favorite operations
type FavoriteRepository interface {
	AddFavorite(ctx context.Context, favorite *models.Favorite) error
	RemoveFavorite(ctx context.Context, userID, recipeID uint) error
	IsFavorite(ctx context.Context, userID, recipeID uint) (bool, error)
}

// PostgresFavoriteRepository implements FavoriteRepository
type PostgresFavoriteRepository struct {
	db *gorm.DB
}

func NewPostgresFavoriteRepository(db *gorm.DB) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{db: db}
}

// AddFavorite returns ErrAlreadyFavorited when the pair exists
func (r *PostgresFavoriteRepository) AddFavorite(ctx context.Context, favorite *models.Favorite) error {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(favorite)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyFavorited
	}
	return nil
}

func (r *PostgresFavoriteRepository) RemoveFavorite(ctx context.Context, userID, recipeID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFavorited
	}
	return nil
}

func (r *PostgresFavoriteRepository) IsFavorite(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error
	return count > 0, err
}
