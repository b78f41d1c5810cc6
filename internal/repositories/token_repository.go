package repositories

import (
	"context"

	"github.com/anonto42/recipe-hub/backend/internal/models"
	"gorm.io/gorm"
)

// TokenRepository stores the bearer token of each user
type TokenRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.AuthToken, error)
	GetByKey(ctx context.Context, key string) (*models.AuthToken, error)
	Replace(ctx context.Context, token *models.AuthToken) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

type PostgresTokenRepository struct {
	db *gorm.DB
}

func NewPostgresTokenRepository(db *gorm.DB) *PostgresTokenRepository {
	return &PostgresTokenRepository{db: db}
}

func (r *PostgresTokenRepository) GetByUserID(ctx context.Context, userID uint) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *PostgresTokenRepository) GetByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.WithContext(ctx).Where("token_key = ?", key).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// Replace stores token as the user's only token
func (r *PostgresTokenRepository) Replace(ctx context.Context, token *models.AuthToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", token.UserID).Delete(&models.AuthToken{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

func (r *PostgresTokenRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.AuthToken{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
