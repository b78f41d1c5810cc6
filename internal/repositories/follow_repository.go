package repositories

import (
	"context"

	"github.com/anonto42/recipe-hub/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollowWithNotification(ctx context.Context, follow *models.Follow, notification *models.Notification) error
	DeleteFollow(ctx context.Context, followerID, followingID uint) error
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	GetFollowers(ctx context.Context, userID uint, offset, limit int) ([]models.User, int64, error)
	GetFollowing(ctx context.Context, userID uint, offset, limit int) ([]models.User, int64, error)
	GetFollowersCount(ctx context.Context, userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollowWithNotification writes the edge and its notification atomically.
// It returns ErrAlreadyFollowing when the edge exists.
func (r *PostgresFollowRepository) CreateFollowWithNotification(ctx context.Context, follow *models.Follow, notification *models.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(follow)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyFollowing
		}
		if notification == nil {
			return nil
		}
		return tx.Create(notification).Error
	})
}

func (r *PostgresFollowRepository) DeleteFollow(ctx context.Context, followerID, followingID uint) error {
	res := r.db.WithContext(ctx).Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) GetFollowers(ctx context.Context, userID uint, offset, limit int) ([]models.User, int64, error) {
	var users []models.User
	total, err := paginate(func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.User{}).Where("id IN (?)",
			r.db.Table("follows").Select("follower_id").Where("following_id = ?", userID),
		)
	}, "id ASC", offset, limit, &users)
	return users, total, err
}

func (r *PostgresFollowRepository) GetFollowing(ctx context.Context, userID uint, offset, limit int) ([]models.User, int64, error) {
	var users []models.User
	total, err := paginate(func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.User{}).Where("id IN (?)",
			r.db.Table("follows").Select("following_id").Where("follower_id = ?", userID),
		)
	}, "id ASC", offset, limit, &users)
	return users, total, err
}

func (r *PostgresFollowRepository) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}
