package repositories

import (
	"context"

	"github.com/anonto42/recipe-hub/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uint) ([]string, error)
	ListByPopularity(ctx context.Context, offset, limit int) ([]models.UserPopularity, int64, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameTaken reports whether another user (not exceptID) owns username
func (r *PostgresUserRepository) UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? AND id <> ?", username, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresUserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// DeleteUser removes the user and everything that references it. It returns the
// picture URLs of the deleted recipes so the caller can drop the stored files.
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id uint) ([]string, error) {
	var pictures []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipes []models.Recipe
		if err := tx.Select("id", "picture").Where("creator_id = ?", id).Find(&recipes).Error; err != nil {
			return err
		}
		recipeIDs := make([]uint, 0, len(recipes))
		for _, recipe := range recipes {
			recipeIDs = append(recipeIDs, recipe.ID)
			if recipe.Picture != nil && *recipe.Picture != "" {
				pictures = append(pictures, *recipe.Picture)
			}
		}
		if err := tx.Where("user_id = ? OR recipe_id IN ?", id, recipeIDs).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR recipe_id IN ?", id, recipeIDs).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("creator_id = ?", id).Delete(&models.Recipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR following_id = ?", id, id).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipient_id = ? OR actor_id = ?", id, id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.AuthToken{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pictures, nil
}

// ListByPopularity returns users ordered by follower count, most followed first
func (r *PostgresUserRepository) ListByPopularity(ctx context.Context, offset, limit int) ([]models.UserPopularity, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.UserPopularity
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("users.id, users.username, COUNT(follows.id) AS followers_count").
		Joins("LEFT JOIN follows ON follows.following_id = users.id").
		Group("users.id, users.username").
		Order("followers_count DESC, users.id ASC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
