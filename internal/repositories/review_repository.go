package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/recipe-hub/backend/internal/models"
	"gorm.io/gorm"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetReviewByID(ctx context.Context, id uint) (*models.Review, error)
	ListReviews(ctx context.Context, recipeID uint, offset, limit int) ([]models.Review, int64, error)
	UpdateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, id uint) error
}

// PostgresReviewRepository implements ReviewRepository for PostgreSQL
type PostgresReviewRepository struct {
	db *gorm.DB
}

// NewPostgresReviewRepository creates a new PostgresReviewRepository
func NewPostgresReviewRepository(db *gorm.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

// CreateReview returns ErrDuplicateReview when the user already reviewed the recipe
func (r *PostgresReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	taken, err := r.reviewed(ctx, review.UserID, review.RecipeID, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateReview
	}
	return translateDuplicate(r.db.WithContext(ctx).Create(review).Error)
}

func (r *PostgresReviewRepository) GetReviewByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListReviews lists reviews of recipeID, or of every recipe when recipeID is 0
func (r *PostgresReviewRepository) ListReviews(ctx context.Context, recipeID uint, offset, limit int) ([]models.Review, int64, error) {
	var reviews []models.Review
	total, err := paginate(func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Review{})
		if recipeID != 0 {
			q = q.Where("recipe_id = ?", recipeID)
		}
		return q
	}, "id ASC", offset, limit, &reviews)
	return reviews, total, err
}

func (r *PostgresReviewRepository) UpdateReview(ctx context.Context, review *models.Review) error {
	taken, err := r.reviewed(ctx, review.UserID, review.RecipeID, review.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateReview
	}
	return translateDuplicate(r.db.WithContext(ctx).Save(review).Error)
}

func (r *PostgresReviewRepository) DeleteReview(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresReviewRepository) reviewed(ctx context.Context, userID, recipeID, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("user_id = ? AND recipe_id = ? AND id <> ?", userID, recipeID, exceptID).
		Count(&count).Error
	return count > 0, err
}

func translateDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateReview
	}
	return err
}
