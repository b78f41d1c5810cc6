package repositories

import (
	"context"

	"github.com/anonto42/recipe-hub/backend/internal/models"
	"gorm.io/gorm"
)

const (
	catalogOrder = "created_at ASC, id ASC"
	feedOrder    = "updated_at DESC, id DESC"
)

// RecipeRepository defines the interface for recipe data operations
type RecipeRepository interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	GetRecipeByID(ctx context.Context, id uint) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe *models.Recipe) error
	DeleteRecipe(ctx context.Context, id uint) error
	ListRecipes(ctx context.Context, filter RecipeFilter, offset, limit int) ([]models.Recipe, int64, error)
	FollowingFeed(ctx context.Context, userID uint, offset, limit int) ([]models.Recipe, int64, error)
	FavoriteFeed(ctx context.Context, userID uint, offset, limit int) ([]models.Recipe, int64, error)
}

// PostgresRecipeRepository implements RecipeRepository for PostgreSQL
type PostgresRecipeRepository struct {
	db *gorm.DB
}

func NewPostgresRecipeRepository(db *gorm.DB) *PostgresRecipeRepository {
	return &PostgresRecipeRepository{db: db}
}

func (r *PostgresRecipeRepository) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *PostgresRecipeRepository) GetRecipeByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *PostgresRecipeRepository) UpdateRecipe(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

// DeleteRecipe removes the recipe together with its reviews and favorites
func (r *PostgresRecipeRepository) DeleteRecipe(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Recipe{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *PostgresRecipeRepository) ListRecipes(ctx context.Context, filter RecipeFilter, offset, limit int) ([]models.Recipe, int64, error) {
	var recipes []models.Recipe
	total, err := paginate(func() *gorm.DB {
		return filter.Apply(r.db.WithContext(ctx).Model(&models.Recipe{}))
	}, catalogOrder, offset, limit, &recipes)
	return recipes, total, err
}

// FollowingFeed returns recipes created by users that userID follows
func (r *PostgresRecipeRepository) FollowingFeed(ctx context.Context, userID uint, offset, limit int) ([]models.Recipe, int64, error) {
	var recipes []models.Recipe
	total, err := paginate(func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Recipe{}).Where("creator_id IN (?)",
			r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", userID),
		)
	}, feedOrder, offset, limit, &recipes)
	return recipes, total, err
}

// FavoriteFeed returns recipes in userID's favorites
func (r *PostgresRecipeRepository) FavoriteFeed(ctx context.Context, userID uint, offset, limit int) ([]models.Recipe, int64, error) {
	var recipes []models.Recipe
	total, err := paginate(func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Recipe{}).Where("id IN (?)",
			r.db.Model(&models.Favorite{}).Select("recipe_id").Where("user_id = ?", userID),
		)
	}, feedOrder, offset, limit, &recipes)
	return recipes, total, err
}
