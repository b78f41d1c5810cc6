package repositories

import (
	"errors"

	"github.com/anonto42/recipe-hub/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAlreadyFollowing = errors.New("follow relationship already exists")
	ErrNotFollowing     = errors.New("follow relationship not found")
	ErrAlreadyFavorited = errors.New("recipe already in favorites")
	ErrNotFavorited     = errors.New("favorite not found")
	ErrDuplicateReview  = errors.New("review for this recipe already exists")
	ErrAlreadyRead      = errors.New("notification already read")
)

// IsNotFound reports whether err means the requested row does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Migrate creates or updates the schema for every model
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Follow{},
		&models.Notification{},
		&models.Recipe{},
		&models.Review{},
		&models.Favorite{},
	)
}

// paginate runs query twice: once to count, once to fetch the requested window
func paginate(query func() *gorm.DB, order string, offset, limit int, dest interface{}) (int64, error) {
	var total int64
	if err := query().Count(&total).Error; err != nil {
		return 0, err
	}
	if err := query().Order(order).Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}
