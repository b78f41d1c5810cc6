package repositories

import (
	"strings"

	"gorm.io/gorm"
)

// RecipePredicate narrows a recipe query by one condition
type RecipePredicate interface {
	Apply(db *gorm.DB) *gorm.DB
}

// RecipeFilter is a conjunction of predicates
type RecipeFilter []RecipePredicate

func (f RecipeFilter) Apply(db *gorm.DB) *gorm.DB {
	for _, p := range f {
		db = p.Apply(db)
	}
	return db
}

// SearchPredicate matches a case-insensitive substring of title, category or the raw ingredients JSON
type SearchPredicate string

func (s SearchPredicate) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + escapeLike(strings.ToLower(string(s))) + "%"
	return db.Where(
		"(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(category) LIKE ? ESCAPE '\\' OR LOWER(CAST(ingredients AS TEXT)) LIKE ? ESCAPE '\\')",
		pattern, pattern, pattern,
	)
}

type MaxCookingTime int

func (m MaxCookingTime) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("cooking_time <= ?", int(m))
}

type MinServings int

func (m MinServings) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("servings >= ?", int(m))
}

type MaxPreparationTime int

func (m MaxPreparationTime) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("preparation_time <= ?", int(m))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
