package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/UFAZ-L2-CS1/DADLY/models"
)

// cardColumns is everything the feed needs. Description and instructions
// stay in the database.
var cardColumns = []string{
	"id", "name", "image_url", "prep_time", "cook_time", "difficulty", "like_count", "ingredients",
}

// RandomRecipes returns up to limit recipes in random order, skipping ids in
// exclude.
func (s *Store) RandomRecipes(ctx context.Context, exclude []uint, limit int) ([]models.Recipe, error) {
	q := s.db.WithContext(ctx).Model(&models.Recipe{}).Select(cardColumns)
	if len(exclude) > 0 {
		q = q.Where("id NOT IN ?", exclude)
	}
	var out []models.Recipe
	err := q.Order(s.random()).Limit(limit).Find(&out).Error
	return out, translate(err)
}

func (s *Store) FindRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	var r models.Recipe
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *Store) RecipesByID(ctx context.Context, ids []uint) (map[uint]models.Recipe, error) {
	out := make(map[uint]models.Recipe, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Recipe
	if err := s.db.WithContext(ctx).Select(cardColumns).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	for _, r := range rows {
		out[r.ID] = r
	}
	return out, nil
}

func (s *Store) CreateRecipe(ctx context.Context, r *models.Recipe) error {
	return translate(s.db.WithContext(ctx).Create(r).Error)
}

// RecipeExistsByName backs idempotent catalog seeding.
func (s *Store) RecipeExistsByName(ctx context.Context, name string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("name = ?", name).Count(&n).Error
	return n > 0, translate(err)
}

// IncrementLikes bumps the counter in a single UPDATE so concurrent likes
// never lose an update.
func (s *Store) IncrementLikes(ctx context.Context, recipeID uint) error {
	return translate(s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ?", recipeID).
		UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error)
}

// DecrementLikes lowers the counter of every recipe in ids by one, never
// below zero.
func (s *Store) DecrementLikes(ctx context.Context, ids ...uint) error {
	if len(ids) == 0 {
		return nil
	}
	return translate(s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id IN ?", ids).
		UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).Error)
}

func (s *Store) LikeCount(ctx context.Context, recipeID uint) (int, error) {
	var r models.Recipe
	err := s.db.WithContext(ctx).Select("like_count").First(&r, recipeID).Error
	return r.LikeCount, translate(err)
}
