package repository

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/UFAZ-L2-CS1/DADLY/models"
)

// LikedRecipeIDs returns every recipe the user currently likes.
func (s *Store) LikedRecipeIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.UserRecipeInteraction{}).
		Where("user_id = ? AND liked = ?", userID, true).
		Pluck("recipe_id", &ids).Error
	return ids, translate(err)
}

// InsertLike returns ErrDuplicate when the (user, recipe) row already
// exists. Callers rely on this instead of checking first.
func (s *Store) InsertLike(ctx context.Context, userID, recipeID uint) error {
	row := &models.UserRecipeInteraction{UserID: userID, RecipeID: recipeID, Liked: true}
	return translate(s.db.WithContext(ctx).Create(row).Error)
}

// DeleteLike removes the liked row for the pair and reports how many rows
// went away (0 or 1).
func (s *Store) DeleteLike(ctx context.Context, userID, recipeID uint) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ? AND liked = ?", userID, recipeID, true).
		Delete(&models.UserRecipeInteraction{})
	return res.RowsAffected, translate(res.Error)
}

// DeleteInteractions removes every interaction of the user and returns the
// recipe ids of the liked rows this call deleted. Rows another transaction
// removed first are not reported, so callers can decrement exactly once.
func (s *Store) DeleteInteractions(ctx context.Context, userID uint) ([]uint, error) {
	db := s.db.WithContext(ctx)
	var rows []models.UserRecipeInteraction

	if s.db.Dialector.Name() == "mysql" {
		// No DELETE ... RETURNING: lock the rows so concurrent unlikes wait
		// for this transaction and then find nothing to delete.
		err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Find(&rows).Error
		if err != nil {
			return nil, translate(err)
		}
		err = db.Where("user_id = ?", userID).Delete(&models.UserRecipeInteraction{}).Error
		if err != nil {
			return nil, translate(err)
		}
	} else {
		err := db.Clauses(clause.Returning{}).
			Where("user_id = ?", userID).
			Delete(&rows).Error
		if err != nil {
			return nil, translate(err)
		}
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		if r.Liked {
			ids = append(ids, r.RecipeID)
		}
	}
	return ids, nil
}

// LikedPage returns up to limit liked interactions newest first. A non-nil
// before restricts the page to rows created strictly earlier.
func (s *Store) LikedPage(ctx context.Context, userID uint, before *time.Time, limit int) ([]models.UserRecipeInteraction, error) {
	q := s.db.WithContext(ctx).Where("user_id = ? AND liked = ?", userID, true)
	if before != nil {
		q = q.Where("created_at < ?", before.UTC())
	}
	var rows []models.UserRecipeInteraction
	err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&rows).Error
	return rows, translate(err)
}

func (s *Store) CountLiked(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.UserRecipeInteraction{}).
		Where("user_id = ? AND liked = ?", userID, true).
		Count(&n).Error
	return n, translate(err)
}
