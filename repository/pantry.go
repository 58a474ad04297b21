package repository

import (
	"context"

	"github.com/UFAZ-L2-CS1/DADLY/models"
)

func (s *Store) ListPantry(ctx context.Context, userID uint) ([]models.PantryItem, error) {
	var items []models.PantryItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at ASC").Order("id ASC").
		Find(&items).Error
	return items, translate(err)
}

// PantryIngredientNames returns the stored (already normalised) names.
func (s *Store) PantryIngredientNames(ctx context.Context, userID uint) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&models.PantryItem{}).
		Where("user_id = ?", userID).
		Pluck("ingredient_name", &names).Error
	return names, translate(err)
}

func (s *Store) FindPantryItem(ctx context.Context, userID, itemID uint) (*models.PantryItem, error) {
	var item models.PantryItem
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// InsertPantryItem returns ErrDuplicate when the user already has the
// ingredient.
func (s *Store) InsertPantryItem(ctx context.Context, item *models.PantryItem) error {
	return translate(s.db.WithContext(ctx).Create(item).Error)
}

func (s *Store) DeletePantryItem(ctx context.Context, userID, itemID uint) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.PantryItem{})
	return res.RowsAffected, translate(res.Error)
}

func (s *Store) ClearPantry(ctx context.Context, userID uint) (int64, error) {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.PantryItem{})
	return res.RowsAffected, translate(res.Error)
}

func (s *Store) CountPantry(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.PantryItem{}).Where("user_id = ?", userID).Count(&n).Error
	return n, translate(err)
}
