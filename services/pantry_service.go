package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/UFAZ-L2-CS1/DADLY/logging"
	"github.com/UFAZ-L2-CS1/DADLY/models"
	"github.com/UFAZ-L2-CS1/DADLY/repository"
)

const (
	MaxIngredientNameLength = 100
	MaxQuantityLength       = 50
	MaxBulkIngredients      = 50
)

// PantryInput is one ingredient as sent by a client.
type PantryInput struct {
	IngredientName string  `json:"ingredient_name" binding:"required,ingredient"`
	Quantity       *string `json:"quantity" binding:"omitempty,max=50"`
}

type SkippedIngredient struct {
	IngredientName string `json:"ingredient_name"`
	Reason         string `json:"reason"`
}

type BulkResult struct {
	Added        []models.PantryItem `json:"added"`
	Skipped      []SkippedIngredient `json:"skipped"`
	AddedCount   int                 `json:"added_count"`
	SkippedCount int                 `json:"skipped_count"`
}

// NormalizeIngredient trims and lowercases name and rejects names that are
// empty, too long, purely numeric or without any letter or digit.
func NormalizeIngredient(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "", invalid("ingredient_name", "must not be empty")
	}
	if utf8.RuneCountInString(n) > MaxIngredientNameLength {
		return "", invalid("ingredient_name", "must be at most %d characters", MaxIngredientNameLength)
	}
	letters, digits := 0, 0
	for _, r := range n {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}
	if letters == 0 {
		if digits == 0 {
			return "", invalid("ingredient_name", "must contain a letter or digit")
		}
		return "", invalid("ingredient_name", "must not be purely numeric")
	}
	return n, nil
}

// ValidIngredientName backs the "ingredient" binding tag.
func ValidIngredientName(name string) bool {
	_, err := NormalizeIngredient(name)
	return err == nil
}

func normalizeQuantity(q *string) (*string, error) {
	if q == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*q)
	if v == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(v) > MaxQuantityLength {
		return nil, invalid("quantity", "must be at most %d characters", MaxQuantityLength)
	}
	return &v, nil
}

type PantryService struct {
	store *repository.Store
}

func NewPantryService(store *repository.Store) *PantryService {
	return &PantryService{store: store}
}

func (s *PantryService) List(ctx context.Context, userID uint) ([]models.PantryItem, error) {
	items, err := s.store.ListPantry(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing pantry for user %d: %w", userID, err)
	}
	return items, nil
}

func (s *PantryService) newItem(userID uint, in PantryInput) (*models.PantryItem, error) {
	name, err := NormalizeIngredient(in.IngredientName)
	if err != nil {
		return nil, err
	}
	qty, err := normalizeQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	return &models.PantryItem{UserID: userID, IngredientName: name, Quantity: qty}, nil
}

// Add stores one ingredient. The (user, name) unique index reports
// duplicates.
func (s *PantryService) Add(ctx context.Context, userID uint, in PantryInput) (*models.PantryItem, error) {
	item, err := s.newItem(userID, in)
	if err != nil {
		return nil, err
	}
	if err := s.store.InsertPantryItem(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateIngredient
		}
		return nil, fmt.Errorf("adding %q to pantry: %w", item.IngredientName, err)
	}
	logging.Ctx(ctx).Debug().Str("ingredient", item.IngredientName).Msg("pantry item added")
	return item, nil
}

// AddBulk adds each entry on its own; one bad entry does not stop the rest.
func (s *PantryService) AddBulk(ctx context.Context, userID uint, inputs []PantryInput) (*BulkResult, error) {
	if len(inputs) == 0 {
		return nil, invalid("ingredients", "No ingredients provided")
	}
	if len(inputs) > MaxBulkIngredients {
		return nil, invalid("ingredients", "Too many ingredients (max %d).", MaxBulkIngredients)
	}

	res := &BulkResult{Added: []models.PantryItem{}, Skipped: []SkippedIngredient{}}
	skip := func(name, reason string) {
		res.Skipped = append(res.Skipped, SkippedIngredient{IngredientName: name, Reason: reason})
	}
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		item, err := s.newItem(userID, in)
		if err != nil {
			skip(in.IngredientName, err.Error())
			continue
		}
		if seen[item.IngredientName] {
			skip(item.IngredientName, "duplicate in request")
			continue
		}
		seen[item.IngredientName] = true

		if err := s.store.InsertPantryItem(ctx, item); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				skip(item.IngredientName, "already in pantry")
				continue
			}
			return nil, fmt.Errorf("adding %q to pantry: %w", item.IngredientName, err)
		}
		res.Added = append(res.Added, *item)
	}
	res.AddedCount, res.SkippedCount = len(res.Added), len(res.Skipped)
	return res, nil
}

// Update replaces an owned item. An empty name keeps the current one.
func (s *PantryService) Update(ctx context.Context, userID, itemID uint, in PantryInput) (*models.PantryItem, error) {
	var updated *models.PantryItem
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		current, err := tx.FindPantryItem(ctx, userID, itemID)
		if err != nil {
			return err
		}
		if strings.TrimSpace(in.IngredientName) == "" {
			in.IngredientName = current.IngredientName
		}
		item, err := s.newItem(userID, in)
		if err != nil {
			return err
		}
		if _, err := tx.DeletePantryItem(ctx, userID, itemID); err != nil {
			return err
		}
		if err := tx.InsertPantryItem(ctx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrPantryItemNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return nil, ErrDuplicateIngredient
	case IsValidation(err):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("updating pantry item %d: %w", itemID, err)
	}
	return updated, nil
}

func (s *PantryService) Remove(ctx context.Context, userID, itemID uint) error {
	n, err := s.store.DeletePantryItem(ctx, userID, itemID)
	if err != nil {
		return fmt.Errorf("removing pantry item %d: %w", itemID, err)
	}
	if n == 0 {
		return ErrPantryItemNotFound
	}
	return nil
}

// Clear empties the pantry and reports how many items went away.
func (s *PantryService) Clear(ctx context.Context, userID uint) (int64, error) {
	n, err := s.store.ClearPantry(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("clearing pantry for user %d: %w", userID, err)
	}
	return n, nil
}
