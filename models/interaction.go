package models

import "time"

// UserRecipeInteraction records a right swipe. The composite unique index is
// what serialises concurrent likes for the same pair.
type UserRecipeInteraction struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:uq_user_recipe,priority:1"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:uq_user_recipe,priority:2;index"`
	Liked     bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}
