package models

import "time"

// PantryItem is one ingredient a user has at home. IngredientName is stored
// normalised (trimmed, lowercase) so the unique index catches "Egg" vs "egg ".
type PantryItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex:uq_user_ingredient,priority:1" json:"user_id"`
	IngredientName string    `gorm:"size:100;not null;uniqueIndex:uq_user_ingredient,priority:2" json:"ingredient_name"`
	Quantity       *string   `gorm:"size:50" json:"quantity"`
	AddedAt        time.Time `gorm:"autoCreateTime" json:"added_at"`
}
