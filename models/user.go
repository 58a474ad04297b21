package models

import "time"

// Dietary preferences accepted on registration and profile update.
const (
	DietNone       = "none"
	DietVegetarian = "vegetarian"
	DietVegan      = "vegan"
	DietGlutenFree = "gluten_free"
	DietKeto       = "keto"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	HashedPassword string    `gorm:"size:255;not null" json:"-"`
	DietaryType    string    `gorm:"size:20;default:none" json:"dietary_type"`
	Allergies      string    `gorm:"type:text" json:"allergies"`
	CreatedAt      time.Time `json:"created_at"`
}
