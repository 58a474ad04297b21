package models

import (
	"bytes"
	"encoding/json"
	"time"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Recipe is a catalog entry. Ingredients holds a JSON array of free text
// entries ("2 eggs", "1 cup milk") and is matched as plain text by the feed.
type Recipe struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:200;not null;index"`
	Description  string `gorm:"type:text"`
	PrepTime     int    `gorm:"not null"` // minutes
	CookTime     int    `gorm:"not null"` // minutes
	Difficulty   string `gorm:"size:10;not null"`
	ImageURL     string `gorm:"size:500"`
	Instructions string `gorm:"type:text;not null"`
	Ingredients  string `gorm:"type:text;not null"`
	LikeCount    int    `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

// IngredientList decodes Ingredients. Rows written before the JSON format
// was adopted come back as a single entry.
func (r *Recipe) IngredientList() []string {
	var out []string
	if err := json.Unmarshal([]byte(r.Ingredients), &out); err != nil {
		if r.Ingredients == "" {
			return []string{}
		}
		return []string{r.Ingredients}
	}
	return out
}

// EncodeIngredients is the inverse of IngredientList. HTML escaping is off
// so the stored text matches pantry names containing &, < or > verbatim.
func EncodeIngredients(items []string) string {
	if items == nil {
		items = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(items)
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
