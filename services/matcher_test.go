package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/UFAZ-L2-CS1/DADLY/models"
)

func TestScoreRecipe(t *testing.T) {
	tests := []struct {
		name        string
		ingredients string
		pantry      []string
		want        int
	}{
		{"empty pantry", `["eggs","milk"]`, nil, 0},
		{"two hits", `["eggs","milk","flour"]`, []string{"egg", "milk"}, 2},
		{"no hits", `["flour","sugar"]`, []string{"egg", "milk"}, 0},
		{"case insensitive", `["Fresh BASIL"]`, []string{"basil"}, 1},
		{"pantry casing ignored", `["basil"]`, []string{"BaSiL"}, 1},
		{"substring not token", `["1 eggplant"]`, []string{"egg"}, 1},
		{"each pantry item counts once", `["egg","egg yolk","egg white"]`, []string{"egg"}, 1},
		{"blank pantry entry ignored", `["water"]`, []string{""}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreRecipe(tt.ingredients, tt.pantry))
		})
	}
}

func TestScoreRecipeEqualsSubstringCount(t *testing.T) {
	text := `["2 cups rice","1 onion","garlic"]`
	pantry := []string{"rice", "onion", "garlic", "ginger", "on"}
	// rice, onion, garlic and "on" (inside onion) are present; ginger is not.
	assert.Equal(t, 4, ScoreRecipe(text, pantry))
}

func TestScoreRecipeMatchesStoredSpecialCharacters(t *testing.T) {
	stored := models.EncodeIngredients([]string{"salt & pepper", "1 cup <fresh> basil"})
	assert.Equal(t, `["salt & pepper","1 cup <fresh> basil"]`, stored)

	assert.Equal(t, 1, ScoreRecipe(stored, []string{"salt & pepper"}))
	assert.Equal(t, 1, ScoreRecipe(stored, []string{"<fresh> basil"}))
	assert.Equal(t, 2, ScoreRecipe(stored, []string{"SALT & PEPPER", "<fresh>"}))
}
