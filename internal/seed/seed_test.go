package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	recipes, err := Read(strings.NewReader(`
recipes:
  - name: Shakshuka
    prep_time: 10
    cook_time: 20
    difficulty: easy
    image: https://img.example.com/shakshuka.jpg
    instructions: Simmer the sauce, crack in the eggs.
    ingredients:
      - 4 eggs
      - 2 tomatoes
`))
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Shakshuka", recipes[0].Name)
	assert.Equal(t, 20, recipes[0].CookTime)
	assert.Equal(t, []string{"4 eggs", "2 tomatoes"}, recipes[0].Ingredients)
}

func TestReadRejectsUnknownKeys(t *testing.T) {
	_, err := Read(strings.NewReader("recipes:\n  - name: X\n    cook_tme: 3\n"))
	assert.Error(t, err)
}

func TestReadEmpty(t *testing.T) {
	recipes, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestReadBundledCatalog(t *testing.T) {
	recipes, err := ReadFile("../../data/recipes.yml")
	require.NoError(t, err)
	assert.NotEmpty(t, recipes)
	for _, r := range recipes {
		assert.NotEmpty(t, r.Ingredients, r.Name)
	}
}
