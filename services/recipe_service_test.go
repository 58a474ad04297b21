package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UFAZ-L2-CS1/DADLY/internal/testdb"
	"github.com/UFAZ-L2-CS1/DADLY/repository"
)

type stubImages struct{ calls int }

func (s *stubImages) Resolve(_ context.Context, ref, name string) (string, error) {
	s.calls++
	if ref == "" {
		return "", nil
	}
	return "https://cdn.example.com/" + name, nil
}

func TestRecipeDetails(t *testing.T) {
	db := testdb.Open(t)
	svc := NewRecipeService(repository.New(db))
	r := testdb.Recipe(t, db, "pancakes", "2 eggs", "1 cup milk")

	got, err := svc.Details(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "pancakes", got.Name)
	assert.Equal(t, []string{"2 eggs", "1 cup milk"}, got.Ingredients)
	assert.Equal(t, "Cook it.", got.Instructions)

	_, err = svc.Details(context.Background(), r.ID+100)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testdb.Open(t)
	svc := NewRecipeService(repository.New(db))
	ctx := context.Background()
	images := &stubImages{}

	seed := []SeedRecipe{
		{Name: "Omelette", PrepTime: 5, CookTime: 5, Difficulty: "Easy", Image: "img/omelette.jpg", Instructions: "Whisk and fry.", Ingredients: []string{"3 eggs", "salt"}},
		{Name: "Stew", PrepTime: 20, CookTime: 120, Difficulty: "hard", Instructions: "Simmer.", Ingredients: []string{"beef", "carrot"}},
	}
	report, err := svc.Seed(ctx, seed, images)
	require.NoError(t, err)
	assert.Equal(t, SeedReport{Created: 2}, report)
	assert.Equal(t, 2, images.calls)

	report, err = svc.Seed(ctx, seed, images)
	require.NoError(t, err)
	assert.Equal(t, SeedReport{Skipped: 2}, report)

	var omelette struct {
		ImageURL   string
		Difficulty string
	}
	require.NoError(t, db.Table("recipes").Select("image_url, difficulty").Where("name = ?", "Omelette").Scan(&omelette).Error)
	assert.Equal(t, "https://cdn.example.com/Omelette", omelette.ImageURL)
	assert.Equal(t, "easy", omelette.Difficulty)
}

func TestSeedRejectsBadEntries(t *testing.T) {
	db := testdb.Open(t)
	svc := NewRecipeService(repository.New(db))

	_, err := svc.Seed(context.Background(), []SeedRecipe{
		{Name: "Toast", Difficulty: "trivial", Instructions: "Toast.", Ingredients: []string{"bread"}},
	}, nil)
	assert.True(t, IsValidation(err))

	_, err = svc.Seed(context.Background(), []SeedRecipe{
		{Name: "Water", Difficulty: "easy", Instructions: "Pour."},
	}, nil)
	assert.True(t, IsValidation(err))
}
