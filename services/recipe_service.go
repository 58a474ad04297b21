package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/UFAZ-L2-CS1/DADLY/logging"
	"github.com/UFAZ-L2-CS1/DADLY/models"
	"github.com/UFAZ-L2-CS1/DADLY/repository"
)

// RecipeDetails is the full public view of one recipe.
type RecipeDetails struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	PrepTime     int       `json:"prep_time"`
	CookTime     int       `json:"cook_time"`
	Difficulty   string    `json:"difficulty"`
	ImageURL     string    `json:"image_url"`
	Instructions string    `json:"instructions"`
	Ingredients  []string  `json:"ingredients"`
	LikeCount    int       `json:"like_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// SeedRecipe is one catalog entry in a seed file.
type SeedRecipe struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	PrepTime     int      `yaml:"prep_time"`
	CookTime     int      `yaml:"cook_time"`
	Difficulty   string   `yaml:"difficulty"`
	Image        string   `yaml:"image"`
	Instructions string   `yaml:"instructions"`
	Ingredients  []string `yaml:"ingredients"`
}

// ImageResolver turns a seed image reference into a public URL.
type ImageResolver interface {
	Resolve(ctx context.Context, ref, name string) (string, error)
}

type SeedReport struct {
	Created int
	Skipped int
}

type RecipeService struct {
	store *repository.Store
}

func NewRecipeService(store *repository.Store) *RecipeService {
	return &RecipeService{store: store}
}

func (s *RecipeService) Details(ctx context.Context, id uint) (*RecipeDetails, error) {
	r, err := s.store.FindRecipe(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading recipe %d: %w", id, err)
	}
	return &RecipeDetails{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Difficulty:   r.Difficulty,
		ImageURL:     r.ImageURL,
		Instructions: r.Instructions,
		Ingredients:  r.IngredientList(),
		LikeCount:    r.LikeCount,
		CreatedAt:    r.CreatedAt,
	}, nil
}

// Seed inserts recipes that are not in the catalog yet, matched by name.
// images may be nil, in which case only remote image URLs are kept.
func (s *RecipeService) Seed(ctx context.Context, recipes []SeedRecipe, images ImageResolver) (SeedReport, error) {
	var report SeedReport
	for i, in := range recipes {
		if err := validateSeed(in); err != nil {
			return report, fmt.Errorf("seed entry %d (%q): %w", i, in.Name, err)
		}
		exists, err := s.store.RecipeExistsByName(ctx, in.Name)
		if err != nil {
			return report, fmt.Errorf("checking recipe %q: %w", in.Name, err)
		}
		if exists {
			report.Skipped++
			continue
		}

		imageURL := in.Image
		if images != nil {
			if imageURL, err = images.Resolve(ctx, in.Image, in.Name); err != nil {
				return report, fmt.Errorf("image for %q: %w", in.Name, err)
			}
		} else if !strings.HasPrefix(imageURL, "http") {
			imageURL = ""
		}

		r := &models.Recipe{
			Name:         in.Name,
			Description:  in.Description,
			PrepTime:     in.PrepTime,
			CookTime:     in.CookTime,
			Difficulty:   strings.ToLower(in.Difficulty),
			ImageURL:     imageURL,
			Instructions: in.Instructions,
			Ingredients:  models.EncodeIngredients(in.Ingredients),
		}
		if err := s.store.CreateRecipe(ctx, r); err != nil {
			return report, fmt.Errorf("creating recipe %q: %w", in.Name, err)
		}
		report.Created++
	}
	logging.Ctx(ctx).Info().Int("created", report.Created).Int("skipped", report.Skipped).Msg("catalog seeded")
	return report, nil
}

func validateSeed(r SeedRecipe) error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return invalid("name", "is required")
	case r.PrepTime < 0 || r.CookTime < 0:
		return invalid("time", "must not be negative")
	case strings.TrimSpace(r.Instructions) == "":
		return invalid("instructions", "are required")
	case len(r.Ingredients) == 0:
		return invalid("ingredients", "must not be empty")
	}
	switch strings.ToLower(r.Difficulty) {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		return nil
	}
	return invalid("difficulty", "must be easy, medium or hard")
}
