package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/UFAZ-L2-CS1/DADLY/logging"
	"github.com/UFAZ-L2-CS1/DADLY/metrics"
	"github.com/UFAZ-L2-CS1/DADLY/models"
)

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 50

	// A ranked feed scores at most min(limit*FeedCandidateMultiplier,
	// FeedCandidateCap) recipes.
	FeedCandidateMultiplier = 10
	FeedCandidateCap        = 500
)

// FeedStore is what the feed reads. *repository.Store satisfies it.
type FeedStore interface {
	LikedRecipeIDs(ctx context.Context, userID uint) ([]uint, error)
	PantryIngredientNames(ctx context.Context, userID uint) ([]string, error)
	RandomRecipes(ctx context.Context, exclude []uint, limit int) ([]models.Recipe, error)
}

// RecipeCard is the projection served to swipe clients.
type RecipeCard struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	ImageURL   string `json:"image_url"`
	PrepTime   int    `json:"prep_time"`
	CookTime   int    `json:"cook_time"`
	Difficulty string `json:"difficulty"`
	LikeCount  int    `json:"like_count"`
}

func NewRecipeCard(r *models.Recipe) RecipeCard {
	return RecipeCard{
		ID:         r.ID,
		Name:       r.Name,
		ImageURL:   r.ImageURL,
		PrepTime:   r.PrepTime,
		CookTime:   r.CookTime,
		Difficulty: r.Difficulty,
		LikeCount:  r.LikeCount,
	}
}

// FeedRequest describes one feed call. A nil UserID is an anonymous caller.
type FeedRequest struct {
	UserID  *uint
	Limit   int
	Exclude string
}

type FeedService struct {
	store FeedStore
}

func NewFeedService(store FeedStore) *FeedService {
	return &FeedService{store: store}
}

// Feed returns up to req.Limit recipe cards.
//
// Anonymous callers get random recipes and their Exclude is ignored.
// Authenticated callers never see liked recipes or the ids in Exclude; if
// they have pantry items the candidates are ranked by how many of those
// items each recipe mentions.
func (s *FeedService) Feed(ctx context.Context, req FeedRequest) ([]RecipeCard, error) {
	if req.Limit < 1 || req.Limit > MaxFeedLimit {
		return nil, invalid("limit", "must be between 1 and %d", MaxFeedLimit)
	}

	if req.UserID == nil {
		recipes, err := s.store.RandomRecipes(ctx, nil, req.Limit)
		if err != nil {
			return nil, fmt.Errorf("fetching guest feed: %w", err)
		}
		return s.finish(ctx, "guest", recipes), nil
	}
	userID := *req.UserID

	// Parse before touching the store so bad input costs no queries.
	session, err := ParseExclude(req.Exclude)
	if err != nil {
		return nil, err
	}
	liked, err := s.store.LikedRecipeIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching liked recipes for user %d: %w", userID, err)
	}
	excluded := mergeExclusions(liked, session)

	names, err := s.store.PantryIngredientNames(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching pantry for user %d: %w", userID, err)
	}
	pantry := normalizePantry(names)

	if len(pantry) == 0 {
		recipes, err := s.store.RandomRecipes(ctx, excluded.IDs(), req.Limit)
		if err != nil {
			return nil, fmt.Errorf("fetching feed for user %d: %w", userID, err)
		}
		return s.finish(ctx, "random", recipes), nil
	}

	candidates, err := s.store.RandomRecipes(ctx, excluded.IDs(), candidatePoolSize(req.Limit))
	if err != nil {
		return nil, fmt.Errorf("fetching feed candidates for user %d: %w", userID, err)
	}
	metrics.FeedCandidates.Observe(float64(len(candidates)))

	return s.finish(ctx, "ranked", rank(candidates, pantry, req.Limit)), nil
}

func (s *FeedService) finish(ctx context.Context, mode string, recipes []models.Recipe) []RecipeCard {
	cards := make([]RecipeCard, 0, len(recipes))
	for i := range recipes {
		cards = append(cards, NewRecipeCard(&recipes[i]))
	}
	metrics.RecordFeed(mode, len(cards))
	logging.Ctx(ctx).Debug().Str("mode", mode).Int("count", len(cards)).Msg("feed assembled")
	return cards
}

func candidatePoolSize(limit int) int {
	return min(limit*FeedCandidateMultiplier, FeedCandidateCap)
}

// rank orders candidates by descending pantry score and keeps the first
// limit. Equal scores keep their incoming (random) order.
func rank(candidates []models.Recipe, pantry []string, limit int) []models.Recipe {
	type scored struct {
		recipe models.Recipe
		score  int
	}
	ranked := make([]scored, len(candidates))
	for i, r := range candidates {
		ranked[i] = scored{recipe: r, score: ScoreRecipe(r.Ingredients, pantry)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]models.Recipe, len(ranked))
	for i, sc := range ranked {
		out[i] = sc.recipe
	}
	return out
}

func mergeExclusions(liked, session []uint) ExclusionSet {
	set := make(ExclusionSet, len(liked)+len(session))
	for _, id := range liked {
		set[id] = struct{}{}
	}
	for _, id := range session {
		set[id] = struct{}{}
	}
	return set
}

func normalizePantry(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			out = append(out, n)
		}
	}
	return out
}
