package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/UFAZ-L2-CS1/DADLY/logging"
	"github.com/UFAZ-L2-CS1/DADLY/metrics"
	"github.com/UFAZ-L2-CS1/DADLY/repository"
)

const (
	DefaultLikedLimit = 20
	MaxLikedLimit     = 100

	EventRecipeLiked   = "recipe.liked"
	EventRecipeUnliked = "recipe.unliked"
)

// Notifier receives like events for a user. *RealtimeHub implements it.
type Notifier interface {
	Publish(userID uint, payload any)
}

type LikeEvent struct {
	Type      string `json:"type"`
	RecipeID  uint   `json:"recipe_id"`
	LikeCount int    `json:"like_count"`
}

type LikeResult struct {
	Message   string `json:"message"`
	RecipeID  uint   `json:"recipe_id"`
	LikeCount int    `json:"like_count"`
}

type LikedRecipe struct {
	RecipeCard
	LikedAt string `json:"liked_at"`
}

type LikedPage struct {
	Recipes    []LikedRecipe `json:"recipes"`
	NextCursor *string       `json:"next_cursor"`
	HasMore    bool          `json:"has_more"`
}

type LikeService struct {
	store  *repository.Store
	events Notifier
}

// NewLikeService wires the like operations. events may be nil.
func NewLikeService(store *repository.Store, events Notifier) *LikeService {
	return &LikeService{store: store, events: events}
}

// Like records a right swipe. The unique (user, recipe) index decides
// between concurrent attempts: the loser gets ErrAlreadyLiked and its
// transaction, counter increment included, is rolled back.
func (s *LikeService) Like(ctx context.Context, userID, recipeID uint) (*LikeResult, error) {
	if _, err := s.store.FindRecipe(ctx, recipeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.RecordLike("like", "not_found")
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("loading recipe %d: %w", recipeID, err)
	}

	var count int
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.InsertLike(ctx, userID, recipeID); err != nil {
			return err
		}
		if err := tx.IncrementLikes(ctx, recipeID); err != nil {
			return err
		}
		var err error
		count, err = tx.LikeCount(ctx, recipeID)
		return err
	})
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		metrics.RecordLike("like", "duplicate")
		logging.Ctx(ctx).Warn().Uint("recipe_id", recipeID).Msg("duplicate like attempt")
		return nil, ErrAlreadyLiked
	case err != nil:
		metrics.RecordLike("like", "error")
		return nil, fmt.Errorf("liking recipe %d: %w", recipeID, err)
	}

	metrics.RecordLike("like", "ok")
	logging.Ctx(ctx).Info().Uint("recipe_id", recipeID).Msg("recipe liked")
	s.notify(userID, LikeEvent{Type: EventRecipeLiked, RecipeID: recipeID, LikeCount: count})
	return &LikeResult{Message: "Recipe liked successfully", RecipeID: recipeID, LikeCount: count}, nil
}

// Unlike removes a like. Only the caller whose delete removed the row
// decrements the counter, and the counter never drops below zero.
func (s *LikeService) Unlike(ctx context.Context, userID, recipeID uint) (*LikeResult, error) {
	var count int
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		n, err := tx.DeleteLike(ctx, userID, recipeID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrLikeNotFound
		}
		if err := tx.DecrementLikes(ctx, recipeID); err != nil {
			return err
		}
		count, err = tx.LikeCount(ctx, recipeID)
		if errors.Is(err, repository.ErrNotFound) {
			count, err = 0, nil
		}
		return err
	})
	switch {
	case errors.Is(err, ErrLikeNotFound):
		metrics.RecordLike("unlike", "not_found")
		return nil, err
	case err != nil:
		metrics.RecordLike("unlike", "error")
		return nil, fmt.Errorf("unliking recipe %d: %w", recipeID, err)
	}

	metrics.RecordLike("unlike", "ok")
	logging.Ctx(ctx).Info().Uint("recipe_id", recipeID).Msg("recipe unliked")
	s.notify(userID, LikeEvent{Type: EventRecipeUnliked, RecipeID: recipeID, LikeCount: count})
	return &LikeResult{Message: "Recipe unliked successfully", RecipeID: recipeID, LikeCount: count}, nil
}

func (s *LikeService) notify(userID uint, ev LikeEvent) {
	if s.events != nil {
		s.events.Publish(userID, ev)
	}
}

// ListLiked pages through the user's liked recipes, newest first. cursor is
// the liked_at of the last recipe on the previous page.
func (s *LikeService) ListLiked(ctx context.Context, userID uint, limit int, cursor string) (*LikedPage, error) {
	if limit < 1 || limit > MaxLikedLimit {
		return nil, invalid("limit", "must be between 1 and %d", MaxLikedLimit)
	}
	var before *time.Time
	if cursor != "" {
		ts, err := ParseCursor(cursor)
		if err != nil {
			return nil, err
		}
		before = &ts
	}

	rows, err := s.store.LikedPage(ctx, userID, before, limit+1)
	if err != nil {
		return nil, fmt.Errorf("listing liked recipes for user %d: %w", userID, err)
	}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	ids := make([]uint, len(rows))
	for i, r := range rows {
		ids[i] = r.RecipeID
	}
	recipes, err := s.store.RecipesByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading liked recipes for user %d: %w", userID, err)
	}

	page := &LikedPage{Recipes: make([]LikedRecipe, 0, len(rows)), HasMore: hasMore}
	var last string
	for _, row := range rows {
		last = FormatCursor(row.CreatedAt)
		r, ok := recipes[row.RecipeID]
		if !ok {
			continue
		}
		page.Recipes = append(page.Recipes, LikedRecipe{RecipeCard: NewRecipeCard(&r), LikedAt: last})
	}
	if hasMore {
		page.NextCursor = &last
	}
	return page, nil
}

const naiveCursorLayout = "2006-01-02T15:04:05.999999999"

// FormatCursor renders t the way ListLiked expects it back.
func FormatCursor(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseCursor accepts RFC 3339 timestamps and, for older clients, naive ISO
// timestamps which are read as UTC.
func ParseCursor(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation(naiveCursorLayout, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, invalid("", "Invalid cursor format. Expected ISO 8601 timestamp (YYYY-MM-DDTHH:MM:SS.ffffff).")
}
