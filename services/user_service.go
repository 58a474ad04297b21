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
	"github.com/UFAZ-L2-CS1/DADLY/utils"
)

// ProfileUpdate is a partial update; nil fields are left alone.
type ProfileUpdate struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	DietaryType *string `json:"dietary_type" binding:"omitempty,oneof=none vegetarian vegan gluten_free keto"`
	Allergies   *string `json:"allergies"`
}

type UserStats struct {
	TotalRecipesLiked int64     `json:"total_recipes_liked"`
	TotalPantryItems  int64     `json:"total_pantry_items"`
	AccountCreatedAt  time.Time `json:"account_created_at"`
	DaysActive        int       `json:"days_active"`
}

type DeleteResult struct {
	Message        string `json:"message"`
	RecipesUnliked int    `json:"recipes_unliked"`
}

type UserService struct {
	store *repository.Store
	auth  *AuthService
	now   func() time.Time
}

func NewUserService(store *repository.Store, auth *AuthService) *UserService {
	return &UserService{store: store, auth: auth, now: time.Now}
}

func (s *UserService) UpdateProfile(ctx context.Context, u *models.User, in ProfileUpdate) (*models.User, error) {
	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("name", "must not be empty")
		}
		fields["name"] = name
	}
	if in.DietaryType != nil {
		fields["dietary_type"] = *in.DietaryType
	}
	if in.Allergies != nil {
		fields["allergies"] = *in.Allergies
	}
	if len(fields) == 0 {
		return nil, ErrNothingToUpdate
	}

	if err := s.store.UpdateUserProfile(ctx, u.ID, fields); err != nil {
		return nil, fmt.Errorf("updating user %d: %w", u.ID, err)
	}
	updated, err := s.store.FindUser(ctx, u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("reloading user %d: %w", u.ID, err)
	}
	logging.Ctx(ctx).Info().Msg("profile updated")
	return updated, nil
}

// DeleteAccount removes the user and everything they own after checking
// the password. Every recipe they liked loses one like. The token of the
// session is revoked once the deletion has committed.
func (s *UserService) DeleteAccount(ctx context.Context, sess *Session, password string) (*DeleteResult, error) {
	u := sess.User
	if !utils.CheckPasswordHash(password, u.HashedPassword) {
		return nil, ErrIncorrectPassword
	}

	var unliked int
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		// Only rows this delete removed are decremented; an unlike that
		// committed first has already paid for its row.
		liked, err := tx.DeleteInteractions(ctx, u.ID)
		if err != nil {
			return err
		}
		if err := tx.DecrementLikes(ctx, liked...); err != nil {
			return err
		}
		if _, err := tx.ClearPantry(ctx, u.ID); err != nil {
			return err
		}
		if err := tx.DeleteUser(ctx, u.ID); err != nil {
			return err
		}
		unliked = len(liked)
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("deleting user %d: %w", u.ID, err)
	}

	if err := s.auth.revoke(ctx, sess); err != nil {
		// The account is gone; the token no longer resolves to a user.
		logging.Ctx(ctx).Warn().Err(err).Msg("revoking token of deleted account")
	}
	logging.Ctx(ctx).Info().Int("recipes_unliked", unliked).Msg("account deleted")
	return &DeleteResult{Message: "Account deleted successfully", RecipesUnliked: unliked}, nil
}

func (s *UserService) Stats(ctx context.Context, u *models.User) (*UserStats, error) {
	liked, err := s.store.CountLiked(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("counting likes of user %d: %w", u.ID, err)
	}
	pantry, err := s.store.CountPantry(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("counting pantry of user %d: %w", u.ID, err)
	}
	created := u.CreatedAt.UTC()
	days := int(s.now().UTC().Sub(created).Hours() / 24)
	return &UserStats{
		TotalRecipesLiked: liked,
		TotalPantryItems:  pantry,
		AccountCreatedAt:  created,
		DaysActive:        max(0, days),
	}, nil
}
