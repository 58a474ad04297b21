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

type RegisterInput struct {
	Email       string  `json:"email" binding:"required,email,max=255"`
	Name        string  `json:"name" binding:"required,max=100"`
	Password    string  `json:"password" binding:"required,min=8,max=72"`
	DietaryType string  `json:"dietary_type" binding:"omitempty,oneof=none vegetarian vegan gluten_free keto"`
	Allergies   *string `json:"allergies"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// Session is an authenticated request: the user, the raw bearer token and
// its claims.
type Session struct {
	User   *models.User
	Token  string
	Claims *utils.Claims
}

type AuthService struct {
	store   *repository.Store
	tokens  *utils.TokenManager
	revoked RevocationStore
	now     func() time.Time
}

func NewAuthService(store *repository.Store, tokens *utils.TokenManager, revoked RevocationStore) *AuthService {
	return &AuthService{store: store, tokens: tokens, revoked: revoked, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. The unique email index rejects duplicates.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name", "must not be empty")
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	u := &models.User{
		Email:          normalizeEmail(in.Email),
		Name:           name,
		HashedPassword: hash,
		DietaryType:    in.DietaryType,
	}
	if u.DietaryType == "" {
		u.DietaryType = models.DietNone
	}
	if in.Allergies != nil {
		u.Allergies = *in.Allergies
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	logging.Ctx(ctx).Info().Uint("new_user_id", u.ID).Msg("user registered")
	return u, nil
}

// Login checks the password and issues an access and a refresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	u, err := s.store.FindUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if !utils.CheckPasswordHash(password, u.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(u.ID, u.Email, utils.TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Issue(u.ID, u.Email, utils.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Uint("user_id", u.ID).Msg("user logged in")
	return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// Refresh trades a refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	sess, err := s.session(ctx, refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	access, err := s.tokens.Issue(sess.User.ID, sess.User.Email, utils.TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, TokenType: "bearer"}, nil
}

// Authenticate resolves a bearer access token to its session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Session, error) {
	return s.session(ctx, token, utils.TokenTypeAccess)
}

func (s *AuthService) session(ctx context.Context, token, tokenType string) (*Session, error) {
	revoked, err := s.revoked.IsRevoked(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	claims, err := s.tokens.Parse(token, tokenType)
	if err != nil {
		return nil, err
	}
	u, err := s.store.FindUser(ctx, claims.UserID, claims.Subject)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading user %d: %w", claims.UserID, err)
	}
	return &Session{User: u, Token: token, Claims: claims}, nil
}

// Logout revokes the session's token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, sess *Session) error {
	return s.revoke(ctx, sess)
}

func (s *AuthService) revoke(ctx context.Context, sess *Session) error {
	return s.revoked.Revoke(ctx, sess.Token, sess.Claims.Remaining(s.now()))
}
