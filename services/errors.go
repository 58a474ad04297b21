package services

import (
	"errors"
	"fmt"
)

var (
	ErrRecipeNotFound      = errors.New("Recipe not found")
	ErrLikeNotFound        = errors.New("Like not found")
	ErrAlreadyLiked        = errors.New("Recipe already liked")
	ErrPantryItemNotFound  = errors.New("Ingredient not found in pantry")
	ErrDuplicateIngredient = errors.New("Ingredient already exists in pantry")
	ErrEmailTaken          = errors.New("Email already registered")
	ErrInvalidCredentials  = errors.New("Incorrect email or password")
	ErrIncorrectPassword   = errors.New("Incorrect password")
	ErrNothingToUpdate     = errors.New("No fields provided to update")
	ErrUserNotFound        = errors.New("User not found")
	ErrTokenRevoked        = errors.New("Token has been revoked.")
)

// ValidationError is a client input problem. Message is safe to return to
// the caller as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
