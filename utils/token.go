package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewTokenID returns a random id for the jti claim.
func NewTokenID() string {
	return uuid.NewString()
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
