package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UFAZ-L2-CS1/DADLY/logging"
	"github.com/UFAZ-L2-CS1/DADLY/services"
	"github.com/UFAZ-L2-CS1/DADLY/utils"
)

const sessionKey = "session"

// Authenticator resolves bearer tokens. *services.AuthService implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*services.Session, error)
}

// AuthMiddleware rejects requests without a valid access token.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := utils.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, "Not authenticated")
			return
		}
		authenticate(c, auth, token)
	}
}

// OptionalAuth lets requests without an Authorization header through as
// anonymous. A header that is present must still carry a valid token.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		token, ok := utils.BearerToken(header)
		if !ok {
			unauthorized(c, "Not authenticated")
			return
		}
		authenticate(c, auth, token)
	}
}

func authenticate(c *gin.Context, auth Authenticator, token string) {
	sess, err := auth.Authenticate(c.Request.Context(), token)
	switch {
	case errors.Is(err, services.ErrTokenRevoked):
		unauthorized(c, err.Error())
		return
	case errors.Is(err, services.ErrUserNotFound):
		unauthorized(c, "User not found.")
		return
	case errors.Is(err, utils.ErrInvalidToken):
		unauthorized(c, "Could not validate credentials.")
		return
	case err != nil:
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("authenticating request")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.Set(sessionKey, sess)
	c.Set("userID", sess.User.ID)
	c.Request = c.Request.WithContext(logging.WithUserID(c.Request.Context(), sess.User.ID))
	c.Next()
}

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detail})
}

// CurrentSession returns the session stored by the auth middlewares.
func CurrentSession(c *gin.Context) (*services.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*services.Session)
	return sess, ok
}

// TokenFromQuery lets clients that cannot set headers, such as browser
// websockets, pass the access token as a query parameter.
func TokenFromQuery(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			if tok := c.Query(param); tok != "" {
				c.Request.Header.Set("Authorization", "Bearer "+tok)
			}
		}
		c.Next()
	}
}
