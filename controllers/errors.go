package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UFAZ-L2-CS1/DADLY/logging"
	"github.com/UFAZ-L2-CS1/DADLY/services"
	"github.com/UFAZ-L2-CS1/DADLY/utils"
)

// respondError maps service errors onto HTTP responses. Anything it does
// not recognise is logged and reported as a bare 500.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"detail": verr.Message})
	case errors.Is(err, services.ErrRecipeNotFound),
		errors.Is(err, services.ErrLikeNotFound),
		errors.Is(err, services.ErrPantryItemNotFound),
		errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.Is(err, services.ErrAlreadyLiked),
		errors.Is(err, services.ErrDuplicateIngredient),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrNothingToUpdate):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrIncorrectPassword),
		errors.Is(err, services.ErrTokenRevoked),
		errors.Is(err, utils.ErrInvalidToken):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
	default:
		logging.Ctx(c.Request.Context()).Error().Err(err).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

// bindError answers a request whose body, query or path did not bind.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
}

type idURI struct {
	ID uint `uri:"id" binding:"required,min=1"`
}
