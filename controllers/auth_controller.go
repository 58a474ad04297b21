package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UFAZ-L2-CS1/DADLY/middlewares"
	"github.com/UFAZ-L2-CS1/DADLY/services"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// POST /auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	user, err := ac.Auth.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// LoginInput accepts a JSON body or an OAuth2 password form, where the email
// travels as "username".
type LoginInput struct {
	Email    string `json:"email" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// POST /auth/token
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}
	pair, err := ac.Auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// POST /auth/refresh
func (ac *AuthController) Refresh(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	pair, err := ac.Auth.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// GET /auth/me
func (ac *AuthController) Me(c *gin.Context) {
	sess, _ := middlewares.CurrentSession(c)
	c.JSON(http.StatusOK, sess.User)
}

// POST /auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	sess, _ := middlewares.CurrentSession(c)
	if err := ac.Auth.Logout(c.Request.Context(), sess); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}
