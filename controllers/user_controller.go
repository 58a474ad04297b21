package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UFAZ-L2-CS1/DADLY/middlewares"
	"github.com/UFAZ-L2-CS1/DADLY/services"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// PUT /users/profile
func (uc *UserController) UpdateProfile(c *gin.Context) {
	var input services.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	sess, _ := middlewares.CurrentSession(c)
	user, err := uc.Users.UpdateProfile(c.Request.Context(), sess.User, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /users/profile  { "password": "..." }
func (uc *UserController) DeleteAccount(c *gin.Context) {
	var input struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	sess, _ := middlewares.CurrentSession(c)
	res, err := uc.Users.DeleteAccount(c.Request.Context(), sess, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /users/stats
func (uc *UserController) Stats(c *gin.Context) {
	sess, _ := middlewares.CurrentSession(c)
	stats, err := uc.Users.Stats(c.Request.Context(), sess.User)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
