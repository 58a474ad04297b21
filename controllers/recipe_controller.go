package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UFAZ-L2-CS1/DADLY/middlewares"
	"github.com/UFAZ-L2-CS1/DADLY/services"
)

type RecipeController struct {
	Feed    *services.FeedService
	Likes   *services.LikeService
	Recipes *services.RecipeService
}

func NewRecipeController(feed *services.FeedService, likes *services.LikeService, recipes *services.RecipeService) *RecipeController {
	return &RecipeController{Feed: feed, Likes: likes, Recipes: recipes}
}

type feedQuery struct {
	Limit   int    `form:"limit,default=20" binding:"min=1,max=50"`
	Exclude string `form:"exclude"`
}

// GET /recipes/feed?limit=20&exclude=1,2,3
func (rc *RecipeController) GetFeed(c *gin.Context) {
	var q feedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	req := services.FeedRequest{Limit: q.Limit, Exclude: q.Exclude}
	if sess, ok := middlewares.CurrentSession(c); ok {
		req.UserID = &sess.User.ID
	}
	cards, err := rc.Feed.Feed(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// POST /recipes/:id/like
func (rc *RecipeController) Like(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		bindError(c, err)
		return
	}
	sess, _ := middlewares.CurrentSession(c)
	res, err := rc.Likes.Like(c.Request.Context(), sess.User.ID, uri.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DELETE /recipes/:id/like
func (rc *RecipeController) Unlike(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		bindError(c, err)
		return
	}
	sess, _ := middlewares.CurrentSession(c)
	res, err := rc.Likes.Unlike(c.Request.Context(), sess.User.ID, uri.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type likedQuery struct {
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
	Cursor string `form:"cursor"`
}

// GET /recipes/liked?limit=20&cursor=...
func (rc *RecipeController) Liked(c *gin.Context) {
	var q likedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	sess, _ := middlewares.CurrentSession(c)
	page, err := rc.Likes.ListLiked(c.Request.Context(), sess.User.ID, q.Limit, q.Cursor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /recipes/:id
func (rc *RecipeController) Details(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		bindError(c, err)
		return
	}
	details, err := rc.Recipes.Details(c.Request.Context(), uri.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}
