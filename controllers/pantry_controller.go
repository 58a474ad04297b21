package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UFAZ-L2-CS1/DADLY/middlewares"
	"github.com/UFAZ-L2-CS1/DADLY/services"
)

type PantryController struct {
	Pantry *services.PantryService
}

func NewPantryController(pantry *services.PantryService) *PantryController {
	return &PantryController{Pantry: pantry}
}

// GET /pantry
func (pc *PantryController) List(c *gin.Context) {
	sess, _ := middlewares.CurrentSession(c)
	items, err := pc.Pantry.List(c.Request.Context(), sess.User.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /pantry  { "ingredient_name": "tomato", "quantity": "5" }
func (pc *PantryController) Add(c *gin.Context) {
	var input services.PantryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	sess, _ := middlewares.CurrentSession(c)
	item, err := pc.Pantry.Add(c.Request.Context(), sess.User.ID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient added to pantry", "ingredient": item})
}

// POST /pantry/bulk  { "ingredients": [ {...}, ... ] }
//
// Entries are validated one by one by the service so that a single bad
// name is skipped instead of failing the request.
func (pc *PantryController) AddBulk(c *gin.Context) {
	var input struct {
		Ingredients []struct {
			IngredientName string  `json:"ingredient_name"`
			Quantity       *string `json:"quantity"`
		} `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	items := make([]services.PantryInput, len(input.Ingredients))
	for i, in := range input.Ingredients {
		items[i] = services.PantryInput{IngredientName: in.IngredientName, Quantity: in.Quantity}
	}
	sess, _ := middlewares.CurrentSession(c)
	res, err := pc.Pantry.AddBulk(c.Request.Context(), sess.User.ID, items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PUT /pantry/:id
func (pc *PantryController) Update(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		bindError(c, err)
		return
	}
	var input struct {
		IngredientName string  `json:"ingredient_name" binding:"omitempty,ingredient"`
		Quantity       *string `json:"quantity" binding:"omitempty,max=50"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	sess, _ := middlewares.CurrentSession(c)
	item, err := pc.Pantry.Update(c.Request.Context(), sess.User.ID, uri.ID,
		services.PantryInput{IngredientName: input.IngredientName, Quantity: input.Quantity})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient updated", "ingredient": item})
}

// DELETE /pantry/:id
func (pc *PantryController) Remove(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		bindError(c, err)
		return
	}
	sess, _ := middlewares.CurrentSession(c)
	if err := pc.Pantry.Remove(c.Request.Context(), sess.User.ID, uri.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient removed from pantry"})
}

// DELETE /pantry
func (pc *PantryController) Clear(c *gin.Context) {
	sess, _ := middlewares.CurrentSession(c)
	n, err := pc.Pantry.Clear(c.Request.Context(), sess.User.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pantry cleared", "deleted_count": n})
}
