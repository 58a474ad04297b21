package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/UFAZ-L2-CS1/DADLY/config"
	"github.com/UFAZ-L2-CS1/DADLY/controllers"
	"github.com/UFAZ-L2-CS1/DADLY/middlewares"
	"github.com/UFAZ-L2-CS1/DADLY/repository"
	"github.com/UFAZ-L2-CS1/DADLY/services"
	"github.com/UFAZ-L2-CS1/DADLY/utils"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Store   *repository.Store
	Auth    *services.AuthService
	Users   *services.UserService
	Feed    *services.FeedService
	Likes   *services.LikeService
	Recipes *services.RecipeService
	Pantry  *services.PantryService
	Hub     *services.RealtimeHub
}

func NewServices(store *repository.Store, tokens *utils.TokenManager, revoked services.RevocationStore) *Services {
	hub := services.NewRealtimeHub()
	auth := services.NewAuthService(store, tokens, revoked)
	return &Services{
		Store:   store,
		Auth:    auth,
		Users:   services.NewUserService(store, auth),
		Feed:    services.NewFeedService(store),
		Likes:   services.NewLikeService(store, hub),
		Recipes: services.NewRecipeService(store),
		Pantry:  services.NewPantryService(store),
		Hub:     hub,
	}
}

func SetupRouter(cfg *config.Config, svc *Services) (*gin.Engine, error) {
	if err := middlewares.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(), middlewares.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{middlewares.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middlewares.AuthMiddleware(svc.Auth)
	optionalAuth := middlewares.OptionalAuth(svc.Auth)

	api := r.Group(cfg.App.APIPrefix)

	health := controllers.NewHealthController(svc.Store, cfg.App.Location)
	api.GET("/health", health.Health)
	api.HEAD("/health", health.Health)

	authCtl := controllers.NewAuthController(svc.Auth)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/token", authCtl.Login)
		auth.POST("/refresh", authCtl.Refresh)
		auth.GET("/me", requireAuth, authCtl.Me)
		auth.POST("/logout", requireAuth, authCtl.Logout)
	}

	userCtl := controllers.NewUserController(svc.Users)
	users := api.Group("/users", requireAuth)
	{
		users.PUT("/profile", userCtl.UpdateProfile)
		users.DELETE("/profile", userCtl.DeleteAccount)
		users.GET("/stats", userCtl.Stats)
	}

	recipeCtl := controllers.NewRecipeController(svc.Feed, svc.Likes, svc.Recipes)
	recipes := api.Group("/recipes")
	{
		recipes.GET("/feed", optionalAuth, recipeCtl.GetFeed)
		recipes.GET("/liked", requireAuth, recipeCtl.Liked)
		recipes.GET("/:id", recipeCtl.Details)
		recipes.POST("/:id/like", requireAuth, recipeCtl.Like)
		recipes.DELETE("/:id/like", requireAuth, recipeCtl.Unlike)
	}

	pantryCtl := controllers.NewPantryController(svc.Pantry)
	pantry := api.Group("/pantry", requireAuth)
	{
		pantry.GET("", pantryCtl.List)
		pantry.POST("", pantryCtl.Add)
		pantry.DELETE("", pantryCtl.Clear)
		pantry.POST("/bulk", pantryCtl.AddBulk)
		pantry.PUT("/:id", pantryCtl.Update)
		pantry.DELETE("/:id", pantryCtl.Remove)
	}

	rtCtl := controllers.NewRealtimeController(svc.Hub, cfg.App.CORSOrigins)
	api.GET("/ws/likes", middlewares.TokenFromQuery("token"), requireAuth, rtCtl.LikesWS)

	return r, nil
}
