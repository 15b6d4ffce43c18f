package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/recipe-share/internal/config"
	"github.com/iliyamo/recipe-share/internal/database"
	"github.com/iliyamo/recipe-share/internal/handler"
	"github.com/iliyamo/recipe-share/internal/middleware"
	"github.com/iliyamo/recipe-share/internal/queue"
	"github.com/iliyamo/recipe-share/internal/repository"
	"github.com/iliyamo/recipe-share/internal/router"
	"github.com/iliyamo/recipe-share/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the auth rate limiter and the browse response cache. A nil
	// client turns both middlewares into pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and caching disabled")
	}

	// Repositories.
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	recipeRepo := repository.NewRecipeRepo(db)
	ingredientRepo := repository.NewIngredientRepo(db)
	collectionRepo := repository.NewCollectionRepo(db)
	reviewRepo := repository.NewReviewRepo(db)

	// Services.
	authSvc := service.NewAuthService(userRepo, tokenRepo, cfg)
	userSvc := service.NewUserService(userRepo, cfg.BcryptCost)
	recipeSvc := service.NewRecipeService(recipeRepo)
	ingredientSvc := service.NewIngredientService(ingredientRepo)
	collectionSvc := service.NewCollectionService(collectionRepo, recipeRepo)
	reviewSvc := service.NewReviewService(reviewRepo, recipeRepo)

	// Handlers.
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	recipeH := handler.NewRecipeHandler(recipeSvc)
	ingredientH := handler.NewIngredientHandler(ingredientSvc)
	collectionH := handler.NewCollectionHandler(collectionSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	authLimit := middleware.NewTokenBucket(config.LoadAuthRateLimitConfig(), rdb)
	browseCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, authLimit)
	router.RegisterRecipes(e, recipeH, reviewH, cfg.JWTSecret, browseCache)
	router.RegisterIngredients(e, ingredientH, cfg.JWTSecret)
	router.RegisterCollections(e, collectionH, cfg.JWTSecret)
	router.RegisterUsers(e, userH, cfg.JWTSecret)

	// Activity events (recipe published, review written) are consumed off
	// RabbitMQ in the background; the consumer reconnects on its own.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
