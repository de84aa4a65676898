package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/22DP3HEisu/JustFitness-Mobile/internal/config"
	"github.com/22DP3HEisu/JustFitness-Mobile/internal/database"
	"github.com/22DP3HEisu/JustFitness-Mobile/internal/domain"
	"github.com/22DP3HEisu/JustFitness-Mobile/internal/middleware"
	"github.com/22DP3HEisu/JustFitness-Mobile/internal/modules/auth"
	"github.com/22DP3HEisu/JustFitness-Mobile/internal/pkg/password"
	"github.com/22DP3HEisu/JustFitness-Mobile/internal/pkg/token"
	"github.com/22DP3HEisu/JustFitness-Mobile/internal/repository"
)

func main() {
	// .env is optional, real deployments configure through the environment.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	sessionStore := repository.NewRefreshTokenStore()

	tokens := token.New(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.RefreshTTL)
	passwords := password.NewHasher(bcrypt.DefaultCost)

	authService := auth.NewService(userRepo, sessionStore, tokens, passwords, cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService)

	r := gin.Default()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(tokens))
		{
			authHandler.RegisterProtectedRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
