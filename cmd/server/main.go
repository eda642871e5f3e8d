package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"messagely_backend/internal/app/di"
	"messagely_backend/internal/app/router"
	"messagely_backend/internal/config"
	authadapters "messagely_backend/internal/feature/auth/adapters"
	authhandler "messagely_backend/internal/feature/auth/transport/handler"
	authusecase "messagely_backend/internal/feature/auth/usecase"
	messageadapters "messagely_backend/internal/feature/messages/adapters"
	messagehandler "messagely_backend/internal/feature/messages/transport/handler"
	messageusecase "messagely_backend/internal/feature/messages/usecase"
	userhandler "messagely_backend/internal/feature/users/transport/handler"
	userusecase "messagely_backend/internal/feature/users/usecase"
	infradb "messagely_backend/internal/platform/db"
	jwtmw "messagely_backend/internal/platform/jwt"
	infraredis "messagely_backend/internal/platform/redis"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without profile cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repositories
	userRepo := authadapters.NewUserMySQL(db)
	userReader := di.NewUserReader(rdb, db, cfg.ProfileCacheTTL)
	messageRepo := messageadapters.NewMessageMySQL(db)
	userDirectory := messageadapters.NewUserDirectory(db)

	// Token generation
	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.TokenTTL)

	// Usecases
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, userReader, cfg.BcryptCost)
	userUC := userusecase.NewUserUsecase(userReader)
	messageUC := messageusecase.NewMessageUsecase(messageRepo, userDirectory)

	// Handlers
	authH := authhandler.NewAuthHandler(authUC)
	userH := userhandler.NewUserHandler(userUC)
	messageH := messagehandler.NewMessageHandler(messageUC)

	// Router
	r := router.NewRouter(authH, userH, messageH, cfg.JWTSecret)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
