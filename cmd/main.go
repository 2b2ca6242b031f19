package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auth-web-server/config"
	_ "auth-web-server/docs"
	"auth-web-server/internal/handler"
	"auth-web-server/internal/repository"
	"auth-web-server/internal/security"
	"auth-web-server/internal/service"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Auth-web-server
// @version 1.0
// @description REST API аутентификации с ротацией refresh токенов

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	fileRepo := repository.NewFileRepository(db)

	jwtService := security.NewJWTService(&cfg.JWT)
	refreshRepo := repository.NewRefreshTokenRepository(redisClient, cfg.JWT.RefreshTokenDuration)
	blacklistRepo := repository.NewBlacklistRepository(redisClient, jwtService, cfg.JWT.AccessTokenDuration, cfg.JWT.StrictRevocation)

	tokenService := service.NewTokenService(jwtService, refreshRepo, blacklistRepo, userRepo, cfg.JWT.AccessTokenDuration)
	authService := service.NewAuthenticationService(userRepo, tokenService)
	userService := service.NewUserService(userRepo)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}
	fileService := service.NewFileService(fileRepo, s3Service, time.Duration(cfg.TTL.PresignedURL)*time.Second)

	authHandler := handler.NewAuthenticationHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	fileHandler := handler.NewFileHandler(fileService)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupAuthRoutes(router, authHandler, tokenService)
	setupUserRoutes(router, userHandler, tokenService)
	setupFileRoutes(router, fileHandler, tokenService)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, tokenService *service.TokenService) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(tokenService))
			r.Get("/me", h.GetCurrentUser)
			r.Head("/me", h.GetCurrentUser)
			r.Post("/logout", h.Logout)
		})
		r.Group(func(r chi.Router) {
			r.Post("/", h.Login)
			r.Post("/refresh", h.RefreshToken)
		})
	})

	r.Post("/api/register", h.Register)
}

func setupUserRoutes(r chi.Router, h *handler.UserHandler, tokenService *service.TokenService) {
	r.Route("/api/users", func(r chi.Router) {
		r.Use(security.JWTMiddleware(tokenService))

		r.Put("/password", h.UpdatePassword)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetUser)
			r.Delete("/", h.DeleteUser)
		})
	})
}

func setupFileRoutes(r chi.Router, h *handler.FileHandler, tokenService *service.TokenService) {
	r.Route("/api/files", func(r chi.Router) {
		r.Use(security.JWTMiddleware(tokenService))
		r.Get("/", h.ListFiles)
		r.Post("/", h.CreateFile)

		r.Route("/{uuid}", func(r chi.Router) {
			r.Get("/download", h.DownloadFile)
			r.Delete("/", h.DeleteFile)
		})
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
