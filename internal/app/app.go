package app

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	_ "accountsvc/docs"
	"accountsvc/internal/config"
	"accountsvc/internal/handlers"
	"accountsvc/internal/middleware"
	"accountsvc/internal/repositories"
	"accountsvc/internal/routes"
	"accountsvc/internal/services"
)

func Run() {
	cfg := config.MustLoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()
	if err := db.Ping(); err != nil {
		log.Fatal("БД недоступна: ", err)
	}

	router := NewRouter(cfg, db)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

// NewRouter собирает репозитории, сервисы и хендлеры поверх готового *sql.DB.
func NewRouter(cfg *config.Config, db *sql.DB) *gin.Engine {
	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)

	// === Services ===
	hasher := services.NewPasswordHasher(cfg.Security.BcryptCost)
	tokens := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	otpService := services.NewOTPService(otpRepo, hasher, emailService, services.OTPPolicy{
		TTL:                  cfg.OTP.TTL,
		MaxAttempts:          cfg.OTP.MaxAttempts,
		InvalidateOnMismatch: cfg.OTP.MismatchPolicy == services.MismatchInvalidate,
	})
	notifier, err := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		// уведомления не критичны
		log.Printf("[tg][init] disabled: %v", err)
		notifier = services.NopNotifier{}
	}
	authService := services.NewAuthService(userRepo, hasher, tokens, otpService, emailService, notifier)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(authService)

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	return routes.SetupRoutes(router, authHandler, tokens)
}
