package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rinawarp_backend/database"
	"rinawarp_backend/internal/auth"
	"rinawarp_backend/internal/config"
	"rinawarp_backend/internal/entitlements"
	"rinawarp_backend/internal/handlers"
	"rinawarp_backend/internal/logger"
	"rinawarp_backend/internal/middleware"
	"rinawarp_backend/internal/models"
	"rinawarp_backend/internal/repositories"
	"rinawarp_backend/internal/routes"
	"rinawarp_backend/internal/services"
	"rinawarp_backend/internal/services/billing"
	"rinawarp_backend/internal/validator"
	"rinawarp_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	// Секрет подписи токенов обязателен: дефолтного значения нет,
	// сервер с пустым секретом не поднимается.
	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT secret is not configured (set jwt.secret or JWT_SECRET)")
	}

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		// Без первого админа управлять планами некому - не запускаемся
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB, sqlDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessionWorker := workers.NewSessionWorker(gormDB, repositories.NewSessionRepository(), cfg.Sessions.RetentionDays)
	sessionWorker.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает полностью готовый gin.Engine.
// Вынесен отдельно, чтобы интеграционные тесты могли поднять
// тот же роутер поверх тестовой БД.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, sqlDB *sql.DB) *gin.Engine {
	tokenService := auth.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)
	resolver := entitlements.NewResolver()

	serviceContainer := initializeServices(cfg, tokenService, resolver)
	appHandlers := initializeHandlers(serviceContainer, sqlDB)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, tokenService, resolver)

	return ginRouter
}

func initializeServices(
	cfg *config.Config,
	tokenService *auth.TokenService,
	resolver *entitlements.Resolver,
) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	sessionRepo := repositories.NewSessionRepository()
	paymentRepo := repositories.NewPaymentEventRepository()

	stripeClient := billing.NewStripeClient(cfg.Stripe.SecretKey, cfg.Stripe.BaseURL)

	authService := services.NewAuthService(userRepo, sessionRepo, tokenService)
	userService := services.NewUserService(userRepo)
	licenseService := services.NewLicenseService(userRepo, resolver, cfg.Seats.FounderTotal)
	checkoutService := billing.NewCheckoutService(stripeClient, userRepo, paymentRepo, cfg)

	return &services.ServiceContainer{
		AuthService:     authService,
		UserService:     userService,
		LicenseService:  licenseService,
		CheckoutService: checkoutService,
	}
}

func initializeHandlers(container *services.ServiceContainer, sqlDB *sql.DB) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:     handlers.NewUserHandler(baseHandler, container.UserService),
		LicenseHandler:  handlers.NewLicenseHandler(baseHandler, container.LicenseService),
		CheckoutHandler: handlers.NewCheckoutHandler(baseHandler, container.CheckoutService),
		HealthHandler:   handlers.NewHealthHandler(sqlDB),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin создает первого админа из конфигурации.
// Идемпотентна: существующий аккаунт с этим email не трогается,
// даже если его план уже не admin.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := services.NormalizeEmail(cfg.FirstAdminEmail)
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var adminUser models.User
	result := tx.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		tx.Rollback()
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:              adminEmail,
		PasswordHash:       hashedPassword,
		Plan:               models.PlanAdmin,
		SubscriptionStatus: models.SubscriptionStatusActive,
	}

	if err := tx.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Successfully created first admin user", "email", adminEmail)

	return tx.Commit().Error
}
