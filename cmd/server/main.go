package main

import (
	"log"
	"net/http"
	"strings"

	_ "edustore/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"edustore/internal/auth"
	"edustore/internal/cache"
	"edustore/internal/config"
	"edustore/internal/db"
	"edustore/internal/handler"
	"edustore/internal/model"
	"edustore/internal/repository"
	"edustore/internal/router"
	"edustore/internal/service"
	"edustore/internal/storage"
)

// @title Edustore API
// @version 1.0
// @description E-learning storefront API: course catalog, bank-transfer payment claims, admin verification, access grants, and reviews.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Profile{},
		&model.Course{},
		&model.CourseImage{},
		&model.Payment{},
		&model.CourseAccess{},
		&model.Review{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(gormDB)
	courseRepo := repository.NewCourseRepository(gormDB)
	paymentRepo := repository.NewPaymentRepository(gormDB)
	accessRepo := repository.NewAccessRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(profileRepo, jwtService, tokenStore)
	courseService := service.NewCourseService(courseRepo, accessRepo, cacheClient)
	paymentService := service.NewPaymentService(paymentRepo, accessRepo, courseRepo)
	reviewService := service.NewReviewService(reviewRepo, accessRepo)
	customerService := service.NewCustomerService(profileRepo, accessRepo)

	imageStore := storage.NewImageStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	courseHandler := handler.NewCourseHandler(courseService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	customerHandler := handler.NewCustomerHandler(customerService)
	uploadHandler := handler.NewUploadHandler(imageStore)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		courseHandler,
		paymentHandler,
		reviewHandler,
		customerHandler,
		uploadHandler,
	)

	if cfg.SwaggerHost != "" {
		swaggerURL := cfg.SwaggerHost
		if !strings.HasPrefix(swaggerURL, "http://") && !strings.HasPrefix(swaggerURL, "https://") {
			swaggerURL = "http://" + swaggerURL
		}
		log.Printf("Swagger documentation available at: %s/swagger/index.html", swaggerURL)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
