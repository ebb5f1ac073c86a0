package main

import (
	"log"
	"net/http"

	_ "raone/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"raone/internal/auth"
	"raone/internal/cache"
	"raone/internal/config"
	"raone/internal/db"
	"raone/internal/handler"
	"raone/internal/mailer"
	"raone/internal/middleware"
	"raone/internal/model"
	"raone/internal/queue"
	"raone/internal/repository"
	"raone/internal/router"
	"raone/internal/service"
	"raone/internal/storage"
)

// @title RA.one API
// @version 1.0
// @description E-commerce API with OTP registration, cookie sessions, product catalog, carts, orders and reviews.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment directly")
	}
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.SubCategory{},
		&model.Product{},
		&model.CartItem{},
		&model.Address{},
		&model.Order{},
		&model.Review{},
		&model.Reply{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	subCategoryRepo := repository.NewSubCategoryRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	cartRepo := repository.NewCartRepository(gormDB)
	addressRepo := repository.NewAddressRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	replyRepo := repository.NewReplyRepository(gormDB)

	tokenService := auth.NewTokenService(
		cfg.ActivationSecret, cfg.AccessSecret, cfg.RefreshSecret,
		cfg.ActivationTTLMin, cfg.AccessTTLMin, cfg.RefreshTTLDays,
	)
	userCache := auth.NewRedisUserCache(cacheClient)

	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	} else {
		log.Println("SMTP_HOST not set, outgoing mail disabled")
	}

	var images storage.ImageStore
	if cfg.CloudinaryURL != "" {
		images, err = storage.NewCloudinary(cfg.CloudinaryURL)
		if err != nil {
			log.Fatalf("cloudinary init: %v", err)
		}
	} else {
		log.Println("CLOUDINARY_URL not set, image uploads disabled")
	}

	events := queue.NewPublisher(cfg.AMQPURL)

	authService := service.NewAuthService(userRepo, tokenService, userCache, mail)
	userService := service.NewUserService(userRepo, tokenService, userCache, mail, images, cfg.ClientURL)
	catalogService := service.NewCatalogService(categoryRepo, subCategoryRepo, cacheClient)
	productService := service.NewProductService(productRepo, categoryRepo, subCategoryRepo, images)
	cartService := service.NewCartService(cartRepo, productRepo)
	addressService := service.NewAddressService(addressRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, addressRepo, events)
	reviewService := service.NewReviewService(reviewRepo, replyRepo, productRepo)

	secure := cfg.Production()
	session := middleware.Session(middleware.SessionConfig{
		Tokens: tokenService,
		Users:  userRepo,
		Cache:  userCache,
		Secure: secure,
	})

	e := echo.New()
	router.Register(e, cfg, session, router.Handlers{
		Auth:     handler.NewAuthHandler(authService, tokenService, secure),
		User:     handler.NewUserHandler(userService, tokenService, secure),
		Category: handler.NewCategoryHandler(catalogService),
		Product:  handler.NewProductHandler(productService),
		Cart:     handler.NewCartHandler(cartService),
		Order:    handler.NewOrderHandler(orderService),
		Review:   handler.NewReviewHandler(reviewService),
		Address:  handler.NewAddressHandler(addressService),
	})

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
