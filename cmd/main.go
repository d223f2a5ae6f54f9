package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/aaronipollock/memory-palace-sub001/internal/config"
	"github.com/aaronipollock/memory-palace-sub001/internal/handler"
	"github.com/aaronipollock/memory-palace-sub001/internal/handler/middleware"
	"github.com/aaronipollock/memory-palace-sub001/internal/repository/mongodb"
	"github.com/aaronipollock/memory-palace-sub001/internal/service"
	"github.com/aaronipollock/memory-palace-sub001/pkg/blacklist"
	"github.com/aaronipollock/memory-palace-sub001/pkg/email"
	"github.com/aaronipollock/memory-palace-sub001/pkg/imageapi"
	"github.com/aaronipollock/memory-palace-sub001/pkg/imgproc"
	"github.com/aaronipollock/memory-palace-sub001/pkg/jwt"
	"github.com/aaronipollock/memory-palace-sub001/pkg/storage"
	"github.com/aaronipollock/memory-palace-sub001/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[CONFIG] failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("[MONGODB] %v", err)
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Printf("[MONGODB] disconnect: %v", err)
		}
	}()
	log.Printf("[MONGODB] connected to %s", cfg.Mongo.Database)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancel()
		log.Fatalf("[REDIS] failed to connect: %v", err)
	}
	cancel()
	log.Printf("[REDIS] connected to %s", cfg.Redis.Addr())

	tokenService, err := jwt.NewTokenService(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
		cfg.JWT.Issuer,
	)
	if err != nil {
		log.Fatalf("[JWT] %v", err)
	}

	tokenBlacklist := blacklist.NewRedisBlacklist(redisClient)

	imageClient, err := imageapi.NewOpenAI(cfg.ImageAPI.APIKey, imageapi.WithModel(cfg.ImageAPI.Model))
	if err != nil {
		log.Fatalf("[IMAGEAPI] %v", err)
	}

	uploader, err := storage.New(ctx, storage.Config{
		Bucket:         cfg.Storage.Bucket,
		Region:         cfg.Storage.Region,
		AccessKeyID:    cfg.Storage.AccessKeyID,
		SecretKey:      cfg.Storage.SecretKey,
		Endpoint:       cfg.Storage.Endpoint,
		BaseURL:        cfg.Storage.BaseURL,
		ForcePathStyle: cfg.Storage.ForcePathStyle,
	})
	if err != nil {
		log.Fatalf("[STORAGE] %v", err)
	}

	var sender email.Sender
	if cfg.Email.Enabled {
		sender, err = email.NewResendSender(cfg.Email.ResendKey, cfg.Email.FromAddress)
		if err != nil {
			log.Fatalf("[EMAIL] %v", err)
		}
	}

	userRepo := mongodb.NewUserRepository(db)
	palaceRepo := mongodb.NewPalaceRepository(db)
	roomRepo := mongodb.NewRoomRepository(db)

	demoService := service.NewDemoService(palaceRepo, roomRepo)
	authService := service.NewAuthService(userRepo, tokenService, tokenBlacklist, demoService, cfg)
	generationService := service.NewGenerationService(imageClient, imgproc.NewOptimizer(), uploader, cfg.ImageAPI)
	palaceService := service.NewPalaceService(palaceRepo)
	roomService := service.NewRoomService(roomRepo)
	feedbackService := service.NewFeedbackService(sender, cfg.Email.FeedbackTo)

	v := validator.NewValidator()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: handler.NewErrorHandler(cfg.Server.IsProduction()),
	})

	app.Use(middleware.RecoveryMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))

	handler.SetupRoutes(app, handler.Handlers{
		Auth:       handler.NewAuthHandler(authService, v, cfg),
		Generation: handler.NewGenerationHandler(generationService, v),
		Palace:     handler.NewPalaceHandler(palaceService, v),
		Room:       handler.NewRoomHandler(roomService, v),
		Feedback:   handler.NewFeedbackHandler(feedbackService, v),
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"mongodb": func(ctx context.Context) error {
				return db.Client().Ping(ctx, nil)
			},
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		}),

		TokenService:   tokenService,
		TokenBlacklist: tokenBlacklist,
		UserRepo:       userRepo,
		PalaceRepo:     palaceRepo,
		RoomRepo:       roomRepo,
	}, cfg)

	go func() {
		log.Printf("[SERVER] listening on :%s (%s)", cfg.Server.Port, cfg.Server.Environment)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatalf("[SERVER] %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[SERVER] shutting down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("[SERVER] shutdown: %v", err)
	}
}
