package main

import (
	"context"
	"log"
	"time"

	"stays-backend/internal/config"
	"stays-backend/internal/database"
	"stays-backend/internal/handlers"
	"stays-backend/internal/notify"
	"stays-backend/internal/ratelimit"
	"stays-backend/internal/services"
	"stays-backend/internal/session"
	"stays-backend/internal/storage"
	"stays-backend/internal/store"
)

func main() {
	config.Load()
	cfg := config.AppEnv
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	var st store.Store
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Println("[BOOT] [WARN] using in-memory store, data is lost on restart")
		st = store.NewMemory()
	default:
		client, err := database.Connect(cfg.MongoURI)
		if err != nil {
			log.Fatal(err)
		}
		db := client.Database(cfg.DBName)
		log.Println("MongoDB connected to:", db.Name())

		if err := database.EnsureIndexes(db); err != nil {
			log.Printf("[BOOT] [WARN] index setup: %v", err)
		}
		st = store.NewMongo(db)
	}

	var images storage.ImageStore
	uploadDir := cfg.UploadDir
	if cfg.S3Bucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s3Store, err := storage.NewS3Store(ctx, cfg.S3Bucket, cfg.S3PublicURL)
		cancel()
		if err != nil {
			log.Fatal(err)
		}
		images = s3Store
		uploadDir = ""
	} else {
		images = storage.NewLocalStore(cfg.UploadDir)
	}

	var limiter ratelimit.Limiter = ratelimit.NewMemory(cfg.AuthRateLimit, cfg.AuthRateWindow)
	if cfg.RedisAddr != "" {
		redisLimiter := ratelimit.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.AuthRateLimit, cfg.AuthRateWindow)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisLimiter.Ping(ctx)
		cancel()
		if err != nil {
			log.Printf("[BOOT] [WARN] redis unavailable, falling back to in-process rate limiting: %v", err)
		} else {
			defer redisLimiter.Close()
			limiter = redisLimiter
		}
	}

	var mailer services.Mailer = notify.LogMailer{}
	if cfg.MailAPIKey != "" && cfg.MailSenderEmail != "" {
		mailer = notify.NewAPIMailer(cfg.MailEndpoint, cfg.MailAPIKey, cfg.MailSenderEmail, cfg.MailSenderName)
	}

	r := handlers.NewRouter(handlers.Deps{
		Store:          st,
		Sessions:       session.NewManager(cfg.JWTSecret, cfg.SessionTTL, cfg.Production),
		Images:         images,
		Limiter:        limiter,
		Mailer:         mailer,
		ClientURL:      cfg.ClientURL,
		UploadDir:      uploadDir,
		TrustedProxies: cfg.TrustedProxies,
	})

	log.Printf("Server started on PORT:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
