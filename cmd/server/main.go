// Package main is the entry point for the credit transfer service. It loads
// configuration, connects the backing stores, wires the HTTP routes and
// starts the recovery sweeper alongside the server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"credittransfer/internal/billing"
	"credittransfer/internal/config"
	"credittransfer/internal/events"
	"credittransfer/internal/repositories"
	"credittransfer/internal/repositories/cache"
	"credittransfer/internal/routes"
	"credittransfer/internal/services/sweeper"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db, err := repositories.InitDB(cfg)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("failed to close database connection: %v", err)
			}
		}
	}()

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	cacheService := cache.NewCacheService(redisClient)
	defer func() {
		if err := cacheService.Close(); err != nil {
			log.Printf("failed to close redis connection: %v", err)
		}
	}()
	if err := cacheService.HealthCheck(context.Background()); err != nil {
		log.Printf("redis unreachable at startup, evaluation caching degraded: %v", err)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.AMQPURL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, log.Printf)
		if err != nil {
			log.Printf("amqp unavailable, transaction events disabled: %v", err)
		} else {
			publisher = p
			defer publisher.Close()
		}
	}

	gateway := billing.NewClient(cfg.BillingBaseURL, cfg.BillingTimeout)

	app := fiber.New()
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use("/api/transfer", limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests, please try again later",
			})
		},
	}))

	routes.SetupRoutes(app, db, cacheService, gateway, publisher, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	txLog := repositories.NewTransactionLog(db)
	sw := sweeper.New(txLog, gateway, publisher, cfg.MaxSweeperRetries, cfg.SweepInterval)
	go sw.Start(ctx)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("forced shutdown: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
