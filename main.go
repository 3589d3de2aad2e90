package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"friend-service/internal/auth"
	"friend-service/internal/config"
	"friend-service/internal/db"
	"friend-service/internal/handlers"
	"friend-service/internal/middleware"
	"friend-service/internal/observability"
	"friend-service/internal/rabbitmq"
	"friend-service/internal/repositories"
	"friend-service/internal/service"
	"friend-service/internal/telemetry"
)

func main() {
	cfg := config.Load()

	database, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	shutdownTracing, err := telemetry.SetupTracing(context.Background(), cfg.OTLPEndpoint, "friend-service", cfg.Environment)
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer publisher.Close()
	log.Printf("event publisher mode=%s", rabbitmq.PublisherMode(publisher))

	emitter := telemetry.NewEmitter(publisher, "friend-service", cfg.Environment)

	userRepo := repositories.NewUserRepo(database)
	requestRepo := repositories.NewFriendRequestRepo(database)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	friendService := service.NewFriendService(requestRepo, userRepo, service.SystemClock{}, cfg.RateLimitWindow, cfg.RateLimitMax)

	authHandler := handlers.NewAuthHandler(userRepo, tokens, emitter)
	userHandler := handlers.NewUserHandler(userRepo, cfg.SearchPageSize, cfg.SearchMaxPageSize)
	friendHandler := handlers.NewFriendHandler(friendService, emitter)

	router := gin.Default()

	// middlewares
	router.Use(gin.Recovery())
	router.Use(observability.HTTPMetricsMiddleware())
	router.Use(otelgin.Middleware("friend-service"))

	authMiddleware := middleware.AuthMiddleware(tokens)

	router.POST("/signup/", authHandler.Signup)
	router.POST("/login/", authHandler.Login)
	router.POST("/token/refresh/", authHandler.Refresh)

	router.GET("/search/", authMiddleware, userHandler.Search)
	router.POST("/friend-request/", authMiddleware, friendHandler.SendRequest)
	router.PUT("/friend-request/", authMiddleware, friendHandler.ResolveRequest)
	router.GET("/friends/", authMiddleware, friendHandler.ListFriends)
	router.GET("/pending-requests/", authMiddleware, friendHandler.ListPending)

	router.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterDebugRoutes(router, emitter, cfg.DebugRoutes)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
