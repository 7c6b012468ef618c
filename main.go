package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Aby-117/quiz-deploy/config"
	"github.com/Aby-117/quiz-deploy/internal/game"
	"github.com/Aby-117/quiz-deploy/internal/handlers"
	"github.com/Aby-117/quiz-deploy/internal/middleware"
	"github.com/Aby-117/quiz-deploy/internal/repository"
	"github.com/Aby-117/quiz-deploy/internal/service"
	ws "github.com/Aby-117/quiz-deploy/internal/websocket"
	"github.com/Aby-117/quiz-deploy/pkg/cache"
	"github.com/Aby-117/quiz-deploy/pkg/database"
	"github.com/Aby-117/quiz-deploy/pkg/messaging"
	"github.com/Aby-117/quiz-deploy/pkg/storage"
	"github.com/Aby-117/quiz-deploy/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log.Println("Configuration loaded")

	pgClient, err := database.NewPostgresClient(&cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	log.Println("Connected to PostgreSQL")
	defer pgClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := pgClient.InitSchema(ctx); err != nil {
		log.Printf("Warning: Failed to initialize PostgreSQL schema: %v", err)
	} else {
		log.Println("PostgreSQL schema initialized")
	}
	cancel()

	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		redisClient = nil
	} else {
		log.Println("Connected to Redis")
		defer redisClient.Close()
	}

	mqClient, err := messaging.NewRabbitMQClient(&cfg.RabbitMQ)
	if err != nil {
		log.Printf("Warning: Failed to connect to RabbitMQ: %v", err)
		mqClient = nil
	} else {
		log.Println("Connected to RabbitMQ")
		defer mqClient.Close()
	}

	s3Client, err := storage.NewS3Client(&cfg.S3)
	if err != nil {
		log.Printf("Warning: Failed to create S3 client: %v", err)
		s3Client = nil
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Client.EnsureBucket(ctx); err != nil {
			log.Printf("Warning: Failed to ensure S3 bucket: %v", err)
			s3Client = nil
		} else {
			log.Println("Connected to S3")
		}
		cancel()
	}

	tokens := token.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	quizRepo := repository.NewQuizRepository(pgClient.GetDB())
	resultRepo := repository.NewResultRepository(pgClient.GetDB())

	quizService := service.NewQuizService(quizRepo, redisClient, s3Client)
	resultService := service.NewResultService(resultRepo, mqClient)

	engine := game.NewEngine(game.Config{
		BasePoints:    cfg.Game.BasePoints,
		RevealDelay:   time.Duration(cfg.Game.RevealSec) * time.Second,
		TeardownGrace: time.Duration(cfg.Game.TeardownGraceSec) * time.Second,
	}, quizService, resultService)

	hub := ws.NewHub(engine)
	engine.SetBroadcaster(hub)
	go hub.Run()
	log.Println("WebSocket hub started")

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "quiz-deploy",
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		if pgClient == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
			"rooms":  engine.RoomCount(),
		})
	})

	authHandler := handlers.NewAuthHandler(tokens)
	quizHandler := handlers.NewQuizHandler(quizService, resultService)
	roomHandler := handlers.NewRoomHandler(engine)
	wsHandler := handlers.NewWebSocketHandler(hub, tokens)

	router.POST("/api/auth/guest", authHandler.GuestToken)

	api := router.Group("/api", middleware.JWTAuth(tokens))
	{
		api.POST("/quiz", quizHandler.CreateQuiz)
		api.GET("/quiz", quizHandler.ListQuizzes)
		api.GET("/quiz/:id", quizHandler.GetQuiz)
		api.DELETE("/quiz/:id", quizHandler.DeleteQuiz)
		api.GET("/quiz/:id/results", quizHandler.GetQuizResults)

		api.POST("/rooms", roomHandler.CreateRoom)
		api.GET("/rooms/:code", roomHandler.GetRoom)
	}

	router.GET("/ws", wsHandler.HandleWebSocket)

	httpAddr := ":" + cfg.Server.HTTPPort
	log.Printf("Quiz server starting on port %s...", cfg.Server.HTTPPort)

	go func() {
		if err := router.Run(httpAddr); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Quiz server stopped")
}
