package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-game/internal/config"
	"github.com/yourusername/trivia-game/internal/handler"
	"github.com/yourusername/trivia-game/internal/middleware"
	"github.com/yourusername/trivia-game/internal/provider/opentdb"
	redisRepo "github.com/yourusername/trivia-game/internal/repository/redis"
	"github.com/yourusername/trivia-game/internal/service"
	"github.com/yourusername/trivia-game/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour

	// Инициализируем репозиторий игровых сессий
	sessionRepo, err := redisRepo.NewSessionRepo(redisClient, sessionTTL)
	if err != nil {
		log.Printf("Failed to initialize SessionRepo: %v", err)
		os.Exit(1)
	}

	// Клиент провайдера вопросов
	triviaClient := opentdb.NewClient(cfg.Trivia.APIURL, time.Duration(cfg.Trivia.TimeoutSec)*time.Second)

	// Инициализируем сервисы и обработчики
	gameService := service.NewGameService(sessionRepo, triviaClient, cfg.Game.TimeLimitSec)
	gameHandler := handler.NewGameHandler(gameService, cfg.Game.DefaultQuestions)

	isProduction := gin.Mode() == gin.ReleaseMode

	// Middleware игровых сессий (подписанная кука с идентификатором)
	sessionMiddleware := middleware.NewSessionMiddleware(
		cfg.Session.CookieName,
		[]byte(cfg.Session.SigningKey),
		sessionTTL,
		isProduction, // Secure куки только под HTTPS
	)

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		// Production: не доверять прокси-заголовкам
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// HTML-шаблоны страниц игры
	router.LoadHTMLGlob("web/templates/*.html")

	// Маршруты игры: каждый запрос восстанавливает снапшот игры из
	// хранилища сессий и сохраняет его обратно по завершении
	game := router.Group("/")
	game.Use(sessionMiddleware.EnsureSession())
	{
		game.GET("/", gameHandler.Home)
		game.POST("/start", gameHandler.Start)
		game.GET("/play", gameHandler.Play)
		game.POST("/answer", gameHandler.Answer)
		game.GET("/result", gameHandler.Result)
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown с таймаутом
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
