package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sideputt/backend/docs"
	"github.com/sideputt/backend/internal/audit"
	"github.com/sideputt/backend/internal/config"
	"github.com/sideputt/backend/internal/database"
	"github.com/sideputt/backend/internal/engine"
	"github.com/sideputt/backend/internal/gateway"
	"github.com/sideputt/backend/internal/handlers"
	mW "github.com/sideputt/backend/internal/middleware"
	"github.com/sideputt/backend/internal/notify"
	"github.com/sideputt/backend/internal/services"
	"github.com/sideputt/backend/internal/store"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title SidePutt API
// @version 1.0
// @description Three Putt Poker scorekeeping for golf rounds
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")
	viper.BindEnv("database.url", "DATABASE_URL")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")
	viper.BindEnv("redis.url", "REDIS_URL")
	viper.BindEnv("redis.enabled", "REDIS_ENABLED")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("jwt.expiry_hours", "JWT_EXPIRY_HOURS")
	viper.BindEnv("storage", "STORAGE")
	viper.BindEnv("port", "PORT")
	viper.BindEnv("static.cards_dir", "CARD_IMAGES_DIR")

	viper.SetDefault("storage", "postgres")
	viper.SetDefault("port", "8080")
	viper.SetDefault("static.cards_dir", "./static/cards")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}
	gameCfg := config.LoadGameConfig()

	// Initialize Swagger docs
	docs.SwaggerInfo.Title = "SidePutt API"
	docs.SwaggerInfo.Description = "Three Putt Poker scorekeeping for golf rounds"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.BasePath = "/api/v1"

	// Persistence
	var gw gateway.Gateway
	if strings.EqualFold(viper.GetString("storage"), "memory") {
		log.Println("Using in-memory storage; data is lost on restart")
		gw = gateway.NewMemory()
	} else {
		db := database.InitDatabase()
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := database.ApplySchema(ctx, db); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
		cancel()
		gw = gateway.NewPostgres(db)
	}

	// Change feed and hole pointer live in Redis when it is reachable
	redisClient := database.InitRedis()
	var notifier notify.Notifier
	var clientState store.GameClientState
	if redisClient != nil {
		defer redisClient.Close()
		notifier = notify.NewRedis(redisClient, gameCfg.ChannelPrefix)
		clientState = store.NewRedisClientState(redisClient, gameCfg.ChannelPrefix, gameCfg.HolePointerTTL)
	} else {
		notifier = notify.NewMemory()
		clientState = store.NewMemoryClientState()
	}

	eng := engine.New(gw, notifier, audit.NewLogger(), gameCfg)
	gameStore := store.New(eng, notifier, clientState)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go gameStore.RunSweeper(sweepCtx, gameCfg.ViewSweepInterval, gameCfg.ViewIdleTTL)

	authService := services.NewAuthService()
	sessionService := services.NewSessionService(eng, gameStore)
	gameService := services.NewGameService(eng, gameStore)
	feedService := services.NewFeedService(gameStore, notifier)
	inviteHandler := handlers.NewInviteHandler(services.NewInviteService(gw, redisClient, gameCfg))

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Access-Control-Allow-Origin"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Card faces, with a card back for anything missing
	r.Handle("/static/cards/*", http.StripPrefix("/static/cards/",
		mW.StaticFileServer(viper.GetString("static.cards_dir"))))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints (no auth required)
		r.Post("/auth/guest", authService.GuestLogin)

		// Protected endpoints (auth required)
		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware)

			// The websocket outlives any request timeout
			r.Get("/sessions/{sessionId}/ws", feedService.Connect)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(60 * time.Second))

				r.Post("/sessions", sessionService.CreateSession)
				r.Get("/sessions", sessionService.ListSessions)
				r.Post("/sessions/join", sessionService.JoinSession)

				r.Get("/sessions/{sessionId}", gameService.GetGame)
				r.Delete("/sessions/{sessionId}", sessionService.DeleteSession)
				r.Put("/sessions/{sessionId}/settings", sessionService.UpdateSettings)
				r.Post("/sessions/{sessionId}/end", sessionService.EndSession)

				r.Post("/sessions/{sessionId}/holes/{hole}/putts", gameService.SubmitPutts)
				r.Put("/sessions/{sessionId}/current-hole", gameService.SetCurrentHole)
				r.Post("/sessions/{sessionId}/chip", gameService.ResolveChip)
				r.Get("/sessions/{sessionId}/payouts", gameService.GetPayouts)
				r.Get("/sessions/{sessionId}/players/{playerId}/putts", gameService.GetPlayerPutts)
				r.Get("/sessions/{sessionId}/results", gameService.GetResults)

				r.Get("/sessions/{sessionId}/invite/qr", inviteHandler.JoinQR)
			})
		})
	})

	port := viper.GetString("port")

	// Start server
	server := &http.Server{
		Addr:        ":" + port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
