package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/innolink/backend/internal/application/billing"
	botapp "github.com/innolink/backend/internal/application/bot"
	feedapp "github.com/innolink/backend/internal/application/feed"
	identityapp "github.com/innolink/backend/internal/application/identity"
	messagingapp "github.com/innolink/backend/internal/application/messaging"
	"github.com/innolink/backend/internal/domain/bot"
	"github.com/innolink/backend/internal/infrastructure/auth"
	"github.com/innolink/backend/internal/infrastructure/config"
	"github.com/innolink/backend/internal/infrastructure/identitysource"
	"github.com/innolink/backend/internal/infrastructure/llm"
	"github.com/innolink/backend/internal/infrastructure/logger"
	"github.com/innolink/backend/internal/infrastructure/mail"
	"github.com/innolink/backend/internal/infrastructure/payment"
	"github.com/innolink/backend/internal/infrastructure/persistence"
	"github.com/innolink/backend/internal/infrastructure/realtime"
	"github.com/innolink/backend/internal/infrastructure/scheduler"
	"github.com/innolink/backend/internal/interfaces/http/handler"
	"github.com/innolink/backend/internal/interfaces/http/middleware"
	"github.com/innolink/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting InnoLink Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	ideaRepo := persistence.NewGormIdeaRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)

	// Realtime bus: Redis when configured, in-process otherwise
	var bus realtime.MessageBus
	if cfg.Redis.Host != "" {
		redisBus, err := realtime.NewRedisBus(cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		bus = redisBus
	} else {
		log.Warn("Redis not configured, using in-process message bus")
		bus = realtime.NewInMemoryBus()
	}
	defer func() {
		if err := bus.Close(); err != nil {
			log.Error("Error closing message bus", zap.Error(err))
		}
	}()

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)
	mailer := mail.NewSMTPMailer(cfg.Mail, log)

	var gateway billingapp.PaymentGateway
	if cfg.Stripe.SecretKey != "" {
		stripeAdapter, err := payment.NewStripeAdapter(cfg.Stripe, log)
		if err != nil {
			log.Fatal("Failed to initialize payment gateway", zap.Error(err))
		}
		gateway = stripeAdapter
	}

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	ideaService := feedapp.NewIdeaService(ideaRepo, log)
	messageService := messagingapp.NewMessageService(messageRepo, userRepo, bus, log)
	paymentService := billingapp.NewPaymentService(userRepo, gateway, jwtService, log)

	// Bot posting pipeline
	rnd := bot.NewRand()
	identitySource := identitysource.NewFakerClient(cfg.IdentityFeed, rnd, log)
	synthesizer := llm.NewGroqClient(cfg.LLM, cfg.Bot.StrictContent, log)
	posterService := botapp.NewPosterService(userRepo, ideaRepo, identitySource, synthesizer, rnd, botapp.PosterConfig{
		MaxIdentityAttempts: cfg.Bot.MaxIdentityAttempts,
		ReuseExistingRate:   cfg.Bot.ReuseExistingRate,
		Password:            cfg.Bot.Password,
	}, log)
	botScheduler := scheduler.NewBotScheduler(scheduler.BotSchedulerConfig{
		Enabled:  cfg.Bot.Enabled,
		Interval: cfg.Bot.Interval,
	}, posterService, log)

	if err := botScheduler.Start(context.Background()); err != nil {
		log.Fatal("Failed to start bot scheduler", zap.Error(err))
	}

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(log))
	engine.Use(middleware.Recovery(log))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsCfg))

	engine.GET("/health", healthHandler(db))

	jwtCfg := middleware.DefaultJWTConfig(jwtService)
	jwtCfg.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	ideaHandler := handler.NewIdeaHandler(ideaService, authService)
	messageHandler := handler.NewMessageHandler(messageService, bus, log)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	contactHandler := handler.NewContactHandler(mailer)
	systemHandler := handler.NewSystemHandler(botScheduler)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/signup", authHandler.Signup)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/me", authHandler.Me)

	ideaRoutes := router.NewDomainGroup("feed", "/ideas")
	ideaRoutes.POST("", ideaHandler.Create)
	ideaRoutes.GET("", ideaHandler.List)
	ideaRoutes.GET("/:id", ideaHandler.Get)
	ideaRoutes.PUT("/:id", ideaHandler.Update)
	ideaRoutes.DELETE("/:id", ideaHandler.Delete)
	ideaRoutes.POST("/:id/comments", ideaHandler.Comment)
	ideaRoutes.POST("/:id/like", ideaHandler.Like)

	messageRoutes := router.NewDomainGroup("messaging", "/messages")
	messageRoutes.POST("", messageHandler.Send)
	messageRoutes.GET("/stream", messageHandler.Stream)
	messageRoutes.GET("/users", messageHandler.Users)
	messageRoutes.GET("/:username", messageHandler.Conversation)

	paymentRoutes := router.NewDomainGroup("billing", "/payment")
	paymentRoutes.POST("/create-session", paymentHandler.CreateSession)
	paymentRoutes.POST("/success", paymentHandler.ConfirmUpgrade)

	contactRoutes := router.NewDomainGroup("contact", "/contact")
	contactRoutes.POST("", contactHandler.Submit)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/health", systemHandler.Health)
	systemRoutes.GET("/bot/status", systemHandler.BotStatus)
	systemRoutes.POST("/bot/run", systemHandler.TriggerBotRun)

	r.Register(authRoutes).
		Register(ideaRoutes).
		Register(messageRoutes).
		Register(paymentRoutes).
		Register(contactRoutes).
		Register(systemRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := botScheduler.Stop(ctx); err != nil {
		log.Error("Error stopping bot scheduler", zap.Error(err))
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for the liveness endpoint
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
