package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"facestudio/config"
	"facestudio/cron"
	"facestudio/database"
	"facestudio/database/repository"
	"facestudio/handlers"
	"facestudio/middleware"
	"facestudio/routes"
	"facestudio/services/booking"
	"facestudio/services/content"
	"facestudio/services/inquiry"
	"facestudio/services/notification"
	"facestudio/services/storage"
	"facestudio/services/user"
	"facestudio/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres holds every relational table; the schema is applied idempotently at boot.
	pool, err := database.ConnectPostgres(ctx, config.AppConfig.DatabaseURL)
	if err != nil {
		logger.Fatal("main: postgres unavailable", zap.Error(err))
	}
	defer pool.Close()
	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("main: failed to apply schema", zap.Error(err))
	}

	// The activity log is optional; without Mongo it is simply not recorded.
	var mongoClient *mongo.Client
	var mongoDB *mongo.Database
	if config.AppConfig.MongoURL != "" {
		mongoClient, err = database.ConnectMongo(ctx, config.AppConfig.MongoURL)
		if err != nil {
			logger.Warn("main: mongo unavailable, activity log disabled", zap.Error(err))
		} else {
			mongoDB = mongoClient.Database(config.AppConfig.MongoDB)
			defer func() { _ = mongoClient.Disconnect(context.Background()) }()
		}
	}

	repos, err := repository.NewRepositories(pool, mongoDB)
	if err != nil {
		logger.Fatal("main: failed to build repositories", zap.Error(err))
	}

	cacheClient := utils.GetCacheClient()
	defer cacheClient.Close()

	hours, err := booking.ParseBusinessHours(config.AppConfig.BusinessHours)
	if err != nil {
		logger.Fatal("main: invalid business hours", zap.Error(err))
	}
	loc := config.Location()
	calculator := booking.NewCalculator(hours, loc)

	// Email: rendered here, queued on asynq, delivered by the worker below.
	var mailer notification.Mailer = notification.LogMailer{}
	if config.AppConfig.SendGridAPIKey != "" {
		sg, err := notification.NewSendGridMailer(config.AppConfig.SendGridAPIKey, config.AppConfig.DefaultFromEmail, config.AppConfig.DefaultFromName)
		if err != nil {
			logger.Fatal("main: sendgrid mailer", zap.Error(err))
		}
		mailer = sg
	} else {
		logger.Warn("main: SENDGRID_API_KEY not set, emails are only logged")
	}
	renderer, err := notification.NewRenderer(config.AppConfig.SiteName, config.AppConfig.SiteURL)
	if err != nil {
		logger.Fatal("main: email templates", zap.Error(err))
	}
	queue := asynq.NewClient(cron.QueueRedisOpt())
	defer queue.Close()
	notifier, err := notification.NewDefaultNotificationService(renderer, queue, mailer, config.AppConfig.AdminEmail)
	if err != nil {
		logger.Fatal("main: notification service", zap.Error(err))
	}

	var media storage.StorageService
	if config.AppConfig.CloudinaryURL != "" || config.AppConfig.CloudinaryCloudName != "" {
		cld, err := storage.NewCloudinaryStorage(
			config.AppConfig.CloudinaryURL,
			config.AppConfig.CloudinaryCloudName,
			config.AppConfig.CloudinaryAPIKey,
			config.AppConfig.CloudinaryAPISecret,
		)
		if err != nil {
			logger.Fatal("main: cloudinary storage", zap.Error(err))
		}
		media = cld
	} else {
		logger.Warn("main: Cloudinary not configured, media uploads disabled")
	}

	// services.
	reservationService := &booking.DefaultReservationService{
		Calculator:   calculator,
		Reservations: repos.Reservations,
		Treatments:   repos.Treatments,
		Emails:       repos.Inquiries,
		Activity:     repos.Activity,
		Notifier:     notifier,
		Logger:       logger.Named("booking"),
	}
	contentService := &content.DefaultContentService{
		Treatments:  repos.Treatments,
		Articles:    repos.Articles,
		Storage:     media,
		Cache:       &content.RedisCache{Client: cacheClient},
		CacheTTL:    config.AppConfig.ContentCacheTTL,
		MediaFolder: config.AppConfig.MediaFolder,
		Logger:      logger.Named("content"),
	}
	userService := &user.DefaultUserService{
		Repo:     repos.Users,
		Emails:   repos.Inquiries,
		TokenTTL: config.AppConfig.TokenTTL,
		Logger:   logger.Named("user"),
	}
	inquiryService := &inquiry.DefaultInquiryService{
		Repo:       repos.Inquiries,
		Treatments: repos.Treatments,
		Notifier:   notifier,
		Logger:     logger.Named("inquiry"),
	}

	// Background work: queued email delivery and the periodic reservation jobs.
	worker := cron.InitEmailWorker(ctx, &notification.Deliverer{Mailer: mailer, Activity: repos.Activity})
	defer worker.Shutdown()

	scheduler, err := cron.StartScheduler(&cron.Jobs{Reservations: reservationService}, loc,
		config.AppConfig.CompletionSchedule, config.AppConfig.ReminderSchedule)
	if err != nil {
		logger.Fatal("main: scheduler", zap.Error(err))
	}
	defer func() { <-scheduler.Stop().Done() }()

	checks := map[string]utils.HealthCheck{
		"postgres": pool.Ping,
		"redis":    func(ctx context.Context) error { return cacheClient.Ping(ctx).Err() },
	}
	if mongoClient != nil {
		checks["mongo"] = func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }
	}
	monitor := utils.NewHealthMonitor(checks)
	monitor.Start(ctx, config.AppConfig.HealthCheckInterval)

	handlerBundle := &handlers.HandlerBundle{
		Auth:    handlers.NewAuthHandler(userService),
		Booking: handlers.NewBookingHandler(reservationService, repos.Activity),
		Content: handlers.NewContentHandler(contentService),
		Inquiry: handlers.NewInquiryHandler(inquiryService),
		Admin:   handlers.NewAdminHandler(userService),
		Health:  handlers.NewHealthHandler(monitor),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLogger())
	router.MaxMultipartMemory = 10 << 20
	if err := router.SetTrustedProxies(config.Proxies()); err != nil {
		logger.Fatal("main: invalid trusted proxies", zap.Error(err))
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("main: starting server", zap.String("addr", srv.Addr), zap.String("timezone", loc.String()))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("main: server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("main: server stopped gracefully")
}
