// @title Governance Events API
// @version 1.0
// @description Event listings, registrations with confirmation references, payment confirmation and calendar export.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"governanceevents/config"
	_ "governanceevents/docs"
	"governanceevents/internal/adapters/auth"
	"governanceevents/internal/adapters/email"
	"governanceevents/internal/adapters/export"
	"governanceevents/internal/adapters/payment"
	"governanceevents/internal/adapters/queue"
	"governanceevents/internal/adapters/storage"
	"governanceevents/internal/calendar"
	deliveryhttp "governanceevents/internal/delivery/http"
	"governanceevents/internal/delivery/http/controllers"
	"governanceevents/internal/delivery/http/middleware"
	"governanceevents/internal/domain"
	"governanceevents/internal/feed"
	"governanceevents/internal/repository/memory"
	"governanceevents/internal/repository/postgres"
	"governanceevents/internal/services"
)

const (
	serviceTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

type repositories struct {
	events        domain.EventRepository
	registrations domain.RegistrationRepository
	payments      domain.PaymentRepository
	gallery       domain.GalleryRepository
	stats         domain.StatRepository
	testimonials  domain.TestimonialRepository
	admins        domain.AdminUserRepository
}

func main() {
	logger := config.NewLogger()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	repos, closeRepos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	source, closeSource, err := newEventSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	eventSvc := services.NewEventService(repos.events, source, logger, serviceTimeout)
	if created, err := eventSvc.SyncFromSource(ctx); err != nil {
		logger.Warn("initial event sync failed", "feed", cfg.EventsFeed, "err", err)
	} else {
		logger.Info("events synced from feed", "feed", cfg.EventsFeed, "created", created)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
		SMTP: email.SMTPConfig{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			Username: cfg.Email.SMTPUsername,
			Password: cfg.Email.SMTPPassword,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()
	notifier := emailSvc
	if cfg.NotifyMode == config.NotifyQueue {
		client, err := queue.Dial(cfg.RabbitMQURL, cfg.RabbitMQQueue, logger)
		if err != nil {
			return err
		}
		defer client.Close()
		deliveries, err := client.Consume(workerCtx)
		if err != nil {
			return err
		}
		worker := queue.NewWorker(deliveries, emailSvc, logger)
		worker.Start(workerCtx)
		defer worker.Stop()
		notifier = queue.NewEmailPublisher(client)
	}

	gateway, err := newPaymentGateway(cfg)
	if err != nil {
		return err
	}
	regSvc := services.NewRegistrationService(repos.registrations, repos.events, repos.payments, gateway, notifier, logger, serviceTimeout)

	files, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return err
	}
	contentSvc := services.NewContentService(repos.gallery, repos.stats, repos.testimonials, files, logger, serviceTimeout)

	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is empty; admin tokens are signed with an empty key. Set it outside development.")
	}
	authSvc := services.NewAuthService(repos.admins, auth.NewBcryptHasher(bcrypt.DefaultCost), auth.NewJWTIssuer(cfg.JWTSecret), cfg.JWTExpiry)
	if cfg.AdminEmail != "" {
		if err := authSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return fmt.Errorf("ensure admin account: %w", err)
		}
	} else {
		logger.Warn("ADMIN_EMAIL is not set; admin login is unavailable until an account exists")
	}

	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Events:        controllers.NewEventController(logger, eventSvc, calendar.Generator{UIDDomain: cfg.ICSUIDDomain}, cfg.EventTimezone),
		Registrations: controllers.NewRegistrationController(logger, regSvc, eventSvc, export.NewXLSXExporter(), export.NewPDFSlipRenderer()),
		Content:       controllers.NewContentController(logger, contentSvc),
		Auth:          controllers.NewAuthController(logger, authSvc),
	}, auth.NewJWTVerifier(cfg.JWTSecret), cfg.UploadDir, logger)

	var handler http.Handler = router
	handler = middleware.RateLimit(cfg.RateLimitPerMinute, logger)(handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "env", cfg.Environment, "storage", cfg.StorageDriver, "notify", cfg.NotifyMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-signals:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Shutdown complete")
	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositories, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Info("using in-memory storage")
		return &repositories{
			events:        memory.NewEventRepository(),
			registrations: memory.NewRegistrationRepository(),
			payments:      memory.NewPaymentRepository(),
			gallery:       memory.NewGalleryRepository(),
			stats:         memory.NewStatRepository(),
			testimonials:  memory.NewTestimonialRepository(),
			admins:        memory.NewAdminUserRepository(),
		}, func() {}, nil
	}

	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	logger.Info("Connected to database")
	return &repositories{
		events:        postgres.NewEventRepository(db, cfg.EventTimezone),
		registrations: postgres.NewRegistrationRepository(db),
		payments:      postgres.NewPaymentRepository(db),
		gallery:       postgres.NewGalleryRepository(db),
		stats:         postgres.NewStatRepository(db),
		testimonials:  postgres.NewTestimonialRepository(db),
		admins:        postgres.NewAdminUserRepository(db),
	}, func() { _ = db.Close() }, nil
}

// newEventSource returns nil when no feed is configured.
func newEventSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.EventSource, func(), error) {
	if cfg.EventsFeed == "" {
		return nil, func() {}, nil
	}
	source := feed.NewSource(cfg.EventsFeed, feed.NewParser(cfg.EventTimezone))
	if cfg.RedisAddr == "" {
		return source, func() {}, nil
	}
	cache, err := feed.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("caching event feed in redis", "addr", cfg.RedisAddr, "ttl", cfg.EventsCacheTTL)
	return feed.NewCachedSource(source, cache, cfg.EventsCacheTTL, logger), func() { _ = cache.Close() }, nil
}

func newPaymentGateway(cfg *config.Config) (domain.PaymentGateway, error) {
	switch cfg.Payment.Provider {
	case "", "manual":
		return payment.NewManualGateway(), nil
	case "razorpay":
		return payment.NewRazorpayGateway(cfg.Payment.RazorpayKeyID, cfg.Payment.RazorpayKeySecret), nil
	}
	return nil, fmt.Errorf("unknown PAYMENT_PROVIDER %q", cfg.Payment.Provider)
}
