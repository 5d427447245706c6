package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"hrportal/internal/domain/approvals"
	"hrportal/internal/domain/audit"
	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/company"
	"hrportal/internal/domain/directory"
	"hrportal/internal/domain/holiday"
	"hrportal/internal/domain/notifications"
	"hrportal/internal/domain/payroll"
	"hrportal/internal/domain/request"
	"hrportal/internal/platform/blob"
	"hrportal/internal/platform/cache"
	"hrportal/internal/platform/config"
	"hrportal/internal/platform/db"
	"hrportal/internal/platform/email"
	"hrportal/internal/platform/metrics"
	"hrportal/internal/platform/queue"
	"hrportal/internal/realtime"
	approvalhandler "hrportal/internal/transport/http/handlers/approvals"
	audithandler "hrportal/internal/transport/http/handlers/audit"
	authhandler "hrportal/internal/transport/http/handlers/auth"
	companyhandler "hrportal/internal/transport/http/handlers/company"
	directoryhandler "hrportal/internal/transport/http/handlers/directory"
	holidayhandler "hrportal/internal/transport/http/handlers/holiday"
	navhandler "hrportal/internal/transport/http/handlers/nav"
	notificationhandler "hrportal/internal/transport/http/handlers/notifications"
	payrollhandler "hrportal/internal/transport/http/handlers/payroll"
	realtimehandler "hrportal/internal/transport/http/handlers/realtime"
	requesthandler "hrportal/internal/transport/http/handlers/requests"
	"hrportal/internal/transport/http/middleware"
)

func Run() error {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			return err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			return err
		}
	}

	redis := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redis.Close()
	if err := redis.Ping(ctx); err != nil {
		slog.Warn("redis unreachable at startup", "addr", cfg.Redis.Addr, "error", err)
	}

	mailer, err := email.New(cfg)
	if err != nil {
		return err
	}

	m := metrics.New()

	var emailQueue notifications.Queue
	if cfg.AMQP.URL != "" {
		publisher := queue.NewPublisher(cfg.AMQP.URL, cfg.AMQP.EmailQueue, time.Duration(cfg.AMQP.PublishTimeout)*time.Second)
		defer publisher.Close()
		emailQueue = publisher

		consumer := &queue.Consumer{
			URL:       cfg.AMQP.URL,
			QueueName: cfg.AMQP.EmailQueue,
			Mailer:    mailer,
			Metrics:   m,
		}
		go consumer.Run(ctx)
	}

	var imageStore directoryhandler.Blob
	if cfg.S3.Bucket != "" {
		store, err := blob.New(ctx, cfg)
		if err != nil {
			return err
		}
		imageStore = store
	}

	hub := realtime.NewHub()

	auditSvc := audit.New(pool)

	notifStore := notifications.NewStore(pool)
	notifSvc := notifications.New(notifStore, emailQueue)

	authStore := auth.NewStore(pool)
	authSvc := auth.NewService(authStore, redis, notifSvc, cfg.JWTSecret,
		time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute,
		time.Duration(cfg.ResetTokenTTLMinutes)*time.Minute)

	directoryStore := directory.NewStore(pool)
	directorySvc := directory.NewService(directoryStore, auditSvc, hub)

	requestStore := request.NewStore(pool)
	requestSvc := request.NewService(requestStore, hub, notifSvc)

	approvalsSvc := approvals.NewService(requestStore, directorySvc, requestSvc, redis)
	if cfg.MetricsEnabled {
		approvalsSvc.Metrics = m
	}

	holidayStore := holiday.NewStore(pool)
	holidaySvc := holiday.NewService(holidayStore, auditSvc, hub)

	companyStore := company.NewStore(pool)
	companySvc := company.NewService(companyStore, auditSvc)

	payrollStore := payroll.NewStore(pool)
	payrollSvc := payroll.NewService(payrollStore, directorySvc, hub)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(m))
	}
	router.Use(middleware.Auth(cfg.JWTSecret, directorySvc))
	router.Use(middleware.RateLimit(300, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	if cfg.MetricsEnabled {
		router.Method(http.MethodGet, "/metrics", m.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthRateLimit(20, time.Minute))
			authhandler.NewHandler(authSvc, directorySvc).RegisterRoutes(r)
		})
		navhandler.NewHandler().RegisterRoutes(r)
		directoryhandler.NewHandler(directorySvc, imageStore).RegisterRoutes(r)
		requesthandler.NewHandler(requestSvc).RegisterRoutes(r)
		approvalhandler.NewHandler(approvalsSvc, requestSvc).RegisterRoutes(r)
		holidayhandler.NewHandler(holidaySvc).RegisterRoutes(r)
		companyhandler.NewHandler(companySvc).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollSvc, companySvc).RegisterRoutes(r)
		notificationhandler.NewHandler(notifSvc).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc).RegisterRoutes(r)
		realtimehandler.NewHandler(hub).RegisterRoutes(r)
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // websocket streams stay open
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
