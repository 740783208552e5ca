package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"provaa/internal/cleanup"
	"provaa/internal/config"
	"provaa/internal/http-server/handlers/booking/cancelBooking"
	"provaa/internal/http-server/handlers/booking/createBooking"
	"provaa/internal/http-server/handlers/booking/getBooking"
	"provaa/internal/http-server/handlers/booking/listBookings"
	"provaa/internal/http-server/handlers/cleanup/cleanupBookings"
	"provaa/internal/http-server/handlers/event/getAllEvents"
	"provaa/internal/http-server/handlers/event/getEventInfo"
	"provaa/internal/http-server/handlers/host/getHostProfile"
	"provaa/internal/http-server/handlers/payment/cancelPayment"
	"provaa/internal/http-server/handlers/payment/retryPayment"
	"provaa/internal/http-server/handlers/payment/startCheckout"
	"provaa/internal/http-server/handlers/payment/verifyPayment"
	"provaa/internal/http-server/handlers/review/createReview"
	"provaa/internal/http-server/handlers/review/listReviews"
	"provaa/internal/http-server/handlers/seo/getSettings"
	"provaa/internal/http-server/middleware/boundary"
	"provaa/internal/http-server/middleware/mwlogger"
	"provaa/internal/lib/logger/handlers/slogpretty"
	"provaa/internal/lib/logger/sl"
	"provaa/internal/lib/payments"
	"provaa/internal/payment"
	"provaa/internal/scheduler"
	"provaa/internal/seo"
	"provaa/internal/session"
	"provaa/internal/storage/postgres"
	redisstore "provaa/internal/storage/redis"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const (
	cleanupJobName      = "cleanup-expired-bookings"
	cleanupFunctionPath = "/functions/" + cleanupJobName
	pruneFlowsJobName   = "prune-payment-flows"
	paymentFallback     = "payment is temporarily unavailable"
	shutdownTimeout     = 10 * time.Second
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting provaa", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	var redisClient *redis.Client
	if client, err := redisstore.New(cfg.Redis); err != nil {
		log.Warn("redis unavailable, running without cache and session snapshots", sl.Err(err))
	} else {
		redisClient = client
	}

	var sessions payment.SessionStore
	if redisClient != nil {
		sessions = session.NewStore(redisClient)
	}

	paymentService := payment.NewService(log, storage, payments.NewStripe(cfg.Stripe), sessions, payment.ServiceOptions{
		Flow: payment.Options{
			PollInterval: cfg.Payment.PollInterval,
			MaxAttempts:  cfg.Payment.MaxAttempts,
		},
		SessionTTL:  cfg.Payment.SessionTTL,
		CheckoutTTL: cfg.Cleanup.Threshold,
		FlowTTL:     cfg.Payment.SessionTTL,
	})

	seoSettings := seo.New(log, storage, redisClient, cfg.SEO.CacheTTL)
	cleanupJob := cleanup.New(log, storage, cfg.Cleanup.Threshold)

	sched, err := scheduler.New(log)
	if err != nil {
		log.Error("failed to init scheduler", sl.Err(err))
		os.Exit(1)
	}

	err = sched.Every(cleanupJobName, cfg.Cleanup.Interval, func(ctx context.Context) error {
		_, err := cleanupJob.Run(ctx)
		return err
	})
	if err != nil {
		log.Error("failed to schedule cleanup", sl.Err(err))
		os.Exit(1)
	}

	err = sched.Every(pruneFlowsJobName, cfg.Cleanup.Interval, func(context.Context) error {
		paymentService.PruneFlows()
		return nil
	})
	if err != nil {
		log.Error("failed to schedule payment flow pruning", sl.Err(err))
		os.Exit(1)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Get("/events", getAllEvents.New(log, storage))
	router.Get("/events/{id}", getEventInfo.New(log, storage))
	router.Post("/events/{id}/bookings", createBooking.New(log, storage, cfg.Booking))

	router.Get("/bookings/{ref}", getBooking.New(log, storage))
	router.Post("/bookings/{ref}/cancel", cancelBooking.New(log, storage))
	router.Post("/bookings/{ref}/reviews", createReview.New(log, storage))
	router.Get("/users/{userID}/bookings", listBookings.New(log, storage))

	router.Get("/hosts/{id}", getHostProfile.New(log, storage))
	router.Get("/reviews", listReviews.New(log, storage))
	router.Get("/seo", getSettings.New(log, seoSettings))

	router.Route("/payments", func(r chi.Router) {
		r.Use(boundary.New(log, paymentFallback, func(r *http.Request) string {
			if ref := chi.URLParam(r, "ref"); ref != "" {
				return payment.RetryPath(ref)
			}
			return ""
		}))

		r.Post("/checkout", startCheckout.New(log, paymentService))
		r.Post("/verify", verifyPayment.New(log, paymentService))
		r.Post("/{ref}/cancel", cancelPayment.New(log, paymentService))
		r.Post("/{ref}/retry", retryPayment.New(log, paymentService))
	})

	router.Group(func(r chi.Router) {
		r.Use(cleanupBookings.CORS())

		r.Post(cleanupFunctionPath, cleanupBookings.New(log, cleanupJob))
		r.Options(cleanupFunctionPath, cleanupBookings.Preflight)
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	sched.Start()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	if err = sched.Shutdown(); err != nil {
		log.Error("failed to stop scheduler", sl.Err(err))
	}

	log.Info("application stopped")

	if redisClient != nil {
		if err = redisClient.Close(); err != nil {
			log.Error("failed to close redis connection", sl.Err(err))
		}
	}

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("postgres connection closed")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
