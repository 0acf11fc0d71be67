package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"live-reservation/internal/auth"
	"live-reservation/internal/auth/auth_api"
	"live-reservation/internal/cache"
	"live-reservation/internal/config"
	"live-reservation/internal/database"
	"live-reservation/internal/database/migrations"
	"live-reservation/internal/event"
	eventdb "live-reservation/internal/event/db"
	"live-reservation/internal/event/event_api"
	"live-reservation/internal/kafka"
	"live-reservation/internal/logger"
	"live-reservation/internal/mailer"
	"live-reservation/internal/reservation"
	reservationdb "live-reservation/internal/reservation/db"
	"live-reservation/internal/reservation/qr"
	"live-reservation/internal/reservation/reservation_api"
	"live-reservation/internal/session"
	"live-reservation/internal/siteinfo"
	"live-reservation/internal/siteinfo/siteinfo_api"
)

func main() {
	_ = godotenv.Load() // Loads .env file if present

	cfg := config.Load()
	log := logger.NewLogger()
	ctx := context.Background()

	bunDB, err := database.Open(cfg.Database, log)
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to open %s backend: %v", cfg.Database.Backend, err))
	}
	defer bunDB.Close()

	if err := database.Bootstrap(ctx, bunDB, log); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Schema bootstrap failed: %v", err))
	}

	if cfg.Database.Backend == "postgres" && cfg.Database.AutoMigrate {
		runner := migrations.NewRunner(bunDB, migrations.Options{
			MigrationsDir: cfg.Database.MigrationsDir,
			AutoMigrate:   true,
		}, log)
		if err := runner.RunMigrations(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
		}
	}

	// Cache and sessions share the redis client when one is configured;
	// otherwise both run in-process.
	var readCache cache.Cache
	var sessionStore session.Store
	if cfg.Cache.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("REDIS", fmt.Sprintf("Redis unreachable at %s, falling back to in-process cache: %v", cfg.Cache.RedisAddr, err))
			readCache = cache.NewMemoryCache(cfg.Cache.TTL)
			sessionStore = session.NewMemoryStore()
		} else {
			log.Info("REDIS", "Redis connection successful")
			readCache = cache.NewRedisCache(rdb, cfg.Cache.TTL)
			sessionStore = session.NewRedisStore(rdb)
		}
	} else {
		readCache = cache.NewMemoryCache(cfg.Cache.TTL)
		sessionStore = session.NewMemoryStore()
	}
	sessions := session.NewManager(sessionStore)

	var publisher reservation.KafkaPublisher
	if cfg.Kafka.Enabled {
		if !cfg.Kafka.MockMode {
			if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, []string{
				cfg.Kafka.Topics.ReservationCreated,
				cfg.Kafka.Topics.ReservationMerged,
				cfg.Kafka.Topics.ReservationCancelled,
			}); err != nil {
				log.Warn("KAFKA", fmt.Sprintf("Topic bootstrap failed: %v", err))
			}
		}
		producer := kafka.NewProducer(cfg.Kafka, log)
		defer producer.Close()
		publisher = producer
	} else {
		publisher = kafka.NoopPublisher{}
	}

	var bookingMailer reservation.Mailer
	if cfg.Email.Enabled {
		bookingMailer = mailer.NewMailer(cfg.Email, log)
	}

	eventService := event.NewEventService(&eventdb.DB{Bun: bunDB}, readCache, log)
	siteInfoService := siteinfo.NewService(&siteinfo.DB{Bun: bunDB}, readCache, log)
	reservationService := reservation.NewReservationService(
		&reservationdb.DB{Bun: bunDB},
		&eventdb.DB{Bun: bunDB},
		publisher,
		bookingMailer,
		readCache,
		log,
		cfg.Reservation.MergeEnabled,
	)
	if cfg.Reservation.MergeEnabled {
		log.Info("BOOKING", "Duplicate reservation merging is enabled")
	}

	qrGen := qr.NewQRGenerator(cfg.Auth.QRSecret)
	gate := auth.NewOwnerGate(cfg.Auth.OwnerPassphrase)
	creds := auth.NewCredentialChecker(&auth.DB{Bun: bunDB})

	eventHandler := event_api.NewHandler(eventService, siteInfoService, sessions, log)
	reservationHandler := reservation_api.NewHandler(reservationService, qrGen, cfg.Auth.JWTSecret, log)
	authHandler := auth_api.NewHandler(gate, creds, sessions, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)
	styleHandler := siteinfo_api.NewHandler(siteInfoService, log)

	r := chi.NewRouter()
	r.Use(logger.RequestLogger(log))
	r.Route("/api", func(r chi.Router) {
		r.Get("/top", eventHandler.Top)
		r.Get("/events", eventHandler.List)
		r.Get("/events/date/{date}", eventHandler.Detail)

		r.Post("/reservations", reservationHandler.Book)
		r.Get("/reservations/{reservationID}/qr", reservationHandler.QRCode)

		r.Post("/auth/owner", authHandler.OwnerLogin)
		r.Post("/auth/owner/logout", authHandler.OwnerLogout)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Route("/admin", func(r chi.Router) {
			r.Use(authHandler.RequireOwner)
			r.Get("/events", eventHandler.AdminList)
			r.Post("/events", eventHandler.Create)
			r.Put("/events/{eventID}", eventHandler.Update)
			r.Delete("/events/{eventID}", eventHandler.Delete)
			r.Get("/events/{eventID}/reservations", reservationHandler.ByEvent)
			r.Delete("/reservations/{reservationID}", reservationHandler.Delete)
			r.Get("/customers", reservationHandler.Customers)
			r.Put("/style/{key}", styleHandler.Set)
			r.Delete("/style/{key}", styleHandler.Reset)
		})
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", fmt.Sprintf("Reservation service on %s (%s backend)", cfg.Server.Port, cfg.Database.Backend))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", fmt.Sprintf("HTTP error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(ctx, cfg.Server.ReadTimeout)
	defer cancel()
	_ = server.Shutdown(ctxShutdown)
	log.Info("SERVER", "Shutdown complete")
}
