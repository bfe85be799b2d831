package main // Entry point package

import (
	"context"
	"log"  // Logging library
	"time" // sweep ticker interval

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/courtside/hoa-court-booking/internal/booking"
	"github.com/courtside/hoa-court-booking/internal/config" // Internal config loader
	"github.com/courtside/hoa-court-booking/internal/database"
	"github.com/courtside/hoa-court-booking/internal/email"
	"github.com/courtside/hoa-court-booking/internal/handler"
	"github.com/courtside/hoa-court-booking/internal/middleware"
	"github.com/courtside/hoa-court-booking/internal/notify"
	"github.com/courtside/hoa-court-booking/internal/obs"
	"github.com/courtside/hoa-court-booking/internal/queue"
	"github.com/courtside/hoa-court-booking/internal/repository"
	"github.com/courtside/hoa-court-booking/internal/router" // Internal router setup
	"github.com/courtside/hoa-court-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env wins
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories
	users := repository.NewUserRepo(db)
	profiles := repository.NewProfileRepo(db)
	hoas := repository.NewHOARepo(db)
	bookings := repository.NewBookingRepo(db)
	participants := repository.NewParticipantRepo(db)
	tokens := repository.NewTokenRepo(db)
	pushSubs := repository.NewPushRepo(db)

	// Booking lifecycle service with the RabbitMQ publisher
	publisher := service.NewEventPublisher(cfg.AMQPURL)
	bookingSvc := booking.NewService(bookings, participants, publisher)

	// Outbound mail: SMTP when configured, server log otherwise
	var mailer email.Mailer = email.LogMailer{}
	if cfg.SMTPHost != "" {
		mailer = &email.SMTPMailer{
			Host: cfg.SMTPHost, Port: cfg.SMTPPort,
			User: cfg.SMTPUser, Pass: cfg.SMTPPass, From: cfg.MailFrom,
		}
	}

	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HideBanner = true

	// Rate limiting: Redis token bucket when reachable, in-process
	// fixed window otherwise
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; using in-process rate limiter")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAPI(e, router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users, profiles, hoas, tokens),
		Reset:    handler.NewPasswordResetHandler(cfg, users, tokens, mailer),
		Profile:  handler.NewProfileHandler(profiles),
		Booking:  handler.NewBookingHandler(bookingSvc, bookings, participants, hoas),
		Users:    handler.NewAdminUserHandler(profiles),
		HOAs:     handler.NewAdminHOAHandler(hoas, bookings),
		Push:     handler.NewPushHandler(pushSubs),
		Profiles: profiles,
	}, cfg.JWTSecret)

	// Notification worker: consumes booking events and fans them out
	go func() {
		if err := queue.StartEventConsumer(cfg.AMQPURL, notify.NewLogNotifier("logs")); err != nil {
			log.Printf("event consumer stopped: %v", err)
		}
	}()

	// Expiry sweep: drops pending bookings whose hold has lapsed
	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			n, err := bookingSvc.SweepExpired(ctx)
			cancel()
			if err != nil {
				log.Printf("expiry sweep failed: %v", err)
				continue
			}
			if n > 0 {
				obs.BookingsExpired.Add(float64(n))
				log.Printf("expiry sweep removed %d pending bookings", n)
			}
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
