package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/evaultlabs/ticket-vault/internal/clock"
	"github.com/evaultlabs/ticket-vault/internal/config"
	"github.com/evaultlabs/ticket-vault/internal/database"
	"github.com/evaultlabs/ticket-vault/internal/handler"
	"github.com/evaultlabs/ticket-vault/internal/queue"
	"github.com/evaultlabs/ticket-vault/internal/repository"
	"github.com/evaultlabs/ticket-vault/internal/router"
	"github.com/evaultlabs/ticket-vault/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("database migrate failed: %v", err)
	}

	// nil client disables the rate limiter; everything else keeps working.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting disabled")
	}

	store := repository.NewStore(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	clk := clock.NewSystem()
	registry := service.NewRegistry(store, clk)
	enrollments := service.NewEnrollment(store, store, clk)
	claims := service.NewClaim(store)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	eventH := handler.NewEventHandler(registry)
	ticketH := handler.NewTicketHandler(enrollments, claims, registry, store)
	walletH := handler.NewWalletHandler(store)

	// Background consumer mirrors issued tickets into logs/ticket.log.
	go func() {
		if err := queue.StartIssuedConsumer(); err != nil {
			log.Printf("ticket consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterEvents(e, eventH, cfg.JWTSecret)
	router.RegisterTickets(e, ticketH, walletH, cfg.JWTSecret, config.LoadRateLimitConfig(), rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
