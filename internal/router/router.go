package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/evaultlabs/ticket-vault/internal/config"
	"github.com/evaultlabs/ticket-vault/internal/handler"
	"github.com/evaultlabs/ticket-vault/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes and the protected /v1/me
// endpoint.  Unauthenticated operations live under /v1/auth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout accepts either a refresh token in the body or a bearer
	// token, so it stays outside the JWT middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterEvents registers the organizer-facing event routes plus the
// public inspection endpoint.
func RegisterEvents(e *echo.Echo, h *handler.EventHandler, jwtSecret string) {
	// Event inspection is public so buyers can look up an event by its
	// creator before enrolling.
	e.GET("/v1/events/:creator", h.Get)

	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ORGANIZER"),
	)
	g.POST("/events", h.Create)
}

// RegisterTickets registers the buyer-facing enrollment, claim and
// listing routes.  The enroll route additionally carries the Redis
// token bucket limiter; rdb may be nil, in which case the limiter is a
// pass-through.
func RegisterTickets(e *echo.Echo, h *handler.TicketHandler, w *handler.WalletHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("BUYER"),
	)

	g.POST("/events/:creator/enroll", h.Enroll, middleware.NewTokenBucket(rlCfg, rdb))
	g.POST("/events/:creator/claim", h.Claim)
	g.GET("/my-tickets", h.MyTickets)

	g.POST("/wallet/topup", w.Topup)
	g.GET("/wallet", w.Balance)
}
