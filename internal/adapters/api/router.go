package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/floroz/gavel-auctions/pkg/auth"
	"github.com/floroz/gavel-auctions/pkg/metrics"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Services struct {
	Auctions AuctionService
	Bids     BidService
	Users    UserService
}

// NewRouter builds the gin engine. API routes are mounted under apiRoot;
// /health and /metrics sit outside it.
func NewRouter(apiRoot string, svc Services, db Pinger, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger), metrics.Middleware())

	r.GET("/health", healthHandler(db, logger))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	requireLogin := auth.LoginRequired(svc.Users, logger)
	optionalLogin := auth.LoginOptional(svc.Users, logger)

	v1 := r.Group(apiRoot)
	NewAuctionHandler(svc.Auctions, logger).Register(v1, requireLogin)
	NewBidHandler(svc.Bids, logger).Register(v1, requireLogin)
	NewUserHandler(svc.Users, logger).Register(v1, requireLogin, optionalLogin)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not Found"})
	})
	return r
}

// RequestLogger logs every request once it has been handled.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.InfoContext(c.Request.Context(), "HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}

func healthHandler(db Pinger, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			logger.Error("Health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
