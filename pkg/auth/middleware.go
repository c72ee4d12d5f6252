package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type contextKey string

const (
	// TokenHeader carries the bearer token issued by POST /users/login.
	TokenHeader = "X-Authorization"

	UserIDKey contextKey = "user_id"
)

// TokenResolver maps a bearer token to the id of the user holding it.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (int64, bool, error)
}

// LoginRequired rejects the request with 401 unless the token resolves to a user.
func LoginRequired(resolver TokenResolver, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok, err := resolve(c, resolver)
		if err != nil {
			logger.Error("Failed to resolve auth token", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		setUserID(c, userID)
		c.Next()
	}
}

// LoginOptional attaches the user when the token resolves and otherwise proceeds anonymously.
func LoginOptional(resolver TokenResolver, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok, err := resolve(c, resolver)
		if err != nil {
			logger.Error("Failed to resolve auth token", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		if ok {
			setUserID(c, userID)
		}
		c.Next()
	}
}

func resolve(c *gin.Context, resolver TokenResolver) (int64, bool, error) {
	token := c.GetHeader(TokenHeader)
	if token == "" {
		return 0, false, nil
	}
	return resolver.ResolveToken(c.Request.Context(), token)
}

func setUserID(c *gin.Context, userID int64) {
	c.Set(string(UserIDKey), userID)
	c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), userID))
}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID retrieves the authenticated user id from the context.
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}
