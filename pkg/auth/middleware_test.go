package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubResolver struct {
	tokens map[string]int64
	err    error
}

func (s stubResolver) ResolveToken(_ context.Context, token string) (int64, bool, error) {
	if s.err != nil {
		return 0, false, s.err
	}
	id, ok := s.tokens[token]
	return id, ok, nil
}

func newTestRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", mw, func(c *gin.Context) {
		id, ok := GetUserID(c.Request.Context())
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": id})
	})
	return r
}

func TestLoginRequired(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := stubResolver{tokens: map[string]int64{"good-token": 42}}

	tests := []struct {
		name       string
		token      string
		resolver   TokenResolver
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", token: "good-token", resolver: resolver, wantStatus: http.StatusOK, wantBody: `{"userId":42}`},
		{name: "missing header", token: "", resolver: resolver, wantStatus: http.StatusUnauthorized},
		{name: "unknown token", token: "bad-token", resolver: resolver, wantStatus: http.StatusUnauthorized},
		{name: "resolver failure", token: "good-token", resolver: stubResolver{err: errors.New("db down")}, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(LoginRequired(tt.resolver, logger))
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.token != "" {
				req.Header.Set(TokenHeader, tt.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestLoginOptional(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := newTestRouter(LoginOptional(stubResolver{tokens: map[string]int64{"good-token": 7}}, logger))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(TokenHeader, "good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":7}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(TokenHeader, "stale-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestGetUserID_Empty(t *testing.T) {
	_, ok := GetUserID(context.Background())
	assert.False(t, ok)

	id, ok := GetUserID(WithUserID(context.Background(), 3))
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)
}
