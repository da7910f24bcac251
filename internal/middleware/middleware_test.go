package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pooltable_tracker/internal/domain"
)

type stubVerifier map[string]string

func (v stubVerifier) Verify(_ context.Context, token string) (*domain.Identity, error) {
	if acc, ok := v[token]; ok {
		return &domain.Identity{AccountNumber: acc, TokenID: token}, nil
	}
	return nil, errors.New("bad token")
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware(stubVerifier{"good": "ACC001"}), AccountMatchMiddleware())
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, AccountNumber(c))
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header string
		query  string
		status int
	}{
		{"missing header", "", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", "", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", "", http.StatusUnauthorized},
		{"valid token", "Bearer good", "", http.StatusOK},
		{"matching account", "Bearer good", "?account_no=ACC001", http.StatusOK},
		{"foreign account", "Bearer good", "?account_no=ACC002", http.StatusUnauthorized},
		{"foreign accountNumber", "Bearer good", "?accountNumber=ACC002", http.StatusUnauthorized},
	}
	r := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "ACC001", w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"success":false`)
			}
		})
	}
}
