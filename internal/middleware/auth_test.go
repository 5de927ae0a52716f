package middleware

import (
	"humaniq_backend/internal/config"
	"humaniq_backend/internal/model"
	"humaniq_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret-with-at-least-32-characters"

func newRouter(roles ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret

	r := gin.New()
	r.GET("/p", AuthMiddleware(cfg), RoleMiddleware(roles...), func(c *gin.Context) {
		util.Success(c, util.GetUserFromContext(c).UserID)
	})
	return r
}

func doRequest(r *gin.Engine, token string) int {
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func token(t *testing.T, role model.UserRole, secret string) string {
	t.Helper()
	tok, err := util.GenerateJWT("u-1", role, "e-1", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	return tok
}

func TestAuthMiddlewareRejectsMissingAndForgedTokens(t *testing.T) {
	r := newRouter(model.RoleColaborador)

	if code := doRequest(r, ""); code != http.StatusUnauthorized {
		t.Fatalf("missing token: got %d", code)
	}
	if code := doRequest(r, token(t, model.RoleColaborador, "another-secret-another-secret-xx")); code != http.StatusUnauthorized {
		t.Fatalf("forged token: got %d", code)
	}
	if code := doRequest(r, token(t, model.RoleColaborador, testSecret)); code != http.StatusOK {
		t.Fatalf("valid token: got %d", code)
	}
}

func TestRoleMiddleware(t *testing.T) {
	r := newRouter(model.RoleEmpresa)

	if code := doRequest(r, token(t, model.RoleColaborador, testSecret)); code != http.StatusForbidden {
		t.Fatalf("colaborador on empresa route: got %d", code)
	}
	if code := doRequest(r, token(t, model.RoleEmpresa, testSecret)); code != http.StatusOK {
		t.Fatalf("empresa: got %d", code)
	}
	if code := doRequest(r, token(t, model.RoleAdmin, testSecret)); code != http.StatusOK {
		t.Fatalf("admin should always pass: got %d", code)
	}
}
