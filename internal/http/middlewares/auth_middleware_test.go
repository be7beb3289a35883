package middlewares_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Krtikgoswami/project001/internal/auth"
	"github.com/Krtikgoswami/project001/internal/domain/user"
	"github.com/Krtikgoswami/project001/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRevocations struct {
	containsFn func(ctx context.Context, jti string) (bool, error)
}

func (f *fakeRevocations) Contains(ctx context.Context, jti string) (bool, error) {
	if f.containsFn != nil {
		return f.containsFn(ctx, jti)
	}

	return false, nil
}

func guardRouter(am *middlewares.AuthMiddleware, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	chain := append([]gin.HandlerFunc{am.RequireAuth()}, extra...)
	chain = append(chain, func(c *gin.Context) {
		claims, _ := middlewares.ClaimsFromContext(c)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email, "role": claims.Role})
	})

	r.GET("/gated", chain...)

	return r
}

func get(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)

	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var out map[string]string

	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to unmarshal json: %v, body=%s", err, w.Body.String())
	}

	return out["error"]
}

func TestRequireAuth(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	good, err := m.Issue("sam@example.com", user.RoleUser)

	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	expiredManager := auth.NewManager("test-secret", -time.Minute)

	expired, err := expiredManager.Issue("sam@example.com", user.RoleUser)

	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized, wantError: "No token"},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantError: "No token"},
		{name: "empty bearer", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantError: "No token"},
		{name: "garbage token", header: "Bearer garbage", wantStatus: http.StatusUnauthorized, wantError: "Invalid token"},
		{name: "expired token", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized, wantError: "Invalid token"},
		{name: "valid token", header: "Bearer " + good, wantStatus: http.StatusOK},
	}

	am := middlewares.NewAuthMiddleware(m, nil)
	r := guardRouter(am)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := get(r, tc.header)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}

			if tc.wantError != "" && errorBody(t, w) != tc.wantError {
				t.Errorf("error = %q, want %q", errorBody(t, w), tc.wantError)
			}
		})
	}
}

func TestRequireAuthPopulatesClaims(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	token, err := m.Issue("sam@example.com", user.RoleAdmin)

	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	am := middlewares.NewAuthMiddleware(m, nil)
	r := guardRouter(am)

	w := get(r, "Bearer "+token)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}

	var out map[string]string

	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to unmarshal json: %v", err)
	}

	if out["email"] != "sam@example.com" || out["role"] != user.RoleAdmin {
		t.Errorf("claims on context = %v, want sam@example.com/admin", out)
	}
}

func TestRequireAuthDenylist(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	token, err := m.Issue("sam@example.com", user.RoleUser)

	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	t.Run("revoked token is rejected", func(t *testing.T) {
		revoked := &fakeRevocations{
			containsFn: func(ctx context.Context, jti string) (bool, error) {
				return true, nil
			},
		}

		r := guardRouter(middlewares.NewAuthMiddleware(m, revoked))

		w := get(r, "Bearer "+token)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}

		if errorBody(t, w) != "Invalid token" {
			t.Errorf("error = %q, want %q", errorBody(t, w), "Invalid token")
		}
	})

	t.Run("denylist errors fail closed", func(t *testing.T) {
		revoked := &fakeRevocations{
			containsFn: func(ctx context.Context, jti string) (bool, error) {
				return false, context.DeadlineExceeded
			},
		}

		r := guardRouter(middlewares.NewAuthMiddleware(m, revoked))

		w := get(r, "Bearer "+token)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	adminToken, err := m.Issue("admin@gmail.com", user.RoleAdmin)

	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	userToken, err := m.Issue("a@x.com", user.RoleUser)

	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	am := middlewares.NewAuthMiddleware(m, nil)
	r := guardRouter(am, am.RequireRole(user.RoleAdmin))

	t.Run("admin passes", func(t *testing.T) {
		w := get(r, "Bearer "+adminToken)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("user is forbidden", func(t *testing.T) {
		w := get(r, "Bearer "+userToken)

		if w.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", w.Code)
		}

		if errorBody(t, w) != "Access denied: Admins only" {
			t.Errorf("error = %q, want the admins-only message", errorBody(t, w))
		}
	})
}
