package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Krtikgoswami/project001/internal/auth"
	"github.com/Krtikgoswami/project001/internal/config"
	"github.com/Krtikgoswami/project001/internal/http/middlewares"
	"github.com/Krtikgoswami/project001/internal/observability"
	"github.com/Krtikgoswami/project001/internal/service"
	"github.com/gin-gonic/gin"
)

// Authenticator is the slice of the auth service the HTTP layer calls.
type Authenticator interface {
	Signup(ctx context.Context, email, password, name string) (service.Session, error)
	Login(ctx context.Context, email, password string) (service.Session, error)
}

type TokenRevoker interface {
	Revoke(ctx context.Context, claims *auth.Claims) error
}

type AuthHandler struct {
	svc Authenticator
	// revoker is optional; without it logout is a client-side affair,
	// exactly like the original deployment.
	revoker TokenRevoker
	metrics *observability.Prom
}

func NewAuthHandler(svc Authenticator, revoker TokenRevoker, metrics *observability.Prom) *AuthHandler {
	return &AuthHandler{
		svc:     svc,
		revoker: revoker,
		metrics: metrics,
	}
}

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) observe(op, result string) {
	if h.metrics != nil {
		h.metrics.AuthAttempts.WithLabelValues(op, result).Inc()
	}
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req SignUpRequest

	if !BindJSON(ctx, &req) {
		h.observe("signup", "rejected")
		return
	}

	// bcrypt plus two store round-trips fit comfortably here
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	sess, err := h.svc.Signup(cctx, req.Email, req.Password, req.Name)

	if err != nil {
		if errors.Is(err, service.ErrDuplicateUser) {
			h.observe("signup", "rejected")
			RespondBadRequest(ctx, "User already exists")
			return
		}

		h.observe("signup", "error")
		RespondInternal(ctx)
		return
	}

	h.observe("signup", "ok")

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User registered successfully!",
		"token":   sess.Token,
		"email":   sess.Email,
		"role":    sess.Role,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		h.observe("login", "rejected")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	sess, err := h.svc.Login(cctx, req.Email, req.Password)

	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			h.observe("login", "rejected")
			RespondBadRequest(ctx, "User not found")
		case errors.Is(err, service.ErrInvalidCredentials):
			h.observe("login", "rejected")
			RespondBadRequest(ctx, "Invalid credentials")
		default:
			h.observe("login", "error")
			RespondInternal(ctx)
		}
		return
	}

	h.observe("login", "ok")

	ctx.JSON(http.StatusOK, gin.H{
		"token": sess.Token,
		"email": sess.Email,
		"role":  sess.Role,
	})
}

// Logout denylists the presented token for the rest of its lifetime. With no
// denylist wired the token simply ages out after the 1-hour TTL.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	claims, ok := middlewares.ClaimsFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "No token")
		return
	}

	if h.revoker != nil {
		cctx, cancel := config.WithTimeout(2 * time.Second)

		defer cancel()

		if err := h.revoker.Revoke(cctx, claims); err != nil {
			h.observe("logout", "error")
			RespondInternal(ctx)
			return
		}
	}

	h.observe("logout", "ok")
	ctx.Status(http.StatusNoContent)
}
