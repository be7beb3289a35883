package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Krtikgoswami/project001/internal/config"
	"github.com/Krtikgoswami/project001/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type UserLister interface {
	ListUsers(ctx context.Context) ([]user.User, error)
}

type UsersHandler struct {
	users UserLister
}

func NewUsersHandler(users UserLister) *UsersHandler {
	return &UsersHandler{users: users}
}

type userSummary struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListUsers backs the admin dashboard's user table. The response is a bare
// array, which is what the dashboard consumes.
func (h *UsersHandler) ListUsers(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	users, err := h.users.ListUsers(cctx)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	out := make([]userSummary, 0, len(users))

	for _, u := range users {
		out = append(out, userSummary{
			Email:     u.Email,
			Name:      u.Name,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, out)
}
