package handlers

import (
	"net/http"

	"github.com/Krtikgoswami/project001/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// Protected just echoes the verified identity; it exists so the SPA can
// check a stored token is still good.
func Protected(ctx *gin.Context) {
	claims, ok := middlewares.ClaimsFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "No token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Protected data",
		"user": gin.H{
			"email": claims.Email,
			"role":  claims.Role,
		},
	})
}

func AdminHome(ctx *gin.Context) {
	claims, ok := middlewares.ClaimsFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "No token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Welcome, Admin!",
		"user": gin.H{
			"email": claims.Email,
			"role":  claims.Role,
		},
	})
}
