package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stays-backend/internal/store"
)

func Home() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "api working")
	}
}

func Health(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /healthz"
		defer handlePanic(c, route)

		if err := ensureStore(c.Request.Context(), st); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "store unavailable")
			return
		}
		respondOK(c, http.StatusOK, "ok", nil)
	}
}
