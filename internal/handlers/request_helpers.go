package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"stays-backend/internal/services"
	"stays-backend/internal/store"
)

const requestTimeout = 5 * time.Second

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] [ERROR] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
	}
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func ensureStore(ctx context.Context, st store.Store) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return st.Ping(checkCtx)
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] [WARN] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// respondServiceError maps service errors onto status codes. Unknown errors are
// logged in full and reported as a generic 500.
func respondServiceError(c *gin.Context, route string, err error) {
	var (
		validationErr *services.ValidationError
		rangeErr      *services.DateRangeError
		notFoundErr   *services.NotFoundError
		conflictErr   *services.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		respondWithError(c, http.StatusBadRequest, route, validationErr.Message)
	case errors.As(err, &rangeErr):
		respondWithError(c, http.StatusBadRequest, route, rangeErr.Error())
	case errors.As(err, &notFoundErr):
		respondWithError(c, http.StatusNotFound, route, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		respondWithError(c, http.StatusConflict, route, conflictErr.Message)
	case errors.Is(err, services.ErrInvalidCredentials):
		respondWithError(c, http.StatusUnauthorized, route, "Invalid email or password")
	case errors.Is(err, services.ErrForbidden):
		respondWithError(c, http.StatusForbidden, route, "Access denied")
	case errors.Is(err, context.DeadlineExceeded):
		log.Printf("[%s] [ERROR] timed out: %v", route, err)
		respondWithError(c, http.StatusGatewayTimeout, route, "request timed out")
	default:
		log.Printf("[%s] [ERROR] %v", route, err)
		respondWithError(c, http.StatusInternalServerError, route, "internal server error")
	}
}

// respondValidationError reports a body that could not be bound.
func respondValidationError(c *gin.Context, route string, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		log.Printf("[%s] [WARN] validation failed: %s", route, strings.Join(details, ", "))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields. Please provide all necessary information.",
			"details": details,
		})
		return
	}
	respondWithError(c, http.StatusBadRequest, route, "invalid request body")
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func respondOK(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}
