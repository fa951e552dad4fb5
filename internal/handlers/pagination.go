package handlers

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"stays-backend/internal/services"
)

// maxPageLimit caps the page size. Larger limits are clamped.
const maxPageLimit = 100

var errInvalidPagination = errors.New("page and limit must be provided together as positive integers")

// parsePaginationParams returns the zero Page when neither value is given.
func parsePaginationParams(pageStr, limitStr string) (services.Page, error) {
	pageStr = strings.TrimSpace(pageStr)
	limitStr = strings.TrimSpace(limitStr)
	if pageStr == "" && limitStr == "" {
		return services.Page{}, nil
	}
	if pageStr == "" || limitStr == "" {
		return services.Page{}, errInvalidPagination
	}

	page, err := strconv.ParseInt(pageStr, 10, 64)
	if err != nil || page < 1 {
		return services.Page{}, errInvalidPagination
	}
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit < 1 {
		return services.Page{}, errInvalidPagination
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if page-1 > math.MaxInt64/limit {
		return services.Page{}, errInvalidPagination
	}

	return services.Page{Page: page, Limit: limit}, nil
}
