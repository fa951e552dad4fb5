package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stays-backend/internal/models"
	"stays-backend/internal/services"
)

type toggleFavoriteRequest struct {
	UserID     flexString        `json:"userId"`
	PropertyID flexString        `json:"propertyID"`
	Type       flexString        `json:"type"`
	Name       flexString        `json:"name"`
	Location   flexString        `json:"location"`
	Price      *flexNumber       `json:"price"`
	PriceUnit  flexString        `json:"priceUnit"`
	Rating     *flexNumber       `json:"rating"`
	Reviews    *flexNumber       `json:"reviews"`
	Amenities  models.StringList `json:"amenities"`
	Image      flexString        `json:"image"`
}

func (r toggleFavoriteRequest) snapshot() (models.FavoriteSnapshot, error) {
	reviews, err := wholeOrZero(r.Reviews, "reviews")
	if err != nil {
		return models.FavoriteSnapshot{}, err
	}
	s := models.FavoriteSnapshot{
		Type:      models.PropertyType(r.Type.String()),
		Name:      r.Name.String(),
		Location:  r.Location.String(),
		PriceUnit: models.PriceUnit(r.PriceUnit.String()),
		Reviews:   reviews,
		Amenities: r.Amenities,
		Image:     r.Image.String(),
	}
	if r.Price != nil {
		s.Price = float64(*r.Price)
	}
	if r.Rating != nil {
		s.Rating = float64(*r.Rating)
	}
	return s, nil
}

func ToggleFavorite(favorites *services.FavoritesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /favorites/toggle"
		defer handlePanic(c, route)

		var req toggleFavoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		snapshot, err := req.snapshot()
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		result, err := favorites.Toggle(ctx, req.UserID.String(), req.PropertyID.String(), snapshot)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		message := "Added to favorites"
		if result == services.FavoriteRemoved {
			message = "Removed from favorites"
		}
		respondOK(c, http.StatusOK, message, gin.H{"result": string(result)})
	}
}

func ListFavorites(favorites *services.FavoritesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /favorites/:userId"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		list, err := favorites.List(ctx, strings.TrimSpace(c.Param("userId")))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "", gin.H{"favorites": list})
	}
}
