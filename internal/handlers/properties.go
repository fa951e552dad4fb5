package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"stays-backend/internal/middleware"
	"stays-backend/internal/models"
	"stays-backend/internal/services"
	"stays-backend/internal/storage"
)

type propertyPatchRequest struct {
	Name      *flexString        `json:"name"`
	Location  *flexString        `json:"location"`
	Phone     *flexString        `json:"phone"`
	Price     *flexNumber        `json:"price"`
	Amenities *models.StringList `json:"amenities"`
}

func (r propertyPatchRequest) patch() services.PropertyPatch {
	p := services.PropertyPatch{
		Name:     stringOrNil(r.Name),
		Location: stringOrNil(r.Location),
		Phone:    stringOrNil(r.Phone),
		Price:    floatOrNil(r.Price),
	}
	if r.Amenities != nil {
		p.Amenities = []string(*r.Amenities)
	}
	return p
}

func GetProperties(properties *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /data-properties"
		defer handlePanic(c, route)

		page, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		list, err := properties.List(ctx, page)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "All properties", gin.H{"properties": list})
	}
}

func GetPropertiesByOwner(properties *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /data-properties/:OwnerId"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		list, err := properties.ListByOwner(ctx, c.Param("OwnerId"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "", gin.H{"OwnerProperties": list})
	}
}

func AddProperty(properties *services.PropertyService, images storage.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /data-properties/AddProperty"
		defer handlePanic(c, route)

		form, err := parseMultipartPropertyRequest(c)
		if err != nil {
			var validationErr *services.ValidationError
			if errors.As(err, &validationErr) {
				respondWithError(c, http.StatusBadRequest, route, validationErr.Message)
				return
			}
			respondWithError(c, http.StatusBadRequest, route, "invalid multipart form")
			return
		}

		actor := middleware.ActorFrom(c)
		if err := properties.AuthorizeAdd(actor, form.Property.OwnerID); err != nil {
			respondServiceError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if form.Image != nil {
			ref, err := images.Save(ctx, form.Image)
			if err != nil {
				var imageErr *storage.ImageError
				if errors.As(err, &imageErr) {
					respondWithError(c, http.StatusBadRequest, route, imageErr.Error())
					return
				}
				log.Printf("[%s] [ERROR] image upload failed: %v", route, err)
				respondWithError(c, http.StatusInternalServerError, route, "failed to store image")
				return
			}
			form.Property.Image = ref
		}

		property, err := properties.Add(ctx, actor, form.Property)
		if err != nil {
			if form.Property.Image != "" {
				if delErr := images.Delete(ctx, form.Property.Image); delErr != nil {
					log.Printf("[%s] [WARN] failed to remove image %s: %v", route, form.Property.Image, delErr)
				}
			}
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusCreated, "Property added successfully!", gin.H{"data": property})
	}
}

func UpdateProperty(properties *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /data-properties/:id"
		defer handlePanic(c, route)

		var req propertyPatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		property, err := properties.Update(ctx, middleware.ActorFrom(c), c.Param("id"), req.patch())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "Property updated successfully!", gin.H{"data": property})
	}
}

// DeleteProperty keeps the stored image. Bookings and favorites snapshot the image reference.
func DeleteProperty(properties *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /data-properties/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		deleted, err := properties.Delete(ctx, middleware.ActorFrom(c), c.Param("id"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "Your property deleted successfully!", gin.H{"data": deleted})
	}
}
