package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"stays-backend/internal/models"
	"stays-backend/internal/services"
)

const maxMultipartMemory = 8 << 20

type multipartPropertyInput struct {
	Property services.PropertyInput
	Image    *multipart.FileHeader
}

// parseMultipartPropertyRequest reads the AddProperty form. Missing fields are left
// zero so the service reports them; malformed numbers are rejected here.
func parseMultipartPropertyRequest(c *gin.Context) (multipartPropertyInput, error) {
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		return multipartPropertyInput{}, err
	}

	input := multipartPropertyInput{}
	p := &input.Property
	p.OwnerID = strings.TrimSpace(c.PostForm("OwnerId"))
	p.Type = models.PropertyType(strings.TrimSpace(c.PostForm("type")))
	p.Name = c.PostForm("name")
	p.Location = c.PostForm("location")
	p.Phone = c.PostForm("phone")
	p.PriceUnit = models.PriceUnit(strings.TrimSpace(c.PostForm("priceUnit")))

	if value, ok := c.GetPostForm("price"); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return multipartPropertyInput{}, &services.ValidationError{Field: "price", Message: "Price must be a number"}
		}
		p.Price = &parsed
	}

	if values := c.PostFormArray("amenities"); len(values) > 0 {
		p.Amenities = parseAmenitiesField(values)
	}

	file, err := c.FormFile("image")
	switch {
	case err == nil:
		input.Image = file
	case errors.Is(err, http.ErrMissingFile):
	default:
		return multipartPropertyInput{}, err
	}

	return input, nil
}

// parseAmenitiesField accepts a JSON-encoded array, a comma separated list or repeated fields.
func parseAmenitiesField(values []string) models.StringList {
	if len(values) == 1 {
		return models.ParseList(values[0])
	}
	return models.TrimList(values...)
}
