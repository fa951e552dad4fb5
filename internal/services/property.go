package services

import (
	"context"
	"strings"
	"time"

	"stays-backend/internal/models"
)

const missingFieldsMessage = "Missing required fields. Please provide all necessary information."

type PropertyInput struct {
	OwnerID   string
	Type      models.PropertyType
	Name      string
	Location  string
	Phone     string
	Price     *float64
	PriceUnit models.PriceUnit
	// Amenities must be non-nil. An empty list is allowed.
	Amenities []string
	Image     string
}

// PropertyPatch lists the editable fields. Type and image are fixed once created.
type PropertyPatch struct {
	Name      *string
	Location  *string
	Phone     *string
	Price     *float64
	Amenities []string
}

type PropertyService struct {
	properties PropertyRepository
	now        func() time.Time
}

func NewPropertyService(properties PropertyRepository) *PropertyService {
	return &PropertyService{properties: properties, now: time.Now}
}

// AuthorizeAdd reports whether actor may list a property for ownerID. A blank
// ownerID means the actor's own account.
func (s *PropertyService) AuthorizeAdd(actor Actor, ownerID string) error {
	if actor.Role != models.RoleOwner && !actor.IsAdmin() {
		return ErrForbidden
	}
	if !actor.CanManage(addOwner(actor, ownerID)) {
		return ErrForbidden
	}
	return nil
}

func addOwner(actor Actor, ownerID string) string {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return actor.UserID
	}
	return ownerID
}

func (s *PropertyService) Add(ctx context.Context, actor Actor, in PropertyInput) (models.Property, error) {
	if err := s.AuthorizeAdd(actor, in.OwnerID); err != nil {
		return models.Property{}, err
	}
	ownerID := addOwner(actor, in.OwnerID)

	name := strings.TrimSpace(in.Name)
	location := strings.TrimSpace(in.Location)
	phone := strings.TrimSpace(in.Phone)
	if in.Type == "" || name == "" || location == "" || phone == "" || in.Price == nil || in.PriceUnit == "" || in.Amenities == nil {
		return models.Property{}, invalid("property", missingFieldsMessage)
	}
	unit, ok := in.Type.PriceUnit()
	if !ok {
		return models.Property{}, invalid("type", "Unknown property type")
	}
	if in.PriceUnit != unit {
		return models.Property{}, invalid("priceUnit", "A "+string(in.Type)+" is priced per "+string(unit))
	}
	if *in.Price < 0 {
		return models.Property{}, invalid("price", "Price cannot be negative")
	}

	image := strings.TrimSpace(in.Image)
	if image == "" {
		image = models.DefaultPropertyImage
	}
	now := s.now()
	property := models.Property{
		OwnerID:   ownerID,
		Type:      in.Type,
		Name:      name,
		Location:  location,
		Phone:     phone,
		Price:     *in.Price,
		PriceUnit: unit,
		Amenities: models.TrimList(in.Amenities...),
		Image:     image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.properties.Create(ctx, &property); err != nil {
		return models.Property{}, err
	}
	return property, nil
}

func (s *PropertyService) Update(ctx context.Context, actor Actor, id string, patch PropertyPatch) (models.Property, error) {
	property, err := s.properties.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.Property{}, mapMissing(err, "Property", id)
	}
	if !actor.CanManage(property.OwnerID) {
		return models.Property{}, ErrForbidden
	}

	if patch.Name != nil {
		if property.Name = strings.TrimSpace(*patch.Name); property.Name == "" {
			return models.Property{}, invalid("name", missingFieldsMessage)
		}
	}
	if patch.Location != nil {
		if property.Location = strings.TrimSpace(*patch.Location); property.Location == "" {
			return models.Property{}, invalid("location", missingFieldsMessage)
		}
	}
	if patch.Phone != nil {
		if property.Phone = strings.TrimSpace(*patch.Phone); property.Phone == "" {
			return models.Property{}, invalid("phone", missingFieldsMessage)
		}
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return models.Property{}, invalid("price", "Price cannot be negative")
		}
		property.Price = *patch.Price
	}
	if patch.Amenities != nil {
		property.Amenities = models.TrimList(patch.Amenities...)
	}

	property.UpdatedAt = s.now()
	if err := s.properties.Update(ctx, property); err != nil {
		return models.Property{}, mapMissing(err, "Property", id)
	}
	return property, nil
}

// Delete removes the listing. Bookings and favorites that reference it are left in place.
func (s *PropertyService) Delete(ctx context.Context, actor Actor, id string) (models.Property, error) {
	property, err := s.properties.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.Property{}, mapMissing(err, "Property", id)
	}
	if !actor.CanManage(property.OwnerID) {
		return models.Property{}, ErrForbidden
	}
	deleted, err := s.properties.Delete(ctx, property.ID.Hex())
	if err != nil {
		return models.Property{}, mapMissing(err, "Property", id)
	}
	return deleted, nil
}

func (s *PropertyService) Get(ctx context.Context, id string) (models.Property, error) {
	property, err := s.properties.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.Property{}, mapMissing(err, "Property", id)
	}
	return property, nil
}

func (s *PropertyService) List(ctx context.Context, page Page) ([]models.Property, error) {
	return s.properties.List(ctx, page)
}

func (s *PropertyService) ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	id, err := requireListKey("OwnerId", ownerID)
	if err != nil {
		return nil, err
	}
	return s.properties.ListByOwner(ctx, id)
}
