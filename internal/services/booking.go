package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"stays-backend/internal/models"
	"stays-backend/internal/pricing"
	"stays-backend/internal/validation"
)

type GuestInput struct {
	FullName        string
	Email           string
	Phone           string
	SpecialRequests string
	Guests          int
}

type PropertyBookingInput struct {
	UserID     string
	PropertyID string
	Guest      GuestInput
	TotalPrice *float64
}

type GuesthouseBookingInput struct {
	UserID         string
	PropertyID     string
	Guest          GuestInput
	CheckIn        string
	CheckOut       string
	PricePerNight  *float64
	NumberOfNights *int
	TotalPrice     *float64
}

// GuestPatch carries the contact fields a caller wants to change. Nil fields are kept.
type GuestPatch struct {
	FullName        *string
	Email           *string
	Phone           *string
	SpecialRequests *string
	Guests          *int
}

type PropertyBookingPatch struct {
	Guest      GuestPatch
	TotalPrice *float64
}

type GuesthouseBookingPatch struct {
	Guest          GuestPatch
	CheckIn        *string
	CheckOut       *string
	NumberOfNights *int
	TotalPrice     *float64
}

type guestFields struct {
	FullName string `validate:"trimmedmin=3"`
	Email    string `validate:"emailaddr"`
	Phone    string `validate:"trimmedmin=8"`
	Guests   int    `validate:"gte=1"`
}

var guestFieldMessages = map[string]*ValidationError{
	"FullName": {Field: "fullname", Message: "Full name must be at least 3 characters"},
	"Email":    {Field: "emailadress", Message: "Please enter a valid email address"},
	"Phone":    {Field: "phonenumber", Message: "Please enter a valid phone number"},
	"Guests":   {Field: "Nguests", Message: "At least 1 guest is required"},
}

type BookingService struct {
	properties  PropertyRepository
	flat        PropertyBookingRepository
	guesthouses GuesthouseBookingRepository
	validate    *validation.Validator
	now         func() time.Time
}

func NewBookingService(properties PropertyRepository, flat PropertyBookingRepository, guesthouses GuesthouseBookingRepository) *BookingService {
	return &BookingService{
		properties:  properties,
		flat:        flat,
		guesthouses: guesthouses,
		validate:    validation.New(),
		now:         time.Now,
	}
}

func (s *BookingService) CreatePropertyBooking(ctx context.Context, in PropertyBookingInput) (models.PropertyBooking, error) {
	contact, guests, err := s.checkGuest(in.Guest)
	if err != nil {
		return models.PropertyBooking{}, err
	}
	if err := requireIDs(in.UserID, in.PropertyID); err != nil {
		return models.PropertyBooking{}, err
	}

	property, err := s.lookupProperty(ctx, in.PropertyID)
	if err != nil {
		return models.PropertyBooking{}, err
	}
	if !property.Type.FlatRate() {
		return models.PropertyBooking{}, invalid("propertyType", "This property must be booked per night.")
	}

	total := pricing.PropertyTotal(property.Price, guests)
	if in.TotalPrice != nil && !pricing.SameAmount(*in.TotalPrice, total) {
		return models.PropertyBooking{}, invalid("totalprice", "Total price does not match the property price and number of guests.")
	}

	now := s.now()
	booking := models.PropertyBooking{
		UserID:         strings.TrimSpace(in.UserID),
		GuestContact:   contact,
		BookedProperty: snapshotOf(property),
		Guests:         guests,
		Price:          property.Price,
		PriceUnit:      property.PriceUnit,
		TotalPrice:     total,
		Status:         models.BookingConfirmed,
		BookingDate:    now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.flat.Insert(ctx, &booking); err != nil {
		return models.PropertyBooking{}, err
	}
	return booking, nil
}

func (s *BookingService) CreateGuesthouseBooking(ctx context.Context, in GuesthouseBookingInput) (models.GuesthouseBooking, error) {
	contact, guests, err := s.checkGuest(in.Guest)
	if err != nil {
		return models.GuesthouseBooking{}, err
	}
	if err := requireIDs(in.UserID, in.PropertyID); err != nil {
		return models.GuesthouseBooking{}, err
	}
	checkIn, checkOut, err := parseStay(in.CheckIn, in.CheckOut)
	if err != nil {
		return models.GuesthouseBooking{}, err
	}

	property, err := s.lookupProperty(ctx, in.PropertyID)
	if err != nil {
		return models.GuesthouseBooking{}, err
	}
	if property.Type != models.TypeGuesthouse {
		return models.GuesthouseBooking{}, invalid("propertyType", "Only guesthouses can be booked per night.")
	}
	if in.PricePerNight != nil && !pricing.SameAmount(*in.PricePerNight, property.Price) {
		return models.GuesthouseBooking{}, invalid("pricePerNight", "Price per night does not match the property price.")
	}

	quote, err := pricing.QuoteGuesthouse(property.Price, checkIn, checkOut, guests)
	if err != nil {
		return models.GuesthouseBooking{}, &DateRangeError{CheckIn: checkIn, CheckOut: checkOut}
	}
	if err := checkQuoteClaims(quote, in.NumberOfNights, in.TotalPrice); err != nil {
		return models.GuesthouseBooking{}, err
	}
	if err := s.ensureAvailable(ctx, property.ID.Hex(), checkIn, checkOut, ""); err != nil {
		return models.GuesthouseBooking{}, err
	}

	now := s.now()
	booking := models.GuesthouseBooking{
		UserID:         strings.TrimSpace(in.UserID),
		GuestContact:   contact,
		BookedProperty: snapshotOf(property),
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Guests:         guests,
		PricePerNight:  property.Price,
		NumberOfNights: quote.NumberOfNights,
		TotalPrice:     quote.TotalPrice,
		Status:         models.BookingConfirmed,
		BookingDate:    now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.guesthouses.Insert(ctx, &booking); err != nil {
		return models.GuesthouseBooking{}, err
	}
	return booking, nil
}

// UpdatePropertyBooking applies patch and recomputes the total from the stored price.
func (s *BookingService) UpdatePropertyBooking(ctx context.Context, id string, patch PropertyBookingPatch) (models.PropertyBooking, error) {
	booking, err := s.flat.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.PropertyBooking{}, mapMissing(err, "Booking", id)
	}

	contact, guests, err := s.checkGuest(patch.Guest.apply(booking.GuestContact, booking.Guests))
	if err != nil {
		return models.PropertyBooking{}, err
	}

	total := pricing.PropertyTotal(booking.Price, guests)
	if patch.TotalPrice != nil && !pricing.SameAmount(*patch.TotalPrice, total) {
		return models.PropertyBooking{}, invalid("totalprice", "Total price does not match the booked price and number of guests.")
	}

	booking.GuestContact = contact
	booking.Guests = guests
	booking.TotalPrice = total
	booking.UpdatedAt = s.now()
	if err := s.flat.Update(ctx, booking); err != nil {
		return models.PropertyBooking{}, mapMissing(err, "Booking", id)
	}
	return booking, nil
}

// UpdateGuesthouseBooking applies patch and recomputes nights and total from the stored nightly price.
func (s *BookingService) UpdateGuesthouseBooking(ctx context.Context, id string, patch GuesthouseBookingPatch) (models.GuesthouseBooking, error) {
	booking, err := s.guesthouses.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.GuesthouseBooking{}, mapMissing(err, "Guesthouse booking", id)
	}

	contact, guests, err := s.checkGuest(patch.Guest.apply(booking.GuestContact, booking.Guests))
	if err != nil {
		return models.GuesthouseBooking{}, err
	}

	checkIn, checkOut := booking.CheckIn, booking.CheckOut
	datesChanged := false
	if patch.CheckIn != nil {
		if checkIn, err = parseDateField("checkIn", *patch.CheckIn); err != nil {
			return models.GuesthouseBooking{}, err
		}
		datesChanged = !checkIn.Equal(booking.CheckIn)
	}
	if patch.CheckOut != nil {
		if checkOut, err = parseDateField("checkOut", *patch.CheckOut); err != nil {
			return models.GuesthouseBooking{}, err
		}
		datesChanged = datesChanged || !checkOut.Equal(booking.CheckOut)
	}

	quote, err := pricing.QuoteGuesthouse(booking.PricePerNight, checkIn, checkOut, guests)
	if err != nil {
		return models.GuesthouseBooking{}, &DateRangeError{CheckIn: checkIn, CheckOut: checkOut}
	}
	if err := checkQuoteClaims(quote, patch.NumberOfNights, patch.TotalPrice); err != nil {
		return models.GuesthouseBooking{}, err
	}
	if datesChanged {
		if err := s.ensureAvailable(ctx, booking.PropertyID, checkIn, checkOut, booking.ID.Hex()); err != nil {
			return models.GuesthouseBooking{}, err
		}
	}

	booking.GuestContact = contact
	booking.Guests = guests
	booking.CheckIn = checkIn
	booking.CheckOut = checkOut
	booking.NumberOfNights = quote.NumberOfNights
	booking.TotalPrice = quote.TotalPrice
	booking.UpdatedAt = s.now()
	if err := s.guesthouses.Update(ctx, booking); err != nil {
		return models.GuesthouseBooking{}, mapMissing(err, "Guesthouse booking", id)
	}
	return booking, nil
}

func (s *BookingService) DeletePropertyBooking(ctx context.Context, id string) (models.PropertyBooking, error) {
	deleted, err := s.flat.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.PropertyBooking{}, mapMissing(err, "Booking", id)
	}
	return deleted, nil
}

func (s *BookingService) DeleteGuesthouseBooking(ctx context.Context, id string) (models.GuesthouseBooking, error) {
	deleted, err := s.guesthouses.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.GuesthouseBooking{}, mapMissing(err, "Guesthouse booking", id)
	}
	return deleted, nil
}

// DeletePropertyBookingAs deletes a flat-rate booking on behalf of the listing owner or an admin.
func (s *BookingService) DeletePropertyBookingAs(ctx context.Context, actor Actor, id string) (models.PropertyBooking, error) {
	booking, err := s.flat.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.PropertyBooking{}, mapMissing(err, "Booking", id)
	}
	if !actor.CanManage(booking.OwnerID) {
		return models.PropertyBooking{}, ErrForbidden
	}
	return s.DeletePropertyBooking(ctx, id)
}

// DeleteGuesthouseBookingAs deletes a guesthouse booking on behalf of the listing owner or an admin.
func (s *BookingService) DeleteGuesthouseBookingAs(ctx context.Context, actor Actor, id string) (models.GuesthouseBooking, error) {
	booking, err := s.guesthouses.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.GuesthouseBooking{}, mapMissing(err, "Guesthouse booking", id)
	}
	if !actor.CanManage(booking.OwnerID) {
		return models.GuesthouseBooking{}, ErrForbidden
	}
	return s.DeleteGuesthouseBooking(ctx, id)
}

func (s *BookingService) ListPropertyBookingsByUser(ctx context.Context, userID string) ([]models.PropertyBooking, error) {
	id, err := requireListKey("userID", userID)
	if err != nil {
		return nil, err
	}
	return s.flat.List(ctx, BookingFilter{UserID: id})
}

func (s *BookingService) ListPropertyBookingsByOwner(ctx context.Context, ownerID string) ([]models.PropertyBooking, error) {
	id, err := requireListKey("OwnerId", ownerID)
	if err != nil {
		return nil, err
	}
	return s.flat.List(ctx, BookingFilter{OwnerID: id})
}

func (s *BookingService) ListGuesthouseBookingsByUser(ctx context.Context, userID string) ([]models.GuesthouseBooking, error) {
	id, err := requireListKey("userID", userID)
	if err != nil {
		return nil, err
	}
	return s.guesthouses.List(ctx, BookingFilter{UserID: id})
}

func (s *BookingService) ListGuesthouseBookingsByOwner(ctx context.Context, ownerID string) ([]models.GuesthouseBooking, error) {
	id, err := requireListKey("OwnerId", ownerID)
	if err != nil {
		return nil, err
	}
	return s.guesthouses.List(ctx, BookingFilter{OwnerID: id})
}

// QuoteInput prices a prospective stay. CheckIn/CheckOut are only used for per-night listings.
type QuoteInput struct {
	PropertyID string
	CheckIn    string
	CheckOut   string
	Guests     int
}

// Quote prices a stay with the same arithmetic bookings are persisted with.
func (s *BookingService) Quote(ctx context.Context, in QuoteInput) (pricing.Quote, error) {
	if in.Guests < 1 {
		return pricing.Quote{}, guestFieldMessages["Guests"]
	}
	if strings.TrimSpace(in.PropertyID) == "" {
		return pricing.Quote{}, invalid("propertyID", "Missing required fields")
	}
	property, err := s.lookupProperty(ctx, in.PropertyID)
	if err != nil {
		return pricing.Quote{}, err
	}
	if property.Type.FlatRate() {
		return pricing.Quote{TotalPrice: pricing.PropertyTotal(property.Price, in.Guests)}, nil
	}

	checkIn, checkOut, err := parseStay(in.CheckIn, in.CheckOut)
	if err != nil {
		return pricing.Quote{}, err
	}
	quote, err := pricing.QuoteGuesthouse(property.Price, checkIn, checkOut, in.Guests)
	if err != nil {
		return pricing.Quote{}, &DateRangeError{CheckIn: checkIn, CheckOut: checkOut}
	}
	return quote, nil
}

func (s *BookingService) checkGuest(in GuestInput) (models.GuestContact, int, error) {
	fields := guestFields{
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    in.Phone,
		Guests:   in.Guests,
	}
	if err := s.validate.Struct(fields); err != nil {
		errs := s.validate.ValidationErrors(err)
		if len(errs) == 0 {
			return models.GuestContact{}, 0, err
		}
		return models.GuestContact{}, 0, guestFieldMessages[errs[0].Field()]
	}
	return models.GuestContact{
		FullName:        strings.TrimSpace(in.FullName),
		Email:           strings.TrimSpace(in.Email),
		Phone:           strings.TrimSpace(in.Phone),
		SpecialRequests: strings.TrimSpace(in.SpecialRequests),
	}, in.Guests, nil
}

func (p GuestPatch) apply(current models.GuestContact, guests int) GuestInput {
	in := GuestInput{
		FullName:        current.FullName,
		Email:           current.Email,
		Phone:           current.Phone,
		SpecialRequests: current.SpecialRequests,
		Guests:          guests,
	}
	if p.FullName != nil {
		in.FullName = *p.FullName
	}
	if p.Email != nil {
		in.Email = *p.Email
	}
	if p.Phone != nil {
		in.Phone = *p.Phone
	}
	if p.SpecialRequests != nil {
		in.SpecialRequests = *p.SpecialRequests
	}
	if p.Guests != nil {
		in.Guests = *p.Guests
	}
	return in
}

func (s *BookingService) lookupProperty(ctx context.Context, id string) (models.Property, error) {
	property, err := s.properties.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.Property{}, mapMissing(err, "Property", id)
	}
	return property, nil
}

func (s *BookingService) ensureAvailable(ctx context.Context, propertyID string, checkIn, checkOut time.Time, excludeID string) error {
	count, err := s.guesthouses.CountOverlapping(ctx, propertyID, checkIn, checkOut, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return &ConflictError{Message: "The guesthouse is already booked for the selected dates."}
	}
	return nil
}

func snapshotOf(p models.Property) models.BookedProperty {
	return models.BookedProperty{
		OwnerID:          p.OwnerID,
		PropertyID:       p.ID.Hex(),
		PropertyName:     p.Name,
		PropertyLocation: p.Location,
		PropertyType:     p.Type,
		Image:            p.Image,
	}
}

func requireIDs(userID, propertyID string) error {
	if strings.TrimSpace(userID) == "" {
		return invalid("userID", "Missing required fields. Please provide all necessary information.")
	}
	if strings.TrimSpace(propertyID) == "" {
		return invalid("propertyID", "Missing required fields. Please provide all necessary information.")
	}
	return nil
}

// requireListKey rejects a blank filter key. An empty BookingFilter matches every record.
func requireListKey(field, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", invalid(field, "Missing "+field)
	}
	return id, nil
}

func parseStay(rawCheckIn, rawCheckOut string) (time.Time, time.Time, error) {
	if strings.TrimSpace(rawCheckIn) == "" {
		return time.Time{}, time.Time{}, invalid("checkIn", "Check-in date is required")
	}
	if strings.TrimSpace(rawCheckOut) == "" {
		return time.Time{}, time.Time{}, invalid("checkOut", "Check-out date is required")
	}
	checkIn, err := parseDateField("checkIn", rawCheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	checkOut, err := parseDateField("checkOut", rawCheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, &DateRangeError{CheckIn: checkIn, CheckOut: checkOut}
	}
	return checkIn, checkOut, nil
}

func parseDateField(field, value string) (time.Time, error) {
	t, err := pricing.ParseDate(value)
	if err != nil {
		return time.Time{}, invalid(field, "Invalid "+field+" date")
	}
	return t, nil
}

func checkQuoteClaims(quote pricing.Quote, nights *int, total *float64) error {
	if nights != nil && *nights != quote.NumberOfNights {
		return invalid("numberOfNights", "Number of nights does not match the selected dates.")
	}
	if total != nil && !pricing.SameAmount(*total, quote.TotalPrice) {
		return invalid("totalprice", "Total price does not match the nightly price, nights and guests.")
	}
	return nil
}

func mapMissing(err error, resource, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFound(resource, id)
	}
	return err
}
