package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stays-backend/internal/services"
)

type guestRequest struct {
	FullName        *flexString `json:"fullname"`
	Email           *flexString `json:"emailadress"`
	Phone           *flexString `json:"phonenumber"`
	SpecialRequests *flexString `json:"specialrequests"`
	Guests          *flexNumber `json:"Nguests"`
}

func (g guestRequest) input() (services.GuestInput, error) {
	guests, err := wholeOrZero(g.Guests, "Nguests")
	if err != nil {
		return services.GuestInput{}, err
	}
	in := services.GuestInput{Guests: guests}
	if g.FullName != nil {
		in.FullName = g.FullName.String()
	}
	if g.Email != nil {
		in.Email = g.Email.String()
	}
	if g.Phone != nil {
		in.Phone = g.Phone.String()
	}
	if g.SpecialRequests != nil {
		in.SpecialRequests = g.SpecialRequests.String()
	}
	return in, nil
}

func (g guestRequest) patch() (services.GuestPatch, error) {
	guests, err := wholeOrNil(g.Guests, "Nguests")
	if err != nil {
		return services.GuestPatch{}, err
	}
	return services.GuestPatch{
		FullName:        stringOrNil(g.FullName),
		Email:           stringOrNil(g.Email),
		Phone:           stringOrNil(g.Phone),
		SpecialRequests: stringOrNil(g.SpecialRequests),
		Guests:          guests,
	}, nil
}

type propertyBookingRequest struct {
	guestRequest
	UserID     flexString  `json:"userID"`
	PropertyID flexString  `json:"propertyID"`
	TotalPrice *flexNumber `json:"totalprice"`
}

type guesthouseBookingRequest struct {
	guestRequest
	UserID         flexString  `json:"userID"`
	PropertyID     flexString  `json:"propertyID"`
	CheckIn        flexString  `json:"checkIn"`
	CheckOut       flexString  `json:"checkOut"`
	PricePerNight  *flexNumber `json:"pricePerNight"`
	NumberOfNights *flexNumber `json:"numberOfNights"`
	TotalPrice     *flexNumber `json:"totalprice"`
}

type guesthouseBookingPatchRequest struct {
	guestRequest
	CheckIn        *flexString `json:"checkIn"`
	CheckOut       *flexString `json:"checkOut"`
	NumberOfNights *flexNumber `json:"numberOfNights"`
	TotalPrice     *flexNumber `json:"totalprice"`
}

type quoteRequest struct {
	PropertyID flexString  `json:"propertyID"`
	CheckIn    flexString  `json:"checkIn"`
	CheckOut   flexString  `json:"checkOut"`
	Guests     *flexNumber `json:"Nguests"`
}

func CreatePropertyBooking(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /booking/booked_ccb_res"
		defer handlePanic(c, route)

		var req propertyBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		guest, err := req.input()
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		booking, err := bookings.CreatePropertyBooking(ctx, services.PropertyBookingInput{
			UserID:     req.UserID.String(),
			PropertyID: req.PropertyID.String(),
			Guest:      guest,
			TotalPrice: floatOrNil(req.TotalPrice),
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusCreated, "Property booked successfully", gin.H{"data": booking})
	}
}

func CreateGuesthouseBooking(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /booking/booked_guesthouse"
		defer handlePanic(c, route)

		var req guesthouseBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		guest, err := req.input()
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		nights, err := wholeOrNil(req.NumberOfNights, "numberOfNights")
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		booking, err := bookings.CreateGuesthouseBooking(ctx, services.GuesthouseBookingInput{
			UserID:         req.UserID.String(),
			PropertyID:     req.PropertyID.String(),
			Guest:          guest,
			CheckIn:        req.CheckIn.String(),
			CheckOut:       req.CheckOut.String(),
			PricePerNight:  floatOrNil(req.PricePerNight),
			NumberOfNights: nights,
			TotalPrice:     floatOrNil(req.TotalPrice),
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusCreated, "Guesthouse booked successfully!", gin.H{"data": booking})
	}
}

func UpdatePropertyBooking(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /booking/updateBooking/:id"
		defer handlePanic(c, route)

		var req propertyBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		guest, err := req.patch()
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		booking, err := bookings.UpdatePropertyBooking(ctx, c.Param("id"), services.PropertyBookingPatch{
			Guest:      guest,
			TotalPrice: floatOrNil(req.TotalPrice),
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "Booking updated successfully", gin.H{"data": booking})
	}
}

func UpdateGuesthouseBooking(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /booking/updateGuesthouseBooking/:id"
		defer handlePanic(c, route)

		var req guesthouseBookingPatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		guest, err := req.patch()
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		nights, err := wholeOrNil(req.NumberOfNights, "numberOfNights")
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		booking, err := bookings.UpdateGuesthouseBooking(ctx, c.Param("id"), services.GuesthouseBookingPatch{
			Guest:          guest,
			CheckIn:        stringOrNil(req.CheckIn),
			CheckOut:       stringOrNil(req.CheckOut),
			NumberOfNights: nights,
			TotalPrice:     floatOrNil(req.TotalPrice),
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "Guesthouse booking updated successfully!", gin.H{"data": booking})
	}
}

func DeletePropertyBooking(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /booking/deleteBooking/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		if _, err := bookings.DeletePropertyBooking(ctx, c.Param("id")); err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "Booking deleted successfully", nil)
	}
}

func DeleteGuesthouseBooking(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /booking/deleteGuesthouseBooking/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		deleted, err := bookings.DeleteGuesthouseBooking(ctx, c.Param("id"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "Guesthouse booking deleted successfully!", gin.H{"data": deleted})
	}
}

func ListPropertyBookingsByUser(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /booking/allBookedUser/:userID"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		list, err := bookings.ListPropertyBookingsByUser(ctx, c.Param("userID"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "", gin.H{"bookedProperties": list})
	}
}

func ListGuesthouseBookingsByUser(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /booking/allBookedGuesthouses/:userID"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		list, err := bookings.ListGuesthouseBookingsByUser(ctx, c.Param("userID"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "", gin.H{"bookedGuesthouses": list})
	}
}

func QuoteBooking(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /booking/quote"
		defer handlePanic(c, route)

		var req quoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		guests, err := wholeOrZero(req.Guests, "Nguests")
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		quote, err := bookings.Quote(ctx, services.QuoteInput{
			PropertyID: req.PropertyID.String(),
			CheckIn:    req.CheckIn.String(),
			CheckOut:   req.CheckOut.String(),
			Guests:     guests,
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "", gin.H{"data": quote})
	}
}
