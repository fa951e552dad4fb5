package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stays-backend/internal/middleware"
	"stays-backend/internal/services"
)

// ownerScope rejects owners asking for another owner's bookings. Admins may read any.
func ownerScope(c *gin.Context, route string) (string, bool) {
	ownerID := c.Param("OwnerId")
	if !middleware.ActorFrom(c).CanManage(ownerID) {
		respondWithError(c, http.StatusForbidden, route, "Access denied")
		return "", false
	}
	return ownerID, true
}

func ListOwnerPropertyBookings(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /BookedPropertyOwner/allBookedProperties/:OwnerId"
		defer handlePanic(c, route)

		ownerID, ok := ownerScope(c, route)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		list, err := bookings.ListPropertyBookingsByOwner(ctx, ownerID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "", gin.H{"bookedProperties": list})
	}
}

func ListOwnerGuesthouseBookings(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /BookedPropertyOwner/allBookedGuesthouses/:OwnerId"
		defer handlePanic(c, route)

		ownerID, ok := ownerScope(c, route)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		list, err := bookings.ListGuesthouseBookingsByOwner(ctx, ownerID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "", gin.H{"bookedGuesthouses": list})
	}
}

func DeleteOwnerPropertyBooking(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /BookedPropertyOwner/deleteBookedProperty/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		if _, err := bookings.DeletePropertyBookingAs(ctx, middleware.ActorFrom(c), c.Param("id")); err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "Booking deleted successfully", nil)
	}
}

func DeleteOwnerGuesthouseBooking(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /BookedPropertyOwner/deleteGuesthouseBooking/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		deleted, err := bookings.DeleteGuesthouseBookingAs(ctx, middleware.ActorFrom(c), c.Param("id"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "Guesthouse booking deleted successfully!", gin.H{"data": deleted})
	}
}
