package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stays-backend/internal/middleware"
	"stays-backend/internal/models"
	"stays-backend/internal/services"
	"stays-backend/internal/session"
)

type accountUpdateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func GetUserData(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/data"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := accounts.Get(ctx, middleware.ActorFrom(c).UserID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "", gin.H{"userData": user.Data()})
	}
}

func ListUsers(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/DataUsers"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		users, err := accounts.List(ctx)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		data := make([]models.UserData, 0, len(users))
		for _, u := range users {
			data = append(data, u.Data())
		}
		respondOK(c, http.StatusOK, "", gin.H{"users": data})
	}
}

func UpdateAccount(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /user/:id"
		defer handlePanic(c, route)

		var req accountUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := accounts.Update(ctx, middleware.ActorFrom(c), c.Param("id"), services.AccountPatch{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "Account updated successfully!", gin.H{"data": gin.H{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		}})
	}
}

// DeleteAccount removes the account and ends the session when users delete themselves.
// Bookings and favorites of the account are kept.
func DeleteAccount(accounts *services.AccountService, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /user/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		actor := middleware.ActorFrom(c)
		deleted, err := accounts.Delete(ctx, actor, c.Param("id"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		if deleted.ID.Hex() == actor.UserID {
			sessions.ClearCookie(c)
		}
		respondOK(c, http.StatusOK, "Your account deleted successfully!", nil)
	}
}

func AdminDeleteUser(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /user/admin/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		deleted, err := accounts.Delete(ctx, middleware.ActorFrom(c), c.Param("id"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "User deleted successfully", gin.H{"data": deleted.Data()})
	}
}
