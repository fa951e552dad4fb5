package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"stays-backend/internal/middleware"
	"stays-backend/internal/models"
	"stays-backend/internal/password"
	"stays-backend/internal/services"
	"stays-backend/internal/session"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type otpRequest struct {
	OTP flexString `json:"otp"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email       string     `json:"email"`
	OTP         flexString `json:"otp"`
	NewPassword string     `json:"newPassword"`
}

type passwordStrengthRequest struct {
	Password string `json:"password"`
}

// startSession issues a token for user and sets it as the session cookie.
func startSession(c *gin.Context, sessions *session.Manager, route string, user models.User) bool {
	token, err := sessions.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		log.Printf("[%s] [ERROR] failed to issue session: %v", route, err)
		respondWithError(c, http.StatusInternalServerError, route, "internal server error")
		return false
	}
	sessions.SetCookie(c, token)
	return true
}

func Register(auth *services.AuthService, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/register"
		defer handlePanic(c, route)

		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := auth.Register(ctx, services.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Role:     models.Role(req.Role),
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		if !startSession(c, sessions, route, user) {
			return
		}
		log.Printf("[AUTH] [INFO] registered user=%s role=%s", user.ID.Hex(), user.Role)
		respondOK(c, http.StatusCreated, "Account created successfully", gin.H{"userData": user.Data()})
	}
}

func Login(auth *services.AuthService, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/login"
		defer handlePanic(c, route)

		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := auth.Login(ctx, req.Email, req.Password)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		if !startSession(c, sessions, route, user) {
			return
		}
		respondOK(c, http.StatusOK, "Logged in successfully", gin.H{"userData": user.Data()})
	}
}

func Logout(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/logout"
		defer handlePanic(c, route)

		sessions.ClearCookie(c)
		respondOK(c, http.StatusOK, "Logged Out", nil)
	}
}

// IsAuthenticated only runs behind SessionAuth, so reaching it means the session is valid.
func IsAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /auth/is-auth"
		defer handlePanic(c, route)

		actor := middleware.ActorFrom(c)
		respondOK(c, http.StatusOK, "", gin.H{"data": gin.H{"userId": actor.UserID, "role": actor.Role}})
	}
}

func SendVerifyOTP(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/send-verify-otp"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := auth.SendVerifyOTP(ctx, middleware.ActorFrom(c).UserID); err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "Verification OTP sent on email", nil)
	}
}

func VerifyAccount(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/verify-account"
		defer handlePanic(c, route)

		var req otpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := auth.VerifyAccount(ctx, middleware.ActorFrom(c).UserID, req.OTP.String())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "Email verified successfully", gin.H{"userData": user.Data()})
	}
}

func SendResetOTP(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/send-reset-otp"
		defer handlePanic(c, route)

		var req emailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := auth.SendResetOTP(ctx, req.Email); err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "OTP sent to your email", nil)
	}
}

func ResetPassword(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/reset-password"
		defer handlePanic(c, route)

		var req resetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := auth.ResetPassword(ctx, req.Email, req.OTP.String(), req.NewPassword); err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "Password has been reset successfully", nil)
	}
}

func PasswordStrength() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/password-strength"
		defer handlePanic(c, route)

		var req passwordStrengthRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}
		respondOK(c, http.StatusOK, "", gin.H{"data": password.Check(req.Password)})
	}
}
