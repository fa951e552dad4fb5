package handlers

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stays-backend/internal/middleware"
	"stays-backend/internal/models"
	"stays-backend/internal/ratelimit"
	"stays-backend/internal/services"
	"stays-backend/internal/session"
	"stays-backend/internal/storage"
	"stays-backend/internal/store"
)

// Deps carries everything the HTTP layer needs. UploadDir is served under /uploads
// when non-empty. Forwarding headers are only honoured from TrustedProxies.
type Deps struct {
	Store          store.Store
	Sessions       *session.Manager
	Images         storage.ImageStore
	Limiter        ratelimit.Limiter
	Mailer         services.Mailer
	ClientURL      string
	UploadDir      string
	TrustedProxies []string
}

func NewRouter(deps Deps) *gin.Engine {
	bookings := services.NewBookingService(deps.Store.Properties(), deps.Store.PropertyBookings(), deps.Store.GuesthouseBookings())
	favorites := services.NewFavoritesService(deps.Store.Favorites())
	properties := services.NewPropertyService(deps.Store.Properties())
	accounts := services.NewAccountService(deps.Store.Users())
	auth := services.NewAuthService(deps.Store.Users(), deps.Mailer)

	r := gin.Default()
	if err := r.SetTrustedProxies(deps.TrustedProxies); err != nil {
		log.Printf("[BOOT] [WARN] invalid trusted proxies %v, trusting none: %v", deps.TrustedProxies, err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{deps.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if deps.UploadDir != "" {
		r.Static("/"+storage.UploadsPrefix, deps.UploadDir)
	}

	r.GET("/", Home())
	r.GET("/healthz", Health(deps.Store))

	sessionAuth := middleware.SessionAuth(deps.Sessions)
	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimit(deps.Limiter))
	{
		authGroup.POST("/register", Register(auth, deps.Sessions))
		authGroup.POST("/login", Login(auth, deps.Sessions))
		authGroup.POST("/logout", Logout(deps.Sessions))
		authGroup.GET("/is-auth", sessionAuth, IsAuthenticated())
		authGroup.POST("/send-verify-otp", sessionAuth, SendVerifyOTP(auth))
		authGroup.POST("/verify-account", sessionAuth, VerifyAccount(auth))
		authGroup.POST("/send-reset-otp", SendResetOTP(auth))
		authGroup.POST("/reset-password", ResetPassword(auth))
		authGroup.POST("/password-strength", PasswordStrength())
	}

	user := api.Group("/user")
	user.Use(sessionAuth)
	{
		user.GET("/data", GetUserData(accounts))
		user.GET("/DataUsers", middleware.AdminOnly(), ListUsers(accounts))
		user.DELETE("/admin/:id", middleware.AdminOnly(), AdminDeleteUser(accounts))
		user.PUT("/:id", UpdateAccount(accounts))
		user.DELETE("/:id", DeleteAccount(accounts, deps.Sessions))
	}

	props := api.Group("/data-properties")
	{
		props.GET("", GetProperties(properties))
		props.GET("/:OwnerId", GetPropertiesByOwner(properties))
		props.POST("/AddProperty", sessionAuth, AddProperty(properties, deps.Images))
		props.PUT("/:id", sessionAuth, UpdateProperty(properties))
		props.DELETE("/:id", sessionAuth, DeleteProperty(properties))
	}

	booking := api.Group("/booking")
	{
		booking.POST("/booked_ccb_res", CreatePropertyBooking(bookings))
		booking.POST("/booked_guesthouse", CreateGuesthouseBooking(bookings))
		booking.POST("/quote", QuoteBooking(bookings))
		booking.PUT("/updateBooking/:id", UpdatePropertyBooking(bookings))
		booking.PUT("/updateGuesthouseBooking/:id", UpdateGuesthouseBooking(bookings))
		booking.DELETE("/deleteBooking/:id", DeletePropertyBooking(bookings))
		booking.DELETE("/deleteGuesthouseBooking/:id", DeleteGuesthouseBooking(bookings))
		booking.GET("/allBookedUser/:userID", ListPropertyBookingsByUser(bookings))
		booking.GET("/allBookedGuesthouses/:userID", ListGuesthouseBookingsByUser(bookings))
	}

	owner := api.Group("/BookedPropertyOwner")
	owner.Use(sessionAuth, middleware.RequireRoles(models.RoleOwner, models.RoleAdmin))
	{
		owner.GET("/allBookedProperties/:OwnerId", ListOwnerPropertyBookings(bookings))
		owner.GET("/allBookedGuesthouses/:OwnerId", ListOwnerGuesthouseBookings(bookings))
		owner.DELETE("/deleteBookedProperty/:id", DeleteOwnerPropertyBooking(bookings))
		owner.DELETE("/deleteGuesthouseBooking/:id", DeleteOwnerGuesthouseBooking(bookings))
	}

	fav := api.Group("/favorites")
	{
		fav.POST("/toggle", ToggleFavorite(favorites))
		fav.GET("/:userId", ListFavorites(favorites))
	}

	return r
}
