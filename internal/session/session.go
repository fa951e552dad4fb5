// Package session issues the signed session token and carries it in the token cookie.
package session

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"stays-backend/internal/models"
)

const CookieName = "token"

var ErrInvalidToken = errors.New("invalid session token")

type Claims struct {
	UserID string
	Role   models.Role
}

type Manager struct {
	secret     []byte
	ttl        time.Duration
	production bool
}

func NewManager(secret string, ttl time.Duration, production bool) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, production: production}
}

func (m *Manager) Issue(userID string, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   string(role),
		"exp":    time.Now().Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) Parse(raw string) (Claims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	userID, _ := claims["userId"].(string)
	if strings.TrimSpace(userID) == "" {
		return Claims{}, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	return Claims{UserID: userID, Role: models.Role(role)}, nil
}

// SetCookie stores token in an httpOnly cookie. Production cookies are Secure and
// SameSite=None so the separately hosted client can send them.
func (m *Manager) SetCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, m.cookie(token, int(m.ttl/time.Second)))
}

func (m *Manager) ClearCookie(c *gin.Context) {
	http.SetCookie(c.Writer, m.cookie("", -1))
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteStrictMode
	if m.production {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.production,
		SameSite: sameSite,
	}
}

// TokenFrom reads the session cookie, falling back to a Bearer Authorization header.
func TokenFrom(c *gin.Context) string {
	if value, err := c.Cookie(CookieName); err == nil && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
