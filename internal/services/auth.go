package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"stays-backend/internal/models"
	"stays-backend/internal/password"
	"stays-backend/internal/validation"
)

const (
	VerifyOTPTTL = 24 * time.Hour
	ResetOTPTTL  = 15 * time.Minute
)

// Mailer delivers plain-text mail.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

type AuthService struct {
	users  UserRepository
	mailer Mailer
	now    func() time.Time
	newOTP func() (string, error)
}

func NewAuthService(users UserRepository, mailer Mailer) *AuthService {
	return &AuthService{users: users, mailer: mailer, now: time.Now, newOTP: generateOTP}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return models.User{}, invalid("register", "Missing details")
	}
	if !validation.IsEmail(email) {
		return models.User{}, invalid("email", "Invalid email format")
	}
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleOwner {
		return models.User{}, invalid("role", "Role must be user or owner")
	}
	if check := password.Check(in.Password); !check.IsValid {
		return models.User{}, invalid("password", check.Message)
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return models.User{}, err
	}
	now := s.now()
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, &ConflictError{Message: "User already exists"}
		}
		return models.User{}, err
	}

	if err := s.mailer.Send(ctx, user.Email, "Welcome", fmt.Sprintf("Welcome %s, your account has been created with email %s.", user.Name, user.Email)); err != nil {
		log.Println("[AUTH] [WARN] welcome mail failed:", err)
	}
	return user, nil
}

// Login returns the account matching the credentials or ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, pw string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || pw == "" {
		return models.User{}, invalid("login", "Email and password are required")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if !password.Compare(user.PasswordHash, pw) {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) SendVerifyOTP(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return mapMissing(err, "User", userID)
	}
	if user.IsAccountVerified {
		return invalid("account", "Account already verified")
	}

	otp, err := s.newOTP()
	if err != nil {
		return err
	}
	user.VerifyOTP = hashOTP(otp)
	user.VerifyOTPExpireAt = s.now().Add(VerifyOTPTTL)
	user.UpdatedAt = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.mailer.Send(ctx, user.Email, "Account verification OTP",
		fmt.Sprintf("Your OTP is %s. Verify your account using this OTP.", otp))
}

func (s *AuthService) VerifyAccount(ctx context.Context, userID, otp string) (models.User, error) {
	if strings.TrimSpace(otp) == "" {
		return models.User{}, invalid("otp", "Missing details")
	}
	user, err := s.users.FindByID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return models.User{}, mapMissing(err, "User", userID)
	}
	if err := s.checkOTP(user.VerifyOTP, user.VerifyOTPExpireAt, otp); err != nil {
		return models.User{}, err
	}

	user.IsAccountVerified = true
	user.VerifyOTP = ""
	user.VerifyOTPExpireAt = time.Time{}
	user.UpdatedAt = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *AuthService) SendResetOTP(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return invalid("email", "Email is required")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return mapMissing(err, "User", email)
	}

	otp, err := s.newOTP()
	if err != nil {
		return err
	}
	user.ResetOTP = hashOTP(otp)
	user.ResetOTPExpireAt = s.now().Add(ResetOTPTTL)
	user.UpdatedAt = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.mailer.Send(ctx, user.Email, "Password reset OTP",
		fmt.Sprintf("Your OTP for resetting your password is %s. Use this OTP to proceed with resetting your password.", otp))
}

func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(otp) == "" || newPassword == "" {
		return invalid("reset", "Email, OTP, and new password are required")
	}
	if check := password.Check(newPassword); !check.IsValid {
		return invalid("newPassword", check.Message)
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return mapMissing(err, "User", email)
	}
	if err := s.checkOTP(user.ResetOTP, user.ResetOTPExpireAt, otp); err != nil {
		return err
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.ResetOTP = ""
	user.ResetOTPExpireAt = time.Time{}
	user.UpdatedAt = s.now()
	return s.users.Update(ctx, user)
}

func (s *AuthService) checkOTP(storedHash string, expiresAt time.Time, otp string) error {
	given := hashOTP(strings.TrimSpace(otp))
	if storedHash == "" || subtle.ConstantTimeCompare([]byte(storedHash), []byte(given)) != 1 {
		return invalid("otp", "Invalid OTP")
	}
	if !s.now().Before(expiresAt) {
		return invalid("otp", "OTP expired")
	}
	return nil
}

func hashOTP(otp string) string {
	sum := sha256.Sum256([]byte(otp))
	return hex.EncodeToString(sum[:])
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
