package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/subodh53/BookMySlot/internal/domain"
	"github.com/subodh53/BookMySlot/internal/store"
)

// ErrInvalidCredentials is returned on login failure without revealing
// whether the identifier or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

type Service struct {
	users    store.UserRepository
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewService(users store.UserRepository, secret []byte, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &Service{
		users:    users,
		secret:   secret,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Username string
	Password string
	Timezone string
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (domain.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.ToLower(strings.TrimSpace(in.Username))

	if name == "" || email == "" || username == "" || in.Password == "" {
		return domain.User{}, "", validationError("name, email, username and password are required")
	}
	if !strings.Contains(email, "@") {
		return domain.User{}, "", validationError("invalid email")
	}
	if len(in.Password) < 8 {
		return domain.User{}, "", validationError("password must be at least 8 characters")
	}

	tz := strings.TrimSpace(in.Timezone)
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return domain.User{}, "", validationError("invalid timezone")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", err
	}

	user, err := s.users.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Timezone:     tz,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return domain.User{}, "", validationError("email already in use")
		}
		if errors.Is(err, store.ErrUsernameTaken) {
			return domain.User{}, "", validationError("username already in use")
		}
		return domain.User{}, "", err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

type LoginInput struct {
	EmailOrUsername string
	Password        string
}

func (s *Service) Login(ctx context.Context, in LoginInput) (domain.User, string, error) {
	identifier := strings.ToLower(strings.TrimSpace(in.EmailOrUsername))
	if identifier == "" || in.Password == "" {
		return domain.User{}, "", validationError("identifier and password are required")
	}

	user, err := s.users.ByEmailOrUsername(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (s *Service) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	return s.users.ByID(ctx, userID)
}

func (s *Service) issueToken(userID uuid.UUID) (string, error) {
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
