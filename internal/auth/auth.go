package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"oldbaku_hotel/internal/domain"
)

const roleOwner = "owner"

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service authenticates the single admin principal and issues HS256
// bearer tokens for the room-edit endpoint.
type Service struct {
	adminEmail   string
	passwordHash string // bcrypt
	secret       []byte
	tokenTTL     time.Duration
}

func New(adminEmail, passwordHash, secret string, tokenTTL time.Duration) *Service {
	return &Service{
		adminEmail:   adminEmail,
		passwordHash: passwordHash,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
	}
}

// Login returns a signed token, or ErrUnauthorized on any credential
// mismatch. The two failure causes are indistinguishable to the caller.
func (s *Service) Login(email, password string) (string, error) {
	if s.adminEmail == "" || email != s.adminEmail {
		return "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}
	now := time.Now()
	claims := Claims{
		Role: roleOwner,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Role != roleOwner {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// HashPassword produces the bcrypt hash expected in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
