package service

import (
	"errors"
	"time"

	"github.com/examhub/examhub/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

type JWTService struct {
	secretKey string
	expiry    time.Duration
}

func NewJWTService(secretKey string, expiry time.Duration) *JWTService {
	return &JWTService{
		secretKey: secretKey,
		expiry:    expiry,
	}
}

// GenerateToken creates a signed JWT for the user. The claims carry only the
// public projection; the password hash and the secret codes stay out.
func (s *JWTService) GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":      user.ID,
		"email":        user.Email,
		"phone":        user.Phone,
		"first_name":   user.FirstName,
		"last_name":    user.LastName,
		"role":         user.Role,
		"is_activated": user.IsActivated,
		"exp":          now.Add(s.expiry).Unix(),
		"iat":          now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates the JWT token and returns the claims
func (s *JWTService) ValidateToken(tokenString string) (*jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return &claims, nil
	}

	return nil, errors.New("invalid token")
}

// UserIDFromClaims extracts the user id from validated claims
func UserIDFromClaims(claims *jwt.MapClaims) (uint, bool) {
	if claims == nil {
		return 0, false
	}
	if raw, ok := (*claims)["user_id"]; ok {
		if idFloat, ok := raw.(float64); ok {
			return uint(idFloat), true
		}
	}
	return 0, false
}
