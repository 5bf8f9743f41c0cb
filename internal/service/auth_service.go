package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lit-planner/scheduler-api/internal/models"
	"github.com/lit-planner/scheduler-api/pkg/config"
	appErrors "github.com/lit-planner/scheduler-api/pkg/errors"
)

// AuthService validates access tokens issued by the auth module. The
// scheduler never issues or refreshes tokens; it only trusts validated
// claims.
type AuthService struct {
	secret []byte
}

// NewAuthService constructs the validator from JWT configuration.
func NewAuthService(cfg config.JWTConfig) *AuthService {
	return &AuthService{secret: []byte(cfg.Secret)}
}

// ValidateToken parses and verifies an HS256 access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}
