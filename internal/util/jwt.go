package util

import (
	"errors"
	"humaniq_backend/internal/model"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the session token minted by the HumaniQ auth service.
type Claims struct {
	UserID    string         `json:"userId"`
	Role      model.UserRole `json:"role"`
	EmpresaID string         `json:"empresaId,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWT signs a token. Used by tooling and tests; production tokens come from the auth service.
func GenerateJWT(userID string, role model.UserRole, empresaID, secret string, expiration time.Duration) (string, error) {
	claims := &Claims{
		UserID:    userID,
		Role:      role,
		EmpresaID: empresaID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.UserID == "" || claims.Role == "" {
		return nil, errors.New("token is missing userId or role")
	}
	return claims, nil
}

func GetUserFromContext(c *gin.Context) *Claims {
	user, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := user.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// Actor is the caller identity handed to services.
func (c *Claims) Actor() model.Actor {
	return model.Actor{ID: c.UserID, Role: c.Role, EmpresaID: c.EmpresaID}
}
