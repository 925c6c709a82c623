package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserID string
	Role   string
}

func SignAccessToken(userID, role string) (string, error) {
	secret := os.Getenv("JWT_ACCESS_SECRET")
	if secret == "" {
		return "", errors.New("JWT_ACCESS_SECRET not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(accessTokenTTL).Unix(),
		"iat":  time.Now().Unix(),
		"type": "access",
	})
	return token.SignedString([]byte(secret))
}

func SignRefreshToken(userID string) (string, error) {
	secret := os.Getenv("JWT_REFRESH_SECRET")
	if secret == "" {
		return "", errors.New("JWT_REFRESH_SECRET not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"exp":  time.Now().Add(refreshTokenTTL).Unix(),
		"iat":  time.Now().Unix(),
		"type": "refresh",
	})
	return token.SignedString([]byte(secret))
}

// VerifyAccessToken parses and validates an access token and extracts its
// subject and role claims.
func VerifyAccessToken(tokenStr string) (*Claims, error) {
	return verify(tokenStr, os.Getenv("JWT_ACCESS_SECRET"), "access")
}

// VerifyRefreshToken validates a refresh token; the role claim is empty.
func VerifyRefreshToken(tokenStr string) (*Claims, error) {
	return verify(tokenStr, os.Getenv("JWT_REFRESH_SECRET"), "refresh")
}

func verify(tokenStr, secret, wantType string) (*Claims, error) {
	if secret == "" {
		return nil, errors.New("JWT secret not set")
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if t, _ := claims["type"].(string); t != wantType {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	role, _ := claims["role"].(string)

	return &Claims{UserID: sub, Role: role}, nil
}
