package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrTokenExpired = errors.New("token expired")

type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func SignToken(secret string, ttl time.Duration, username string) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("token secret is empty")
	}
	if ttl <= 0 {
		return "", time.Time{}, errors.New("token ttl must be positive")
	}

	now := time.Now()
	expireAt := now.Add(ttl)
	claims := AdminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expireAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expireAt, nil
}

func ParseToken(tokenStr, secret string) (*AdminClaims, error) {
	if tokenStr == "" {
		return nil, errors.New("token is empty")
	}
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, err
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
