// Package auth signs and verifies the value carried by the session cookie.
//
// The cookie holds an HS256 token whose subject is the account's opaque
// session id. Verifying the signature only proves the server issued the
// value; the session id must still resolve to an account.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const CookieName = "sessionId"

var (
	ErrMissingSecret = errors.New("missing secret")
	ErrInvalidToken  = errors.New("invalid session token")
)

type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	Secret string
	MaxAge time.Duration
	Issuer string
}

func DefaultTokenConfig(secret string) TokenConfig {
	return TokenConfig{
		Secret: secret,
		MaxAge: 7 * 24 * time.Hour,
		Issuer: "daily-diet-api",
	}
}

func SignSession(sessionID string, cfg TokenConfig) (string, error) {
	return signSessionAt(sessionID, cfg, time.Now())
}

func signSessionAt(sessionID string, cfg TokenConfig, now time.Time) (string, error) {
	if cfg.Secret == "" {
		return "", ErrMissingSecret
	}
	if sessionID == "" {
		return "", errors.New("missing session id")
	}
	if cfg.MaxAge <= 0 {
		return "", errors.New("invalid max age")
	}

	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.MaxAge)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// VerifySession returns the session id carried by a signed cookie value.
func VerifySession(tokenString string, cfg TokenConfig) (string, error) {
	if cfg.Secret == "" {
		return "", ErrMissingSecret
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, opts...)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return "", ErrInvalidToken
	}
	return claims.SessionID, nil
}
