package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wejdenmesaoud/cashback/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// Mint issues a signed JWT whose subject is the username. The token carries
// only identity: roles are resolved from storage on every request.
func Mint(cfg config.JWTConfig, now time.Time, username string) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}
	if cfg.Issuer == "" {
		return "", fmt.Errorf("jwt issuer is required")
	}
	if cfg.ExpirationMinutes <= 0 {
		return "", fmt.Errorf("jwt expiration minutes must be positive")
	}
	if strings.TrimSpace(username) == "" {
		return "", fmt.Errorf("username is required")
	}

	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL())),
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// Verify validates signature and expiry and returns the token's subject.
// Failures carry a *VerifyError whose kind separates expired, malformed,
// unsupported, and tampered tokens.
func Verify(cfg config.JWTConfig, tokenString string) (string, error) {
	return verifyAt(cfg, tokenString, time.Now)
}

func verifyAt(cfg config.JWTConfig, tokenString string, now func() time.Time) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return "", classify(err)
	}

	if claims.Subject == "" {
		return "", &VerifyError{Kind: KindMalformed, cause: fmt.Errorf("missing subject claim")}
	}
	return claims.Subject, nil
}

func classify(err error) *VerifyError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return &VerifyError{Kind: KindExpired, cause: err}
	case errors.Is(err, jwt.ErrTokenMalformed):
		return &VerifyError{Kind: KindMalformed, cause: err}
	case errors.Is(err, jwt.ErrTokenUnverifiable), errors.Is(err, jwt.ErrTokenSignatureInvalid) && isAlgMismatch(err):
		return &VerifyError{Kind: KindUnsupported, cause: err}
	default:
		return &VerifyError{Kind: KindInvalidSignature, cause: err}
	}
}

func isAlgMismatch(err error) bool {
	return strings.Contains(err.Error(), "signing method")
}
