package utils

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// RoleClub is the role claim carried by club operator sessions.
	RoleClub = "club"

	tokenIssuer = "poker-club-hub"
)

var (
	jwtMu          sync.RWMutex
	jwtSecretKey   []byte
	accessTokenTTL = 72 * time.Hour
)

// ErrJWTNotConfigured is returned when tokens are issued or checked before ConfigureJWT.
var ErrJWTNotConfigured = errors.New("jwt secret not configured")

// Claims defines the JWT claims structure
type Claims struct {
	ClubID string `json:"club_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ConfigureJWT sets the signing secret and the lifetime of issued tokens.
func ConfigureJWT(secret string, ttl time.Duration) error {
	if secret == "" {
		return ErrJWTNotConfigured
	}
	jwtMu.Lock()
	defer jwtMu.Unlock()
	jwtSecretKey = []byte(secret)
	if ttl > 0 {
		accessTokenTTL = ttl
	}
	return nil
}

func signingKey() ([]byte, time.Duration, error) {
	jwtMu.RLock()
	defer jwtMu.RUnlock()
	if len(jwtSecretKey) == 0 {
		return nil, 0, ErrJWTNotConfigured
	}
	return jwtSecretKey, accessTokenTTL, nil
}

// GenerateClubToken creates a session token for the operator of a club.
func GenerateClubToken(clubID string) (string, time.Time, error) {
	key, ttl, err := signingKey()
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		ClubID: clubID,
		Role:   RoleClub,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clubID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign club token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateToken parses and validates a JWT token string.
// It returns the claims if the token is valid, otherwise an error.
func ValidateToken(tokenString string) (*Claims, error) {
	key, _, err := signingKey()
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.ClubID == "" {
		return nil, fmt.Errorf("token carries no club")
	}

	return claims, nil
}
