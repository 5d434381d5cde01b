package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// FavoritesClaims carries a browser's favorites list inside a signed cookie.
type FavoritesClaims struct {
	PlaceIDs []int64 `json:"ids"`
	jwt.RegisteredClaims
}

// FlashClaims carries a one-shot notification across a redirect.
type FlashClaims struct {
	Kind    string `json:"kind"`
	Message string `json:"msg"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 tokens for one audience. Keys are
// expected to be derived per purpose, so a token minted for one cookie never
// verifies as another.
type JWTManager struct {
	secret   []byte
	audience string
	ttl      time.Duration
}

func NewJWTManager(secret []byte, audience string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: secret, audience: audience, ttl: ttl}
}

func (m *JWTManager) registered(now time.Time) jwt.RegisteredClaims {
	claims := jwt.RegisteredClaims{
		Audience: jwt.ClaimStrings{m.audience},
		IssuedAt: jwt.NewNumericDate(now),
	}
	if m.ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.ttl))
	}
	return claims
}

func (m *JWTManager) SignFavorites(placeIDs []int64) (string, error) {
	if placeIDs == nil {
		placeIDs = []int64{}
	}
	claims := FavoritesClaims{
		PlaceIDs:         placeIDs,
		RegisteredClaims: m.registered(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *JWTManager) ParseFavorites(tokenString string) ([]int64, error) {
	claims := &FavoritesClaims{}
	if err := m.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims.PlaceIDs, nil
}

func (m *JWTManager) SignFlash(kind, message string) (string, error) {
	claims := FlashClaims{
		Kind:             kind,
		Message:          message,
		RegisteredClaims: m.registered(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *JWTManager) ParseFlash(tokenString string) (*FlashClaims, error) {
	claims := &FlashClaims{}
	if err := m.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (m *JWTManager) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithAudience(m.audience), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
