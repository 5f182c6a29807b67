package helpers

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

type SignedDetails struct {
	Username string
	Email    string
	Uid      int64
	Roles    []string
	jwt.StandardClaims
}

// TokenHelper signs and validates HS256 JWTs with an injected secret.
type TokenHelper struct {
	secretKey string
}

func NewTokenHelper(secretKey string) *TokenHelper {
	return &TokenHelper{secretKey: secretKey}
}

// GenerateAllTokens returns an access token and a refresh token for the
// user. Only the access token carries the identity claims.
func (h *TokenHelper) GenerateAllTokens(username, email string, uid int64, roles []string) (string, string, error) {
	claim := SignedDetails{
		Username: username,
		Email:    email,
		Uid:      uid,
		Roles:    roles,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	refreshClaim := SignedDetails{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(7 * 24 * time.Hour).Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claim).SignedString([]byte(h.secretKey))
	if err != nil {
		return "", "", err
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaim).SignedString([]byte(h.secretKey))
	if err != nil {
		return "", "", err
	}
	return token, refreshToken, nil
}

// ValidateToken parses a signed token and returns its claims.
func (h *TokenHelper) ValidateToken(signedToken string) (*SignedDetails, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(h.secretKey), nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("the token is invalid")
	}
	if claims.ExpiresAt < time.Now().Unix() {
		return nil, fmt.Errorf("token is expired")
	}
	return claims, nil
}
