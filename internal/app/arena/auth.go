package arena

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type guestClaims struct {
	PlayerId string `json:"playerId"`
	jwt.RegisteredClaims
}

// issueGuestToken mints an HMAC-signed token carrying a fresh player id.
func (s *Server) issueGuestToken() (string, string, error) {
	playerId := uuid.NewString()
	claims := guestClaims{
		PlayerId: playerId,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.config.AuthSecret))
	if err != nil {
		return "", "", err
	}
	return playerId, token, nil
}

func (s *Server) validateGuestToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&guestClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(s.config.AuthSecret), nil
		},
	)
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*guestClaims)
	if !ok || claims.PlayerId == "" {
		return "", ErrInvalidToken
	}
	return claims.PlayerId, nil
}

// auth resolves the player id for an incoming connection. With auth disabled
// every connection gets an anonymous id.
func (s *Server) auth(r *http.Request) (string, error) {
	if !s.config.AuthEnabled {
		return uuid.NewString(), nil
	}
	token := r.URL.Query().Get("token")
	if token == "" {
		return "", ErrNoToken
	}
	return s.validateGuestToken(token)
}
