package meeting

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/spoc-booking/internal/config"
)

// LinkBuilder issues signed meeting links for confirmed bookings. The token
// embedded in the link authorizes joining the meeting room until it expires.
type LinkBuilder struct {
	baseURL string
	secret  []byte
	ttl     time.Duration
}

// NewLinkBuilder builds a new link builder from config.
func NewLinkBuilder(cfg config.MeetingConfig) *LinkBuilder {
	ttlMinutes := cfg.TokenTTLMinutes
	if ttlMinutes <= 0 {
		ttlMinutes = 14 * 24 * 60
	}
	return &LinkBuilder{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		secret:  []byte(cfg.JWTSecret),
		ttl:     time.Duration(ttlMinutes) * time.Minute,
	}
}

// Claims describes the meeting token payload.
type Claims struct {
	BookingID string `json:"booking_id"`
	SpocID    int    `json:"spoc_id"`
	jwt.RegisteredClaims
}

// BuildLink returns the meeting URL for a booking, carrying a signed token.
func (b *LinkBuilder) BuildLink(bookingID string, spocID int) (string, error) {
	token, err := b.signToken(bookingID, spocID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/booking/%s?token=%s", b.baseURL, bookingID, token), nil
}

func (b *LinkBuilder) signToken(bookingID string, spocID int) (string, error) {
	claims := &Claims{
		BookingID: bookingID,
		SpocID:    spocID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   bookingID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(b.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(b.secret)
}

// ParseToken validates a meeting token and returns its claims.
func (b *LinkBuilder) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return b.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
