package jwtmw

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const stateAudience = "oauth-state"

// ErrInvalidState is returned when an OAuth state fails verification.
var ErrInvalidState = errors.New("invalid oauth state")

// StateSigner issues short-lived signed OAuth state values so the callback needs no
// server-side storage.
type StateSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewStateSigner creates a StateSigner.
func NewStateSigner(secret string, ttl time.Duration) *StateSigner {
	return &StateSigner{secret: []byte(secret), ttl: ttl}
}

// Issue returns a new signed state.
func (s *StateSigner) Issue() (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to read nonce: %w", err)
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        hex.EncodeToString(nonce),
		Audience:  jwt.ClaimStrings{stateAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign state: %w", err)
	}
	return signed, nil
}

// Verify checks signature, audience and expiry of state.
func (s *StateSigner) Verify(state string) error {
	claims, err := parse(state, s.secret)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	aud, err := claims.GetAudience()
	if err != nil || len(aud) != 1 || aud[0] != stateAudience {
		return ErrInvalidState
	}
	return nil
}
