package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// TokenIssuer mints opaque session tokens and their expiry stamps.
// It holds no mutable state; Random and Now are injectable for tests.
type TokenIssuer struct {
	Lifetime time.Duration
	Random   io.Reader
	Now      func() time.Time
}

func NewTokenIssuer(lifetime time.Duration) TokenIssuer {
	return TokenIssuer{Lifetime: lifetime, Random: rand.Reader, Now: time.Now}
}

func (t TokenIssuer) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// MakeToken hashes the current time together with a random UUID.
func (t TokenIssuer) MakeToken() (string, error) {
	r := t.Random
	if r == nil {
		r = rand.Reader
	}
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return "", fmt.Errorf("token entropy: %w", err)
	}

	var stamp [8]byte
	binary.BigEndian.PutUint64(stamp[:], uint64(t.now().UnixNano()))

	h := sha256.New()
	h.Write(stamp[:])
	h.Write(id[:])
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ComputeExpiry returns now + Lifetime in epoch milliseconds.
func (t TokenIssuer) ComputeExpiry(now time.Time) int64 {
	return now.Add(t.Lifetime).UnixMilli()
}

// Issue mints a token and its expiry stamp in one step.
func (t TokenIssuer) Issue() (token string, expiresAt int64, err error) {
	token, err = t.MakeToken()
	if err != nil {
		return "", 0, err
	}
	return token, t.ComputeExpiry(t.now()), nil
}
