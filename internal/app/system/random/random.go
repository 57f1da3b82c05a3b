// internal/app/system/random/random.go

// Package random generates the identifiers used across group documents:
// UUIDs for entities and short alphanumeric invite codes for joining.
package random

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// inviteAlphabet intentionally excludes punctuation so codes are easy
// to share verbally or in a URL path segment.
const inviteAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// InviteCodeLen is the fixed length of invite codes.
const InviteCodeLen = 15

// NewID returns a fresh UUIDv4 string for groups, users, and structures.
func NewID() string {
	return uuid.NewString()
}

// NewInviteCode returns a 15-character code over [0-9A-Za-z], drawn
// from crypto/rand. Collision handling is the caller's job: the store
// enforces uniqueness and Insert fails on a clash rather than retrying.
func NewInviteCode() string {
	max := big.NewInt(int64(len(inviteAlphabet)))
	buf := make([]byte, InviteCodeLen)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the platform is broken;
			// there is no sane fallback for a join credential.
			panic("random: " + err.Error())
		}
		buf[i] = inviteAlphabet[n.Int64()]
	}
	return string(buf)
}
