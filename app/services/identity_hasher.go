// Package services provides external service integrations and technical concerns like hashing and address resolution
package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// Identity hasher error constants
var (
	ErrHashSaltMissing = errors.New("hash salt is not configured")
)

// UnknownAddress is stored in place of an address when no forwarding header
// identifies the client.
const UnknownAddress = "unknown"

// IdentityHasher derives a stable, non-reversible fingerprint of a submitter
// network address, salted with a server-held secret. The digest is
// deterministic so later submissions from the same address correlate without
// ever storing the raw address.
type IdentityHasher interface {
	HashAddress(rawAddress string) (string, error)
}

// IdentityHasherImpl implements IdentityHasher using SHA-256
type IdentityHasherImpl struct {
	salt string
}

// NewIdentityHasher creates a new identity hasher with the given salt.
// An empty salt is accepted here and rejected per call, so that a
// misconfigured deployment fails the requests that need hashing instead of
// silently hashing unsalted.
func NewIdentityHasher(salt string) IdentityHasher {
	return &IdentityHasherImpl{salt: salt}
}

// HashAddress returns the hex-encoded SHA-256 digest of rawAddress
// concatenated with the salt. No truncation.
func (h *IdentityHasherImpl) HashAddress(rawAddress string) (string, error) {
	if h.salt == "" {
		return "", ErrHashSaltMissing
	}
	sum := sha256.Sum256([]byte(rawAddress + h.salt))
	return hex.EncodeToString(sum[:]), nil
}

// ResolveClientAddress picks the best-effort client address from proxy
// headers: the first comma-separated entry of X-Forwarded-For, else
// X-Real-IP, else UnknownAddress. Multiple clients behind the same proxy may
// collapse to the same value; that is accepted.
func ResolveClientAddress(forwardedFor, realIP string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if trimmed := strings.TrimSpace(first); trimmed != "" {
			return trimmed
		}
	}
	if realIP != "" {
		return realIP
	}
	return UnknownAddress
}
