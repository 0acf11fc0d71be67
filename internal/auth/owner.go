package auth

import (
	"crypto/sha256"
	"crypto/subtle"
)

// OwnerGate checks the shared owner passphrase. The comparison is
// isolated here so the backing secret can move to a hash store without
// touching callers.
type OwnerGate struct {
	digest [32]byte
}

func NewOwnerGate(passphrase string) *OwnerGate {
	return &OwnerGate{digest: sha256.Sum256([]byte(passphrase))}
}

// Check compares in constant time over fixed-length digests so neither
// content nor length leaks through timing.
func (g *OwnerGate) Check(candidate string) bool {
	candidateDigest := sha256.Sum256([]byte(candidate))
	return subtle.ConstantTimeCompare(g.digest[:], candidateDigest[:]) == 1
}
