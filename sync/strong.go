package sync

import "crypto/sha256"

// StrongHash computes the SHA-256 digest of buf. The signature builder
// computes it once per block; the delta scanner only computes it to
// disambiguate a weak-hash hit, never as the first line of comparison — that
// is the performance lever of the whole scheme.
func StrongHash(buf []byte) [32]byte {
	return sha256.Sum256(buf)
}
