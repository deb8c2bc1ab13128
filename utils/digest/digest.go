package digest

// Self-describing content digests for task payloads. The encoded form names
// the hash function ("sha256:<hex>") so a verifier needs no out-of-band
// knowledge of which algorithm produced it.

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Digest is the encoded form, e.g.
// "sha256:2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824".
type Digest string

// SHA256 is the only algorithm currently produced. The algorithms table
// below keeps Parse open to future additions without a format change.
const SHA256 = "sha256"

// hex-encoded digest length per known algorithm
var algorithms = map[string]int{
	SHA256: sha256.Size * 2,
}

// Sum computes the digest of data. Identical bytes always yield an identical
// digest; the function is total over byte sequences.
func Sum(data []byte) Digest {
	h := sha256.Sum256(data)
	return Digest(SHA256 + ":" + hex.EncodeToString(h[:]))
}

// Parse splits an encoded digest into algorithm and raw bytes. It rejects
// unknown algorithms and encodings whose length does not match the algorithm
// it names.
func Parse(d Digest) (algo string, raw []byte, err error) {
	s := string(d)
	idx := strings.IndexByte(s, ':')
	if idx <= 0 || idx == len(s)-1 {
		return "", nil, fmt.Errorf("malformed digest %q", s)
	}
	algo = s[:idx]
	encoded := s[idx+1:]
	want, ok := algorithms[algo]
	if !ok {
		return "", nil, fmt.Errorf("unknown digest algorithm %q", algo)
	}
	if len(encoded) != want {
		return "", nil, fmt.Errorf("digest length %d does not match %s (want %d)", len(encoded), algo, want)
	}
	raw, err = hex.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("malformed digest %q: %w", s, err)
	}
	return algo, raw, nil
}

// Verify recomputes the digest of data using the algorithm d names and
// compares. A mismatch means the stored bytes no longer match what was
// digested at creation time.
func Verify(data []byte, d Digest) error {
	algo, _, err := Parse(d)
	if err != nil {
		return err
	}
	// single entry today; the switch keeps Verify aligned with Parse
	switch algo {
	case SHA256:
		if got := Sum(data); got != d {
			return fmt.Errorf("digest mismatch: stored %s, computed %s", d, got)
		}
		return nil
	default:
		return fmt.Errorf("unknown digest algorithm %q", algo)
	}
}
