package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumDeterministic(t *testing.T) {
	a := Sum([]byte("hello"))
	b := Sum([]byte("hello"))
	assert.Equal(t, a, b)

	c := Sum([]byte("hello!"))
	assert.NotEqual(t, a, c)
}

func TestSumKnownValue(t *testing.T) {
	// sha256("hello")
	want := "sha256:2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	assert.Equal(t, Digest(want), Sum([]byte("hello")))
}

func TestSumEmpty(t *testing.T) {
	d := Sum(nil)
	assert.True(t, strings.HasPrefix(string(d), "sha256:"))
	assert.Equal(t, Sum([]byte{}), d)
}

func TestParseRoundTrip(t *testing.T) {
	data := []byte("some payload")
	d := Sum(data)

	algo, raw, err := Parse(d)
	assert.NoError(t, err)
	assert.Equal(t, SHA256, algo)

	h := sha256.Sum256(data)
	assert.Equal(t, hex.EncodeToString(h[:]), hex.EncodeToString(raw))
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"sha256",
		"sha256:",
		":abcdef",
		"md5:d41d8cd98f00b204e9800998ecf8427e",
		"sha256:abcd", // wrong length
		"sha256:" + strings.Repeat("zz", 32), // right length, not hex
	}
	for _, c := range cases {
		_, _, err := Parse(Digest(c))
		assert.Error(t, err, "expected error for %q", c)
	}
}

func TestVerify(t *testing.T) {
	data := []byte("payload bytes")
	d := Sum(data)
	assert.NoError(t, Verify(data, d))

	err := Verify([]byte("tampered"), d)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "digest mismatch")
}
