// Package digest computes package content digests and the path tokens the
// content service addresses packages by.
//
// A digest is the standard base64 rendering of the SHA-1 of the package
// bytes. The same text travels in the upload header, so it must not be
// altered; the URL-safe form is only ever derived from it.
package digest

import (
	"crypto/sha1"
	"encoding/base64"
	"strings"
)

// Size is the length in bytes of a raw digest.
const Size = sha1.Size

// Sum returns the canonical digest text of data.
func Sum(data []byte) string {
	h := sha1.Sum(data)
	return base64.StdEncoding.EncodeToString(h[:])
}

// Token turns a canonical digest into a path segment: '+' becomes '-',
// '/' becomes '_' and trailing '=' padding is dropped.
func Token(d string) string {
	d = strings.TrimRight(d, "=")
	return strings.NewReplacer("+", "-", "/", "_").Replace(d)
}

// FromToken reverses Token, restoring the standard alphabet and the padding
// implied by the token length.
func FromToken(token string) string {
	d := strings.NewReplacer("-", "+", "_", "/").Replace(token)
	if n := len(d) % 4; n != 0 {
		d += strings.Repeat("=", 4-n)
	}
	return d
}

// Valid reports whether d is a canonical digest of the expected length.
func Valid(d string) bool {
	raw, err := base64.StdEncoding.Strict().DecodeString(d)
	return err == nil && len(raw) == Size
}

// NameToken percent-encodes name so it can be used as a single path
// segment. Only RFC 3986 unreserved characters are left as-is; every other
// byte of the UTF-8 encoding is escaped, so "pack.zip" stays unchanged while
// spaces, slashes and non-ASCII letters are escaped.
func NameToken(name string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
