package sicontent

import (
	"github.com/aweris/sicontent/internal/digest"
	"github.com/aweris/sicontent/internal/transfer"
)

// ProgressFunc receives (bytes sent, bytes total) while a package uploads.
// Re-exported from internal/transfer for convenience.
type ProgressFunc = transfer.ProgressFunc

// PackageKey identifies a package in the content service.
type PackageKey struct {
	Name string `json:"name"`
	Hash string `json:"hash"` // base64 SHA-1 of the package bytes
}

// NewPackageKey derives the key of data stored under name.
func NewPackageKey(name string, data []byte) PackageKey {
	return PackageKey{Name: name, Hash: digest.Sum(data)}
}

// HashToken returns the URL-safe form of the digest.
func (k PackageKey) HashToken() string { return digest.Token(k.Hash) }

// NameToken returns the percent-encoded package name.
func (k PackageKey) NameToken() string { return digest.NameToken(k.Name) }

// Matches reports whether the key's digest was computed from data.
func (k PackageKey) Matches(data []byte) bool { return digest.Sum(data) == k.Hash }

// UploadResult is the outcome of UploadIfNotExists.
type UploadResult struct {
	URI           string `json:"uri"`
	AlreadyExists bool   `json:"alreadyExists"`
}

// CalculateHash returns the canonical digest text of data.
func CalculateHash(data []byte) string { return digest.Sum(data) }
