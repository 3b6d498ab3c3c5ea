package sicontent

import (
	"io"
	"os"
	"path/filepath"

	"github.com/aweris/sicontent/internal/digest"
)

// ReadFileWithHash reads the whole file at path and returns its bytes with
// the digest computed from that same buffer.
func ReadFileWithHash(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", ioError("read file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", ioError("read file", err)
	}
	return data, digest.Sum(data), nil
}

// ReadPackage reads the package at path and keys it by its base name.
func ReadPackage(path string) (PackageKey, []byte, error) {
	data, hash, err := ReadFileWithHash(path)
	if err != nil {
		return PackageKey{}, nil, err
	}
	return PackageKey{Name: filepath.Base(path), Hash: hash}, data, nil
}
