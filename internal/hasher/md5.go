// Package hasher computes the content digests used to verify firmware images
// against the MD5 attributes of a flash manifest.
package hasher

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"

	dagerrors "github.com/irixaligned/swat/internal/errors"
)

// Digest returns the lower-case hex MD5 of the file at path. The file is
// streamed, so memory use does not grow with image size.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", dagerrors.NewIOError(path, "opening image for MD5", err)
	}
	defer f.Close()

	sum, err := DigestReader(f)
	if err != nil {
		return "", dagerrors.NewIOError(path, "reading image for MD5", err)
	}
	return sum, nil
}

// DigestReader returns the lower-case hex MD5 of everything read from r.
func DigestReader(r io.Reader) (string, error) {
	h := md5.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
