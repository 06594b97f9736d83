package extract

import (
	"encoding/hex"
	"io"
	"os"

	"golang.org/x/crypto/sha3"
)

// Digest returns the hex SHA3-256 of the raw file at path.
func Digest(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Submission paths come from the assignments folder
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha3.New256()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
