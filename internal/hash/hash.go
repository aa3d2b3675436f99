// Package hash computes content digests for stored files.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// ChunkSize is the read size used by File (1 MiB).
const ChunkSize = 1024 * 1024

// File returns the hex-encoded SHA-256 digest of the file at path, reading it
// in ChunkSize pieces.
func File(path string) (string, error) {
	return FileWithChunkSize(path, ChunkSize)
}

// FileWithChunkSize is File with a caller-chosen read size. The digest does
// not depend on chunkSize.
func FileWithChunkSize(path string, chunkSize int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Reader(f, chunkSize)
}

// Reader folds r into a SHA-256 state chunkSize bytes at a time until EOF.
func Reader(r io.Reader, chunkSize int) (string, error) {
	if chunkSize <= 0 {
		return "", fmt.Errorf("invalid chunk size: %d", chunkSize)
	}

	h := sha256.New()
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading file: %w", err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
