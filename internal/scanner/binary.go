package scanner

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// BinaryDetectionBytes is the number of leading bytes inspected for a null
// byte, mirroring Git's own binary heuristic.
const BinaryDetectionBytes = 8192

// DefaultMaxFileSize is the default size cap (1 MiB) above which files are
// skipped.
const DefaultMaxFileSize int64 = 1_048_576

// IsBinary reports whether the file at path contains a null byte within
// its first BinaryDetectionBytes bytes. An empty file is not binary.
func IsBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("opening %s for binary detection: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, BinaryDetectionBytes)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading %s for binary detection: %w", path, err)
	}
	if n == 0 {
		return false, nil
	}

	return bytes.IndexByte(buf[:n], 0) != -1, nil
}
