package compare

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

// equalGzip compares two gzip members by their decompressed content,
// ignoring the embedded original-name and modification-time header
// fields gzip itself stores alongside the compressed payload.
func (c *Comparator) equalGzip(a, b string) (bool, error) {
	ca, err := decompressGzip(a)
	if err != nil {
		return false, err
	}
	cb, err := decompressGzip(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ca, cb), nil
}

func decompressGzip(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream of %s: %w", path, err)
	}
	defer r.Close()

	return io.ReadAll(r)
}
