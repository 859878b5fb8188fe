package compare

import (
	"bytes"
	"fmt"
	"os"
)

// pycHeaderSize is the size of CPython's .pyc header: a 4-byte magic
// number followed by a 4-byte source mtime/hash field. Only the header
// carries build-time-derived bytes; the marshaled code object that
// follows is deterministic for identical source.
const pycHeaderSize = 8

// equalByteCompiled compares two byte-compiled module caches, skipping
// the embedded source-timestamp header per spec.md §4.1.
func (c *Comparator) equalByteCompiled(a, b string) (bool, error) {
	ca, err := os.ReadFile(a)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", a, err)
	}
	cb, err := os.ReadFile(b)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", b, err)
	}
	return bytes.Equal(skipHeader(ca), skipHeader(cb)), nil
}

func skipHeader(content []byte) []byte {
	if len(content) < pycHeaderSize {
		return content
	}
	return content[pycHeaderSize:]
}
