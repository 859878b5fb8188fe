package compare

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MagicClassifier detects Format by sniffing each file's magic bytes,
// per spec.md §9's "regex-over-magic-string classifier".
type MagicClassifier struct{}

func NewMagicClassifier() *MagicClassifier {
	return &MagicClassifier{}
}

func (MagicClassifier) Classify(path string) (Format, error) {
	if f, ok := extensionFormat[strings.ToLower(filepath.Ext(path))]; ok {
		return f, nil
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to sniff %s: %w", path, err)
	}

	for mt := mtype; mt != nil; mt = mt.Parent() {
		// text types carry a "; charset=..." parameter; match on the bare type.
		name, _, _ := strings.Cut(mt.String(), ";")
		if f, ok := formatByMIME[strings.TrimSpace(name)]; ok {
			return f, nil
		}
	}
	return FormatUnknown, nil
}

// formatByMIME maps the mimetype library's detected MIME strings onto
// the Format variants the comparator dispatches on. typelib and
// byte-compiled formats have no registered magic signature of their
// own in the library, so Classify matches them by extension via
// extensionFormat before sniffing.
var formatByMIME = map[string]Format{
	"application/x-elf": FormatELF,
	"text/html":         FormatHTML,
	"application/zip":   FormatZip,
	"application/jar":   FormatZip,
	"application/gzip":  FormatGzip,
}

// extensionFormat recognizes formats the magic-sniffing library has no
// signature for: GObject-Introspection typelibs and Python's
// byte-compiled module cache, both of which are otherwise
// undistinguishable from "unknown binary blob" by content alone.
var extensionFormat = map[string]Format{
	".typelib": FormatTypelib,
	".pyc":     FormatByteCompiled,
}
