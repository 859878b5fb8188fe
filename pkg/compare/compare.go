// Package compare implements the Content Comparator (CC): a
// content-aware, timestamp-insensitive equivalence relation over pairs
// of files, dispatched by detected format.
package compare

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Format is the tagged variant CC dispatches on, per spec.md §9.
type Format string

const (
	FormatELF          Format = "elf"
	FormatTypelib      Format = "typelib"
	FormatHTML         Format = "html"
	FormatByteCompiled Format = "byte-compiled"
	FormatZip          Format = "zip"
	FormatGzip         Format = "gzip"
	FormatUnknown      Format = "unknown"
)

// Classifier detects a file's Format from its content (magic bytes),
// an external collaborator per spec.md §6.
type Classifier interface {
	Classify(path string) (Format, error)
}

// External drives the disassembler and type-library dumper tools CC
// defers to for elf and typelib comparison, per spec.md §6.
type External interface {
	// Disassemble returns the textual disassembly of an ELF object as
	// the tool prints it; the comparator strips the filename line.
	Disassemble(path string) (string, error)
	// DumpTypelib emits the full symbol dump of a GObject-Introspection
	// typelib.
	DumpTypelib(path string) (string, error)
}

// Comparator is the Content Comparator.
type Comparator struct {
	Classifier Classifier
	External   External
}

func New(classifier Classifier, external External) *Comparator {
	return &Comparator{Classifier: classifier, External: external}
}

// Equal decides whether two files are semantically equal given their
// detected formats, per spec.md §4.1. Cross-format pairs, and files of
// unknown format, are reported different with a warning, never fatal.
func (c *Comparator) Equal(a, b string) (bool, error) {
	fa, err := c.Classifier.Classify(a)
	if err != nil {
		return false, fmt.Errorf("failed to classify %s: %w", a, err)
	}
	fb, err := c.Classifier.Classify(b)
	if err != nil {
		return false, fmt.Errorf("failed to classify %s: %w", b, err)
	}

	if fa != fb {
		log.Warnf("%s is %s but %s is %s, treating as different", a, fa, b, fb)
		return false, nil
	}

	switch fa {
	case FormatELF:
		return c.equalELF(a, b)
	case FormatTypelib:
		return c.equalTypelib(a, b)
	case FormatHTML:
		return c.equalHTML(a, b)
	case FormatByteCompiled:
		return c.equalByteCompiled(a, b)
	case FormatZip:
		return c.equalZip(a, b)
	case FormatGzip:
		return c.equalGzip(a, b)
	default:
		log.Warnf("%s and %s have unrecognized format %s, treating as different", a, b, fa)
		return false, nil
	}
}
