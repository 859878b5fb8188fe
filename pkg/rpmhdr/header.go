package rpmhdr

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sassoftware/go-rpmutils"

	"github.com/buildreqmin/buildreqmin/pkg/rpmapi"
)

// BuiltPackage carries a path to a built binary archive plus a
// lazily-accessed header and file list, per spec.md §3.
type BuiltPackage struct {
	Path string

	hdr   *rpmutils.Header
	tags  map[Tag]string
	files []FileEntry
}

func NewBuiltPackage(path string) *BuiltPackage {
	return &BuiltPackage{Path: path}
}

func (p *BuiltPackage) header() (*rpmutils.Header, error) {
	if p.hdr != nil {
		return p.hdr, nil
	}
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", p.Path, err)
	}
	defer f.Close()

	rpm, err := rpmutils.ReadRpm(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read rpm header of %s: %w", p.Path, err)
	}
	p.hdr = rpm.Header
	return p.hdr, nil
}

// Tags returns every recognized header tag and its string value,
// skipping tags that aren't present. "Not found" sentinels are
// normalized to absence.
func (p *BuiltPackage) Tags() (map[Tag]string, error) {
	if p.tags != nil {
		return p.tags, nil
	}
	h, err := p.header()
	if err != nil {
		return nil, err
	}
	out := map[Tag]string{}
	for _, t := range allHeaderTags {
		v, err := tagValue(h, t)
		if err != nil || v == "" || v == notFoundSentinel {
			continue
		}
		out[t] = v
	}
	p.tags = out
	return out, nil
}

func tagValue(h *rpmutils.Header, t Tag) (string, error) {
	id, ok := tagID[t]
	if !ok {
		return "", fmt.Errorf("unrecognized tag %s", t)
	}
	if vals, err := h.GetStrings(id); err == nil && len(vals) > 0 {
		if len(vals) == 1 {
			return vals[0], nil
		}
		return fmt.Sprintf("%v", vals), nil
	}
	if s, err := h.GetString(id); err == nil {
		return s, nil
	}
	if ints, err := h.GetInts(id); err == nil {
		return fmt.Sprintf("%v", ints), nil
	}
	return "", nil
}

// Name returns the package's NAME tag.
func (p *BuiltPackage) Name() (string, error) {
	tags, err := p.Tags()
	if err != nil {
		return "", err
	}
	return tags[TagName], nil
}

// SourcePackage carries a path to the source archive and the set of
// its declared build Requirements, per spec.md §3.
type SourcePackage struct {
	Path         string
	Requirements []rpmapi.Requirement
}

// LoadSourcePackage reads a source package's declared BuildRequires,
// filtering out the packaging system's internal capability markers.
func LoadSourcePackage(path string) (*SourcePackage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rpm, err := rpmutils.ReadRpm(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read source package %s: %w", path, err)
	}

	raw, err := rpm.Header.GetStrings(rpmutils.REQUIRENAME)
	if err != nil {
		return nil, fmt.Errorf("failed to read BuildRequires of %s: %w", path, err)
	}

	return &SourcePackage{
		Path:         path,
		Requirements: rpmapi.FilterInternalCapabilities(raw),
	}, nil
}

// Filename returns the base name used in the driver's output line
// (spec.md §6: "<sourcepkg-filename>:<req>, <req>, …").
func (s *SourcePackage) Filename() string {
	return filepath.Base(s.Path)
}
