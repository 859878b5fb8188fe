// Package pkgcompare implements the Package Comparator (PC): it
// decides whether two builds of the same binary package are
// equivalent, deferring to the Content Comparator for any file whose
// bytes differ.
package pkgcompare

import (
	"fmt"
	"sort"

	"github.com/buildreqmin/buildreqmin/pkg/compare"
	"github.com/buildreqmin/buildreqmin/pkg/rpmhdr"
)

// Diff reports, for a pair of builds found non-equal, what drove the
// verdict: which header tags differed, which files are missing from
// one side, and which shared files have differing metadata or content.
type Diff struct {
	HeaderTags   []string
	MissingFromA []string
	MissingFromB []string
	FilesDiffer  []string
}

func (d *Diff) empty() bool {
	return len(d.HeaderTags) == 0 && len(d.MissingFromA) == 0 && len(d.MissingFromB) == 0 && len(d.FilesDiffer) == 0
}

// Comparator is the Package Comparator.
type Comparator struct {
	Content *compare.Comparator
}

func New(content *compare.Comparator) *Comparator {
	return &Comparator{Content: content}
}

// Equal decides whether two built packages are equivalent, per
// spec.md §4.2: a header-tag-set comparison (skipping the fixed
// denylist), then a file-tuple comparison, then, for any file whose
// non-content metadata matches but whose digest differs, a
// content-level comparison via CC.
func (c *Comparator) Equal(a, b *rpmhdr.BuiltPackage) (bool, *Diff, error) {
	diff := &Diff{}

	tagsA, err := a.Tags()
	if err != nil {
		return false, nil, err
	}
	tagsB, err := b.Tags()
	if err != nil {
		return false, nil, err
	}
	diff.HeaderTags = diffTags(tagsA, tagsB)

	filesA, err := a.Files()
	if err != nil {
		return false, nil, err
	}
	filesB, err := b.Files()
	if err != nil {
		return false, nil, err
	}

	byPathA := indexFiles(filesA)
	byPathB := indexFiles(filesB)

	for path := range byPathA {
		if _, ok := byPathB[path]; !ok {
			diff.MissingFromB = append(diff.MissingFromB, path)
		}
	}
	for path := range byPathB {
		if _, ok := byPathA[path]; !ok {
			diff.MissingFromA = append(diff.MissingFromA, path)
		}
	}

	for path, fa := range byPathA {
		fb, ok := byPathB[path]
		if !ok {
			continue
		}
		equal, err := c.filesEqual(fa, fb)
		if err != nil {
			return false, nil, fmt.Errorf("failed to compare %s: %w", path, err)
		}
		if !equal {
			diff.FilesDiffer = append(diff.FilesDiffer, path)
		}
	}

	sort.Strings(diff.MissingFromA)
	sort.Strings(diff.MissingFromB)
	sort.Strings(diff.FilesDiffer)

	if diff.empty() {
		return true, nil, nil
	}
	return false, diff, nil
}

// filesEqual compares a pair of same-path file entries: non-content
// metadata must match exactly, and if their digests differ CC decides
// whether the divergence is semantic or merely timestamp noise.
func (c *Comparator) filesEqual(a, b rpmhdr.FileEntry) (bool, error) {
	if !metaEqualIgnoringDigest(a.Meta, b.Meta) {
		return false, nil
	}
	if a.Meta.Digest == b.Meta.Digest {
		return true, nil
	}
	return c.Content.Equal(a.Path, b.Path)
}

func metaEqualIgnoringDigest(a, b rpmhdr.FileMeta) bool {
	return a.Caps == b.Caps &&
		a.Colors == b.Colors &&
		a.Contexts == b.Contexts &&
		stringsEqual(a.Depends, b.Depends) &&
		a.Device == b.Device &&
		a.Flags == b.Flags &&
		a.Group == b.Group &&
		a.Lang == b.Lang &&
		a.LinkTo == b.LinkTo &&
		a.Mode == b.Mode &&
		a.NLinks == b.NLinks &&
		stringsEqual(a.Provides, b.Provides) &&
		a.RDevice == b.RDevice &&
		stringsEqual(a.Requires, b.Requires) &&
		a.Size == b.Size &&
		a.State == b.State &&
		a.User == b.User &&
		a.VerifyFlags == b.VerifyFlags
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func indexFiles(entries []rpmhdr.FileEntry) map[string]rpmhdr.FileEntry {
	out := make(map[string]rpmhdr.FileEntry, len(entries))
	for _, e := range entries {
		out[e.Path] = e
	}
	return out
}

// diffTags compares two header-tag maps, skipping the fixed denylist,
// and returns the sorted list of tags whose value differs or that is
// present on only one side.
func diffTags(a, b map[rpmhdr.Tag]string) []string {
	var diff []string
	seen := map[rpmhdr.Tag]struct{}{}
	for t, va := range a {
		if _, skip := rpmhdr.SkipHeaderTags[t]; skip {
			continue
		}
		seen[t] = struct{}{}
		if vb, ok := b[t]; !ok || va != vb {
			diff = append(diff, string(t))
		}
	}
	for t := range b {
		if _, skip := rpmhdr.SkipHeaderTags[t]; skip {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		if _, ok := a[t]; !ok {
			diff = append(diff, string(t))
		}
	}
	sort.Strings(diff)
	return diff
}
