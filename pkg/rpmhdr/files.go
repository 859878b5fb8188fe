package rpmhdr

import (
	"regexp"

	"github.com/sassoftware/go-rpmutils"
)

// FileMeta is the per-file metadata tuple PC's file phase compares,
// per spec.md §4.2: caps, colors, contexts, depends, device, digest,
// flags, group, lang, link target, mode, nlinks, provides, rdev,
// requires, size, state, user, verifyflags.
type FileMeta struct {
	Caps        string
	Colors      int
	Contexts    string
	Depends     []string
	Device      int
	Digest      string
	Flags       int
	Group       string
	Lang        string
	LinkTo      string
	Mode        int
	NLinks      int
	Provides    []string
	RDevice     int
	Requires    []string
	Size        int64
	State       int
	User        string
	VerifyFlags int
}

// FileEntry pairs a path with its metadata tuple.
type FileEntry struct {
	Path string
	Meta FileMeta
}

// ignorePatterns are paths PC's file phase excludes before comparison:
// build-id symlinks, compiler self-check generated paths, and paths
// ending in ".comment".
var ignorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^/usr/lib/\.build-id/`),
	regexp.MustCompile(`/usr/lib/rpm/.*/sanitycheck\.`),
	regexp.MustCompile(`\.comment$`),
}

func isIgnoredPath(p string) bool {
	for _, re := range ignorePatterns {
		if re.MatchString(p) {
			return true
		}
	}
	return false
}

// Files reads the built package's file list and per-file metadata,
// dropping entries that match the fixed ignore-pattern set.
func (p *BuiltPackage) Files() ([]FileEntry, error) {
	if p.files != nil {
		return p.files, nil
	}
	h, err := p.header()
	if err != nil {
		return nil, err
	}

	paths := joinPaths(stringArray(h, rpmutils.BASENAMES), stringArray(h, rpmutils.DIRNAMES), intArray(h, rpmutils.DIRINDEXES))

	sizes := intArray(h, rpmutils.FILESIZES)
	modes := intArray(h, rpmutils.FILEMODES)
	users := stringArray(h, rpmutils.FILEUSERNAME)
	groups := stringArray(h, rpmutils.FILEGROUPNAME)
	langs := stringArray(h, rpmutils.FILELANGS)
	links := stringArray(h, rpmutils.FILELINKTOS)
	flags := intArray(h, rpmutils.FILEFLAGS)
	digests := stringArray(h, rpmutils.FILEMD5S)
	devices := intArray(h, rpmutils.FILEDEVICES)
	rdevices := intArray(h, rpmutils.FILERDEVS)
	inodes := intArray(h, rpmutils.FILEINODES)
	states := intArray(h, rpmutils.FILESTATES)
	colors := intArray(h, rpmutils.FILECOLORS)
	verify := intArray(h, rpmutils.FILEVERIFYFLAGS)
	contexts := stringArray(h, rpmutils.FILECONTEXTS)
	caps := stringArray(h, rpmutils.FILECAPS)

	nlinks := countHardlinks(inodes)

	provides, requires, depends := fileDependencies(paths, stringArray(h, rpmutils.DEPENDSDICT), intArray(h, rpmutils.FILEDEPENDSX), intArray(h, rpmutils.FILEDEPENDSN))

	entries := make([]FileEntry, 0, len(paths))
	for i, path := range paths {
		if isIgnoredPath(path) {
			continue
		}
		entries = append(entries, FileEntry{
			Path: path,
			Meta: FileMeta{
				Caps:        at(caps, i),
				Colors:      atInt(colors, i),
				Contexts:    at(contexts, i),
				Depends:     depends[path],
				Device:      atInt(devices, i),
				Digest:      at(digests, i),
				Flags:       atInt(flags, i),
				Group:       at(groups, i),
				Lang:        at(langs, i),
				LinkTo:      at(links, i),
				Mode:        atInt(modes, i),
				NLinks:      nlinks[atInt(inodes, i)],
				Provides:    provides[path],
				RDevice:     atInt(rdevices, i),
				Requires:    requires[path],
				Size:        int64(atInt(sizes, i)),
				State:       atInt(states, i),
				User:        at(users, i),
				VerifyFlags: atInt(verify, i),
			},
		})
	}
	p.files = entries
	return entries, nil
}

// joinPaths reassembles absolute file paths from rpm's
// basenames/dirnames/dirindexes triple.
func joinPaths(base, dirs []string, idx []int) []string {
	paths := make([]string, len(base))
	for i, b := range base {
		d := ""
		if i < len(idx) && idx[i] >= 0 && idx[i] < len(dirs) {
			d = dirs[idx[i]]
		}
		paths[i] = d + b
	}
	return paths
}

// countHardlinks counts, for each shared inode number, how many file
// entries reference it: RPM dedups hardlinked files onto one inode.
func countHardlinks(inodes []int) map[int]int {
	counts := map[int]int{}
	for _, ino := range inodes {
		counts[ino]++
	}
	return counts
}

// fileDependencies resolves the per-file provides/requires/depends
// encoded as FILEDEPENDSX/FILEDEPENDSN indices into the shared
// DEPENDSDICT array. Each entry is a one-letter tag followed directly by
// the name: 'P' marks a provide, 'R' a require; any other entry is kept
// whole as a depends entry.
func fileDependencies(paths, dict []string, starts, counts []int) (provides, requires, depends map[string][]string) {
	provides = map[string][]string{}
	requires = map[string][]string{}
	depends = map[string][]string{}

	if len(dict) == 0 {
		return
	}
	for i, path := range paths {
		if i >= len(starts) || i >= len(counts) {
			continue
		}
		start, count := starts[i], counts[i]
		for j := start; j < start+count && j < len(dict); j++ {
			entry := dict[j]
			switch {
			case len(entry) > 0 && entry[0] == 'P':
				provides[path] = append(provides[path], entry[1:])
			case len(entry) > 0 && entry[0] == 'R':
				requires[path] = append(requires[path], entry[1:])
			default:
				depends[path] = append(depends[path], entry)
			}
		}
	}
	return
}

func at(s []string, i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i]
}

func atInt(s []int, i int) int {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func stringArray(h *rpmutils.Header, tag int) []string {
	vals, err := h.GetStrings(tag)
	if err != nil {
		return nil
	}
	return vals
}

func intArray(h *rpmutils.Header, tag int) []int {
	vals, err := h.GetInts(tag)
	if err != nil {
		return nil
	}
	return vals
}
