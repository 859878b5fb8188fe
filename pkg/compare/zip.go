package compare

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
)

// equalZip compares two zip/jar archives member-by-member, ignoring
// each entry's stored modification time: only the member-name set and
// each member's decompressed content participate in equality, per
// spec.md §4.1.
func (c *Comparator) equalZip(a, b string) (bool, error) {
	za, err := readZipMembers(a)
	if err != nil {
		return false, err
	}
	zb, err := readZipMembers(b)
	if err != nil {
		return false, err
	}

	namesA := sortedKeys(za)
	namesB := sortedKeys(zb)
	if len(namesA) != len(namesB) {
		return false, nil
	}
	for i, name := range namesA {
		if name != namesB[i] {
			return false, nil
		}
		if !bytes.Equal(za[name], zb[name]) {
			return false, nil
		}
	}
	return true, nil
}

func readZipMembers(path string) (map[string][]byte, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive %s: %w", path, err)
	}
	defer r.Close()

	members := map[string][]byte{}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open member %s of %s: %w", f.Name, path, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read member %s of %s: %w", f.Name, path, err)
		}
		members[f.Name] = content
	}
	return members, nil
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
