package compare

import "strings"

// equalELF compares two ELF objects by their disassembly text rather
// than by raw bytes, so build-id notes, section padding and other
// timestamp-derived noise never cause a false mismatch. Per spec.md
// §4.1, the disassembly's own filename-prefix line (most disassemblers
// echo the path they were given) is stripped before comparison.
func (c *Comparator) equalELF(a, b string) (bool, error) {
	da, err := c.External.Disassemble(a)
	if err != nil {
		return false, err
	}
	db, err := c.External.Disassemble(b)
	if err != nil {
		return false, err
	}
	return stripFilenameHeader(da) == stripFilenameHeader(db), nil
}

func stripFilenameHeader(dump string) string {
	// objdump prints a blank line before the "<path>:  file format" line.
	dump = strings.TrimLeft(dump, "\n")
	lines := strings.SplitN(dump, "\n", 2)
	if len(lines) < 2 {
		return dump
	}
	return lines[1]
}
