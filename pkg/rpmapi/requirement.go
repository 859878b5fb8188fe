package rpmapi

import "strings"

// internalCapabilityPrefix marks the packaging system's own ABI markers
// (e.g. "rpmlib(CompressedFileNames) <= 3.0.4-1"), which are never
// installable requirements and must be filtered before analysis.
const internalCapabilityPrefix = "rpmlib("

// Requirement is an opaque, string-valued build requirement as declared
// by a source package: a name plus an optional version constraint.
// Requirements compare by exact string equality.
type Requirement string

// IsInternalCapability reports whether r is one of the packaging
// system's own ABI markers rather than an installable requirement.
func (r Requirement) IsInternalCapability() bool {
	return strings.HasPrefix(string(r), internalCapabilityPrefix)
}

// FilterInternalCapabilities drops requirements matching the reserved
// capability-prefix convention, preserving order.
func FilterInternalCapabilities(reqs []string) []Requirement {
	out := make([]Requirement, 0, len(reqs))
	for _, r := range reqs {
		req := Requirement(r)
		if req.IsInternalCapability() {
			continue
		}
		out = append(out, req)
	}
	return out
}

// Strings converts a Requirement slice back to plain strings, e.g. for
// passing to an external installer.
func Strings(reqs []Requirement) []string {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = string(r)
	}
	return out
}
