package rpmhdr

import "testing"

func TestJoinPaths(t *testing.T) {
	base := []string{"foo.txt", "bar.so"}
	dirs := []string{"/usr/bin/", "/usr/lib64/"}
	idx := []int{0, 1}

	got := joinPaths(base, dirs, idx)
	want := []string{"/usr/bin/foo.txt", "/usr/lib64/bar.so"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("joinPaths()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCountHardlinks(t *testing.T) {
	counts := countHardlinks([]int{1, 2, 1, 3, 1})
	if counts[1] != 3 {
		t.Fatalf("countHardlinks()[1] = %d, want 3", counts[1])
	}
	if counts[2] != 1 {
		t.Fatalf("countHardlinks()[2] = %d, want 1", counts[2])
	}
}

func TestIsIgnoredPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/usr/lib/.build-id/ab/cdef", true},
		{"/usr/lib/rpm/redhat/sanitycheck.py", true},
		{"/usr/bin/foo", false},
	}
	for _, tt := range tests {
		if got := isIgnoredPath(tt.path); got != tt.want {
			t.Errorf("isIgnoredPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFileDependencies(t *testing.T) {
	paths := []string{"/usr/bin/a", "/usr/bin/b"}
	dict := []string{"Pfoo", "Rbar", "X quux"}
	starts := []int{0, 2}
	counts := []int{2, 1}

	provides, requires, depends := fileDependencies(paths, dict, starts, counts)
	if len(provides["/usr/bin/a"]) != 1 || provides["/usr/bin/a"][0] != "foo" {
		t.Fatalf("provides[a] = %v", provides["/usr/bin/a"])
	}
	if len(requires["/usr/bin/a"]) != 1 || requires["/usr/bin/a"][0] != "bar" {
		t.Fatalf("requires[a] = %v", requires["/usr/bin/a"])
	}
	if len(depends["/usr/bin/b"]) != 1 {
		t.Fatalf("depends[b] = %v", depends["/usr/bin/b"])
	}
}
