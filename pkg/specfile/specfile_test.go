package specfile

import (
	"strings"
	"testing"

	. "github.com/onsi/gomega"
)

func TestRenderConflicting(t *testing.T) {
	g := NewGomegaWithT(t)
	m := Conflicting("probe-marker", "1", "1", []string{"foo", "bar"})

	var buf strings.Builder
	g.Expect(Render(&buf, m)).To(Succeed())

	out := buf.String()
	g.Expect(out).To(ContainSubstring("Name: probe-marker"))
	g.Expect(out).To(ContainSubstring("Conflicts: foo"))
	g.Expect(out).To(ContainSubstring("Conflicts: bar"))
	g.Expect(out).NotTo(ContainSubstring("Provides:"))
}

func TestRenderObsoleting(t *testing.T) {
	g := NewGomegaWithT(t)
	m := Obsoleting("probe-marker-2", "1", "1", "probe-marker", []string{"foo", "bar"})

	var buf strings.Builder
	g.Expect(Render(&buf, m)).To(Succeed())

	out := buf.String()
	g.Expect(out).To(ContainSubstring("Obsoletes: probe-marker"))
	g.Expect(out).To(ContainSubstring("Provides: foo"))
	g.Expect(out).To(ContainSubstring("Provides: bar"))
}
