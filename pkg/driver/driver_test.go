package driver

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/buildreqmin/buildreqmin/pkg/rpmapi"
	"github.com/buildreqmin/buildreqmin/pkg/rpmhdr"
)

func TestSubtract(t *testing.T) {
	g := NewGomegaWithT(t)
	all := []rpmapi.Requirement{"a", "b", "c"}
	remove := []rpmapi.Requirement{"b"}
	g.Expect(subtract(all, remove)).To(Equal([]rpmapi.Requirement{"a", "c"}))
}

func TestSubtractNoneRemoved(t *testing.T) {
	g := NewGomegaWithT(t)
	all := []rpmapi.Requirement{"a", "b"}
	g.Expect(subtract(all, nil)).To(Equal(all))
}

func TestComparePackageSetsLengthMismatch(t *testing.T) {
	g := NewGomegaWithT(t)
	d := &Driver{}
	equal, diff, err := d.comparePackageSets(nil, []*rpmhdr.BuiltPackage{rpmhdr.NewBuiltPackage("a.rpm")})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(equal).To(BeFalse())
	g.Expect(diff).NotTo(BeNil())
}
