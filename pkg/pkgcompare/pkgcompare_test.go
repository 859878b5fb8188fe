package pkgcompare

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/buildreqmin/buildreqmin/pkg/rpmhdr"
)

func TestDiffTagsSkipsDenylist(t *testing.T) {
	g := NewGomegaWithT(t)
	a := map[rpmhdr.Tag]string{rpmhdr.TagName: "foo", rpmhdr.TagBuildTime: "100"}
	b := map[rpmhdr.Tag]string{rpmhdr.TagName: "foo", rpmhdr.TagBuildTime: "200"}
	g.Expect(diffTags(a, b)).To(BeEmpty())
}

func TestDiffTagsReportsRealDifference(t *testing.T) {
	g := NewGomegaWithT(t)
	a := map[rpmhdr.Tag]string{rpmhdr.TagName: "foo", rpmhdr.TagVersion: "1"}
	b := map[rpmhdr.Tag]string{rpmhdr.TagName: "foo", rpmhdr.TagVersion: "2"}
	g.Expect(diffTags(a, b)).To(Equal([]string{"VERSION"}))
}

func TestMetaEqualIgnoringDigest(t *testing.T) {
	g := NewGomegaWithT(t)
	a := rpmhdr.FileMeta{Mode: 0755, User: "root", Size: 10, Digest: "aaa"}
	b := rpmhdr.FileMeta{Mode: 0755, User: "root", Size: 10, Digest: "bbb"}
	g.Expect(metaEqualIgnoringDigest(a, b)).To(BeTrue())

	c := rpmhdr.FileMeta{Mode: 0644, User: "root", Size: 10, Digest: "aaa"}
	g.Expect(metaEqualIgnoringDigest(a, c)).To(BeFalse())
}

func TestStringsEqual(t *testing.T) {
	g := NewGomegaWithT(t)
	g.Expect(stringsEqual([]string{"a", "b"}, []string{"a", "b"})).To(BeTrue())
	g.Expect(stringsEqual([]string{"a"}, []string{"a", "b"})).To(BeFalse())
}
