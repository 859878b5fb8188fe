package mockroot

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestIsIndirectPull(t *testing.T) {
	g := NewGomegaWithT(t)
	g.Expect(IsIndirectPull(&BuildError{Phase: PhaseInstall, Output: "foo already provided by bar"})).To(BeTrue())
	g.Expect(IsIndirectPull(&BuildError{Phase: PhaseInstall, Output: "no package foo found"})).To(BeFalse())
	g.Expect(IsIndirectPull(fmtError("plain error"))).To(BeFalse())
}

type fmtError string

func (e fmtError) Error() string { return string(e) }

func TestMarkerName(t *testing.T) {
	g := NewGomegaWithT(t)
	o := &Orchestrator{markerSeq: 3}
	g.Expect(o.markerName("block")).To(Equal("buildreqmin-marker-block-3"))
}

func TestProfileValidate(t *testing.T) {
	g := NewGomegaWithT(t)
	p := &Profile{Name: "f40-x86_64"}
	g.Expect(p.validate()).To(HaveOccurred())

	p.InitCommand = []string{"mock", "-r", "f40-x86_64", "--init"}
	p.InstallCmd = []string{"mock", "-r", "f40-x86_64", "--install"}
	p.RebuildCmd = []string{"mock", "-r", "f40-x86_64", "--rebuild"}
	g.Expect(p.validate()).To(HaveOccurred())

	p.SpecDir = "/tmp/specs"
	g.Expect(p.validate()).To(Succeed())
}
