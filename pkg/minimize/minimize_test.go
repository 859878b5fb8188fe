package minimize

import (
	"sort"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/buildreqmin/buildreqmin/pkg/rpmapi"
)

// scriptedProber classifies a probe by looking up the sorted,
// comma-joined candidate in a fixed table, defaulting to breaking for
// anything unlisted.
type scriptedProber struct {
	outcomes map[string]Outcome
	calls    []string
}

func key(reqs []rpmapi.Requirement) string {
	names := rpmapi.Strings(reqs)
	sort.Strings(names)
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ","
		}
		out += n
	}
	return out
}

func (p *scriptedProber) Probe(candidate []rpmapi.Requirement) (Outcome, error) {
	k := key(candidate)
	p.calls = append(p.calls, k)
	if o, ok := p.outcomes[k]; ok {
		return o, nil
	}
	return OutcomeBreaking, nil
}

func reqs(names ...string) []rpmapi.Requirement {
	out := make([]rpmapi.Requirement, len(names))
	for i, n := range names {
		out[i] = rpmapi.Requirement(n)
	}
	return out
}

func TestEngineAllSingletonsUnneeded(t *testing.T) {
	g := NewGomegaWithT(t)
	prober := &scriptedProber{outcomes: map[string]Outcome{
		"a":   OutcomeUnneeded,
		"b":   OutcomeUnneeded,
		"a,b": OutcomeUnneeded,
	}}
	e := NewEngine(reqs("a", "b"), prober, false)
	res, err := e.Run()
	g.Expect(err).NotTo(HaveOccurred())

	got := rpmapi.Strings(res.Unneeded)
	sort.Strings(got)
	g.Expect(got).To(Equal([]string{"a", "b"}))
}

func TestEngineOneBreakingSingleton(t *testing.T) {
	g := NewGomegaWithT(t)
	prober := &scriptedProber{outcomes: map[string]Outcome{
		"a": OutcomeUnneeded,
		"b": OutcomeBreaking,
	}}
	e := NewEngine(reqs("a", "b"), prober, false)
	res, err := e.Run()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rpmapi.Strings(res.Unneeded)).To(Equal([]string{"a"}))
	g.Expect(res.BreakingSubsets).To(HaveLen(1))
}

func TestEngineJointRemovalRequiresBothNotInteracting(t *testing.T) {
	g := NewGomegaWithT(t)
	// a and b are each individually unneeded, but removing both
	// together breaks the build (they cover for each other).
	prober := &scriptedProber{outcomes: map[string]Outcome{
		"a":   OutcomeUnneeded,
		"b":   OutcomeUnneeded,
		"a,b": OutcomeBreaking,
	}}
	e := NewEngine(reqs("a", "b"), prober, false)
	res, err := e.Run()
	g.Expect(err).NotTo(HaveOccurred())

	got := rpmapi.Strings(res.Unneeded)
	sort.Strings(got)
	g.Expect(got).To(Equal([]string{"a", "b"}))
	g.Expect(res.BreakingSubsets).To(ContainElement(reqs("a", "b")))
}

func TestEngineIndirectPullDeferred(t *testing.T) {
	g := NewGomegaWithT(t)
	prober := &scriptedProber{outcomes: map[string]Outcome{
		"a": OutcomeIndirect,
	}}
	e := NewEngine(reqs("a"), prober, false)
	res, err := e.Run()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Unneeded).To(BeEmpty())
	g.Expect(res.Undecided).To(Equal(reqs("a")))
}

func TestAntichainAddDropsSubsumed(t *testing.T) {
	g := NewGomegaWithT(t)
	a := &antichain{}
	a.add(newBitset(8).set(0))
	a.add(newBitset(8).set(0).set(1))
	g.Expect(a.sets).To(HaveLen(1))
	g.Expect(a.sets[0].popcount()).To(Equal(2))
}
