// Package minimize implements the Minimization Engine (ME): a
// monotonicity-pruned search over the power set of a source package's
// declared build requirements for a maximal jointly-unneeded subset.
package minimize

import (
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/buildreqmin/buildreqmin/pkg/rpmapi"
)

// Outcome is the classification of one probe, per spec.md §4.4.
type Outcome int

const (
	// OutcomeUnneeded means the rebuild succeeded with the candidate
	// absent and produced an output equal to the reference.
	OutcomeUnneeded Outcome = iota
	// OutcomeBreaking means the rebuild failed, or succeeded but
	// produced a different output.
	OutcomeBreaking
	// OutcomeIndirect means the install phase failed because the
	// candidate was pulled in transitively; the probe is inconclusive
	// and must not be recorded as breaking.
	OutcomeIndirect
)

// Prober runs one build-and-compare probe for a candidate subset of
// requirements, forcing them absent and reporting the outcome. It is
// implemented by the driver, composing the Build Orchestrator and
// Package Comparator.
type Prober interface {
	Probe(candidate []rpmapi.Requirement) (Outcome, error)
}

// antichain is a set of bitsets in which none is a subset of another.
type antichain struct {
	sets []bitset
}

// add inserts c, dropping any existing member that c makes redundant
// (a member that is a subset of c). If c is itself a subset of an
// existing member, it is not inserted (the antichain already implies
// it).
func (a *antichain) add(c bitset) {
	for _, existing := range a.sets {
		if c.subsetOf(existing) {
			return
		}
	}
	kept := a.sets[:0]
	for _, existing := range a.sets {
		if !existing.subsetOf(c) {
			kept = append(kept, existing)
		}
	}
	a.sets = append(kept, c)
}

// anyMemberSupersetOf reports whether some member of a is a superset
// of c — the "C ⊆ U" pruning rule.
func (a *antichain) anyMemberSupersetOf(c bitset) bool {
	for _, existing := range a.sets {
		if c.subsetOf(existing) {
			return true
		}
	}
	return false
}

// anyMemberSubsetOf reports whether some member of a is a subset of c
// — the "B ⊆ C" monotone-breaking pruning rule.
func (a *antichain) anyMemberSubsetOf(c bitset) bool {
	for _, existing := range a.sets {
		if existing.subsetOf(c) {
			return true
		}
	}
	return false
}

func (a *antichain) union() bitset {
	u := bitset{}
	for _, s := range a.sets {
		u = u.union(s)
	}
	return u
}

// Engine is the Minimization Engine.
type Engine struct {
	Requirements  []rpmapi.Requirement
	Prober        Prober
	AssumeCompose bool

	unneeded  antichain
	breaking  antichain
	undecided []int
}

// Result is ME's final report, per spec.md §3: the union of all
// requirements appearing in any confirmed-unneeded subset, plus the
// antichains that produced it for observability.
type Result struct {
	Unneeded        []rpmapi.Requirement
	UnneededSubsets [][]rpmapi.Requirement
	BreakingSubsets [][]rpmapi.Requirement
	Undecided       []rpmapi.Requirement
}

func NewEngine(reqs []rpmapi.Requirement, prober Prober, assumeCompose bool) *Engine {
	sorted := make([]rpmapi.Requirement, len(reqs))
	copy(sorted, reqs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return &Engine{Requirements: sorted, Prober: prober, AssumeCompose: assumeCompose}
}

// Run executes the full search schedule of spec.md §4.4: singleton
// probes, power-set confirmation of the jointly-unneeded singletons,
// then demand-driven extension with the undecided set.
func (e *Engine) Run() (*Result, error) {
	u1, err := e.probeSingletons()
	if err != nil {
		return nil, err
	}

	confirmed, err := e.confirmJointRemoval(u1)
	if err != nil {
		return nil, err
	}

	if err := e.extendWithUndecided(confirmed); err != nil {
		return nil, err
	}

	return e.result(), nil
}

func (e *Engine) result() *Result {
	r := &Result{}
	union := e.unneeded.union()
	for _, i := range union.indices() {
		r.Unneeded = append(r.Unneeded, e.Requirements[i])
	}
	for _, s := range e.unneeded.sets {
		r.UnneededSubsets = append(r.UnneededSubsets, e.materialize(s))
	}
	for _, s := range e.breaking.sets {
		r.BreakingSubsets = append(r.BreakingSubsets, e.materialize(s))
	}
	for _, i := range e.undecided {
		r.Undecided = append(r.Undecided, e.Requirements[i])
	}
	return r
}

func (e *Engine) materialize(b bitset) []rpmapi.Requirement {
	var out []rpmapi.Requirement
	for _, i := range b.indices() {
		out = append(out, e.Requirements[i])
	}
	return out
}

func (e *Engine) singleton(i int) bitset {
	return newBitset(len(e.Requirements)).set(i)
}

// probeSingletons is search-schedule step 1: probe {r} for each
// declared requirement, returning the union of the confirmed-unneeded
// singletons (U1).
func (e *Engine) probeSingletons() (bitset, error) {
	u1 := newBitset(len(e.Requirements))
	for i := range e.Requirements {
		c := e.singleton(i)
		outcome, err := e.classify(c)
		if err != nil {
			return nil, err
		}
		switch outcome {
		case OutcomeUnneeded:
			e.unneeded.add(c)
			u1 = u1.union(c)
		case OutcomeBreaking:
			e.breaking.add(c)
		case OutcomeIndirect:
			e.undecided = append(e.undecided, i)
			log.Debugf("requirement %s deferred: pulled in indirectly", e.Requirements[i])
		}
	}
	return u1, nil
}

// confirmJointRemoval is search-schedule step 2: enumerate the power
// set of U1 in descending size, short-circuiting upward the moment a
// superset is confirmed jointly unneeded (the antichain's pruning
// rule then silently absorbs every subset of it).
func (e *Engine) confirmJointRemoval(u1 bitset) ([]bitset, error) {
	if u1.isEmpty() {
		return nil, nil
	}

	var confirmed []bitset
	worklist := []bitset{u1}
	seen := map[string]bool{}

	for len(worklist) > 0 {
		c := worklist[0]
		worklist = worklist[1:]

		key := string(bitsetKey(c))
		if seen[key] {
			continue
		}
		seen[key] = true

		if c.isEmpty() {
			continue
		}
		if e.unneeded.anyMemberSupersetOf(c) {
			// already known unneeded (e.g. a U1 singleton): still a
			// confirmed joint subset for the extension phase.
			covered := false
			for _, k := range confirmed {
				if c.subsetOf(k) {
					covered = true
					break
				}
			}
			if !covered {
				confirmed = append(confirmed, c)
			}
			continue
		}
		if e.breaking.anyMemberSubsetOf(c) {
			continue
		}

		outcome, err := e.classify(c)
		if err != nil {
			return nil, err
		}
		switch outcome {
		case OutcomeUnneeded:
			e.unneeded.add(c)
			confirmed = append(confirmed, c)
		case OutcomeBreaking:
			if !e.breaking.anyMemberSubsetOf(c) {
				e.breaking.add(c)
			}
			worklist = append(worklist, childrenOneSmaller(c)...)
		case OutcomeIndirect:
			// inconclusive at this size; descend without classifying.
			worklist = append(worklist, childrenOneSmaller(c)...)
		}
	}
	return confirmed, nil
}

// extendWithUndecided is search-schedule step 3: probe every union of
// a confirmed-joint subset u with a subset v of the undecided set,
// demand-driven (never materializing powerset(undecided) as a list).
func (e *Engine) extendWithUndecided(confirmed []bitset) error {
	if len(e.undecided) == 0 || len(confirmed) == 0 {
		return nil
	}
	for _, u := range confirmed {
		if err := e.extendOne(u, newBitset(len(e.Requirements)), 0); err != nil {
			return err
		}
	}
	return nil
}

// extendOne recursively builds v as a subset of undecided[from:],
// probing u∪v at every step taken.
func (e *Engine) extendOne(u, v bitset, from int) error {
	for idx := from; idx < len(e.undecided); idx++ {
		candidate := u.union(v.set(e.undecided[idx]))
		if e.unneeded.anyMemberSupersetOf(candidate) {
			continue
		}
		if e.breaking.anyMemberSubsetOf(candidate) {
			continue
		}
		outcome, err := e.classify(candidate)
		if err != nil {
			return err
		}
		nextV := v.set(e.undecided[idx])
		switch outcome {
		case OutcomeUnneeded:
			e.unneeded.add(candidate)
		case OutcomeBreaking:
			log.Debugf("extension candidate %v breaks the build", e.materialize(candidate))
			continue
		case OutcomeIndirect:
			continue
		}
		if err := e.extendOne(u, nextV, idx+1); err != nil {
			return err
		}
	}
	return nil
}

// classify applies the assume-compose fast path (opt-in, unsound by
// construction per spec.md's open question) before delegating to the
// prober.
func (e *Engine) classify(c bitset) (Outcome, error) {
	if e.unneeded.anyMemberSupersetOf(c) {
		return OutcomeUnneeded, nil
	}
	if e.AssumeCompose && c.subsetOf(e.unneeded.union()) {
		return OutcomeUnneeded, nil
	}
	return e.Prober.Probe(e.materialize(c))
}

func childrenOneSmaller(c bitset) []bitset {
	var children []bitset
	for _, i := range c.indices() {
		child := make(bitset, len(c))
		copy(child, c)
		child[i/64] &^= 1 << uint(i%64)
		children = append(children, child)
	}
	return children
}

func bitsetKey(b bitset) []byte {
	out := make([]byte, len(b)*8)
	for i, w := range b {
		for j := 0; j < 8; j++ {
			out[i*8+j] = byte(w >> (8 * j))
		}
	}
	return out
}
