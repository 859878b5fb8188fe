package driver

import (
	"context"
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/buildreqmin/buildreqmin/pkg/minimize"
	"github.com/buildreqmin/buildreqmin/pkg/mockroot"
	"github.com/buildreqmin/buildreqmin/pkg/rpmapi"
	"github.com/buildreqmin/buildreqmin/pkg/rpmhdr"
)

// proberImpl is ME's Prober, composing the Build Orchestrator and
// Package Comparator per spec.md §4.4's probe-outcome rules.
type proberImpl struct {
	driver    *Driver
	ctx       context.Context
	src       *rpmhdr.SourcePackage
	reference []*rpmhdr.BuiltPackage

	probeSeq int
}

func (p *proberImpl) Probe(candidate []rpmapi.Requirement) (minimize.Outcome, error) {
	p.probeSeq++
	resultDir := filepath.Join(p.driver.opts.WorkDir, fmt.Sprintf("probe-%d", p.probeSeq))

	log.Infof("probing absence of %v", rpmapi.Strings(candidate))

	built, err := p.driver.referenceBuild(p.ctx, p.src, candidate, resultDir)
	if err != nil {
		if be, ok := err.(*mockroot.BuildError); ok {
			if be.Phase == mockroot.PhaseInstall && mockroot.IsIndirectPull(be) {
				log.Debugf("candidate %v pulled in indirectly, deferring", rpmapi.Strings(candidate))
				return minimize.OutcomeIndirect, nil
			}
			log.Debugf("candidate %v broke the build in the %s phase", rpmapi.Strings(candidate), be.Phase)
			return minimize.OutcomeBreaking, nil
		}
		return minimize.OutcomeBreaking, err
	}

	equal, _, err := p.driver.comparePackageSets(p.reference, built)
	if err != nil {
		return minimize.OutcomeBreaking, err
	}
	if equal {
		return minimize.OutcomeUnneeded, nil
	}
	return minimize.OutcomeBreaking, nil
}
