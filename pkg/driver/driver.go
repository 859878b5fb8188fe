// Package driver implements the Driver (D): it sequences the
// reference build, the reproducibility gate, and the minimization
// search, then reports the result.
package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/buildreqmin/buildreqmin/pkg/compare"
	"github.com/buildreqmin/buildreqmin/pkg/minimize"
	"github.com/buildreqmin/buildreqmin/pkg/mockroot"
	"github.com/buildreqmin/buildreqmin/pkg/pkgcompare"
	"github.com/buildreqmin/buildreqmin/pkg/rpmapi"
	"github.com/buildreqmin/buildreqmin/pkg/rpmhdr"
)

// NotReproducibleError is returned when the two reference builds of
// the source package disagree, per spec.md §4.5.
type NotReproducibleError struct {
	Diff *pkgcompare.Diff
}

func (e *NotReproducibleError) Error() string {
	return "reference build is not reproducible"
}

// Options configures one run of the driver.
type Options struct {
	Profile       *mockroot.Profile
	NoClean       bool
	ReproduceOnly bool
	AssumeCompose bool
	WorkDir       string
}

// Driver is the Driver (D).
type Driver struct {
	opts    Options
	content *compare.Comparator
	pkg     *pkgcompare.Comparator
}

func New(opts Options, content *compare.Comparator) *Driver {
	pc := pkgcompare.New(content)
	return &Driver{opts: opts, content: content, pkg: pc}
}

// Run executes the full driver sequence of spec.md §4.5.
func (d *Driver) Run(ctx context.Context, src *rpmhdr.SourcePackage) (*minimize.Result, error) {
	ref1Dir := filepath.Join(d.opts.WorkDir, "ref1")
	ref2Dir := filepath.Join(d.opts.WorkDir, "ref2")

	log.Info("building reference")
	ref1, err := d.referenceBuild(ctx, src, nil, ref1Dir)
	if err != nil {
		return nil, fmt.Errorf("reference build failed: %w", err)
	}

	log.Info("building second reference to gate reproducibility")
	ref2, err := d.referenceBuild(ctx, src, nil, ref2Dir)
	if err != nil {
		return nil, fmt.Errorf("second reference build failed: %w", err)
	}

	equal, diff, err := d.comparePackageSets(ref1, ref2)
	if err != nil {
		return nil, err
	}
	if !equal {
		return nil, &NotReproducibleError{Diff: diff}
	}
	log.Info("reference build is reproducible")

	if d.opts.ReproduceOnly {
		return nil, nil
	}

	prober := &proberImpl{driver: d, ctx: ctx, src: src, reference: ref1}
	engine := minimize.NewEngine(src.Requirements, prober, d.opts.AssumeCompose)
	return engine.Run()
}

// referenceBuild runs the orchestrator's full lifecycle for one build.
// With absent empty it is an unconditional reference build; otherwise
// the absence protocol forces the given requirements absent (probes).
func (d *Driver) referenceBuild(ctx context.Context, src *rpmhdr.SourcePackage, absent []rpmapi.Requirement, resultDir string) ([]*rpmhdr.BuiltPackage, error) {
	orch := mockroot.New(ctx, d.opts.Profile, d.opts.NoClean)
	defer orch.Teardown()

	if err := orch.Init(); err != nil {
		return nil, err
	}

	remaining := subtract(src.Requirements, absent)
	if len(absent) == 0 {
		if err := orch.Install(remaining); err != nil {
			return nil, err
		}
	} else if err := orch.Absent(absent, remaining); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(resultDir, 0770); err != nil {
		return nil, fmt.Errorf("failed to create result dir %s: %w", resultDir, err)
	}
	if err := orch.Rebuild(src.Path, resultDir, len(absent) > 0); err != nil {
		return nil, err
	}

	return loadBuiltPackages(resultDir)
}

func (d *Driver) comparePackageSets(a, b []*rpmhdr.BuiltPackage) (bool, *pkgcompare.Diff, error) {
	if len(a) != len(b) {
		return false, &pkgcompare.Diff{}, nil
	}
	for i := range a {
		equal, diff, err := d.pkg.Equal(a[i], b[i])
		if err != nil {
			return false, nil, err
		}
		if !equal {
			return false, diff, nil
		}
	}
	return true, nil, nil
}

func loadBuiltPackages(dir string) ([]*rpmhdr.BuiltPackage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var pkgs []*rpmhdr.BuiltPackage
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".rpm" {
			continue
		}
		pkgs = append(pkgs, rpmhdr.NewBuiltPackage(filepath.Join(dir, e.Name())))
	}
	return pkgs, nil
}

func subtract(all, remove []rpmapi.Requirement) []rpmapi.Requirement {
	skip := map[rpmapi.Requirement]struct{}{}
	for _, r := range remove {
		skip[r] = struct{}{}
	}
	var out []rpmapi.Requirement
	for _, r := range all {
		if _, ok := skip[r]; !ok {
			out = append(out, r)
		}
	}
	return out
}
