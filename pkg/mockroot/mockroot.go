// Package mockroot implements the Build Orchestrator (BO): it drives
// an isolated build root through the absence protocol that pins a
// candidate set of requirements as unavailable, then rebuilds a
// source package inside it.
package mockroot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/buildreqmin/buildreqmin/pkg/rpmapi"
	"github.com/buildreqmin/buildreqmin/pkg/specfile"
)

// Phase categorizes where a build failed, per spec.md §4.3: the
// distinction feeds ME's classification of a probe outcome.
type Phase string

const (
	PhaseInstall Phase = "install"
	PhaseRebuild Phase = "rebuild"
)

// BuildError is the categorized build-failure signal BO surfaces.
type BuildError struct {
	Phase  Phase
	Output string
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s phase failed: %v", e.Phase, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// indirectPullMarker is the substring rpm's dependency resolver emits
// when an install fails because a candidate requirement was pulled in
// transitively rather than named directly; BO uses its presence to
// distinguish "transitively required" installs from a real conflict.
const indirectPullMarker = "already provided by"

// Orchestrator drives one isolated build root across its lifecycle:
// init, install, addMarker, rebuild, teardown.
type Orchestrator struct {
	Profile   *Profile
	NoClean   bool
	markerSeq int

	ctx context.Context
	exe *executor
}

func New(ctx context.Context, profile *Profile, noClean bool) *Orchestrator {
	return &Orchestrator{Profile: profile, NoClean: noClean, ctx: ctx, exe: newExecutor(ctx)}
}

// Init creates a fresh isolated root from the profile's init command.
func (o *Orchestrator) Init() error {
	out, err := o.run(o.Profile.InitCommand)
	if err != nil {
		return &BuildError{Phase: PhaseInstall, Output: out, Err: fmt.Errorf("failed to initialize root %s: %w", o.Profile.Name, err)}
	}
	return nil
}

// Install installs the named requirements. Per spec.md §4.3 step 3, a
// failure whose output carries the indirect-pull signature is not a
// hard error: the caller (ME, via the driver) treats it as "candidate
// transitively required" and skips the probe without classification.
func (o *Orchestrator) Install(names []rpmapi.Requirement) error {
	if len(names) == 0 {
		return nil
	}
	args := append(append([]string{}, o.Profile.InstallCmd...), rpmapi.Strings(names)...)
	out, err := o.run(args)
	if err != nil {
		return &BuildError{Phase: PhaseInstall, Output: out, Err: err}
	}
	return nil
}

// IsIndirectPull reports whether an install failure's output carries
// the "pulled in transitively" signature.
func IsIndirectPull(err error) bool {
	be, ok := err.(*BuildError)
	if !ok {
		return false
	}
	return strings.Contains(be.Output, indirectPullMarker)
}

// AddMarker synthesizes a minimal marker package carrying only the
// given relational metadata and installs it, per spec.md §4.3.
func (o *Orchestrator) AddMarker(m specfile.Marker) error {
	o.markerSeq++
	specPath, err := o.writeMarkerSpec(m)
	if err != nil {
		return fmt.Errorf("failed to synthesize marker %s: %w", m.Name, err)
	}
	args := append(append([]string{}, o.Profile.InstallCmd...), "--spec", specPath)
	out, err := o.run(args)
	if err != nil {
		return &BuildError{Phase: PhaseInstall, Output: out, Err: fmt.Errorf("failed to install marker %s: %w", m.Name, err)}
	}
	return nil
}

// Absent runs the full absence protocol of spec.md §4.3 for a
// candidate subset: install a Conflicts marker, install the remaining
// declared requirements, then install an Obsoletes+Provides marker
// that satisfies the rebuilder without the real packages present.
func (o *Orchestrator) Absent(candidate []rpmapi.Requirement, remaining []rpmapi.Requirement) error {
	names := rpmapi.Strings(candidate)

	blocker := specfile.Conflicting(o.markerName("block"), "1", "1", names)
	if err := o.AddMarker(blocker); err != nil {
		return err
	}

	if err := o.Install(remaining); err != nil {
		return err
	}

	unblocker := specfile.Obsoleting(o.markerName("unblock"), "1", "1", blocker.Name, names)
	if err := o.AddMarker(unblocker); err != nil {
		return err
	}
	return nil
}

func (o *Orchestrator) markerName(kind string) string {
	return "buildreqmin-marker-" + kind + "-" + strconv.Itoa(o.markerSeq)
}

// Rebuild drives the external rebuilder against src, producing built
// packages into resultDir.
func (o *Orchestrator) Rebuild(srcPath, resultDir string, allowCacheOnly bool) error {
	args := append([]string{}, o.Profile.RebuildCmd...)
	args = append(args, "--resultdir", resultDir)
	if allowCacheOnly {
		args = append(args, "--no-deps")
	}
	args = append(args, srcPath)

	out, err := o.run(args)
	if err != nil {
		return &BuildError{Phase: PhaseRebuild, Output: out, Err: err}
	}
	return nil
}

// Teardown kills orphaned processes and cleans the root. Runs on every
// exit path, per spec.md §5, whether or not the probe succeeded. The
// orphan-kill step runs even under --no-clean: retaining the chroot for
// inspection is not a reason to leave a runaway build process attached
// to it.
func (o *Orchestrator) Teardown() {
	o.exe.killOrphans()

	if o.NoClean {
		log.Debugf("skipping cleanup of root %s (--no-clean)", o.Profile.Name)
		return
	}
	if len(o.Profile.CleanCommand) > 0 {
		if _, err := o.run(o.Profile.CleanCommand); err != nil {
			log.Warnf("failed to clean root %s: %v", o.Profile.Name, err)
		}
	}
}

func (o *Orchestrator) run(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("empty command")
	}
	return o.exe.run(args[0], args[1:]...)
}

func (o *Orchestrator) writeMarkerSpec(m specfile.Marker) (string, error) {
	return writeMarkerSpecFile(o.Profile.SpecDir, m)
}
