package mockroot

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Profile describes an isolated build root: the tool that creates and
// enters it, and the arguments used to initialize, install into and
// rebuild within it. Loaded from the file passed via --root.
type Profile struct {
	Name         string   `json:"name"`
	InitCommand  []string `json:"initCommand"`
	InstallCmd   []string `json:"installCommand"`
	RebuildCmd   []string `json:"rebuildCommand"`
	CleanCommand []string `json:"cleanCommand"`
	// SpecDir is a scratch directory the orchestrator writes synthesized
	// marker specs into before handing them to InstallCmd; distinct from
	// the per-probe result directory the driver passes to Rebuild.
	SpecDir string `json:"specDir"`
}

// LoadProfile reads a chroot-profile file, per spec.md §6's --root
// flag.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read root profile %s: %w", path, err)
	}
	profile := &Profile{}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse root profile %s: %w", path, err)
	}
	if err := profile.validate(); err != nil {
		return nil, fmt.Errorf("invalid root profile %s: %w", path, err)
	}
	return profile, nil
}

func (p *Profile) validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile has no name")
	}
	if len(p.InitCommand) == 0 {
		return fmt.Errorf("profile %s has no initCommand", p.Name)
	}
	if len(p.InstallCmd) == 0 {
		return fmt.Errorf("profile %s has no installCommand", p.Name)
	}
	if len(p.RebuildCmd) == 0 {
		return fmt.Errorf("profile %s has no rebuildCommand", p.Name)
	}
	if p.SpecDir == "" {
		return fmt.Errorf("profile %s has no specDir", p.Name)
	}
	return nil
}
