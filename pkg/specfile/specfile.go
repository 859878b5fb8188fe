// Package specfile synthesizes minimal marker-package spec files: RPM
// spec sources whose only purpose is to carry a Provides, Conflicts or
// Obsoletes header, used by the Build Orchestrator's absence protocol.
package specfile

import (
	"fmt"
	"io"
	"text/template"
)

// Marker describes a synthetic package: a name/version/release triple
// plus the Provides/Conflicts/Obsoletes it should carry. Requirements
// are additionally installed as ordinary BuildRequires so the mock
// root pulls them in before the marker itself is built.
type Marker struct {
	Name      string
	Version   string
	Release   string
	Requires  []string
	Provides  []string
	Conflicts []string
	Obsoletes []string
}

var specTemplate = template.Must(template.New("marker.spec").Parse(`Name: {{.Name}}
Version: {{.Version}}
Release: {{.Release}}
Summary: Marker package
License: None
BuildArch: noarch
{{- range .Requires}}
BuildRequires: {{.}}
{{- end}}
{{- range .Provides}}
Provides: {{.}}
{{- end}}
{{- range .Conflicts}}
Conflicts: {{.}}
{{- end}}
{{- range .Obsoletes}}
Obsoletes: {{.}}
{{- end}}

%description
Synthetic marker package, carries no files.

%build

%install

%files
`))

// Render writes m's spec source to w.
func Render(w io.Writer, m Marker) error {
	if err := specTemplate.Execute(w, m); err != nil {
		return fmt.Errorf("failed to render marker spec %s: %w", m.Name, err)
	}
	return nil
}

// Conflicting builds the first marker of the absence protocol
// (spec.md §9): it Conflicts with the candidate set under test, so
// installing it alongside any of them fails.
func Conflicting(name, version, release string, candidates []string) Marker {
	return Marker{Name: name, Version: version, Release: release, Conflicts: candidates}
}

// Obsoleting builds the second marker of the absence protocol: it
// Obsoletes the first marker and Provides the candidate set, so a
// subsequent install of the candidates succeeds without them actually
// being present.
func Obsoleting(name, version, release, obsoletes string, provides []string) Marker {
	return Marker{Name: name, Version: version, Release: release, Obsoletes: []string{obsoletes}, Provides: provides}
}
