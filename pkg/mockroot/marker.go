package mockroot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/buildreqmin/buildreqmin/pkg/specfile"
)

// writeMarkerSpecFile renders m to a spec file under dir, named after
// the marker, ready to be handed to the profile's install command.
func writeMarkerSpecFile(dir string, m specfile.Marker) (string, error) {
	path := filepath.Join(dir, m.Name+".spec")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := specfile.Render(f, m); err != nil {
		return "", err
	}
	return path, nil
}
