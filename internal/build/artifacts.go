package build

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

// Directory inside the pi-gen checkout where built images land.
const deployDir = "deploy"

// Matches the image files pi-gen produces, across compression modes and
// the qcow2 format.
var artifactPattern = glob.MustCompile("*.{img,zip,gz,xz,qcow2}")

// Descriptor file pi-gen's NOOBS export writes at the top of each
// exported directory tree.
const noobsDescriptor = "os.json"

// Returns the artifacts the last build produced, as absolute paths
// sorted by name.
//
// pi-gen writes its output into the deploy directory of the checkout; an
// absent deploy directory simply yields no artifacts. Image files are
// matched by extension. NOOBS exports are directory trees rather than
// single files and are reported by their top-level directory, recognized
// by the os.json descriptor inside it.
func (b *Builder) Artifacts() ([]string, error) {
	dir := filepath.Join(b.root, deployDir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, wrapf(ErrBuild, "reading %s: %v", dir, err)
	}

	var artifacts []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if isNOOBSExport(path) {
				artifacts = append(artifacts, path)
			}
			continue
		}
		if artifactPattern.Match(entry.Name()) {
			artifacts = append(artifacts, path)
		}
	}

	sort.Strings(artifacts)
	return artifacts, nil
}

// Reports whether dir looks like a NOOBS export, i.e. carries the
// os.json descriptor as a regular file.
func isNOOBSExport(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, noobsDescriptor))
	return err == nil && info.Mode().IsRegular()
}
