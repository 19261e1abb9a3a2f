package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pigen-tools/pigenctl/internal/paths"
)

const (

	// Upstream repository of the pi-gen toolchain.
	DefaultURL = "https://github.com/RPi-Distro/pi-gen.git"

	// Branch checked out when no ref is requested.
	DefaultRef = "master"
)

var (
	ErrFetch      = errors.New("fetch failed")
	ErrDestExists = errors.New("destination already exists")
)

// Controls where the pi-gen checkout comes from and where it lands.
type Options struct {
	URL  string // Repository URL. Empty uses [DefaultURL].
	Ref  string // Branch or tag to check out. Empty uses [DefaultRef].
	Dest string // Target directory. Empty uses the tool's cache.
}

// Shallow-clones pi-gen and returns the checkout directory.
//
// The clone is depth-1 at the requested ref, driven by the git CLI. A
// destination that already exists and is non-empty is refused rather than
// overwritten; remove it first to re-fetch.
func Run(ctx context.Context, opts Options) (string, error) {
	url := opts.URL
	if url == "" {
		url = DefaultURL
	}

	ref := opts.Ref
	if ref == "" {
		ref = DefaultRef
	}

	dest := opts.Dest
	if dest == "" {
		dest = paths.PiGen()
	}

	abs, err := filepath.Abs(dest)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}

	if entries, err := os.ReadDir(abs); err == nil && len(entries) > 0 {
		return "", fmt.Errorf("%w: %s", ErrDestExists, abs)
	}

	if err := os.MkdirAll(filepath.Dir(abs), paths.DefaultDirMode); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}

	slog.Info("fetching pi-gen", "url", url, "ref", ref, "dest", abs)

	cmd := exec.CommandContext(ctx, "git", cloneArgs(url, ref, abs)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%w: git clone: %v: %s", ErrFetch, err, out)
	}

	return abs, nil
}

// Builds the argument list for a depth-1 clone at the given ref.
func cloneArgs(url, ref, dest string) []string {
	return []string{"clone", "--depth", "1", "--branch", ref, url, dest}
}
