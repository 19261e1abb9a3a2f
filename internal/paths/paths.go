package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "pigenctl"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the tool's cache directory.
//
//	Linux:   $XDG_CACHE_HOME/pigenctl or ~/.cache/pigenctl
//	macOS:   ~/Library/Caches/pigenctl
func Cache() string {
	return filepath.Join(xdg.CacheHome, toolName)
}

// Default location of the managed pi-gen checkout.
//
// Used when no explicit pi-gen directory is given: fetch clones into it,
// and build reads from it.
func PiGen() string {
	return filepath.Join(Cache(), "pi-gen")
}
