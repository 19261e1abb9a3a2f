package pigen

import (
	"path/filepath"
	"strings"
)

// A built-in pi-gen build stage.
//
// pi-gen ships a fixed set of stages, each backed by a directory of the
// same name inside the pi-gen checkout. Anything else appearing in a
// stage list is treated as a custom stage directory supplied by the user.
type Stage int

const (
	Stage0 Stage = iota // Bootstrap: minimal filesystem via debootstrap.
	Stage1              // Truly minimal bootable system.
	Stage2              // Lite image.
	Stage3              // Desktop environment.
	Stage4              // Full "Raspberry Pi OS" image.
	Stage5              // Full image with extra recommended software.

	stageCount
)

// On-disk directory names, indexed by stage.
var stageDirs = [stageCount]string{
	"stage0",
	"stage1",
	"stage2",
	"stage3",
	"stage4",
	"stage5",
}

// Returns the stage's directory name inside the pi-gen checkout.
func (s Stage) Dir() string {
	return stageDirs[s]
}

// Returns all built-in stages in build order.
func Stages() []Stage {
	stages := make([]Stage, 0, stageCount)
	for s := Stage0; s < stageCount; s++ {
		stages = append(stages, s)
	}
	return stages
}

// Looks up a built-in stage by its directory name.
//
// Only the exact directory names match; paths that merely end in a stage
// name do not.
func StageFromName(name string) (Stage, bool) {
	for s := Stage0; s < stageCount; s++ {
		if stageDirs[s] == name {
			return s, true
		}
	}
	return 0, false
}

// Resolves each whitespace-delimited stage-list token to a canonical
// absolute path.
//
// Built-in stage names resolve relative to the pi-gen root; anything else
// resolves as given. Symlinks are followed, so the returned paths are the
// real directories the build will mount.
func ResolveStages(stageList, root string) ([]string, error) {
	tokens := strings.Fields(stageList)
	if len(tokens) == 0 {
		return nil, wrapf(ErrInvalidConfig, "stage list is empty")
	}

	resolved := make([]string, 0, len(tokens))
	for _, token := range tokens {
		path := token
		if s, ok := StageFromName(token); ok {
			path = filepath.Join(root, s.Dir())
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, wrapf(ErrStageResolution, "stage %q: %v", token, err)
		}

		real, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return nil, wrapf(ErrStageResolution, "stage %q: %v", token, err)
		}

		resolved = append(resolved, real)
	}

	return resolved, nil
}
