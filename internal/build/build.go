package build

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pigen-tools/pigenctl/internal/paths"
	"github.com/pigen-tools/pigenctl/internal/pigen"
)

const (

	// Entry point script of the pi-gen toolchain.
	buildScript = "build-docker.sh"

	// Dockerfile for the build container, required next to the script.
	dockerFile = "Dockerfile"

	// Name of the config file pi-gen reads from its root directory.
	configFile = "config"

	// Environment variable carrying extra Docker options for the script.
	dockerOptsEnv = "PIGEN_DOCKER_OPTS"

	// Marker file inside a stage directory requesting an image export.
	exportMarker = "EXPORT_IMAGE"
)

// Invokes pi-gen builds from a verified checkout directory.
type Builder struct {
	root    string // Absolute path to the pi-gen checkout.
	verbose bool   // Whether to surface unfiltered script output.
}

// Outcome of a single pi-gen invocation.
//
// A non-zero exit code is a build failure reported by the toolchain, not
// an invoker error; the captured streams hold whatever the script wrote.
type Result struct {
	ExitCode int    // Exit code of build-docker.sh.
	Stdout   string // Captured standard output.
	Stderr   string // Captured standard error.
}

// Creates a builder bound to the pi-gen checkout at root.
//
// The directory layout is verified up front: root must be a directory
// directly containing build-docker.sh, the Dockerfile, and one directory
// per built-in stage. A builder cannot be constructed against a checkout
// missing any of them.
func New(root string, verbose bool) (*Builder, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, wrapf(ErrInvalidPiGenDir, "%v", err)
	}

	if err := verifyLayout(abs); err != nil {
		return nil, err
	}

	return &Builder{root: abs, verbose: verbose}, nil
}

// Checks that root is a pi-gen checkout with the expected layout.
func verifyLayout(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return wrapf(ErrInvalidPiGenDir, "%v", err)
	}
	if !info.IsDir() {
		return wrapf(ErrInvalidPiGenDir, "%s is not a directory", root)
	}

	for _, name := range []string{buildScript, dockerFile} {
		info, err := os.Stat(filepath.Join(root, name))
		if err != nil || info.IsDir() {
			return wrapf(ErrInvalidPiGenDir, "%s is missing %s", root, name)
		}
	}

	for _, stage := range pigen.Stages() {
		info, err := os.Stat(filepath.Join(root, stage.Dir()))
		if err != nil || !info.IsDir() {
			return wrapf(ErrInvalidPiGenDir, "%s is missing stage directory %s", root, stage.Dir())
		}
	}

	return nil
}

// Runs a pi-gen build for the given configuration.
//
// The configuration must already be validated. Its stage list is rewritten
// to canonical absolute paths, export markers are prepared for each stage,
// the config file is written into the checkout, and build-docker.sh is
// executed from the checkout root with one Docker bind-mount option per
// stage directory. Output is streamed through the log filter while the
// script runs.
//
// The returned error covers launch and I/O failures only; a build the
// script itself reports as failed comes back as a [Result] with a non-zero
// exit code.
func (b *Builder) Run(ctx context.Context, cfg *pigen.Config) (*Result, error) {
	stages, err := pigen.ResolveStages(cfg.StageList, b.root)
	if err != nil {
		return nil, err
	}

	// Rewrite the stage list in place so the rendered config and the
	// Docker mounts agree on the same canonical paths.
	cfg.StageList = strings.Join(stages, " ")

	if err := b.prepareExports(stages); err != nil {
		return nil, err
	}

	configPath := filepath.Join(b.root, configFile)
	if err := os.WriteFile(configPath, []byte(cfg.Render()), paths.DefaultFileMode); err != nil {
		return nil, wrapf(ErrBuild, "writing config: %v", err)
	}

	slog.Info("starting pi-gen build",
		"pi-gen", b.root,
		"config", configPath,
		"stages", len(stages),
	)

	return b.execute(ctx, configPath, dockerOpts(stages))
}

// Prepares the export markers for each resolved stage directory.
//
// Built-in stages have their marker force-removed so pi-gen regenerates
// the final image fresh on every run. Custom stages are expected to opt
// in to export themselves; a missing marker there only logs a warning,
// since whether the stage should export an image is the user's call.
func (b *Builder) prepareExports(stages []string) error {
	for _, stage := range stages {
		marker := filepath.Join(stage, exportMarker)

		if _, ok := pigen.StageFromName(filepath.Base(stage)); ok {
			if err := os.Remove(marker); err != nil && !os.IsNotExist(err) {
				return wrapf(ErrBuild, "removing %s: %v", marker, err)
			}
			continue
		}

		if _, err := os.Stat(marker); os.IsNotExist(err) {
			slog.Warn("custom stage has no export marker, no image will be exported for it",
				"stage", stage,
				"marker", exportMarker,
			)
		}
	}

	return nil
}

// Executes build-docker.sh and streams its output through the log filter.
func (b *Builder) execute(ctx context.Context, configPath, dockerOpts string) (*Result, error) {
	cmd := exec.CommandContext(ctx, "./"+buildScript, "-c", configPath)
	cmd.Dir = b.root
	cmd.Env = append(os.Environ(), dockerOptsEnv+"="+dockerOpts)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, wrapf(ErrBuild, "%v", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, wrapf(ErrBuild, "%v", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, wrapf(ErrBuild, "starting %s: %v", buildScript, err)
	}

	var outBuf, errBuf bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		consume(stdout, &outBuf, b.verbose, func(line string) {
			slog.Info(line)
		})
	}()
	go func() {
		defer wg.Done()
		consume(stderr, &errBuf, b.verbose, func(line string) {
			slog.Error(line)
		})
	}()

	wg.Wait()

	result := &Result{}
	if err := cmd.Wait(); err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return nil, wrapf(ErrBuild, "%v", err)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	result.Stdout = outBuf.String()
	result.Stderr = errBuf.String()
	return result, nil
}

// Formats one Docker bind-mount option per stage directory, space-joined
// for the PIGEN_DOCKER_OPTS environment variable.
func dockerOpts(stages []string) string {
	opts := make([]string, 0, len(stages))
	for _, stage := range stages {
		opts = append(opts, fmt.Sprintf("-v %s:%s", stage, stage))
	}
	return strings.Join(opts, " ")
}
