package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pigen-tools/pigenctl/internal/build"
	"github.com/pigen-tools/pigenctl/internal/host"
	"github.com/pigen-tools/pigenctl/internal/paths"
)

// Represents the 'pigenctl build' command.
type BuildCmd struct {
	ConfigFlags `embed:""`

	PiGen string `help:"Path to the pi-gen checkout." placeholder:"DIR"`
}

// Executes the build command.
//
// Assembles and validates the configuration, then runs pi-gen from the
// checkout directory and reports the produced image artifacts. A build
// the toolchain reports as failed surfaces as an error carrying its exit
// code.
func (c *BuildCmd) Run(ctx context.Context) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}

	root := c.PiGen
	if root == "" {
		root = paths.PiGen()
	}

	// The structural check runs before field validation, so a broken
	// checkout is reported even when the options are also wrong.
	b, err := build.New(root, verbose())
	if err != nil {
		return err
	}

	if err := cfg.Validate(ctx, host.NewSystem()); err != nil {
		return err
	}

	result, err := b.Run(ctx, cfg)
	if err != nil {
		return err
	}

	if result.ExitCode != 0 {
		return fmt.Errorf("pi-gen exited with code %d", result.ExitCode)
	}

	artifacts, err := b.Artifacts()
	if err != nil {
		return err
	}

	if len(artifacts) == 0 {
		slog.Warn("build succeeded but produced no image artifacts")
		return nil
	}

	for _, artifact := range artifacts {
		slog.Info("image built", "path", artifact)
	}

	return nil
}
