package cli

import (
	"context"
	"fmt"

	"github.com/pigen-tools/pigenctl/internal/host"
)

// Represents the 'pigenctl validate' command.
type ValidateCmd struct {
	ConfigFlags `embed:""`

	PiGen string `help:"Resolve built-in stages against this pi-gen checkout." placeholder:"DIR"`
}

// Executes the validate command.
//
// Assembles and validates the configuration exactly as build would, then
// prints the rendered config file to standard output without building
// anything. When a pi-gen directory is given, the stage list is resolved
// to absolute paths first, matching what a build run would write.
func (c *ValidateCmd) Run(ctx context.Context) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}

	if err := cfg.Validate(ctx, host.NewSystem()); err != nil {
		return err
	}

	if c.PiGen != "" {
		if err := cfg.AbsolutizeStages(c.PiGen); err != nil {
			return err
		}
	}

	fmt.Print(cfg.Render())
	return nil
}
