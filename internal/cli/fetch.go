package cli

import (
	"context"
	"log/slog"

	"github.com/pigen-tools/pigenctl/internal/fetch"
)

// Represents the 'pigenctl fetch' command.
type FetchCmd struct {
	URL  string `help:"pi-gen repository URL." placeholder:"URL"`
	Ref  string `help:"Branch or tag to check out." placeholder:"REF"`
	Dest string `help:"Directory to clone into. Defaults to the tool's cache." placeholder:"DIR"`
}

// Executes the fetch command.
//
// Shallow-clones the pi-gen toolchain so a subsequent build can run
// against it without any --pi-gen flag.
func (c *FetchCmd) Run(ctx context.Context) error {
	dir, err := fetch.Run(ctx, fetch.Options{
		URL:  c.URL,
		Ref:  c.Ref,
		Dest: c.Dest,
	})
	if err != nil {
		return err
	}

	slog.Info("pi-gen installed", "path", dir)
	return nil
}
