package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/pigen-tools/pigenctl/internal"
)

// Represents the root command for the pigenctl CLI.
var RootCmd struct {
	Quiet    bool        `short:"q" help:"Suppress informational output."`
	Verbose  bool        `short:"v" help:"Surface every build output line, not just progress lines."`
	Debug    bool        `short:"d" help:"Enable debug output."`
	Build    BuildCmd    `cmd:"" help:"Run a pi-gen build."`
	Validate ValidateCmd `cmd:"" help:"Validate build options and print the rendered config."`
	Fetch    FetchCmd    `cmd:"" help:"Install a pi-gen checkout."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Builds Raspberry Pi OS images with the pi-gen toolchain.\n\nAssembles and validates a pi-gen configuration, then drives build-docker.sh."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Configures the global logger based on CLI flags.
func configureLogger() {
	level := slog.LevelInfo
	if RootCmd.Debug || internal.IsDebug() {
		level = slog.LevelDebug
	} else if RootCmd.Quiet || internal.IsQuiet() {
		level = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// Whether verbose output was requested via flag or build-time default.
func verbose() bool {
	return RootCmd.Verbose || internal.IsVerbose()
}
