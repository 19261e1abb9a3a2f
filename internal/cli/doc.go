// Parses flags and configures logging for the pigenctl CLI.
//
// The tool accepts the following global flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Surface every build output line, not just progress lines.
//	-d, --debug     Enable debug output.
//
// Flags override build-time defaults set via linker flags. After parsing,
// the global logger is reconfigured to reflect the final level before the
// selected subcommand runs.
//
// Build options for the build and validate commands come from flags and,
// optionally, a TOML options file; flag values take precedence over file
// values, which take precedence over pi-gen's conventional defaults.
package cli
