// Package build invokes the pi-gen toolchain against a validated
// configuration.
//
// A [Builder] is bound to a pi-gen checkout whose layout is verified at
// construction: the build script, the Dockerfile, and one directory per
// built-in stage must all be present. Running a build absolutizes the
// configuration's stage list, prepares per-stage export markers, writes
// the config file, and executes build-docker.sh with Docker bind-mount
// options for each stage directory. The script's output is streamed
// line by line through the log filter as it is produced.
//
// The script's exit code is carried in the [Result] rather than returned
// as an error; interpreting a failed build is the caller's decision.
//
// Example usage:
//
//	b, err := build.New("/opt/pi-gen", false)
//	if err != nil {
//	    return err
//	}
//
//	result, err := b.Run(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	if result.ExitCode != 0 {
//	    return fmt.Errorf("build failed: %s", result.Stderr)
//	}
package build
