package internal

import "strconv"

var (
	quietMode   bool // Whether quiet mode is enabled.
	debugMode   bool // Whether debug logging is enabled.
	verboseMode bool // Whether verbose output is enabled.
)

// Parses the linker flags into usable runtime variables.
//
// The rawQuiet, rawDebug, and rawVerbose variables should be set via ldflags
// during the build process. If not set, they default to "false". CLI flags
// can still override the resulting modes at parse time.
func init() {
	if v, err := strconv.ParseBool(rawQuiet); err == nil {
		quietMode = v
	}
	if v, err := strconv.ParseBool(rawDebug); err == nil {
		debugMode = v
	}
	if v, err := strconv.ParseBool(rawVerbose); err == nil {
		verboseMode = v
	}
}

// Returns true if quiet mode is enabled.
func IsQuiet() bool {
	return quietMode
}

// Returns true if debug mode is enabled.
func IsDebug() bool {
	return debugMode
}

// Returns true if verbose output is enabled.
func IsVerbose() bool {
	return verboseMode
}
