package host

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Path to the glibc database of supported locale identifiers.
const localeDB = "/usr/share/i18n/SUPPORTED"

var ErrProbe = errors.New("host probe failed")

// Answers environment queries used during configuration validation.
type Environment interface {

	// Returns the locale identifiers the host supports.
	Locales(ctx context.Context) ([]string, error)

	// Returns the valid timezone identifiers known to the host.
	Timezones(ctx context.Context) ([]string, error)
}

// The real build host.
type System struct{}

// Creates an [Environment] backed by the local system.
func NewSystem() *System {
	return &System{}
}

// Reads the locale database and returns the supported locale identifiers.
//
// Each non-comment line contributes its first whitespace-delimited token
// (e.g. "en_GB.UTF-8 UTF-8" yields "en_GB.UTF-8").
func (s *System) Locales(ctx context.Context) ([]string, error) {
	f, err := os.Open(localeDB)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProbe, err)
	}
	defer f.Close()

	locales, err := parseLocales(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProbe, err)
	}
	return locales, nil
}

// Lists valid timezone identifiers via timedatectl.
func (s *System) Timezones(ctx context.Context) ([]string, error) {
	out, err := exec.CommandContext(ctx, "timedatectl", "list-timezones").Output()
	if err != nil {
		return nil, fmt.Errorf("%w: timedatectl list-timezones: %v", ErrProbe, err)
	}

	var timezones []string
	for line := range strings.Lines(string(out)) {
		if tz := strings.TrimSpace(line); tz != "" {
			timezones = append(timezones, tz)
		}
	}
	return timezones, nil
}

// Extracts locale identifiers from locale database content.
func parseLocales(r io.Reader) ([]string, error) {
	var locales []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		locales = append(locales, strings.Fields(line)[0])
	}

	return locales, scanner.Err()
}
