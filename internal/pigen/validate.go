package pigen

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pigen-tools/pigenctl/internal/host"
)

// OS releases pi-gen can build.
var supportedReleases = []string{"jessie", "stretch", "buster", "bullseye", "bookworm"}

// Compression modes for the deployed image.
var supportedCompressions = []string{"none", "zip", "gz", "xz"}

// WPA-PSK passphrase length bounds, per IEEE 802.11.
const (
	wpaPasswordMinLen = 8
	wpaPasswordMaxLen = 63
)

// Checks every field against its constraint, stopping at the first
// violation.
//
// Static rules (enumerations, lengths) are checked inline; locale and
// timezone membership is checked against the injected host environment.
// Stage-list tokens must each name a built-in stage or an existing
// directory. The returned error names the violated constraint.
func (c *Config) Validate(ctx context.Context, env host.Environment) error {
	if c.ImgName == "" {
		return wrapf(ErrInvalidConfig, "image name must not be empty")
	}

	if !containsFold(supportedReleases, c.Release) {
		return wrapf(ErrInvalidConfig, "release %q is not supported (one of: %s)",
			c.Release, strings.Join(supportedReleases, ", "))
	}

	if !containsFold(supportedCompressions, c.DeployCompression) {
		return wrapf(ErrInvalidConfig, "compression %q is not supported (one of: %s)",
			c.DeployCompression, strings.Join(supportedCompressions, ", "))
	}

	if !isDigit(c.CompressionLevel) {
		return wrapf(ErrInvalidConfig, "compression level %q must be a single digit 0-9", c.CompressionLevel)
	}

	locales, err := env.Locales(ctx)
	if err != nil {
		return wrapf(ErrInvalidConfig, "reading supported locales: %v", err)
	}
	if !slices.Contains(locales, c.LocaleDefault) {
		return wrapf(ErrInvalidConfig, "locale %q is not supported by the host", c.LocaleDefault)
	}

	if c.TargetHostname == "" {
		return wrapf(ErrInvalidConfig, "hostname must not be empty")
	}

	if c.KeyboardKeymap == "" {
		return wrapf(ErrInvalidConfig, "keyboard keymap must not be empty")
	}
	if c.KeyboardLayout == "" {
		return wrapf(ErrInvalidConfig, "keyboard layout must not be empty")
	}

	timezones, err := env.Timezones(ctx)
	if err != nil {
		return wrapf(ErrInvalidConfig, "listing timezones: %v", err)
	}
	if !slices.Contains(timezones, c.TimezoneDefault) {
		return wrapf(ErrInvalidConfig, "timezone %q is not a valid timezone identifier", c.TimezoneDefault)
	}

	if c.FirstUserName == "" {
		return wrapf(ErrInvalidConfig, "first user name must not be empty")
	}

	if c.WpaPassword != "" {
		// Byte length on purpose: WPA-PSK passphrases are restricted to
		// printable ASCII by IEEE 802.11, so bytes and characters agree
		// for every passphrase wpa_supplicant accepts.
		if n := len(c.WpaPassword); n < wpaPasswordMinLen || n > wpaPasswordMaxLen {
			return wrapf(ErrInvalidConfig, "WPA password must be %d to %d characters, got %d",
				wpaPasswordMinLen, wpaPasswordMaxLen, n)
		}
	}

	return c.validateStageList()
}

// Checks that the stage list is non-empty and that every token names a
// built-in stage or an existing directory.
func (c *Config) validateStageList() error {
	tokens := strings.Fields(c.StageList)
	if len(tokens) == 0 {
		return wrapf(ErrInvalidConfig, "stage list must not be empty")
	}

	for _, token := range tokens {
		if _, ok := StageFromName(token); ok {
			continue
		}
		info, err := os.Stat(filepath.Clean(token))
		if err != nil || !info.IsDir() {
			return wrapf(ErrInvalidConfig,
				"stage %q is neither a built-in stage nor an existing directory", token)
		}
	}

	return nil
}

// Reports whether list contains s, compared case-insensitively.
func containsFold(list []string, s string) bool {
	return slices.ContainsFunc(list, func(item string) bool {
		return strings.EqualFold(item, s)
	})
}

// Reports whether s is a single decimal digit.
func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}
