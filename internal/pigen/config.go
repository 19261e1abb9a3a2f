package pigen

import (
	"strings"
)

// The flat set of pi-gen build options.
//
// All fields are strings, mirroring the toolchain's config file format.
// Empty fields are omitted from the rendered file, letting pi-gen fall
// back to its own defaults. Boolean toggles use pi-gen's "1" convention.
type Config struct {
	ImgName                    string `toml:"image-name"`
	Release                    string `toml:"release"`
	DeployCompression          string `toml:"compression"`
	CompressionLevel           string `toml:"compression-level"`
	LocaleDefault              string `toml:"locale"`
	TargetHostname             string `toml:"hostname"`
	KeyboardKeymap             string `toml:"keyboard-keymap"`
	KeyboardLayout             string `toml:"keyboard-layout"`
	TimezoneDefault            string `toml:"timezone"`
	FirstUserName              string `toml:"username"`
	FirstUserPass              string `toml:"password"`
	DisableFirstBootUserRename string `toml:"disable-first-boot-user-rename"`
	WpaEssid                   string `toml:"wpa-essid"`
	WpaPassword                string `toml:"wpa-password"`
	WpaCountry                 string `toml:"wpa-country"`
	EnableSSH                  string `toml:"enable-ssh"`
	PubkeySSHFirstUser         string `toml:"pubkey-ssh-first-user"`
	PubkeyOnlySSH              string `toml:"pubkey-only-ssh"`
	StageList                  string `toml:"stage-list"`
	UseQcow2                   string `toml:"use-qcow2"`
}

// Maps a config field to its external key in the rendered file.
//
// The table is the single source of truth for key names and output order.
// pi-gen reads the file as a shell fragment, so keys follow its
// upper-snake-case convention.
type field struct {
	key   string
	value func(*Config) string
}

var fields = []field{
	{"IMG_NAME", func(c *Config) string { return c.ImgName }},
	{"RELEASE", func(c *Config) string { return c.Release }},
	{"DEPLOY_COMPRESSION", func(c *Config) string { return c.DeployCompression }},
	{"COMPRESSION_LEVEL", func(c *Config) string { return c.CompressionLevel }},
	{"LOCALE_DEFAULT", func(c *Config) string { return c.LocaleDefault }},
	{"TARGET_HOSTNAME", func(c *Config) string { return c.TargetHostname }},
	{"KEYBOARD_KEYMAP", func(c *Config) string { return c.KeyboardKeymap }},
	{"KEYBOARD_LAYOUT", func(c *Config) string { return c.KeyboardLayout }},
	{"TIMEZONE_DEFAULT", func(c *Config) string { return c.TimezoneDefault }},
	{"FIRST_USER_NAME", func(c *Config) string { return c.FirstUserName }},
	{"FIRST_USER_PASS", func(c *Config) string { return c.FirstUserPass }},
	{"DISABLE_FIRST_BOOT_USER_RENAME", func(c *Config) string { return c.DisableFirstBootUserRename }},
	{"WPA_ESSID", func(c *Config) string { return c.WpaEssid }},
	{"WPA_PASSWORD", func(c *Config) string { return c.WpaPassword }},
	{"WPA_COUNTRY", func(c *Config) string { return c.WpaCountry }},
	{"ENABLE_SSH", func(c *Config) string { return c.EnableSSH }},
	{"PUBKEY_SSH_FIRST_USER", func(c *Config) string { return c.PubkeySSHFirstUser }},
	{"PUBKEY_ONLY_SSH", func(c *Config) string { return c.PubkeyOnlySSH }},
	{"STAGE_LIST", func(c *Config) string { return c.StageList }},
	{"USE_QCOW2", func(c *Config) string { return c.UseQcow2 }},
}

// Returns a configuration pre-filled with pi-gen's conventional defaults.
//
// The image name has no sensible default and is left empty; validation
// rejects it until the caller fills it in.
func Default() *Config {
	return &Config{
		Release:           "bookworm",
		DeployCompression: "none",
		CompressionLevel:  "6",
		LocaleDefault:     "en_GB.UTF-8",
		TargetHostname:    "raspberrypi",
		KeyboardKeymap:    "gb",
		KeyboardLayout:    "English (UK)",
		TimezoneDefault:   "Europe/London",
		FirstUserName:     "pi",
		StageList:         "stage0 stage1 stage2",
	}
}

// Renders the configuration as the KEY="value" file pi-gen consumes.
//
// One line per non-empty field, in table order. Values are double-quoted
// without escaping, matching the format the toolchain itself uses.
func (c *Config) Render() string {
	var sb strings.Builder
	for _, f := range fields {
		v := f.value(c)
		if v == "" {
			continue
		}
		sb.WriteString(f.key)
		sb.WriteString(`="`)
		sb.WriteString(v)
		sb.WriteString("\"\n")
	}
	return sb.String()
}

// Rewrites the stage list as a space-joined string of canonical absolute
// paths.
//
// Built-in stage names resolve relative to the pi-gen root. Must run after
// validation and before the configuration is rendered to disk, so that
// pi-gen and its Docker mounts see real paths.
func (c *Config) AbsolutizeStages(root string) error {
	resolved, err := ResolveStages(c.StageList, root)
	if err != nil {
		return err
	}
	c.StageList = strings.Join(resolved, " ")
	return nil
}
