package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pigen-tools/pigenctl/internal/pigen"
)

// Build option flags shared by the build and validate commands.
//
// Every field maps to one pi-gen config entry. Toggle options follow
// pi-gen's convention of "1" for enabled.
type ConfigFlags struct {
	Options string `short:"o" help:"TOML file with build options." placeholder:"FILE" type:"existingfile"`

	ImageName                  string `help:"Name of the image to build." placeholder:"NAME"`
	Release                    string `help:"OS release to build (e.g. bookworm)."`
	Compression                string `help:"Compression for the deployed image (none, zip, gz, xz)."`
	CompressionLevel           string `help:"Compression level (0-9)." placeholder:"N"`
	Locale                     string `help:"Default locale of the image (e.g. en_GB.UTF-8)."`
	Hostname                   string `help:"Hostname of the image."`
	KeyboardKeymap             string `help:"Default keyboard keymap (e.g. gb)."`
	KeyboardLayout             string `help:"Default keyboard layout (e.g. 'English (UK)')."`
	Timezone                   string `help:"Timezone of the image (e.g. Europe/London)."`
	Username                   string `help:"Name of the first user."`
	Password                   string `help:"Password of the first user."`
	DisableFirstBootUserRename string `help:"Set to 1 to keep the first user's name on first boot."`
	WpaEssid                   string `help:"SSID of a default Wi-Fi network."`
	WpaPassword                string `help:"Passphrase of the default Wi-Fi network (8-63 characters)."`
	WpaCountry                 string `help:"Wi-Fi country code (e.g. GB)."`
	EnableSSH                  string `help:"Set to 1 to enable SSH." name:"enable-ssh"`
	PubkeySSHFirstUser         string `help:"Authorized public keys for the first user." name:"pubkey-ssh-first-user"`
	PubkeyOnlySSH              string `help:"Set to 1 to disable password authentication for SSH." name:"pubkey-only-ssh"`
	StageList                  string `help:"Space-separated list of build stages." placeholder:"STAGES"`
	UseQcow2                   string `help:"Set to 1 to build with qcow2 images." name:"use-qcow2"`
}

// Assembles the effective configuration.
//
// Starts from pi-gen's conventional defaults, overlays the TOML options
// file when one was given, then overlays any non-empty flag values on top.
// Unknown keys in the options file are rejected.
func (f *ConfigFlags) config() (*pigen.Config, error) {
	cfg := pigen.Default()

	if f.Options != "" {
		md, err := toml.DecodeFile(f.Options, cfg)
		if err != nil {
			return nil, fmt.Errorf("reading options file: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, key := range undecoded {
				keys[i] = key.String()
			}
			return nil, fmt.Errorf("unknown option(s) in %s: %s", f.Options, strings.Join(keys, ", "))
		}
	}

	f.apply(cfg)
	return cfg, nil
}

// Overlays non-empty flag values onto the configuration.
func (f *ConfigFlags) apply(cfg *pigen.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&cfg.ImgName, f.ImageName)
	set(&cfg.Release, f.Release)
	set(&cfg.DeployCompression, f.Compression)
	set(&cfg.CompressionLevel, f.CompressionLevel)
	set(&cfg.LocaleDefault, f.Locale)
	set(&cfg.TargetHostname, f.Hostname)
	set(&cfg.KeyboardKeymap, f.KeyboardKeymap)
	set(&cfg.KeyboardLayout, f.KeyboardLayout)
	set(&cfg.TimezoneDefault, f.Timezone)
	set(&cfg.FirstUserName, f.Username)
	set(&cfg.FirstUserPass, f.Password)
	set(&cfg.DisableFirstBootUserRename, f.DisableFirstBootUserRename)
	set(&cfg.WpaEssid, f.WpaEssid)
	set(&cfg.WpaPassword, f.WpaPassword)
	set(&cfg.WpaCountry, f.WpaCountry)
	set(&cfg.EnableSSH, f.EnableSSH)
	set(&cfg.PubkeySSHFirstUser, f.PubkeySSHFirstUser)
	set(&cfg.PubkeyOnlySSH, f.PubkeyOnlySSH)
	set(&cfg.StageList, f.StageList)
	set(&cfg.UseQcow2, f.UseQcow2)
}
