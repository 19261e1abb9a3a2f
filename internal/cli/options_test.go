package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigDefaultsOnly(t *testing.T) {
	f := &ConfigFlags{}

	cfg, err := f.config()
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	if cfg.Release != "bookworm" {
		t.Errorf("Release = %q, want the bookworm default", cfg.Release)
	}
	if cfg.StageList != "stage0 stage1 stage2" {
		t.Errorf("StageList = %q, want the default stage list", cfg.StageList)
	}
	if cfg.ImgName != "" {
		t.Errorf("ImgName = %q, want empty (no default)", cfg.ImgName)
	}
}

func TestConfigFlagsOverrideDefaults(t *testing.T) {
	f := &ConfigFlags{
		ImageName: "custom",
		Release:   "bullseye",
	}

	cfg, err := f.config()
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	if cfg.ImgName != "custom" {
		t.Errorf("ImgName = %q, want %q", cfg.ImgName, "custom")
	}
	if cfg.Release != "bullseye" {
		t.Errorf("Release = %q, want %q", cfg.Release, "bullseye")
	}
	if cfg.TargetHostname != "raspberrypi" {
		t.Errorf("TargetHostname = %q, untouched default lost", cfg.TargetHostname)
	}
}

func TestConfigOptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.toml")
	content := "image-name = \"from-file\"\n" +
		"release = \"buster\"\n" +
		"wpa-password = \"filesecret\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	// Flags beat the file; the file beats defaults.
	f := &ConfigFlags{
		Options: path,
		Release: "bullseye",
	}

	cfg, err := f.config()
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	if cfg.ImgName != "from-file" {
		t.Errorf("ImgName = %q, want %q", cfg.ImgName, "from-file")
	}
	if cfg.Release != "bullseye" {
		t.Errorf("Release = %q, flag should beat the file", cfg.Release)
	}
	if cfg.WpaPassword != "filesecret" {
		t.Errorf("WpaPassword = %q, want %q", cfg.WpaPassword, "filesecret")
	}
	if cfg.FirstUserName != "pi" {
		t.Errorf("FirstUserName = %q, untouched default lost", cfg.FirstUserName)
	}
}

func TestConfigRejectsUnknownOptionKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.toml")
	if err := os.WriteFile(path, []byte("no-such-option = \"x\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	f := &ConfigFlags{Options: path}

	_, err := f.config()
	if err == nil {
		t.Fatal("expected error for unknown option key")
	}
	if !strings.Contains(err.Error(), "no-such-option") {
		t.Fatalf("err %q does not name the unknown key", err)
	}
}
