package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pigen-tools/pigenctl/internal/pigen"
)

// Creates a directory with the layout of a pi-gen checkout: the build
// script, the Dockerfile, and one directory per built-in stage. The
// script is the given shell fragment, run via /bin/sh.
func newPiGenDir(t *testing.T, script string) string {
	t.Helper()

	root := t.TempDir()

	if err := os.WriteFile(filepath.Join(root, "build-docker.sh"), []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "Dockerfile"), []byte("FROM debian:bookworm\n"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, stage := range pigen.Stages() {
		if err := os.Mkdir(filepath.Join(root, stage.Dir()), 0755); err != nil {
			t.Fatal(err)
		}
	}

	return root
}

// A configuration whose static fields are already valid; only the stage
// list matters to the builder.
func testConfig(stageList string) *pigen.Config {
	cfg := pigen.Default()
	cfg.ImgName = "test"
	cfg.StageList = stageList
	return cfg
}

func TestNewVerifiesLayout(t *testing.T) {
	root := newPiGenDir(t, "exit 0\n")

	if _, err := New(root, false); err != nil {
		t.Fatalf("New on valid layout: %v", err)
	}
}

func TestNewRejectsBrokenLayouts(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(t *testing.T, root string)
	}{
		{
			name: "missing build script",
			corrupt: func(t *testing.T, root string) {
				if err := os.Remove(filepath.Join(root, "build-docker.sh")); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "missing Dockerfile",
			corrupt: func(t *testing.T, root string) {
				if err := os.Remove(filepath.Join(root, "Dockerfile")); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "missing stage directory",
			corrupt: func(t *testing.T, root string) {
				if err := os.Remove(filepath.Join(root, "stage3")); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "stage is a file",
			corrupt: func(t *testing.T, root string) {
				path := filepath.Join(root, "stage5")
				if err := os.Remove(path); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(path, nil, 0644); err != nil {
					t.Fatal(err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newPiGenDir(t, "exit 0\n")
			tt.corrupt(t, root)

			if _, err := New(root, false); !errors.Is(err, ErrInvalidPiGenDir) {
				t.Fatalf("err = %v, want ErrInvalidPiGenDir", err)
			}
		})
	}
}

func TestNewRejectsNonDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "pi-gen")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := New(file, false); !errors.Is(err, ErrInvalidPiGenDir) {
		t.Fatalf("err = %v, want ErrInvalidPiGenDir", err)
	}

	if _, err := New(filepath.Join(t.TempDir(), "missing"), false); !errors.Is(err, ErrInvalidPiGenDir) {
		t.Fatalf("err = %v, want ErrInvalidPiGenDir", err)
	}
}

func TestPrepareExports(t *testing.T) {
	root := newPiGenDir(t, "exit 0\n")
	b, err := New(root, false)
	if err != nil {
		t.Fatal(err)
	}

	// Built-in stage with a stale marker: must be removed.
	marker := filepath.Join(root, "stage2", exportMarker)
	if err := os.WriteFile(marker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	// Custom stage without a marker: warned about, left untouched.
	custom := filepath.Join(t.TempDir(), "custom")
	if err := os.Mkdir(custom, 0755); err != nil {
		t.Fatal(err)
	}

	stages := []string{
		filepath.Join(root, "stage0"),
		filepath.Join(root, "stage2"),
		custom,
	}
	if err := b.prepareExports(stages); err != nil {
		t.Fatalf("prepareExports: %v", err)
	}

	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Errorf("stage2 export marker still exists")
	}
	if _, err := os.Stat(filepath.Join(custom, exportMarker)); !os.IsNotExist(err) {
		t.Errorf("marker was created for the custom stage")
	}
}

func TestDockerOpts(t *testing.T) {
	got := dockerOpts([]string{"/a/stage0", "/b/custom"})
	want := "-v /a/stage0:/a/stage0 -v /b/custom:/b/custom"
	if got != want {
		t.Fatalf("dockerOpts = %q, want %q", got, want)
	}

	if got := dockerOpts(nil); got != "" {
		t.Fatalf("dockerOpts(nil) = %q, want empty", got)
	}
}

func TestRunWritesConfigAndEnv(t *testing.T) {
	// The stub script proves the contract: it runs from the checkout root,
	// receives the config path after -c, and sees the mount options in its
	// environment.
	root := newPiGenDir(t,
		"echo \"[00:00:01] config is $2\"\n"+
			"echo \"[00:00:02] opts are $PIGEN_DOCKER_OPTS\"\n"+
			"exit 0\n")

	b, err := New(root, false)
	if err != nil {
		t.Fatal(err)
	}

	cfg := testConfig("stage0 stage1")
	result, err := b.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.ExitCode != 0 {
		t.Fatalf("exit code = %d, stderr: %s", result.ExitCode, result.Stderr)
	}

	realRoot, err := filepath.EvalSymlinks(b.root)
	if err != nil {
		t.Fatal(err)
	}

	stage0 := filepath.Join(realRoot, "stage0")
	stage1 := filepath.Join(realRoot, "stage1")

	// The stage list was absolutized in place before rendering.
	wantList := stage0 + " " + stage1
	if cfg.StageList != wantList {
		t.Errorf("StageList = %q, want %q", cfg.StageList, wantList)
	}

	data, err := os.ReadFile(filepath.Join(root, "config"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), `STAGE_LIST="`+wantList+`"`) {
		t.Errorf("config file missing absolutized stage list:\n%s", data)
	}
	if !strings.Contains(string(data), `IMG_NAME="test"`) {
		t.Errorf("config file missing IMG_NAME:\n%s", data)
	}

	wantOpts := "-v " + stage0 + ":" + stage0 + " -v " + stage1 + ":" + stage1
	if !strings.Contains(result.Stdout, "opts are "+wantOpts) {
		t.Errorf("script did not see mount options %q:\n%s", wantOpts, result.Stdout)
	}
	if !strings.Contains(result.Stdout, "config is "+filepath.Join(b.root, "config")) {
		t.Errorf("script did not receive the config path:\n%s", result.Stdout)
	}
}

func TestRunReportsExitCode(t *testing.T) {
	root := newPiGenDir(t,
		"echo \"[00:00:01] Begin stage0\"\n"+
			"echo \"something went wrong\" >&2\n"+
			"exit 3\n")

	b, err := New(root, false)
	if err != nil {
		t.Fatal(err)
	}

	result, err := b.Run(context.Background(), testConfig("stage0"))
	if err != nil {
		t.Fatalf("Run returned an error for a failed build: %v", err)
	}

	if result.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", result.ExitCode)
	}
	if !strings.Contains(result.Stderr, "something went wrong") {
		t.Errorf("stderr not captured: %q", result.Stderr)
	}
	if !strings.Contains(result.Stdout, "[00:00:01] Begin stage0") {
		t.Errorf("stdout not captured: %q", result.Stdout)
	}
}

func TestRunCapturesUnfilteredOutput(t *testing.T) {
	root := newPiGenDir(t,
		"echo \"[00:00:01] progress line\"\n"+
			"echo \"chatter without timestamp\"\n"+
			"exit 0\n")

	b, err := New(root, false)
	if err != nil {
		t.Fatal(err)
	}

	result, err := b.Run(context.Background(), testConfig("stage0"))
	if err != nil {
		t.Fatal(err)
	}

	// Filtering affects the log sink only; the result holds everything.
	if !strings.Contains(result.Stdout, "chatter without timestamp") {
		t.Errorf("non-matching line missing from captured output: %q", result.Stdout)
	}
}
