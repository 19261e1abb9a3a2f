package fetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCloneArgs(t *testing.T) {
	got := cloneArgs("https://example.com/pi-gen.git", "bookworm", "/tmp/pi-gen")
	want := []string{"clone", "--depth", "1", "--branch", "bookworm", "https://example.com/pi-gen.git", "/tmp/pi-gen"}

	if len(got) != len(want) {
		t.Fatalf("cloneArgs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRunRefusesNonEmptyDestination(t *testing.T) {
	dest := t.TempDir()
	if err := os.WriteFile(filepath.Join(dest, "leftover"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Run(context.Background(), Options{Dest: dest})
	if !errors.Is(err, ErrDestExists) {
		t.Fatalf("err = %v, want ErrDestExists", err)
	}
}
