package selfinstall

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultDestination(t *testing.T) {
	got, err := DefaultDestination("/home/dev", "linux")
	if err != nil {
		t.Fatalf("DefaultDestination: %v", err)
	}
	if want := filepath.Join("/home/dev", ".local", "bin", "terminal-pet"); got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	got, err = DefaultDestination("/home/dev", "windows")
	if err != nil {
		t.Fatalf("DefaultDestination: %v", err)
	}
	if want := filepath.Join("/home/dev", "AppData", "Local", "Programs", "terminal-pet", "terminal-pet.exe"); got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	if _, err := DefaultDestination("", "linux"); !errors.Is(err, ErrNoHome) {
		t.Fatalf("expected ErrNoHome, got %v", err)
	}
}

func TestInstallCopiesBinary(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "build", "terminal-pet")
	if err := os.MkdirAll(filepath.Dir(src), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(src, []byte("binary-bytes"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}
	dest := filepath.Join(dir, "home", ".local", "bin", "terminal-pet")

	if Installed(dest) {
		t.Fatalf("expected nothing installed yet")
	}
	if err := Install(src, dest); err != nil {
		t.Fatalf("install: %v", err)
	}
	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	if string(b) != "binary-bytes" {
		t.Fatalf("unexpected content %q", b)
	}
	if !Installed(dest) {
		t.Fatalf("expected Installed to report true")
	}
	if _, err := os.Stat(dest + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be gone, got %v", err)
	}
}

func TestInstallMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := Install(filepath.Join(dir, "nope"), filepath.Join(dir, "dest")); err == nil {
		t.Fatal("expected error for missing source")
	}
}
