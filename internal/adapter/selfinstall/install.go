// Package selfinstall copies the running binary into a user bin directory.
package selfinstall

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var ErrNoHome = errors.New("cannot determine home directory")

// DefaultDestination mirrors where the hooks look for an installed pet.
func DefaultDestination(home, goos string) (string, error) {
	if home == "" {
		return "", ErrNoHome
	}
	if goos == "windows" {
		return filepath.Join(home, "AppData", "Local", "Programs", "terminal-pet", "terminal-pet.exe"), nil
	}
	return filepath.Join(home, ".local", "bin", "terminal-pet"), nil
}

// Installed reports whether dest exists as a regular file.
func Installed(dest string) bool {
	info, err := os.Stat(dest)
	return err == nil && info.Mode().IsRegular()
}

func Install(src, dest string) error {
	if src == "" || dest == "" {
		return errors.New("source and destination are required")
	}
	if filepath.Clean(src) == filepath.Clean(dest) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(dest), err)
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	tmp := dest + ".tmp"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("copy binary: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Chmod(tmp, 0o755); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("chmod %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("install %s: %w", dest, err)
	}
	return nil
}
