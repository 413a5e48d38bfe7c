// Package hooks writes git hooks that report commits to the pet.
package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const DefaultCommand = "terminal-pet"

type Installed struct {
	Unix    string
	Windows string
}

// UnixScript never fails the commit, whatever the pet does.
func UnixScript(binary string) string {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultCommand
	}
	return "#!/bin/sh\n" + binary + " event commit || true\n"
}

func WindowsScript(binary string) string {
	cmd := DefaultCommand + ".exe"
	if strings.TrimSpace(binary) != "" {
		cmd = `"` + binary + `"`
	}
	return "@echo off\r\n" + cmd + " event commit || exit /b 0\r\n"
}

// InstallPostCommit writes post-commit and post-commit.bat into
// <repoDir>/.git/hooks. binary is the absolute pet path, or empty to rely on PATH.
func InstallPostCommit(repoDir, binary string) (Installed, error) {
	hookDir := filepath.Join(repoDir, ".git", "hooks")
	if err := os.MkdirAll(hookDir, 0o755); err != nil {
		return Installed{}, fmt.Errorf("create %s: %w", hookDir, err)
	}

	unixPath := filepath.Join(hookDir, "post-commit")
	if err := os.WriteFile(unixPath, []byte(UnixScript(binary)), 0o755); err != nil {
		return Installed{}, fmt.Errorf("write %s: %w", unixPath, err)
	}
	if err := os.Chmod(unixPath, 0o755); err != nil {
		return Installed{}, fmt.Errorf("chmod %s: %w", unixPath, err)
	}

	winPath := filepath.Join(hookDir, "post-commit.bat")
	if err := os.WriteFile(winPath, []byte(WindowsScript(binary)), 0o644); err != nil {
		return Installed{Unix: unixPath}, fmt.Errorf("write %s: %w", winPath, err)
	}
	return Installed{Unix: unixPath, Windows: winPath}, nil
}
