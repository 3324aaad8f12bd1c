//go:build !linux

package procs

import (
	"fmt"
	"os/exec"
	"strings"
)

func countByName(name string) (int, error) {
	out, err := exec.Command("pgrep", "-x", name).Output()
	if err != nil {
		// pgrep exits 1 when nothing matches.
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return 0, nil
		}
		return 0, fmt.Errorf("pgrep %s: %w", name, err)
	}
	lines := strings.Fields(strings.TrimSpace(string(out)))
	return len(lines), nil
}
