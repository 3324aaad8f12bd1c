// Package procs counts running instances of the current executable. The
// count is a stateless query against the OS process table, used to decide
// whether an in-use socket belongs to a live sibling process or is a stale
// leftover.
package procs

import (
	"fmt"
	"os"
	"path/filepath"
)

// CountCurrent reports how many running processes share the current
// executable's name, including this process.
func CountCurrent() (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("resolve executable: %w", err)
	}
	return countByName(filepath.Base(exe))
}
