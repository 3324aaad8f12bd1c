package procs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// taskCommLen is the kernel's TASK_COMM_LEN minus the NUL terminator;
// /proc/<pid>/comm truncates longer executable names to this length.
const taskCommLen = 15

func countByName(name string) (int, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return 0, fmt.Errorf("read process table: %w", err)
	}

	truncated := name
	if len(truncated) > taskCommLen {
		truncated = truncated[:taskCommLen]
	}

	count := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := strconv.Atoi(entry.Name()); err != nil {
			continue
		}
		data, err := os.ReadFile("/proc/" + entry.Name() + "/comm")
		if err != nil {
			// Process exited between ReadDir and ReadFile.
			continue
		}
		if strings.TrimSpace(string(data)) == truncated {
			count++
		}
	}
	return count, nil
}
