package procs

import "testing"

func TestCountCurrentFindsSelf(t *testing.T) {
	count, err := CountCurrent()
	if err != nil {
		t.Fatalf("CountCurrent: %v", err)
	}
	if count < 1 {
		t.Fatalf("expected at least this process, got %d", count)
	}
}

func TestCountByNameMissing(t *testing.T) {
	count, err := countByName("no-such-process-name-zzz")
	if err != nil {
		t.Fatalf("countByName: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 matches, got %d", count)
	}
}
