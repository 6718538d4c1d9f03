package logs_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"vtripper/internal/logs"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vtripper.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestLastReturnsTrailingLines(t *testing.T) {
	path := writeLog(t, "a\nb\nc\n")

	lines, offset, err := logs.Last(path, 2, "")
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if !slices.Equal(lines, []string{"b", "c"}) {
		t.Fatalf("unexpected lines: %#v", lines)
	}
	if offset != 6 {
		t.Fatalf("offset = %d, want 6", offset)
	}
}

func TestLastFiltersAndKeepsPartialLine(t *testing.T) {
	path := writeLog(t, "[rip-project] one\n[fix-scripts] two\n[rip-project] three\n[rip-project] partial")

	lines, offset, err := logs.Last(path, 10, "[rip-project]")
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if !slices.Equal(lines, []string{"[rip-project] one", "[rip-project] three"}) {
		t.Fatalf("unexpected lines: %#v", lines)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString(" done\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	_ = f.Close()

	more, _, err := logs.Since(path, offset, "")
	if err != nil {
		t.Fatalf("Since: %v", err)
	}
	if !slices.Equal(more, []string{"[rip-project] partial done"}) {
		t.Fatalf("unexpected follow-up lines: %#v", more)
	}
}

func TestLastWithHugeLimitReturnsEveryLine(t *testing.T) {
	path := writeLog(t, "one\ntwo\nthree\n")

	lines, _, err := logs.Last(path, math.MaxInt, "")
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if !slices.Equal(lines, []string{"one", "two", "three"}) {
		t.Fatalf("unexpected lines: %#v", lines)
	}
}

func TestLastWrapsRing(t *testing.T) {
	path := writeLog(t, "1\n2\n3\n4\n5\n")

	lines, _, err := logs.Last(path, 3, "")
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if !slices.Equal(lines, []string{"3", "4", "5"}) {
		t.Fatalf("unexpected lines: %#v", lines)
	}
}

func TestLastMissingFile(t *testing.T) {
	lines, offset, err := logs.Last(filepath.Join(t.TempDir(), "missing.log"), 5, "")
	if err != nil || lines != nil || offset != 0 {
		t.Fatalf("expected empty result, got %v %d %v", lines, offset, err)
	}
}

func TestSinceRestartsAfterTruncation(t *testing.T) {
	path := writeLog(t, "x\n")

	lines, _, err := logs.Since(path, 1000, "")
	if err != nil {
		t.Fatalf("Since: %v", err)
	}
	if !slices.Equal(lines, []string{"x"}) {
		t.Fatalf("unexpected lines: %#v", lines)
	}
}

func TestFollowEmitsAppendedLines(t *testing.T) {
	path := writeLog(t, "start\n")
	_, offset, err := logs.Last(path, 1, "")
	if err != nil {
		t.Fatalf("Last: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	var mu sync.Mutex
	var got []string
	done := make(chan error, 1)
	go func() {
		done <- logs.Follow(ctx, path, offset, "", 10*time.Millisecond, func(line string) {
			mu.Lock()
			got = append(got, line)
			mu.Unlock()
		})
	}()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open append: %v", err)
	}
	if _, err := f.WriteString("later\n"); err != nil {
		t.Fatalf("append log: %v", err)
	}
	_ = f.Close()

	deadline := time.Now().Add(5 * time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Follow: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if !slices.Equal(got, []string{"later"}) {
		t.Fatalf("unexpected follow lines: %#v", got)
	}
}
