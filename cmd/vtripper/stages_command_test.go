package main

import (
	"strings"
	"testing"
)

func TestStagesCommandListsStagesInOrder(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, _, err := runCLI(t, []string{"stages"}, "")
	if err != nil {
		t.Fatalf("stages: %v", err)
	}
	order := []string{"pre-clean", "rip-project", "format-project", "edit-manifest", "copy-dlls", "fix-scripts"}
	last := -1
	for _, name := range order {
		idx := strings.Index(out, name)
		if idx < 0 {
			t.Fatalf("stage %q missing from output:\n%s", name, out)
		}
		if idx < last {
			t.Fatalf("stage %q listed out of order:\n%s", name, out)
		}
		last = idx
	}
	requireContains(t, out, "CopyDLLs")
}
