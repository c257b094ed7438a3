package envops

import (
	"context"
	"path/filepath"
	"testing"
)

func TestDiffClean(t *testing.T) {
	ctx := context.Background()
	path := writeTestFile(t, "A=1\nB=2\n")

	clean, err := Diff(ctx, path)
	if err != nil {
		t.Fatalf("Diff error: %v", err)
	}
	if !clean {
		t.Error("canonical file reported as dirty")
	}
}

func TestDiffDirty(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		content string
	}{
		{name: "Unsorted", content: "B=2\nA=1\n"},
		{name: "Duplicate key", content: "A=1\nA=2\n"},
		{name: "Malformed segment", content: "A=1\n# comment\n"},
		{name: "Missing trailing newline", content: "A=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, err := Diff(ctx, writeTestFile(t, tt.content))
			if err != nil {
				t.Fatalf("Diff error: %v", err)
			}
			if clean {
				t.Errorf("file %q reported as canonical", tt.content)
			}
		})
	}
}

func TestDiffMissingFile(t *testing.T) {
	ctx := context.Background()
	if _, err := Diff(ctx, filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Diff of missing file should fail")
	}
}

func TestDiffLeavesFileUntouched(t *testing.T) {
	ctx := context.Background()
	content := "B=2\nA=1\n"
	path := writeTestFile(t, content)

	if _, err := Diff(ctx, path); err != nil {
		t.Fatalf("Diff error: %v", err)
	}
	if got := readTestFile(t, path); got != content {
		t.Errorf("Diff modified the file: %q", got)
	}
}
