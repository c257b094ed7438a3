package assets

import (
	"EnvStore/internal/constants"
	"EnvStore/internal/paths"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupTempHome(t *testing.T) {
	t.Helper()
	tempDir := t.TempDir()
	paths.StateHomeOverride = filepath.Join(tempDir, "state")
	paths.ConfigHomeOverride = filepath.Join(tempDir, "config")
	t.Cleanup(func() {
		paths.StateHomeOverride = ""
		paths.ConfigHomeOverride = ""
	})
}

func TestGetTemplateEnv(t *testing.T) {
	data, err := GetTemplateEnv()
	if err != nil {
		t.Fatalf("GetTemplateEnv error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("template is empty")
	}
	if data[len(data)-1] != '\n' {
		t.Error("template should end with a newline")
	}
	for i, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		if !strings.Contains(line, "=") {
			t.Errorf("template line %d has no '=': %q", i+1, line)
		}
	}
}

func TestEnsureAssets(t *testing.T) {
	setupTempHome(t)
	ctx := context.Background()

	if err := EnsureAssets(ctx); err != nil {
		t.Fatalf("EnsureAssets error: %v", err)
	}

	templatePath := filepath.Join(paths.GetConfigDir(), constants.EnvTemplateFileName)
	if _, err := os.Stat(templatePath); err != nil {
		t.Errorf("template not extracted: %v", err)
	}

	entries, err := os.ReadDir(paths.GetThemesDir())
	if err != nil {
		t.Fatalf("themes dir not extracted: %v", err)
	}
	if len(entries) == 0 {
		t.Error("no theme palettes extracted")
	}

	// Existing files are never overwritten.
	if err := os.WriteFile(templatePath, []byte("EDITED=yes\n"), 0644); err != nil {
		t.Fatalf("unable to edit template: %v", err)
	}
	if err := EnsureAssets(ctx); err != nil {
		t.Fatalf("EnsureAssets (second run) error: %v", err)
	}
	data, err := os.ReadFile(templatePath)
	if err != nil {
		t.Fatalf("unable to read template: %v", err)
	}
	if string(data) != "EDITED=yes\n" {
		t.Errorf("EnsureAssets overwrote an existing file: %q", string(data))
	}
}
