package envops

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestBackup(t *testing.T) {
	ctx := context.Background()
	conf := testConf(t)
	path := writeTestFile(t, "A=1\n")

	target, err := Backup(ctx, conf, path)
	if err != nil {
		t.Fatalf("Backup error: %v", err)
	}
	if target == "" {
		t.Fatal("Backup returned no target path")
	}
	if !strings.HasPrefix(filepath.Base(target), filepath.Base(path)+".") {
		t.Errorf("backup name %q not derived from %q", filepath.Base(target), filepath.Base(path))
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("unable to read backup: %v", err)
	}
	if string(data) != "A=1\n" {
		t.Errorf("backup content = %q, want %q", string(data), "A=1\n")
	}
}

func TestBackupMissingFile(t *testing.T) {
	ctx := context.Background()
	conf := testConf(t)

	target, err := Backup(ctx, conf, filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Backup error: %v", err)
	}
	if target != "" {
		t.Errorf("Backup of missing file returned %q, want empty", target)
	}
}

func TestPruneOldBackups(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	old := filepath.Join(dir, ".env.20200101-000000")
	fresh := filepath.Join(dir, ".env.20990101-000000")
	other := filepath.Join(dir, "other.env.20200101-000000")
	for _, f := range []string{old, fresh, other} {
		if err := os.WriteFile(f, []byte("A=1\n"), 0644); err != nil {
			t.Fatalf("unable to write %s: %v", f, err)
		}
	}

	stale := time.Now().AddDate(0, 0, -40)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatalf("unable to age %s: %v", old, err)
	}
	if err := os.Chtimes(other, stale, stale); err != nil {
		t.Fatalf("unable to age %s: %v", other, err)
	}

	pruneOldBackups(ctx, dir, ".env", 30)

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old backup should have been pruned")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh backup should have been kept")
	}
	// Backups of other files are not this call's business.
	if _, err := os.Stat(other); err != nil {
		t.Error("backup of another file should have been kept")
	}
}

func TestPruneDisabled(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	old := filepath.Join(dir, ".env.20200101-000000")
	if err := os.WriteFile(old, []byte("A=1\n"), 0644); err != nil {
		t.Fatalf("unable to write %s: %v", old, err)
	}
	stale := time.Now().AddDate(0, 0, -400)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatalf("unable to age %s: %v", old, err)
	}

	pruneOldBackups(ctx, dir, ".env", 0)

	if _, err := os.Stat(old); err != nil {
		t.Error("retention 0 should keep everything")
	}
}
