package envops

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
)

func TestGitTracked(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("unable to init repo: %v", err)
	}

	tracked := filepath.Join(dir, ".env")
	untracked := filepath.Join(dir, "untracked.env")
	for _, f := range []string{tracked, untracked} {
		if err := os.WriteFile(f, []byte("A=1\n"), 0644); err != nil {
			t.Fatalf("unable to write %s: %v", f, err)
		}
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("unable to get worktree: %v", err)
	}
	if _, err := wt.Add(".env"); err != nil {
		t.Fatalf("unable to add file: %v", err)
	}

	if !GitTracked(tracked) {
		t.Error("added file should be tracked")
	}
	if GitTracked(untracked) {
		t.Error("unadded file should not be tracked")
	}
}

func TestGitTrackedSubdir(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("unable to init repo: %v", err)
	}

	sub := filepath.Join(dir, "deploy")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("unable to create subdir: %v", err)
	}
	path := filepath.Join(sub, ".env")
	if err := os.WriteFile(path, []byte("A=1\n"), 0644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("unable to get worktree: %v", err)
	}
	if _, err := wt.Add("deploy/.env"); err != nil {
		t.Fatalf("unable to add file: %v", err)
	}

	// DetectDotGit walks up from the file's folder to the repo root.
	if !GitTracked(path) {
		t.Error("file in subfolder should be tracked")
	}
}

func TestGitTrackedOutsideRepo(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("A=1\n"), 0644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}

	if GitTracked(path) {
		t.Error("file outside any repo should not be tracked")
	}
	if GitTracked(filepath.Join(t.TempDir(), "missing.env")) {
		t.Error("missing file should not be tracked")
	}
}
