package envops

import (
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// GitTracked reports whether the file at path sits inside a git work tree
// and is present in the index. Any failure along the way means "not
// tracked"; this only feeds advisory notices.
func GitTracked(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return false
	}

	wt, err := repo.Worktree()
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(wt.Filesystem.Root(), abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}

	idx, err := repo.Storer.Index()
	if err != nil {
		return false
	}
	_, err = idx.Entry(filepath.ToSlash(rel))
	return err == nil
}
