package envops

import (
	"EnvStore/internal/console"
	"EnvStore/internal/envfile"
	"EnvStore/internal/logger"
	"EnvStore/internal/version"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff compares the on-disk bytes of the file at path against its canonical
// serialization and renders a line diff of what --sort would change. The
// file is never modified. Returns true when the file is already canonical.
func Diff(ctx context.Context, path string) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("unable to open file at %s: %w", path, err)
	}

	store, err := envfile.New(path)
	if err != nil {
		return false, err
	}
	canonical := store.Serialize()

	if bytes.Equal(raw, canonical) {
		logger.Notice(ctx, "{{_File_}}%s{{_NC_}} is already in canonical form", path)
		return true, nil
	}

	diffCfg := diffpatch.New()
	src, dst, lines := diffCfg.DiffLinesToChars(string(raw), string(canonical))
	diffs := diffCfg.DiffCharsToLines(diffCfg.DiffMain(src, dst, false), lines)

	for _, diff := range diffs {
		prefix, tag := "  ", "DiffEqual"
		switch diff.Type {
		case diffpatch.DiffInsert:
			prefix, tag = "+ ", "DiffInsert"
		case diffpatch.DiffDelete:
			prefix, tag = "- ", "DiffDelete"
		}
		for _, line := range splitDiffLines(diff.Text) {
			fmt.Println(console.Sprintf("{{_%s_}}%s%s{{_NC_}}", tag, prefix, line))
		}
	}

	logger.Notice(ctx, "{{_File_}}%s{{_NC_}} differs from its canonical form, rewrite it with {{_UserCommand_}}%s --sort{{_NC_}}",
		path, version.CommandName)
	return false, nil
}

// splitDiffLines splits a diff chunk into lines, dropping the empty tail
// left by a trailing newline.
func splitDiffLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
