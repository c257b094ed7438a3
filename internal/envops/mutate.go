package envops

import (
	"EnvStore/internal/config"
	"EnvStore/internal/envfile"
	"EnvStore/internal/logger"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Set writes key=value into the file at path. A missing file is an error
// unless force is set, in which case the file (and its folder) is created.
func Set(ctx context.Context, conf config.AppConfig, path, key, value string, force bool) error {
	if force {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
	}

	return withLock(ctx, path, func() error {
		store, err := envfile.New(path)
		if err != nil {
			if !force || !errors.Is(err, os.ErrNotExist) {
				return err
			}
			store = envfile.Create(path)
		}

		store.Update(key, value)
		if err := writeStore(ctx, conf, store); err != nil {
			return err
		}

		logger.Notice(ctx, "Set {{_Var_}}%s{{_NC_}}=%s in {{_File_}}%s{{_NC_}}", key, value, path)
		return nil
	})
}

// Unset removes key from the file at path. A key that is not set leaves the
// file untouched.
func Unset(ctx context.Context, conf config.AppConfig, path, key string) error {
	return withLock(ctx, path, func() error {
		store, err := envfile.New(path)
		if err != nil {
			return err
		}

		if _, ok := store.Get(key); !ok {
			logger.Notice(ctx, "Variable '{{_Var_}}%s{{_NC_}}' is not set in '{{_File_}}%s{{_NC_}}', nothing to do", key, path)
			return nil
		}

		store.Delete(key)
		if err := writeStore(ctx, conf, store); err != nil {
			return err
		}

		logger.Notice(ctx, "Removed {{_Var_}}%s{{_NC_}} from {{_File_}}%s{{_NC_}}", key, path)
		return nil
	})
}

// Sort rewrites the file at path in canonical form: parse, then write back
// key-sorted. Malformed segments and duplicate keys do not survive the
// round-trip; their counts are reported.
func Sort(ctx context.Context, conf config.AppConfig, path string) error {
	return withLock(ctx, path, func() error {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to open file at %s: %w", path, err)
		}

		store, err := envfile.New(path)
		if err != nil {
			return err
		}

		parsed, malformed := segmentStats(string(raw))
		duplicates := parsed - store.Len()

		if err := writeStore(ctx, conf, store); err != nil {
			return err
		}

		logger.Notice(ctx, "Sorted {{_File_}}%s{{_NC_}}: %d entries kept, %d malformed segments dropped, %d duplicate keys collapsed",
			path, store.Len(), malformed, duplicates)
		return nil
	})
}

// segmentStats counts how many newline-separated segments parse as entries
// and how many are malformed (no '=' or invalid UTF-8), mirroring the store
// parser. Empty segments count as neither.
func segmentStats(content string) (parsed, malformed int) {
	for _, segment := range strings.Split(content, "\n") {
		if segment == "" {
			continue
		}
		key, value, found := strings.Cut(segment, "=")
		if !found || !utf8.ValidString(key) || !utf8.ValidString(value) {
			malformed++
			continue
		}
		parsed++
	}
	return parsed, malformed
}

// Merge folds the entries of srcPath into dstPath and writes dstPath once.
// With newOnly set, keys already present in dst keep their values;
// otherwise src wins. A missing dst starts empty.
func Merge(ctx context.Context, conf config.AppConfig, dstPath, srcPath string, newOnly bool) error {
	return withLock(ctx, dstPath, func() error {
		src, err := envfile.New(srcPath)
		if err != nil {
			return err
		}

		dst, err := envfile.New(dstPath)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return err
			}
			dst = envfile.Create(dstPath)
		}

		var added, updated []string
		for _, key := range src.Keys() {
			value, _ := src.Get(key)
			current, exists := dst.Get(key)
			switch {
			case !exists:
				added = append(added, key)
			case newOnly || current == value:
				continue
			default:
				updated = append(updated, key)
			}
			dst.Update(key, value)
		}

		if len(added) == 0 && len(updated) == 0 {
			logger.Notice(ctx, "Nothing to merge from {{_File_}}%s{{_NC_}} into {{_File_}}%s{{_NC_}}", srcPath, dstPath)
			return nil
		}

		if len(added) > 0 {
			logger.Notice(ctx, "Adding variables to {{_File_}}%s{{_NC_}}:", dstPath)
			for _, key := range added {
				value, _ := src.Get(key)
				logger.Notice(ctx, "   {{_Var_}}%s{{_NC_}}=%s", key, value)
			}
		}
		if len(updated) > 0 {
			logger.Notice(ctx, "Updating variables in {{_File_}}%s{{_NC_}}:", dstPath)
			for _, key := range updated {
				value, _ := src.Get(key)
				logger.Notice(ctx, "   {{_Var_}}%s{{_NC_}}=%s", key, value)
			}
		}

		return writeStore(ctx, conf, dst)
	})
}
