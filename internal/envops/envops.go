// Package envops implements the file-level operations behind the CLI
// commands: get/set/unset, listing, canonical sorting, merging, diffing,
// backups, exports, and template initialization. Everything is built on the
// envfile store; this layer adds locking, backups, and console output, and
// never changes what the store itself does.
package envops

import (
	"EnvStore/internal/config"
	"EnvStore/internal/constants"
	"EnvStore/internal/envfile"
	"EnvStore/internal/logger"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
)

// lockRetryDelay is how often a waiting process re-attempts the file lock.
const lockRetryDelay = 250 * time.Millisecond

// withLock runs fn while holding an exclusive advisory lock on
// <path>.lock, so concurrent envstore processes serialize their
// read-modify-write spans. Waiting is bounded by ctx.
func withLock(ctx context.Context, path string, fn func() error) error {
	lock := flock.New(path + constants.LockFileSuffix)

	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("unable to lock %s: %w", lock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("unable to lock %s", lock.Path())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn(ctx, "Unable to release lock on {{_File_}}%s{{_NC_}}: %v", lock.Path(), err)
		}
	}()

	return fn()
}

// writeStore persists the store, taking a backup of the previous file first
// when configured, and leaves a notice when the file is tracked by git so
// the rewrite shows up in the next git diff.
func writeStore(ctx context.Context, conf config.AppConfig, store *envfile.EnvStore) error {
	if conf.Behavior.BackupOnWrite {
		if _, err := os.Stat(store.Path); err == nil {
			if _, err := Backup(ctx, conf, store.Path); err != nil {
				logger.Warn(ctx, "Unable to back up {{_File_}}%s{{_NC_}}: %v", store.Path, err)
			}
		}
	}

	if err := store.Write(); err != nil {
		return err
	}

	if GitTracked(store.Path) {
		logger.Notice(ctx, "{{_File_}}%s{{_NC_}} is tracked by git, review the rewrite with {{_UserCommand_}}git diff{{_NC_}}", store.Path)
	}
	return nil
}

// copyFile copies src to dst, replacing dst.
func copyFile(src, dst string) error {
	input, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, input, 0644)
}
