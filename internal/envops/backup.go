package envops

import (
	"EnvStore/internal/config"
	"EnvStore/internal/constants"
	"EnvStore/internal/logger"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Backup copies the file at path into the backups folder with a timestamped
// name and prunes backups of the same file older than the configured
// retention. Returns the backup path, or "" when there was nothing to back
// up.
func Backup(ctx context.Context, conf config.AppConfig, path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Warn(ctx, "No file at {{_File_}}%s{{_NC_}} to back up", path)
		return "", nil
	}

	backupsDir := conf.BackupsDir
	if err := os.MkdirAll(backupsDir, 0755); err != nil {
		return "", err
	}

	stamp := time.Now().Format(constants.BackupTimeLayout)
	target := filepath.Join(backupsDir, fmt.Sprintf("%s.%s", filepath.Base(path), stamp))

	if err := copyFile(path, target); err != nil {
		return "", fmt.Errorf("unable to create file at %s: %w", target, err)
	}
	logger.Notice(ctx, "Copied {{_File_}}%s{{_NC_}} to {{_File_}}%s{{_NC_}}", path, target)

	pruneOldBackups(ctx, backupsDir, filepath.Base(path), conf.Behavior.BackupRetentionDays)
	return target, nil
}

// pruneOldBackups removes timestamped copies of the named file that are
// older than retentionDays. Zero or negative retention keeps everything.
func pruneOldBackups(ctx context.Context, dir, name string, retentionDays int) {
	if retentionDays <= 0 {
		return
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	threshold := time.Now().AddDate(0, 0, -retentionDays)
	for _, f := range files {
		if f.IsDir() || !strings.HasPrefix(f.Name(), name+".") {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(threshold) {
			logger.Debug(ctx, "Pruning old backup {{_File_}}%s{{_NC_}}", f.Name())
			_ = os.Remove(filepath.Join(dir, f.Name()))
		}
	}
}
