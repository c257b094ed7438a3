package assets

import (
	"EnvStore/internal/constants"
	"EnvStore/internal/logger"
	"EnvStore/internal/paths"
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed all:defaults themes
var embeddedFS embed.FS

// GetTemplateEnv returns the starter env file written by --init.
func GetTemplateEnv() ([]byte, error) {
	return embeddedFS.ReadFile("defaults/" + constants.EnvTemplateFileName)
}

// EnsureAssets extracts embedded assets into the user's directories. Files
// that already exist are left alone, so user edits survive upgrades.
func EnsureAssets(ctx context.Context) error {
	if err := extractFolder(ctx, "defaults", paths.GetConfigDir()); err != nil {
		return fmt.Errorf("unable to extract defaults: %w", err)
	}

	if err := extractFolder(ctx, "themes", paths.GetThemesDir()); err != nil {
		return fmt.Errorf("unable to extract themes: %w", err)
	}

	return nil
}

func extractFolder(ctx context.Context, srcDir, destDir string) error {
	return fs.WalkDir(embeddedFS, srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, _ := filepath.Rel(srcDir, path)
		if relPath == "." {
			return nil
		}

		targetPath := filepath.Join(destDir, relPath)

		if d.IsDir() {
			return os.MkdirAll(targetPath, 0755)
		}

		if _, err := os.Stat(targetPath); err == nil {
			return nil
		}

		logger.Info(ctx, "Extracting asset: {{_File_}}%s{{_NC_}}", relPath)

		if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
			return err
		}

		srcFile, err := embeddedFS.Open(path)
		if err != nil {
			return err
		}
		defer srcFile.Close()

		destFile, err := os.Create(targetPath)
		if err != nil {
			return err
		}
		defer destFile.Close()

		_, err = io.Copy(destFile, srcFile)
		return err
	})
}
