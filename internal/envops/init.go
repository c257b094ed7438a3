package envops

import (
	"EnvStore/internal/assets"
	"EnvStore/internal/constants"
	"EnvStore/internal/logger"
	"EnvStore/internal/paths"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Init writes the starter template to path. An existing file is refused
// unless force is set. The template extracted to the config folder wins
// over the embedded copy, so users can maintain their own.
func Init(ctx context.Context, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("File '{{_File_}}%s{{_NC_}}' already exists, use {{_UsageOption_}}--force{{_NC_}} to overwrite", path)
	}

	template, err := os.ReadFile(filepath.Join(paths.GetConfigDir(), constants.EnvTemplateFileName))
	if err != nil {
		template, err = assets.GetTemplateEnv()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, template, 0644); err != nil {
		return fmt.Errorf("unable to create file at %s: %w", path, err)
	}

	logger.Notice(ctx, "Created {{_File_}}%s{{_NC_}} from the starter template", path)
	return nil
}
