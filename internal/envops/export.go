package envops

import (
	"EnvStore/internal/constants"
	"EnvStore/internal/envfile"
	"EnvStore/internal/logger"
	"context"
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Export writes the entries of the file at path to out in the requested
// format (yaml or toml). Both marshalers emit map keys sorted, so exports
// are as stable as the canonical file form.
func Export(ctx context.Context, path, format string, out io.Writer) error {
	store, err := envfile.New(path)
	if err != nil {
		return err
	}
	logger.Debug(ctx, "Exporting %d entries from {{_File_}}%s{{_NC_}} as %s", store.Len(), path, format)

	entries := store.Entries()
	switch strings.ToLower(format) {
	case constants.ExportFormatYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case constants.ExportFormatTOML:
		data, err := toml.Marshal(entries)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("Unknown export format '{{_UsageFormat_}}%s{{_NC_}}', expected {{_UsageFormat_}}%s{{_NC_}} or {{_UsageFormat_}}%s{{_NC_}}",
			format, constants.ExportFormatYAML, constants.ExportFormatTOML)
	}
}
