package envops

import (
	"EnvStore/internal/console"
	"EnvStore/internal/envfile"
	"EnvStore/internal/logger"
	"context"
	"fmt"
)

// Get prints the value of key in the file at path. The value goes to stdout
// verbatim so scripts can capture it.
func Get(ctx context.Context, path, key string) error {
	store, err := envfile.New(path)
	if err != nil {
		return err
	}

	value, ok := store.Get(key)
	if !ok {
		return fmt.Errorf("Variable '{{_Var_}}%s{{_NC_}}' is not set in '{{_File_}}%s{{_NC_}}'", key, path)
	}

	fmt.Println(value)
	return nil
}

// List prints every entry of the file at path as KEY=VALUE, key-sorted.
func List(ctx context.Context, path string) error {
	store, err := envfile.New(path)
	if err != nil {
		return err
	}

	for _, key := range store.Keys() {
		value, _ := store.Get(key)
		fmt.Println(console.Sprintf("{{_Var_}}%s{{_NC_}}=%s", key, value))
	}

	logger.Info(ctx, "%d entries in {{_File_}}%s{{_NC_}}", store.Len(), path)
	return nil
}
