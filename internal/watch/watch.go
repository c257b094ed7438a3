// Package watch follows one env file and reports what each change did to
// the parsed entries.
package watch

import (
	"EnvStore/internal/envfile"
	"EnvStore/internal/logger"
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces editor write bursts (write, chmod, rename-over)
// into one reload.
const debounceWindow = 200 * time.Millisecond

// Watch follows the env file at path until ctx is canceled. Every settled
// change reloads the store and logs the keys that were added, changed, or
// removed since the last snapshot. When onReload is non-nil it receives
// each new snapshot.
func Watch(ctx context.Context, path string, onReload func(map[string]string)) error {
	store, err := envfile.New(path)
	if err != nil {
		return err
	}
	previous := store.Entries()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the folder, not the file: editors that replace the file by
	// renaming a temp copy over it would drop a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	logger.Notice(ctx, "Watching {{_File_}}%s{{_NC_}}: %d entries (Ctrl-C to stop)", path, len(previous))

	debounce := time.NewTimer(debounceWindow)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			logger.Notice(ctx, "Stopped watching {{_File_}}%s{{_NC_}}", path)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if evAbs, err := filepath.Abs(event.Name); err != nil || evAbs != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if pending {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
			}
			debounce.Reset(debounceWindow)
			pending = true

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn(ctx, "Watcher error: %v", err)

		case <-debounce.C:
			pending = false
			previous = reload(ctx, path, previous, onReload)
		}
	}
}

// reload re-parses the file and logs the delta against previous, returning
// the new snapshot. When the file is temporarily gone (rename-over in
// flight) the old snapshot stays, so the next reload reports the real
// delta.
func reload(ctx context.Context, path string, previous map[string]string, onReload func(map[string]string)) map[string]string {
	store, err := envfile.New(path)
	if err != nil {
		logger.Warn(ctx, "Unable to reload {{_File_}}%s{{_NC_}}: %v", path, err)
		return previous
	}
	current := store.Entries()

	added, changed, removed := diffEntries(previous, current)
	for _, key := range added {
		logger.Notice(ctx, "  {{_DiffInsert_}}+ {{_Var_}}%s{{_NC_}}=%s", key, current[key])
	}
	for _, key := range changed {
		logger.Notice(ctx, "  {{_Var_}}~ %s{{_NC_}}: %s -> %s", key, previous[key], current[key])
	}
	for _, key := range removed {
		logger.Notice(ctx, "  {{_DiffDelete_}}- {{_Var_}}%s{{_NC_}}", key)
	}
	logger.Notice(ctx, "Reloaded {{_File_}}%s{{_NC_}}: %d entries (+%d ~%d -%d)",
		path, len(current), len(added), len(changed), len(removed))

	if onReload != nil {
		onReload(current)
	}
	return current
}

// diffEntries classifies the keys of current against previous. Each slice
// comes back sorted.
func diffEntries(previous, current map[string]string) (added, changed, removed []string) {
	for key, value := range current {
		prev, ok := previous[key]
		switch {
		case !ok:
			added = append(added, key)
		case prev != value:
			changed = append(changed, key)
		}
	}
	for key := range previous {
		if _, ok := current[key]; !ok {
			removed = append(removed, key)
		}
	}
	sort.Strings(added)
	sort.Strings(changed)
	sort.Strings(removed)
	return added, changed, removed
}
