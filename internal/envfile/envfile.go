// Package envfile implements the in-memory store for line-oriented
// KEY=VALUE environment files. A store is parsed once from disk, queried
// and mutated in memory, and written back on demand in canonical
// (key-sorted) order.
package envfile

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"
)

// EnvStore holds the entries of one environment file together with the
// path it was read from. Writes go back to the same path.
type EnvStore struct {
	// Path is the file this store reads from and writes back to.
	Path string

	entries map[string]string
}

// New reads the file at path and parses it into a store.
//
// The content is split on newline bytes only; a carriage return before a
// newline stays attached to the value of its line. Each segment is split at
// the first '=': the key is everything before it, the value everything
// after (later '=' characters belong to the value). Segments without '='
// and segments whose key or value is not valid UTF-8 are skipped without
// diagnostics. When a key occurs more than once the last occurrence wins.
//
// Only the initial read can fail; the returned error carries the path and
// the underlying cause.
func New(path string) (*EnvStore, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open file at %s: %w", path, err)
	}
	return &EnvStore{Path: path, entries: parse(content)}, nil
}

// Create returns an empty store bound to path without touching the
// filesystem. The file comes into existence on the first Write.
func Create(path string) *EnvStore {
	return &EnvStore{Path: path, entries: make(map[string]string)}
}

// parse splits raw file content into entries. Malformed segments are
// dropped, never reported.
func parse(content []byte) map[string]string {
	entries := make(map[string]string)
	for _, segment := range strings.Split(string(content), "\n") {
		key, value, found := strings.Cut(segment, "=")
		if !found {
			continue
		}
		if !utf8.ValidString(key) || !utf8.ValidString(value) {
			continue
		}
		entries[key] = value
	}
	return entries
}

// Get returns the current value for key, reporting whether it exists.
func (s *EnvStore) Get(key string) (string, bool) {
	value, ok := s.entries[key]
	return value, ok
}

// Update inserts or overwrites the entry for key in memory. No I/O occurs;
// call Write to persist.
func (s *EnvStore) Update(key, value string) {
	s.entries[key] = value
}

// Delete removes the entry for key in memory. Removing an absent key is a
// no-op.
func (s *EnvStore) Delete(key string) {
	delete(s.entries, key)
}

// Keys returns all keys in ascending lexicographic order.
func (s *EnvStore) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries.
func (s *EnvStore) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the mapping. Mutating the copy does not affect
// the store.
func (s *EnvStore) Entries() map[string]string {
	entries := make(map[string]string, len(s.entries))
	for key, value := range s.entries {
		entries[key] = value
	}
	return entries
}

// Serialize renders the entries as KEY=VALUE lines in ascending key order.
// Values are written verbatim: embedded '=' is fine, but a value holding a
// newline would corrupt the round-trip. No escaping exists in this format.
func (s *EnvStore) Serialize() []byte {
	var buf bytes.Buffer
	for _, key := range s.Keys() {
		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(s.entries[key])
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Write replaces the file at the store's path with the serialized entries,
// creating or truncating it as needed. The previous contents are gone after
// a successful call. The returned error carries the path and the underlying
// cause.
func (s *EnvStore) Write() error {
	if err := os.WriteFile(s.Path, s.Serialize(), 0644); err != nil {
		return fmt.Errorf("unable to create file at %s: %w", s.Path, err)
	}
	return nil
}
