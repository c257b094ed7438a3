package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testContent = `EFI_UUID=DFFD-D047
HOSTNAME=pop-testing
KBD_LAYOUT=us
KBD_MODEL=
KBD_VARIANT=
LANG=en_US.UTF-8
OEM_MODE=0
RECOVERY_UUID=PARTUUID=b45f74cc-a8a3-4cd1-9754-8a6e9b0e83e1
ROOT_UUID=2ef950c2-6b44-4bc6-b9dd-9c52c92f3616
`

func setupTestEnv(t *testing.T) string {
	tmpfile, err := os.CreateTemp("", "test.env")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpfile.Write([]byte(testContent)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpfile.Name()
}

func TestNew(t *testing.T) {
	tmpFile := setupTestEnv(t)
	defer os.Remove(tmpFile)

	store, err := New(tmpFile)
	if err != nil {
		t.Fatalf("New(%s) error: %v", tmpFile, err)
	}

	if store.Len() != 9 {
		t.Errorf("Len() = %d, want 9", store.Len())
	}

	tests := []struct {
		key      string
		expected string
	}{
		{"HOSTNAME", "pop-testing"},
		{"LANG", "en_US.UTF-8"},
		{"KBD_LAYOUT", "us"},
		{"KBD_MODEL", ""},
		{"EFI_UUID", "DFFD-D047"},
		{"RECOVERY_UUID", "PARTUUID=b45f74cc-a8a3-4cd1-9754-8a6e9b0e83e1"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			val, ok := store.Get(tt.key)
			if !ok {
				t.Fatalf("Get(%s) missing, want %q", tt.key, tt.expected)
			}
			if val != tt.expected {
				t.Errorf("Get(%s) = %q, want %q", tt.key, val, tt.expected)
			}
		})
	}
}

func TestNewMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.env")

	store, err := New(path)
	if err == nil {
		t.Fatalf("New(%s) = %v, want error", path, store)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not reference path %q", err.Error(), path)
	}
}

func TestNewSkipsMalformedLines(t *testing.T) {
	content := `justsometext
HOSTNAME=pop-testing

LANG=en_US.UTF-8
another line without equals
`
	tmpfile, err := os.CreateTemp("", "malformed.env")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	if _, err := tmpfile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	tmpfile.Close()

	store, err := New(tmpfile.Name())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}
	if _, ok := store.Get("justsometext"); ok {
		t.Error("malformed line produced an entry")
	}
}

func TestNewSkipsInvalidUTF8(t *testing.T) {
	content := append([]byte("GOOD=yes\nBAD="), 0xff, 0xfe, '\n')
	tmpfile, err := os.CreateTemp("", "binary.env")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	if _, err := tmpfile.Write(content); err != nil {
		t.Fatal(err)
	}
	tmpfile.Close()

	store, err := New(tmpfile.Name())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if _, ok := store.Get("BAD"); ok {
		t.Error("entry with invalid UTF-8 value was not skipped")
	}
	if val, _ := store.Get("GOOD"); val != "yes" {
		t.Errorf("Get(GOOD) = %q, want %q", val, "yes")
	}
}

func TestNewKeepsCarriageReturn(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "crlf.env")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	if _, err := tmpfile.WriteString("HOSTNAME=pop-testing\r\n"); err != nil {
		t.Fatal(err)
	}
	tmpfile.Close()

	store, err := New(tmpfile.Name())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if val, _ := store.Get("HOSTNAME"); val != "pop-testing\r" {
		t.Errorf("Get(HOSTNAME) = %q, want %q", val, "pop-testing\r")
	}
}

func TestNewLastOccurrenceWins(t *testing.T) {
	content := "LANG=en_US.UTF-8\nLANG=de_DE.UTF-8\nLANG=fr_FR.UTF-8\n"
	tmpfile, err := os.CreateTemp("", "dupes.env")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	if _, err := tmpfile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	tmpfile.Close()

	store, err := New(tmpfile.Name())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
	if val, _ := store.Get("LANG"); val != "fr_FR.UTF-8" {
		t.Errorf("Get(LANG) = %q, want %q", val, "fr_FR.UTF-8")
	}
}

func TestUpdateOverwrite(t *testing.T) {
	tmpFile := setupTestEnv(t)
	defer os.Remove(tmpFile)

	store, err := New(tmpFile)
	if err != nil {
		t.Fatal(err)
	}
	before := store.Len()

	store.Update("LANG", "fr_FR.UTF-8")

	if val, _ := store.Get("LANG"); val != "fr_FR.UTF-8" {
		t.Errorf("Get(LANG) = %q, want %q", val, "fr_FR.UTF-8")
	}
	if store.Len() != before {
		t.Errorf("Len() = %d, want %d", store.Len(), before)
	}
}

func TestUpdateInsertNew(t *testing.T) {
	tmpFile := setupTestEnv(t)
	defer os.Remove(tmpFile)

	store, err := New(tmpFile)
	if err != nil {
		t.Fatal(err)
	}
	before := store.Len()

	store.Update("NEW_KEY", "x")

	if val, ok := store.Get("NEW_KEY"); !ok || val != "x" {
		t.Errorf("Get(NEW_KEY) = %q, %v, want %q, true", val, ok, "x")
	}
	if store.Len() != before+1 {
		t.Errorf("Len() = %d, want %d", store.Len(), before+1)
	}
}

func TestDelete(t *testing.T) {
	tmpFile := setupTestEnv(t)
	defer os.Remove(tmpFile)

	store, err := New(tmpFile)
	if err != nil {
		t.Fatal(err)
	}
	before := store.Len()

	store.Delete("LANG")

	if _, ok := store.Get("LANG"); ok {
		t.Error("Get(LANG) found entry after Delete")
	}
	if store.Len() != before-1 {
		t.Errorf("Len() = %d, want %d", store.Len(), before-1)
	}

	// Deleting an absent key is a no-op.
	store.Delete("LANG")
	if store.Len() != before-1 {
		t.Errorf("Len() = %d after double delete, want %d", store.Len(), before-1)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	tmpFile := setupTestEnv(t)
	defer os.Remove(tmpFile)

	store, err := New(tmpFile)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Write(); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	written, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatal(err)
	}
	// The fixture is already key-sorted with no malformed or duplicate
	// lines, so the rewrite must be byte-identical.
	if string(written) != testContent {
		t.Errorf("Write() produced %q, want %q", string(written), testContent)
	}
}

func TestWriteSortedOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sorted.env")

	store := Create(path)
	store.Update("B", "2")
	store.Update("A", "1")

	if err := store.Write(); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(written) != "A=1\nB=2\n" {
		t.Errorf("Write() produced %q, want %q", string(written), "A=1\nB=2\n")
	}
}

func TestWriteError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "file.env")

	store := Create(path)
	store.Update("A", "1")

	err := store.Write()
	if err == nil {
		t.Fatal("Write() to nonexistent directory succeeded, want error")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not reference path %q", err.Error(), path)
	}
}

func TestKeysSorted(t *testing.T) {
	tmpFile := setupTestEnv(t)
	defer os.Remove(tmpFile)

	store, err := New(tmpFile)
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{
		"EFI_UUID", "HOSTNAME", "KBD_LAYOUT", "KBD_MODEL", "KBD_VARIANT",
		"LANG", "OEM_MODE", "RECOVERY_UUID", "ROOT_UUID",
	}
	keys := store.Keys()
	if len(keys) != len(expected) {
		t.Fatalf("Keys() returned %d keys, want %d", len(keys), len(expected))
	}
	for i, key := range expected {
		if keys[i] != key {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], key)
		}
	}
}

func TestEntriesIsACopy(t *testing.T) {
	store := Create(filepath.Join(t.TempDir(), "copy.env"))
	store.Update("A", "1")

	entries := store.Entries()
	entries["A"] = "tampered"
	entries["B"] = "2"

	if val, _ := store.Get("A"); val != "1" {
		t.Errorf("Get(A) = %q after mutating copy, want %q", val, "1")
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d after mutating copy, want 1", store.Len())
	}
}
