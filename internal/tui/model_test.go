package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"EnvStore/internal/config"
	"EnvStore/internal/envfile"

	tea "github.com/charmbracelet/bubbletea"
)

func testModel(t *testing.T, content string) Model {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store, err := envfile.New(path)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}

	var conf config.AppConfig
	conf.Behavior.BackupOnWrite = false
	InitStyles(conf)

	m := NewModel(context.Background(), conf, store)
	return resize(m, 80, 24)
}

func resize(m Model, w, h int) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(Model)
}

// press feeds one key to the model. Strings that are not a named key are
// delivered as a single runes message, the way a paste arrives.
func press(m Model, k string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+s":
		msg = tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func typeKeys(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = press(m, k)
	}
	return m
}

func TestModelNavigation(t *testing.T) {
	m := testModel(t, "A=1\nB=2\nC=3\n")

	if m.cursor != 0 {
		t.Fatalf("initial cursor = %d, want 0", m.cursor)
	}

	m = typeKeys(m, "down", "down")
	if m.cursor != 2 {
		t.Errorf("cursor after down down = %d, want 2", m.cursor)
	}

	// Clamped at the last entry
	m = typeKeys(m, "down")
	if m.cursor != 2 {
		t.Errorf("cursor after extra down = %d, want 2", m.cursor)
	}

	m = typeKeys(m, "up", "up", "up")
	if m.cursor != 0 {
		t.Errorf("cursor after ups = %d, want 0", m.cursor)
	}
}

func TestModelEditValue(t *testing.T) {
	m := testModel(t, "A=1\nB=2\n")

	m = typeKeys(m, "enter")
	if m.mode != modeEdit {
		t.Fatalf("mode after enter = %d, want modeEdit", m.mode)
	}
	if got := m.valueInput.Value(); got != "1" {
		t.Fatalf("edit input preloaded with %q, want %q", got, "1")
	}

	// Cursor sits at the end, typing appends
	m = typeKeys(m, "2", "3", "enter")

	if m.mode != modeList {
		t.Errorf("mode after commit = %d, want modeList", m.mode)
	}
	if !m.dirty {
		t.Error("model not dirty after edit")
	}
	if got, _ := m.store.Get("A"); got != "123" {
		t.Errorf("A = %q, want %q", got, "123")
	}
}

func TestModelEditCancel(t *testing.T) {
	m := testModel(t, "A=1\n")

	m = typeKeys(m, "enter", "x", "esc")

	if m.mode != modeList {
		t.Errorf("mode after esc = %d, want modeList", m.mode)
	}
	if m.dirty {
		t.Error("model dirty after cancelled edit")
	}
	if got, _ := m.store.Get("A"); got != "1" {
		t.Errorf("A = %q, want unchanged %q", got, "1")
	}
}

func TestModelAddEntry(t *testing.T) {
	m := testModel(t, "A=1\nC=3\n")

	m = typeKeys(m, "a")
	if m.mode != modeAdd {
		t.Fatalf("mode after a = %d, want modeAdd", m.mode)
	}

	m = typeKeys(m, "B", "enter", "2", "enter")

	if m.mode != modeList {
		t.Errorf("mode after commit = %d, want modeList", m.mode)
	}
	if got, _ := m.store.Get("B"); got != "2" {
		t.Errorf("B = %q, want %q", got, "2")
	}
	if !m.dirty {
		t.Error("model not dirty after add")
	}
	// Cursor follows the new entry in sorted order
	if m.cursor != 1 || m.keys[m.cursor] != "B" {
		t.Errorf("cursor = %d (%q), want 1 (B)", m.cursor, m.keys[m.cursor])
	}
}

func TestModelAddRejectsBadNames(t *testing.T) {
	m := testModel(t, "A=1\n")

	// Empty name
	m = typeKeys(m, "a", "enter", "enter")
	if m.mode != modeAdd {
		t.Fatalf("empty name accepted, mode = %d", m.mode)
	}
	if !m.statusErr {
		t.Error("no error status for empty name")
	}

	// Name containing '='
	m = typeKeys(m, "B=C", "enter", "enter")
	if m.mode != modeAdd {
		t.Fatalf("name with '=' accepted, mode = %d", m.mode)
	}
	if !m.statusErr {
		t.Error("no error status for name with '='")
	}

	if m.store.Len() != 1 {
		t.Errorf("store changed by rejected adds, len = %d", m.store.Len())
	}
}

func TestModelDeleteEntry(t *testing.T) {
	m := testModel(t, "A=1\nB=2\n")

	m = typeKeys(m, "down", "d")
	if m.mode != modeConfirmDelete {
		t.Fatalf("mode after d = %d, want modeConfirmDelete", m.mode)
	}

	// No keeps the entry
	m = typeKeys(m, "n")
	if _, ok := m.store.Get("B"); !ok {
		t.Fatal("B deleted after answering No")
	}
	if m.dirty {
		t.Error("model dirty after declined delete")
	}

	// Yes removes it and clamps the cursor
	m = typeKeys(m, "d", "y")
	if _, ok := m.store.Get("B"); ok {
		t.Error("B still present after confirmed delete")
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after delete", m.cursor)
	}
	if !m.dirty {
		t.Error("model not dirty after delete")
	}
}

func TestModelQuitConfirmWhenDirty(t *testing.T) {
	m := testModel(t, "A=1\n")

	// Clean model quits immediately
	_, cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("clean quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("clean quit did not return tea.QuitMsg")
	}

	// Dirty model asks first
	m = typeKeys(m, "enter", "x", "enter") // edit A -> dirty
	m, cmd = press(m, "q")
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("dirty quit did not ask for confirmation")
		}
	}
	if m.mode != modeConfirmQuit {
		t.Fatalf("mode after q = %d, want modeConfirmQuit", m.mode)
	}

	// No returns to the list
	m = typeKeys(m, "n")
	if m.mode != modeList {
		t.Errorf("mode after n = %d, want modeList", m.mode)
	}

	// Yes quits
	m, _ = press(m, "q")
	m, cmd = press(m, "y")
	if cmd == nil {
		t.Fatal("confirmed quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("confirmed quit did not return tea.QuitMsg")
	}
}

func TestModelSaveWritesSorted(t *testing.T) {
	m := testModel(t, "B=2\nA=1\n")

	m = typeKeys(m, "a", "C", "enter", "3", "enter", "ctrl+s")

	if m.dirty {
		t.Error("model still dirty after save")
	}

	data, err := os.ReadFile(m.store.Path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "A=1\nB=2\nC=3\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", string(data), want)
	}
}

func TestModelViewListsEntries(t *testing.T) {
	m := testModel(t, "GREETING=hello\nPORT=8080\n")

	view := m.View()
	if !strings.Contains(view, "GREETING") {
		t.Errorf("view missing GREETING:\n%s", view)
	}
	if !strings.Contains(view, "8080") {
		t.Errorf("view missing value 8080:\n%s", view)
	}
	if !strings.Contains(view, "2 entries") {
		t.Errorf("view missing entry count:\n%s", view)
	}
}

func TestModelViewEmptyStore(t *testing.T) {
	m := testModel(t, "")

	view := m.View()
	if !strings.Contains(view, "no entries") {
		t.Errorf("view missing empty hint:\n%s", view)
	}

	// Editing keys on an empty list must not panic or change mode
	m = typeKeys(m, "enter", "d")
	if m.mode != modeList {
		t.Errorf("mode = %d, want modeList on empty store", m.mode)
	}
}
