package theme

import (
	"EnvStore/internal/console"
	"EnvStore/internal/paths"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupThemesDir(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	paths.StateHomeOverride = tempDir
	t.Cleanup(func() {
		paths.StateHomeOverride = ""
		Default()
	})

	themesDir := paths.GetThemesDir()
	if err := os.MkdirAll(themesDir, 0755); err != nil {
		t.Fatalf("unable to create themes dir: %v", err)
	}
	return themesDir
}

func TestResolveTagValue(t *testing.T) {
	tags := map[string]string{
		"Simple":       "red:blue:B",
		"Reference":    "{{_Simple_}}",
		"OverrideFG":   "{{_Simple_}}{{|green|}}",
		"OverrideBG":   "{{_Simple_}}{{|:green|}}",
		"OverrideFlag": "{{_Simple_}}{{|::U|}}",
		"ChainA":       "white",
		"ChainB":       "{{_ChainA_}}{{|:black|}}",
		"ChainC":       "{{_ChainB_}}{{|::B|}}",
		"Diamond":      "{{_OverrideFG_}}{{_OverrideBG_}}",
		"CircularA":    "{{_CircularB_}}",
		"CircularB":    "{{_CircularA_}}",
	}

	tests := []struct {
		name     string
		key      string
		expected string
		wantErr  bool
	}{
		{name: "Bare code", key: "Simple", expected: "red:blue:B"},
		{name: "Direct reference", key: "Reference", expected: "red:blue:B"},
		{name: "Override foreground", key: "OverrideFG", expected: "green:blue:B"},
		{name: "Override background", key: "OverrideBG", expected: "red:green:B"},
		{name: "Override flag is additive", key: "OverrideFlag", expected: "red:blue:BU"},
		{name: "Chained resolution", key: "ChainC", expected: "white:black:B"},
		{name: "Diamond is not a cycle", key: "Diamond", expected: "red:green:B"},
		{name: "Circular reference", key: "CircularA", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := map[string]bool{strings.ToLower(tt.key): true}
			got, err := resolveTagValue(tags[tt.key], tags, seen)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("resolveTagValue(%q) = %q, want error", tt.key, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveTagValue(%q) error: %v", tt.key, err)
			}
			if got != tt.expected {
				t.Errorf("resolveTagValue(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestResolveTagValueBuiltinFallback(t *testing.T) {
	defer Default()

	// References not present in the palette resolve against the built-in
	// definitions ({{_Var_}} is [magenta] by default).
	got, err := resolveTagValue("{{_Var_}}{{|::B|}}", map[string]string{}, map[string]bool{})
	if err != nil {
		t.Fatalf("resolveTagValue error: %v", err)
	}
	if got != "magenta::B" {
		t.Errorf("resolveTagValue = %q, want %q", got, "magenta::B")
	}
}

func TestApplyRegistersTags(t *testing.T) {
	oldTTY := console.SetTTY(true)
	defer console.SetTTY(oldTTY)
	defer Default()

	p := Palette{
		Name: "test",
		Tags: map[string]string{
			"Var":    "green::B",
			"Accent": "{{_Var_}}{{|:white|}}",
		},
	}
	if err := Apply(p); err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	if def := console.GetColorDefinition("Var"); def != "[green::B]" {
		t.Errorf("Var definition = %q, want %q", def, "[green::B]")
	}
	if def := console.GetColorDefinition("Accent"); def != "[green:white:B]" {
		t.Errorf("Accent definition = %q, want %q", def, "[green:white:B]")
	}

	// The applied tag must render through the regular tag pipeline.
	out := console.ToANSI("{{_Accent_}}x")
	for _, code := range []string{console.CodeGreen, console.CodeWhiteBg, console.CodeBold} {
		if !strings.Contains(out, code) {
			t.Errorf("ToANSI output %q missing %q", out, code)
		}
	}
}

func TestApplyCircularPalette(t *testing.T) {
	defer Default()

	p := Palette{
		Name: "broken",
		Tags: map[string]string{
			"A": "{{_B_}}",
			"B": "{{_A_}}",
		},
	}
	if err := Apply(p); err == nil {
		t.Fatal("Apply with circular references should fail")
	}
}

func TestLoadAppliesPaletteFile(t *testing.T) {
	themesDir := setupThemesDir(t)

	palette := strings.Join([]string{
		"name: midnight",
		"description: test palette",
		"tags:",
		"  ApplicationName: blue::B",
		"  Var: cyan",
	}, "\n")
	if err := os.WriteFile(filepath.Join(themesDir, "midnight"+PaletteExt), []byte(palette), 0644); err != nil {
		t.Fatalf("unable to write palette: %v", err)
	}

	if err := Load(context.Background(), "midnight"); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if def := console.GetColorDefinition("Var"); def != "[cyan]" {
		t.Errorf("Var definition = %q, want %q", def, "[cyan]")
	}
}

func TestLoadUnknownKeepsDefaults(t *testing.T) {
	setupThemesDir(t)

	want := console.GetColorDefinition("Var")
	if err := Load(context.Background(), "no-such-theme"); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got := console.GetColorDefinition("Var"); got != want {
		t.Errorf("Var definition changed to %q, want %q", got, want)
	}
}

func TestLoadDefaultNames(t *testing.T) {
	setupThemesDir(t)

	for _, name := range []string{"", "default", "EnvStore", "envstore"} {
		if err := Load(context.Background(), name); err != nil {
			t.Errorf("Load(%q) error: %v", name, err)
		}
	}
}

func TestList(t *testing.T) {
	themesDir := setupThemesDir(t)

	files := map[string]string{
		"ocean" + PaletteExt: "name: ocean\ndescription: blue on black\nauthor: test\ntags:\n  Var: blue\n",
		"mono" + PaletteExt:  "name: mono\ntags:\n  Var: white\n",
		"notes.txt":          "not a palette",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(themesDir, name), []byte(content), 0644); err != nil {
			t.Fatalf("unable to write %s: %v", name, err)
		}
	}

	palettes, err := List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(palettes) != 2 {
		t.Fatalf("List returned %d palettes, want 2", len(palettes))
	}
	if palettes[0].Name != "mono" || palettes[1].Name != "ocean" {
		t.Errorf("List order = %q, %q; want mono, ocean", palettes[0].Name, palettes[1].Name)
	}
	if palettes[1].Description != "blue on black" {
		t.Errorf("ocean description = %q", palettes[1].Description)
	}
}

func TestListNoThemesDir(t *testing.T) {
	paths.StateHomeOverride = filepath.Join(t.TempDir(), "missing")
	t.Cleanup(func() { paths.StateHomeOverride = "" })

	palettes, err := List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if palettes != nil {
		t.Errorf("List = %v, want nil", palettes)
	}
}
