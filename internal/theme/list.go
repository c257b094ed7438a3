package theme

import (
	"EnvStore/internal/paths"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// List returns the palettes available in the themes folder, sorted by name.
// A missing themes folder means no palettes, not an error.
func List() ([]Palette, error) {
	themesDir := paths.GetThemesDir()
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var palettes []Palette
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), PaletteExt) {
			continue
		}
		p, err := readPalette(filepath.Join(themesDir, entry.Name()))
		if err != nil {
			// Unparseable palettes are skipped; Load reports them when
			// selected directly.
			continue
		}
		if p.Name == "" {
			p.Name = strings.TrimSuffix(entry.Name(), PaletteExt)
		}
		palettes = append(palettes, p)
	}
	sort.Slice(palettes, func(i, j int) bool { return palettes[i].Name < palettes[j].Name })
	return palettes, nil
}

func availableNames() []string {
	palettes, err := List()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(palettes))
	for _, p := range palettes {
		names = append(names, p.Name)
	}
	return names
}

func readPalette(path string) (Palette, error) {
	var p Palette
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("unable to parse theme file at %s: %w", path, err)
	}
	return p, nil
}
