package theme

import (
	"EnvStore/internal/console"
	"EnvStore/internal/logger"
	"EnvStore/internal/paths"
	"EnvStore/internal/version"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// PaletteExt is the file extension for palette files in the themes folder.
const PaletteExt = ".yaml"

// Palette is a named set of semantic tag overrides loaded from a YAML file
// in the themes folder. Tag values are fg:bg:flags style codes and may chain
// {{_Reference_}} and {{|code|}} segments; later segments override the
// foreground/background of earlier ones and add their flags.
type Palette struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Author      string            `yaml:"author,omitempty"`
	Tags        map[string]string `yaml:"tags"`
}

var (
	// tagSegment matches one {{_Name_}} reference (group 1) or one
	// {{|code|}} override (group 2) inside a palette value.
	tagSegment = regexp.MustCompile(`\{\{_([A-Za-z0-9_]+)_\}\}|\{\{\|([A-Za-z0-9_:\-#]*)\|\}\}`)
)

// Load activates the named palette from the themes folder on top of the
// built-in defaults. The application name (and "default") select the
// built-in tags; an unknown name keeps them and is reported at Debug level.
func Load(ctx context.Context, name string) error {
	Default()
	if name == "" || strings.EqualFold(name, version.ApplicationName) || strings.EqualFold(name, "default") {
		return nil
	}

	path := filepath.Join(paths.GetThemesDir(), name+PaletteExt)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		path = filepath.Join(paths.GetThemesDir(), strings.ToLower(name)+PaletteExt)
	}

	p, err := readPalette(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug(ctx, "Theme {{_Theme_}}%s{{_NC_}} not found, keeping defaults (available: %s)",
				name, strings.Join(availableNames(), ", "))
			return nil
		}
		return err
	}
	if p.Name == "" {
		p.Name = name
	}
	return Apply(p)
}

// Apply resolves every tag of the palette and registers it with the console
// registry. Tags are resolved in name order so failures are deterministic.
func Apply(p Palette) error {
	names := make([]string, 0, len(p.Tags))
	for name := range p.Tags {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		seen := map[string]bool{strings.ToLower(name): true}
		code, err := resolveTagValue(p.Tags[name], p.Tags, seen)
		if err != nil {
			return fmt.Errorf("unable to apply theme %s: %w", p.Name, err)
		}
		console.RegisterSemanticTag(name, "["+code+"]")
	}
	return nil
}

// Default restores the built-in tag definitions.
func Default() {
	console.ResetCustomColors()
}

// resolveTagValue reduces a palette value to a single fg:bg:flags code.
// A value with no segments is taken as a bare code. References resolve
// within the palette first, then against the built-in definitions. seen
// carries the reference path for cycle detection.
func resolveTagValue(value string, tags map[string]string, seen map[string]bool) (string, error) {
	matches := tagSegment.FindAllStringSubmatch(value, -1)
	if matches == nil {
		return canonicalCode(splitCode(value)), nil
	}

	var merged styleCode
	for _, m := range matches {
		if m[1] == "" {
			merged.merge(splitCode(m[2]))
			continue
		}

		ref := m[1]
		key := strings.ToLower(ref)
		if seen[key] {
			return "", fmt.Errorf("circular reference through %q", ref)
		}

		raw, ok := lookupTag(tags, ref)
		if !ok {
			def := console.GetColorDefinition(ref)
			if def == "" {
				return "", fmt.Errorf("unknown reference %q", ref)
			}
			raw = strings.Trim(def, "[]")
		}

		// Sibling references may share ancestors, so each branch gets its
		// own copy of the path.
		branch := make(map[string]bool, len(seen)+1)
		for k := range seen {
			branch[k] = true
		}
		branch[key] = true

		code, err := resolveTagValue(raw, tags, branch)
		if err != nil {
			return "", err
		}
		merged.merge(splitCode(code))
	}
	return canonicalCode(merged), nil
}

// lookupTag finds a palette tag by name, tolerating case differences the
// way the console registry does.
func lookupTag(tags map[string]string, name string) (string, bool) {
	if v, ok := tags[name]; ok {
		return v, true
	}
	for k, v := range tags {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// styleCode holds the three fields of a fg:bg:flags style code.
type styleCode struct {
	fg    string
	bg    string
	flags string
}

func splitCode(code string) styleCode {
	parts := strings.SplitN(code, ":", 3)
	var s styleCode
	if len(parts) > 0 {
		s.fg = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		s.bg = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		s.flags = strings.TrimSpace(parts[2])
	}
	return s
}

// merge overlays other on s: foreground and background replace when set,
// flags accumulate.
func (s *styleCode) merge(other styleCode) {
	if other.fg != "" {
		s.fg = other.fg
	}
	if other.bg != "" {
		s.bg = other.bg
	}
	for _, f := range other.flags {
		if !strings.ContainsRune(s.flags, f) {
			s.flags += string(f)
		}
	}
}

// canonicalCode renders the shortest fg:bg:flags form, "-" when empty.
func canonicalCode(s styleCode) string {
	switch {
	case s.flags != "":
		return s.fg + ":" + s.bg + ":" + s.flags
	case s.bg != "":
		return s.fg + ":" + s.bg
	case s.fg != "":
		return s.fg
	default:
		return "-"
	}
}
