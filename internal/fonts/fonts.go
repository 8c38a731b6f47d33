// Package fonts locates font files for the page renderer.
package fonts

import (
	"os"
	"path/filepath"
	"strings"
)

// Exts lists the extensions treated as font files.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate base directories for fonts (relative to process cwd), so
// fonts are found whether run from the repo root or cmd/landing.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf").
// Paths use forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// Resolve returns a loadable path for name: name itself when it is an existing font file,
// otherwise the best match under BaseDirs.
func Resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if isFont(name) {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return FindIn(BaseDirs(), name)
}

// FindIn searches dirs for a font file whose path fuzzy-matches search ("Inter",
// "Google Sans", "Inter-Regular"). When several match, a path containing "regular" wins.
// It returns the full path or os.ErrNotExist.
func FindIn(dirs []string, search string) (string, error) {
	norm := normalizeForMatch(strings.TrimSuffix(strings.TrimSuffix(search, ".ttf"), ".otf"))
	if norm == "" {
		return "", os.ErrNotExist
	}
	var found []string
	for _, base := range dirs {
		list, err := ScanDir(base)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				found = append(found, filepath.Join(base, filepath.FromSlash(rel)))
			}
		}
	}
	if len(found) == 0 {
		return "", os.ErrNotExist
	}
	for _, f := range found {
		if strings.Contains(strings.ToLower(filepath.Base(f)), "regular") {
			return f, nil
		}
	}
	return found[0], nil
}
