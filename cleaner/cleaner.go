// Package cleaner normalizes release-style file names: it strips bracketed
// tag groups, turns separator runs into spaces, and collapses the result.
package cleaner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Change is one proposed rename.
type Change struct {
	Path     string
	Original string
	Cleaned  string
}

var (
	tagGroups  = regexp.MustCompile(`\[[^\[\]]*\]|\([^()]*\)|\{[^{}]*\}`)
	separators = regexp.MustCompile(`[._]+`)
	spaceRuns  = regexp.MustCompile(`\s+`)

	// A trailing ".78" in a versioned name is not an extension, so the
	// extension must start with a letter.
	extPattern = regexp.MustCompile(`\.[A-Za-z][A-Za-z0-9]{0,4}$`)
)

// CleanName rewrites a file name's stem, keeping the extension. When the
// rules would strip the stem down to nothing, the original stem is kept.
func CleanName(name string) string {
	ext := extPattern.FindString(name)
	stem := strings.TrimSuffix(name, ext)

	cleaned := tagGroups.ReplaceAllString(stem, " ")
	cleaned = separators.ReplaceAllString(cleaned, " ")
	cleaned = spaceRuns.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		cleaned = stem
	}
	return cleaned + ext
}

// Scan walks dir collecting the renames CleanName proposes. Directories and
// hidden files are skipped; unchanged names are not reported. The walk runs
// to completion once started.
func Scan(dir string) ([]Change, error) {
	var changes []Change
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") {
			return nil
		}
		cleaned := CleanName(name)
		if cleaned == name {
			return nil
		}
		changes = append(changes, Change{
			Path:     path,
			Original: name,
			Cleaned:  cleaned,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changes, nil
}

// Apply performs the renames. A change whose target already exists is
// skipped and reported in the returned slice; other failures stop the pass.
func Apply(changes []Change) (skipped []Change, err error) {
	for _, c := range changes {
		target := filepath.Join(filepath.Dir(c.Path), c.Cleaned)
		if _, statErr := os.Stat(target); statErr == nil {
			skipped = append(skipped, c)
			continue
		}
		if renameErr := os.Rename(c.Path, target); renameErr != nil {
			return skipped, fmt.Errorf("rename %s: %w", c.Original, renameErr)
		}
	}
	return skipped, nil
}

// FormatList renders changes one per line for display or clipboard use.
func FormatList(changes []Change) string {
	var b strings.Builder
	for _, c := range changes {
		fmt.Fprintf(&b, "%s -> %s\n", c.Original, c.Cleaned)
	}
	return b.String()
}
