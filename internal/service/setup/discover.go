package setup

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// initFilename marks a directory as an importable Python package.
const initFilename = "__init__.py"

// excludedPackages are the conventional top-level directories never shipped
// as part of a distribution.
//
//nolint:gochecknoglobals // Read-only exclusion set.
var excludedPackages = map[string]struct{}{
	"contrib": {},
	"docs":    {},
	"tests":   {},
	"test":    {},
}

// FindPackages scans the project directory for importable Python packages:
// directories whose whole chain down from the root carries an __init__.py.
// Hidden directories and the conventional excludes are skipped at the top
// level. Results are dotted package names, sorted.
func (r *Resolver) FindPackages() ([]string, error) {
	found, err := discoverPackages(r.dir, "")
	if err != nil {
		return nil, err
	}

	sort.Strings(found)

	return found, nil
}

// discoverPackages recursively collects package names under dir. The prefix
// is the dotted path of dir itself, empty at the project root. Recursion
// only descends into package directories, which enforces the whole-chain
// __init__.py requirement.
func discoverPackages(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var found []string

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		if _, excluded := excludedPackages[name]; excluded && prefix == "" {
			continue
		}

		subDir := filepath.Join(dir, name)
		if _, err := os.Stat(filepath.Join(subDir, initFilename)); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}

			return nil, err
		}

		dotted := name
		if prefix != "" {
			dotted = prefix + "." + name
		}

		found = append(found, dotted)

		nested, err := discoverPackages(subDir, dotted)
		if err != nil {
			return nil, err
		}

		found = append(found, nested...)
	}

	return found, nil
}
