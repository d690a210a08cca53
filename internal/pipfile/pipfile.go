package pipfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Filename is the canonical manifest filename, searched for by Find.
const Filename = "Pipfile"

// errManifestNotFound is returned when no Pipfile exists in the
// starting directory or any of its ancestors.
var errManifestNotFound = errors.New("no Pipfile found")

// Manifest is an immutable snapshot of a parsed Pipfile. It is decoded once
// by Load and never mutated afterwards.
type Manifest struct {
	// Package holds the custom [package] metadata section.
	Package Package `toml:"package"`
	// Packages maps dependency name to version constraint from [packages].
	Packages map[string]Constraint `toml:"packages"`
	// DevPackages maps dependency name to version constraint from [dev-packages].
	DevPackages map[string]Constraint `toml:"dev-packages"`
	// Requires holds the [requires] section.
	Requires Requires `toml:"requires"`

	// Path is the location the manifest was loaded from. Not part of the
	// TOML document.
	Path string `toml:"-"`
	// PackageOrder lists the [packages] dependency names in manifest order.
	// Go maps drop declaration order, so it is recovered from TOML metadata.
	PackageOrder []string `toml:"-"`
}

// Package is the [package] metadata section. Every field is optional at
// parse time; required-field checks happen per accessor in the resolver.
type Package struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
	Author      string `toml:"author"`
	URL         string `toml:"url"`
}

// Requires is the [requires] section.
type Requires struct {
	PythonVersion string `toml:"python_version"`
}

// Constraint is a dependency version constraint. Pipfiles allow either a
// bare string (`"*"`, `">=1.0"`) or an inline table
// (`{version = ">=1.0", extras = ["socks"]}`); both decode into Constraint
// and only the version text is kept.
type Constraint struct {
	// Spec is the raw constraint text, `*` meaning unpinned.
	Spec string
}

// UnmarshalTOML accepts both constraint forms.
func (c *Constraint) UnmarshalTOML(v any) error {
	switch value := v.(type) {
	case string:
		c.Spec = value
	case map[string]any:
		spec, _ := value["version"].(string)
		c.Spec = spec
	default:
		return fmt.Errorf("unsupported constraint type %T", v)
	}

	return nil
}

// Find walks upward from dir looking for a Pipfile, mirroring how packaging
// tools locate the manifest from anywhere inside a project tree. It returns
// the absolute path of the first match.
func Find(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	for {
		candidate := filepath.Join(current, Filename)

		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}

		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("%w in %s or any parent directory", errManifestNotFound, dir)
		}

		current = parent
	}
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var manifest Manifest

	meta, err := toml.Decode(string(contents), &manifest)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	manifest.Path = path

	// Keys are reported in document order; keep the ones naming direct
	// entries of the [packages] table.
	for _, key := range meta.Keys() {
		if len(key) == 2 && key[0] == "packages" {
			manifest.PackageOrder = append(manifest.PackageOrder, key[1])
		}
	}

	return &manifest, nil
}

// LoadDir locates the manifest starting at dir and loads it.
func LoadDir(dir string) (*Manifest, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}

	return Load(path)
}

// Dir returns the directory containing the manifest file.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}
