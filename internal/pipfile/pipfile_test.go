package pipfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// samplePipfile covers both constraint forms and every section the
// resolver reads.
const samplePipfile = `[[source]]
url = "https://pypi.org/simple"
verify_ssl = true
name = "pypi"

[package]
name = "widgets"
description = "Widget assembly helpers"
author = "Widget Co"
url = "https://example.com/widgets"

[packages]
toml = "*"
requests = ">=2.0"
urllib3 = {version = ">=1.26", extras = ["socks"]}

[dev-packages]
pytest = "*"

[requires]
python_version = "3.8"
`

// writePipfile creates a Pipfile with the given contents in a fresh temp dir.
func writePipfile(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, Filename)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

// TestLoad parses a representative manifest and checks every decoded section.
func TestLoad(t *testing.T) {
	t.Parallel()

	path := writePipfile(t, samplePipfile)

	manifest, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "widgets", manifest.Package.Name)
	require.Equal(t, "Widget assembly helpers", manifest.Package.Description)
	require.Equal(t, "Widget Co", manifest.Package.Author)
	require.Equal(t, "https://example.com/widgets", manifest.Package.URL)
	require.Empty(t, manifest.Package.Version)
	require.Equal(t, "3.8", manifest.Requires.PythonVersion)

	require.Equal(t, "*", manifest.Packages["toml"].Spec)
	require.Equal(t, ">=2.0", manifest.Packages["requests"].Spec)
	// Inline-table constraint keeps only the version text.
	require.Equal(t, ">=1.26", manifest.Packages["urllib3"].Spec)
	require.Equal(t, "*", manifest.DevPackages["pytest"].Spec)

	require.Equal(t, path, manifest.Path)
	require.Equal(t, filepath.Dir(path), manifest.Dir())
}

// TestLoadPackageOrder ensures dependency order follows the document, not
// Go map iteration.
func TestLoadPackageOrder(t *testing.T) {
	t.Parallel()

	manifest, err := Load(writePipfile(t, samplePipfile))
	require.NoError(t, err)
	require.Equal(t, []string{"toml", "requests", "urllib3"}, manifest.PackageOrder)
}

// TestLoadErrors covers missing and unparsable manifests.
func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), Filename))
	require.Error(t, err)

	_, err = Load(writePipfile(t, "[package\nname="))
	require.Error(t, err)
}

// TestFind checks the upward search from a nested directory.
func TestFind(t *testing.T) {
	t.Parallel()

	path := writePipfile(t, samplePipfile)
	nested := filepath.Join(filepath.Dir(path), "src", "widgets")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	found, err := Find(nested)
	require.NoError(t, err)
	require.Equal(t, path, found)

	// No manifest anywhere up the chain of a fresh temp dir.
	_, err = Find(t.TempDir())
	require.Error(t, err)
	require.ErrorIs(t, err, errManifestNotFound)
}

// TestLoadDir combines search and parse.
func TestLoadDir(t *testing.T) {
	t.Parallel()

	path := writePipfile(t, samplePipfile)

	manifest, err := LoadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Equal(t, "widgets", manifest.Package.Name)
}
