package setup

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/pipfile-setup/internal/pipfile"
)

// writeProject lays out a minimal resolvable project and returns its directory.
func writeProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	manifest := `[package]
name = "widgets"
version = "1.0.0"
description = "Widget assembly helpers"
author = "Widget Co"
url = "https://example.com/widgets"

[packages]
toml = "*"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, pipfile.Filename), []byte(manifest), 0o600))

	return dir
}

// TestRunWritesJSONDescriptor runs the workflow end to end with a version
// override, so no git binary is needed.
func TestRunWritesJSONDescriptor(t *testing.T) {
	t.Parallel()

	dir := writeProject(t)
	output := filepath.Join(dir, "setup-metadata.json")

	err := Run(context.Background(), &Options{Dir: dir, OutputPath: output})
	require.NoError(t, err)

	contents, err := os.ReadFile(output)
	require.NoError(t, err)

	var descriptor Descriptor

	require.NoError(t, json.Unmarshal(contents, &descriptor))
	require.Equal(t, "widgets", descriptor.Name)
	require.Equal(t, "1.0.0", descriptor.Version)
	require.Equal(t, LongDescriptionContentType, descriptor.LongDescriptionContentType)
	require.Equal(t, []string{"toml"}, descriptor.InstallRequires)
}

// TestRunWritesYAMLDescriptor checks the alternate encoding.
func TestRunWritesYAMLDescriptor(t *testing.T) {
	t.Parallel()

	dir := writeProject(t)
	output := filepath.Join(dir, "setup-metadata.yaml")

	err := Run(context.Background(), &Options{Dir: dir, OutputPath: output, Format: FormatYAML})
	require.NoError(t, err)

	contents, err := os.ReadFile(output)
	require.NoError(t, err)

	var descriptor Descriptor

	require.NoError(t, yaml.Unmarshal(contents, &descriptor))
	require.Equal(t, "widgets", descriptor.Name)
	require.Equal(t, DefaultPythonRequires, descriptor.PythonRequires)
}

// TestRunRejectsUnknownFormat fails before writing anything.
func TestRunRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	dir := writeProject(t)
	output := filepath.Join(dir, "setup-metadata.out")

	err := Run(context.Background(), &Options{Dir: dir, OutputPath: output, Format: "toml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown output format")

	_, err = os.Stat(output)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestRunFailsWithoutManifest surfaces the configuration error.
func TestRunFailsWithoutManifest(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), &Options{Dir: t.TempDir()})
	require.Error(t, err)

	var configurationError *ConfigurationError

	require.ErrorAs(t, err, &configurationError)
}
