package setup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oshokin/pipfile-setup/internal/gitver"
	"github.com/oshokin/pipfile-setup/internal/logger"
	"github.com/oshokin/pipfile-setup/internal/pipfile"
)

const (
	// ReadmeFilename is read from the project directory as the long description.
	ReadmeFilename = "README.md"

	// LongDescriptionContentType is the fixed content type reported for the
	// long description.
	LongDescriptionContentType = "text/markdown"

	// DefaultPythonRequires is used when the Pipfile's [requires] section
	// does not pin a python_version.
	DefaultPythonRequires = ">=3.7, <4"
)

// ResolverOptions configures construction of a Resolver.
type ResolverOptions struct {
	// Dir is the directory the Pipfile search starts from; empty means the
	// process working directory.
	Dir string
	// PipfilePath is an explicit manifest path, skipping the upward search.
	PipfilePath string
	// Describer supplies git tag and branch state; nil means the real git
	// binary run in the manifest directory.
	Describer gitver.Describer
	// VersionTemplate overrides the version render template.
	VersionTemplate string
	// PrimaryBranch overrides the branch that gets clean release versions.
	PrimaryBranch string
}

// Resolver derives packaging descriptor fields from a Pipfile manifest plus
// environment state (README file, git tags and branch). The manifest is
// loaded once at construction and never mutated; every field is a pure
// function of the snapshot and the current environment.
type Resolver struct {
	// manifest is the immutable parsed Pipfile.
	manifest *pipfile.Manifest
	// dir is the project directory (where the manifest lives).
	dir string
	// describer answers git queries; swapped for a fake in tests.
	describer gitver.Describer
	// versionOpts controls version rendering.
	versionOpts gitver.Options
}

// Descriptor is the packaging descriptor consumed by the setup() step.
type Descriptor struct {
	Name                       string   `json:"name"                          yaml:"name"`
	Version                    string   `json:"version"                       yaml:"version"`
	Description                string   `json:"description"                   yaml:"description"`
	LongDescription            string   `json:"long_description"              yaml:"long_description"`
	LongDescriptionContentType string   `json:"long_description_content_type" yaml:"long_description_content_type"`
	URL                        string   `json:"url"                           yaml:"url"`
	Author                     string   `json:"author"                        yaml:"author"`
	Packages                   []string `json:"packages"                      yaml:"packages"`
	PythonRequires             string   `json:"python_requires"               yaml:"python_requires"`
	InstallRequires            []string `json:"install_requires"              yaml:"install_requires"`
}

// NewResolver locates and parses the Pipfile. A missing or unparsable
// manifest is fatal: it returns a *ConfigurationError and no Resolver.
func NewResolver(opts *ResolverOptions) (*Resolver, error) {
	if opts == nil {
		opts = new(ResolverOptions)
	}

	var (
		manifest *pipfile.Manifest
		err      error
	)

	if opts.PipfilePath != "" {
		manifest, err = pipfile.Load(opts.PipfilePath)
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}

		manifest, err = pipfile.LoadDir(dir)
	}

	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	describer := opts.Describer
	if describer == nil {
		describer = &gitver.Git{Dir: manifest.Dir()}
	}

	return &Resolver{
		manifest:  manifest,
		dir:       manifest.Dir(),
		describer: describer,
		versionOpts: gitver.Options{
			Template:      opts.VersionTemplate,
			PrimaryBranch: opts.PrimaryBranch,
		},
	}, nil
}

// Name returns package.name from the manifest.
func (r *Resolver) Name() (string, error) {
	return r.packageField(r.manifest.Package.Name, "name")
}

// Description returns package.description from the manifest.
func (r *Resolver) Description() (string, error) {
	return r.packageField(r.manifest.Package.Description, "description")
}

// Author returns package.author from the manifest.
func (r *Resolver) Author() (string, error) {
	return r.packageField(r.manifest.Package.Author, "author")
}

// URL returns package.url from the manifest.
func (r *Resolver) URL() (string, error) {
	return r.packageField(r.manifest.Package.URL, "url")
}

// packageField checks presence of a required [package] value.
func (r *Resolver) packageField(value, field string) (string, error) {
	if value == "" {
		return "", &MissingFieldError{Field: field}
	}

	return value, nil
}

// LongDescription reads README.md from the project directory. A missing
// README is not an error: it logs a warning and returns an empty string.
func (r *Resolver) LongDescription(ctx context.Context) (string, error) {
	contents, err := os.ReadFile(filepath.Join(r.dir, ReadmeFilename))
	if errors.Is(err, os.ErrNotExist) {
		logger.WarnKV(ctx, "Unable to find a README to use as package long description", "filename", ReadmeFilename)

		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("read %s: %w", ReadmeFilename, err)
	}

	return string(contents), nil
}

// PythonRequires formats requires.python_version as a minimum-version
// constraint capped below Python 4. When the manifest does not pin a
// version it logs a warning and returns DefaultPythonRequires.
func (r *Resolver) PythonRequires(ctx context.Context) string {
	pythonVersion := r.manifest.Requires.PythonVersion
	if pythonVersion == "" {
		logger.WarnKV(ctx, "Unable to find required python version for this module, using default",
			"default", DefaultPythonRequires)

		return DefaultPythonRequires
	}

	return fmt.Sprintf(">=%s, <4", pythonVersion)
}

// InstallRequires transforms the [packages] section into a list of
// name+constraint strings in manifest order. A constraint containing the
// `*` wildcard yields the bare name; any other constraint text is appended
// verbatim with no syntax validation.
func (r *Resolver) InstallRequires() []string {
	names := r.manifest.PackageOrder
	if len(names) == 0 {
		// Manifests built in code have no recorded order; sort for determinism.
		names = make([]string, 0, len(r.manifest.Packages))
		for name := range r.manifest.Packages {
			names = append(names, name)
		}

		sort.Strings(names)
	}

	requires := make([]string, 0, len(names))

	for _, name := range names {
		constraint := r.manifest.Packages[name].Spec
		if strings.Contains(constraint, "*") {
			constraint = ""
		}

		requires = append(requires, name+constraint)
	}

	return requires
}

// Version returns the explicit package.version override verbatim when
// present; otherwise it derives a version from git tag and branch state.
// Derivation failure is fatal and returns a *VersionResolutionError.
func (r *Resolver) Version(ctx context.Context) (string, error) {
	if override := r.manifest.Package.Version; override != "" {
		return override, nil
	}

	generated, err := gitver.Generate(ctx, r.describer, r.versionOpts)
	if err != nil {
		return "", &VersionResolutionError{Err: err}
	}

	return generated, nil
}

// GenerateSetup assembles every metadata field into the packaging descriptor.
func (r *Resolver) GenerateSetup(ctx context.Context) (*Descriptor, error) {
	name, err := r.Name()
	if err != nil {
		return nil, err
	}

	version, err := r.Version(ctx)
	if err != nil {
		return nil, err
	}

	description, err := r.Description()
	if err != nil {
		return nil, err
	}

	longDescription, err := r.LongDescription(ctx)
	if err != nil {
		return nil, err
	}

	url, err := r.URL()
	if err != nil {
		return nil, err
	}

	author, err := r.Author()
	if err != nil {
		return nil, err
	}

	packages, err := r.FindPackages()
	if err != nil {
		return nil, err
	}

	return &Descriptor{
		Name:                       name,
		Version:                    version,
		Description:                description,
		LongDescription:            longDescription,
		LongDescriptionContentType: LongDescriptionContentType,
		URL:                        url,
		Author:                     author,
		Packages:                   packages,
		PythonRequires:             r.PythonRequires(ctx),
		InstallRequires:            r.InstallRequires(),
	}, nil
}
