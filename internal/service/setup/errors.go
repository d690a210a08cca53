package setup

import "fmt"

// ConfigurationError reports that the Pipfile could not be located or
// parsed. It is fatal at construction; no resolver exists without a manifest.
type ConfigurationError struct {
	// Err is the underlying locate or parse failure.
	Err error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("a valid Pipfile is required to generate setup metadata: %v", e.Err)
}

// Unwrap returns the underlying failure.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports that a required [package] metadata field is
// absent from the Pipfile. Errors are per-field: other fields remain
// independently accessible.
type MissingFieldError struct {
	// Field is the missing [package] key.
	Field string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("no %s specified in the Pipfile [package] section", e.Field)
}

// VersionResolutionError reports that no version override was present and
// the git-based version generation failed (no tags, no repository, or
// unparseable describe output).
type VersionResolutionError struct {
	// Err is the underlying generation failure.
	Err error
}

// Error implements the error interface.
func (e *VersionResolutionError) Error() string {
	return fmt.Sprintf("cannot generate package version from git tags, add tags or set package.version in the Pipfile: %v", e.Err)
}

// Unwrap returns the underlying failure.
func (e *VersionResolutionError) Unwrap() error {
	return e.Err
}
