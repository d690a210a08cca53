// Package setup resolves Python packaging metadata from a Pipfile manifest
// and git tag/branch state.
//
// The Resolver loads the manifest once at construction and exposes per-field
// accessors (name, version, author, dependency list, ...) plus GenerateSetup,
// which assembles everything into the descriptor consumed by a setup() step.
// Required fields fail with MissingFieldError; a missing README or python
// version pin only logs a warning and falls back to a default. Run wraps the
// whole workflow for the CLI, encoding the descriptor as JSON or YAML.
package setup
