package setup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/pipfile-setup/internal/logger"
)

// Output formats for the rendered descriptor.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// descriptorFileMode is the permission for written descriptor files.
const descriptorFileMode = 0o644

// Options contains inputs for the setup-metadata entry point.
type Options struct {
	// Dir is the directory the Pipfile search starts from (defaults to the
	// working directory).
	Dir string
	// PipfilePath is an explicit manifest path, skipping the search.
	PipfilePath string
	// OutputPath is the file to write the descriptor to; empty means stdout.
	OutputPath string
	// Format is the descriptor encoding, FormatJSON or FormatYAML.
	Format string
	// VersionTemplate overrides the version render template.
	VersionTemplate string
	// PrimaryBranch overrides the branch that gets clean release versions.
	PrimaryBranch string
}

// Run executes the metadata-resolution workflow: build a resolver from the
// manifest, assemble the descriptor, encode it and hand it to the caller
// via stdout or a file.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "pipfile-setup")

	resolver, err := NewResolver(&ResolverOptions{
		Dir:             opts.Dir,
		PipfilePath:     opts.PipfilePath,
		VersionTemplate: opts.VersionTemplate,
		PrimaryBranch:   opts.PrimaryBranch,
	})
	if err != nil {
		return fmt.Errorf("initialize resolver: %w", err)
	}

	descriptor, err := resolver.GenerateSetup(ctx)
	if err != nil {
		return fmt.Errorf("generate setup metadata: %w", err)
	}

	encoded, err := encodeDescriptor(descriptor, opts.Format)
	if err != nil {
		return err
	}

	if opts.OutputPath == "" {
		_, err = os.Stdout.Write(encoded)
		if err != nil {
			return fmt.Errorf("write descriptor: %w", err)
		}

		return nil
	}

	if err = os.WriteFile(opts.OutputPath, encoded, descriptorFileMode); err != nil {
		return fmt.Errorf("write descriptor: %w", err)
	}

	logger.InfoKV(ctx, "Saved setup metadata", "path", opts.OutputPath)

	return nil
}

// encodeDescriptor renders the descriptor in the requested format,
// defaulting to JSON.
func encodeDescriptor(descriptor *Descriptor, format string) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		contents, err := json.MarshalIndent(descriptor, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal descriptor: %w", err)
		}

		return append(contents, '\n'), nil
	case FormatYAML:
		contents, err := yaml.Marshal(descriptor)
		if err != nil {
			return nil, fmt.Errorf("marshal descriptor: %w", err)
		}

		return contents, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
