package gitver

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultTemplate renders the nearest tag, plus a branch-commit suffix
	// off the primary branch. Example: v1.2.3 on master, v1.2.3-feature-x-abcdef1
	// on a feature branch.
	DefaultTemplate = "{tag}{branchcommit}"

	// DefaultPrimaryBranch is the branch that gets clean release versions.
	DefaultPrimaryBranch = "master"
)

// Describer is the narrow capability needed from a version-control system.
// The git-backed implementation lives in command.go; tests substitute fakes.
type Describer interface {
	// DescribeTags returns a single line of the form <tag>-<count>-g<sha>[-dirty].
	DescribeTags(ctx context.Context) (string, error)
	// CurrentBranch returns the current branch name as a single line.
	CurrentBranch(ctx context.Context) (string, error)
}

// Options controls version rendering.
type Options struct {
	// Template is the render template; empty means DefaultTemplate.
	// Recognized fields: {tag}, {count}, {sha}, {dirty}, {branch},
	// {version}, {branchcommit}.
	Template string
	// PrimaryBranch is the branch treated as release; empty means
	// DefaultPrimaryBranch.
	PrimaryBranch string
}

// describeParts is the parsed form of a `git describe --tags --long --dirty` line.
type describeParts struct {
	// Tag is the nearest ancestor tag.
	Tag string
	// Count is the number of commits since the tag.
	Count string
	// SHA is the abbreviated commit hash with the `g` prefix stripped.
	SHA string
	// Dirty reports whether the working tree had local modifications.
	Dirty bool
}

// parseDescribe splits the describe output into its hyphen-separated parts.
// Exactly 3 parts (tag, count, g-prefixed sha) or 4 (plus the dirty marker)
// are accepted; anything else is unparseable, including hyphenated tags.
func parseDescribe(line string) (describeParts, error) {
	parts := strings.Split(line, "-")
	if len(parts) != 3 && len(parts) != 4 {
		return describeParts{}, fmt.Errorf("cannot parse describe output %q: expected 3 or 4 parts, got %d", line, len(parts))
	}

	sha := parts[2]
	if len(sha) < 2 {
		return describeParts{}, fmt.Errorf("cannot parse describe output %q: commit hash %q is too short", line, sha)
	}

	return describeParts{
		Tag:   parts[0],
		Count: parts[1],
		SHA:   sha[1:],
		Dirty: len(parts) == 4,
	}, nil
}

// Generate derives a version string from the current tag and branch state.
// It queries the describer for both values, parses the describe line and
// renders the template.
func Generate(ctx context.Context, d Describer, opts Options) (string, error) {
	if opts.Template == "" {
		opts.Template = DefaultTemplate
	}

	if opts.PrimaryBranch == "" {
		opts.PrimaryBranch = DefaultPrimaryBranch
	}

	describe, err := d.DescribeTags(ctx)
	if err != nil {
		return "", fmt.Errorf("describe tags: %w", err)
	}

	branch, err := d.CurrentBranch(ctx)
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}

	parsed, err := parseDescribe(describe)
	if err != nil {
		return "", err
	}

	branchCommit := ""
	if branch != opts.PrimaryBranch {
		branchCommit = fmt.Sprintf("-%s-%s", branch, parsed.SHA)
	}

	replacer := strings.NewReplacer(
		"{tag}", parsed.Tag,
		"{count}", parsed.Count,
		"{sha}", parsed.SHA,
		"{dirty}", strconv.FormatBool(parsed.Dirty),
		"{branch}", branch,
		"{version}", describe,
		"{branchcommit}", branchCommit,
	)

	return replacer.Replace(opts.Template), nil
}
