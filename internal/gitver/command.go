package gitver

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Git queries a repository through the git binary on PATH. Every call is a
// blocking subprocess invocation; the context cancels it.
type Git struct {
	// Dir is the working directory for git commands; empty means the
	// process working directory.
	Dir string
}

// DescribeTags runs `git describe --tags --long --dirty`.
func (g *Git) DescribeTags(ctx context.Context) (string, error) {
	return g.run(ctx, "describe", "--tags", "--long", "--dirty")
}

// CurrentBranch runs `git rev-parse --abbrev-ref HEAD`.
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	return g.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// run executes a git subcommand and returns its trimmed stdout. On failure
// the captured stderr is folded into the error so tag-less repositories
// produce an actionable message.
func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("git %s: %w: %s", args[0], err, detail)
		}

		return "", fmt.Errorf("git %s: %w", args[0], err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
