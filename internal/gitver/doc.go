// Package gitver derives build versions from git tag and branch state.
//
// The Describer interface abstracts the two git queries involved
// (describe-tags and current-branch) so version generation can be tested
// without a git binary. Generate parses the describe output and renders a
// configurable template; on the primary branch the result is the bare tag,
// elsewhere it carries a branch-commit suffix.
package gitver
