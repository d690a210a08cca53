// Package pipfile locates and parses a Pipfile dependency manifest into an
// immutable typed snapshot.
//
// Only the sections relevant to packaging are modeled: [package] metadata,
// [packages] and [dev-packages] constraints, and [requires]. Constraints
// accept both the bare-string and inline-table Pipfile forms.
package pipfile
