// Package steeringdocs embeds the built-in Angular steering documents.
//
// The documents ship inside the binary so that every distribution channel
// works without network access or extra files. They are kept in a separate
// package from the loading code to distinguish content from mechanism;
// user-authored documents in the steering directory shadow these by ID.
package steeringdocs

import (
	"embed"
	"io/fs"
)

// builtinDocs embeds the shipped steering documents:
//   - docs/angular-guidance.md (inclusion: always)
//   - docs/legacy-refactor.md (inclusion: manual)
//   - docs/POWER.md (power manifest)
//
//go:embed docs
var builtinDocs embed.FS

// DocsFS returns the embedded filesystem containing the built-in steering
// documents. The steering registry loads these alongside user documents.
func DocsFS() fs.FS {
	return builtinDocs
}

// Dir is the directory within DocsFS holding the documents.
const Dir = "docs"
