// Package steering defines the domain types for steering documents:
// Markdown instruction files with YAML frontmatter that configure an AI
// coding assistant's behavior on Angular projects.
package steering

// Inclusion controls when a steering document is injected into an
// assistant's context.
type Inclusion string

const (
	// InclusionAlways documents are injected into every context.
	InclusionAlways Inclusion = "always"
	// InclusionManual documents are injected only when explicitly
	// requested or enabled through configuration.
	InclusionManual Inclusion = "manual"
)

// IsValid returns true if the inclusion mode is a known value.
func (i Inclusion) IsValid() bool {
	return i == InclusionAlways || i == InclusionManual
}

// Source indicates where a steering document originated from.
type Source int

const (
	// SourceBuiltIn indicates a document bundled with the application.
	SourceBuiltIn Source = iota
	// SourceUser indicates a document from the user's steering directory.
	SourceUser
)

// String returns a human-readable representation of the Source.
func (s Source) String() string {
	switch s {
	case SourceBuiltIn:
		return "built-in"
	case SourceUser:
		return "user"
	default:
		return "unknown"
	}
}

// Document is a loaded steering document.
type Document struct {
	// ID is derived from the filename (e.g. "legacy-refactor" from
	// "legacy-refactor.md").
	ID string

	// Name is the human-readable display name from frontmatter, falling
	// back to the ID when the frontmatter carries none.
	Name string

	// Description is a brief description from frontmatter, used by an
	// assistant to decide whether a manual document is worth loading.
	Description string

	// Inclusion is the document's injection mode.
	Inclusion Inclusion

	// Keywords are frontmatter search keywords.
	Keywords []string

	// Content is the Markdown body after the frontmatter block.
	Content string

	// Raw is the full file content including frontmatter.
	Raw string

	// Source indicates whether this is a built-in or user document.
	Source Source

	// FilePath is the absolute path for user documents (empty for built-in).
	FilePath string
}

// PowerManifest is the richer frontmatter block carried by the POWER.md
// manifest document: package-level metadata consumed by external loaders.
type PowerManifest struct {
	Name        string   `yaml:"name"`
	DisplayName string   `yaml:"displayName"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
	Author      string   `yaml:"author"`
}
