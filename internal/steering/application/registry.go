// Package steering loads steering documents and resolves which of them
// belong in an assistant's context. Built-in documents are embedded;
// user documents shadow built-ins with the same ID.
package steering

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/zjrosen/ngsteer/internal/log"
	steering "github.com/zjrosen/ngsteer/internal/steering/domain"
)

// manifestID is the document ID of the power manifest.
const manifestID = "POWER"

// Registry holds the loaded steering documents and the opt-in state for
// manual documents.
type Registry struct {
	docs     map[string]steering.Document
	order    []string
	enabled  map[string]bool
	manifest *steering.PowerManifest
}

// RegistryOptions configures registry construction.
type RegistryOptions struct {
	// BuiltinFS is the embedded filesystem holding built-in documents.
	BuiltinFS fs.FS

	// BuiltinDir is the directory within BuiltinFS (usually "docs").
	BuiltinDir string

	// UserDir is the user steering directory. Empty disables user docs.
	UserDir string

	// Enabled is the opt-in list of manual document IDs that should be
	// treated as always-included. Unmatched IDs produce warnings, never
	// errors.
	Enabled []string
}

// NewRegistry loads built-in and user steering documents with user
// precedence and applies the manual-document opt-in list.
func NewRegistry(opts RegistryOptions) (*Registry, error) {
	builtin, err := LoadFromFS(opts.BuiltinFS, opts.BuiltinDir, steering.SourceBuiltIn)
	if err != nil {
		return nil, fmt.Errorf("loading built-in steering docs: %w", err)
	}

	r := &Registry{
		docs:    make(map[string]steering.Document),
		enabled: make(map[string]bool),
	}

	for _, doc := range builtin {
		r.add(doc)
	}
	if opts.UserDir != "" {
		for _, doc := range LoadUserDir(opts.UserDir) {
			if prev, ok := r.docs[doc.ID]; ok {
				log.Info(log.CatSteering, "user steering doc shadows built-in",
					"doc", doc.ID, "shadowed", prev.Source.String())
			}
			r.add(doc)
		}
	}

	if m, ok := r.docs[manifestID]; ok {
		manifest, _, err := ParsePowerManifest([]byte(m.Raw))
		if err != nil {
			log.Warn(log.CatSteering, "parsing power manifest", "error", err.Error())
		} else {
			r.manifest = &manifest
		}
	}

	for _, id := range opts.Enabled {
		doc, ok := r.docs[id]
		if !ok {
			log.Warn(log.CatSteering, "enabled steering doc not found",
				"id", id, "available", strings.Join(r.order, ", "))
			continue
		}
		if doc.Inclusion == steering.InclusionAlways {
			// Already always-included; the opt-in is a no-op.
			continue
		}
		r.enabled[id] = true
	}

	return r, nil
}

// add inserts or replaces a document, keeping insertion order stable for
// first-seen IDs.
func (r *Registry) add(doc steering.Document) {
	if _, exists := r.docs[doc.ID]; !exists {
		r.order = append(r.order, doc.ID)
	}
	r.docs[doc.ID] = doc
}

// Get returns the document with the given ID.
func (r *Registry) Get(id string) (steering.Document, bool) {
	doc, ok := r.docs[id]
	return doc, ok
}

// List returns all documents sorted by ID.
func (r *Registry) List() []steering.Document {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	sort.Strings(ids)

	docs := make([]steering.Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, r.docs[id])
	}
	return docs
}

// ListBySource returns all documents from the given source, sorted by ID.
func (r *Registry) ListBySource(source steering.Source) []steering.Document {
	var docs []steering.Document
	for _, doc := range r.List() {
		if doc.Source == source {
			docs = append(docs, doc)
		}
	}
	return docs
}

// Enabled reports whether a manual document has been opted in.
func (r *Registry) Enabled(id string) bool {
	return r.enabled[id]
}

// Manifest returns the parsed power manifest, if the POWER document was
// present and valid.
func (r *Registry) Manifest() (steering.PowerManifest, bool) {
	if r.manifest == nil {
		return steering.PowerManifest{}, false
	}
	return *r.manifest, true
}

// ContextDocuments resolves the set of documents to inject into an
// assistant context: every inclusion:always document, every opted-in manual
// document, and any explicitly requested manual documents. Requested IDs
// that do not exist are logged and skipped. The manifest document is never
// injected; it is metadata for external loaders.
func (r *Registry) ContextDocuments(requested ...string) []steering.Document {
	want := make(map[string]bool)
	for _, doc := range r.List() {
		if doc.ID == manifestID {
			continue
		}
		if doc.Inclusion == steering.InclusionAlways || r.enabled[doc.ID] {
			want[doc.ID] = true
		}
	}
	for _, id := range requested {
		if _, ok := r.docs[id]; !ok {
			log.Warn(log.CatSteering, "requested steering doc not found", "id", id)
			continue
		}
		if id == manifestID {
			continue
		}
		want[id] = true
	}

	var docs []steering.Document
	for _, doc := range r.List() {
		if want[doc.ID] {
			docs = append(docs, doc)
		}
	}
	return docs
}
