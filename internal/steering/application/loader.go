package steering

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/ngsteer/internal/log"
	steering "github.com/zjrosen/ngsteer/internal/steering/domain"
)

// frontmatterDelimiter opens and closes the YAML block at the top of a
// steering document.
const frontmatterDelimiter = "---"

// frontmatter is the superset of fields a steering document may carry.
// Plain steering documents use inclusion/name/description/keywords; the
// POWER.md manifest adds displayName and author.
type frontmatter struct {
	Inclusion   string   `yaml:"inclusion"`
	Name        string   `yaml:"name"`
	DisplayName string   `yaml:"displayName"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
	Author      string   `yaml:"author"`
}

// splitFrontmatter separates the YAML frontmatter block from the Markdown
// body. Returns ok=false when the content has no frontmatter, in which case
// body is the full content.
func splitFrontmatter(content string) (meta, body string, ok bool) {
	trimmed := strings.TrimLeft(content, "\ufeff\n\r")
	if !strings.HasPrefix(trimmed, frontmatterDelimiter+"\n") &&
		trimmed != frontmatterDelimiter {
		return "", content, false
	}

	rest := strings.TrimPrefix(trimmed, frontmatterDelimiter+"\n")
	end := strings.Index(rest, "\n"+frontmatterDelimiter)
	if end < 0 {
		return "", content, false
	}

	meta = rest[:end]
	body = rest[end+len("\n"+frontmatterDelimiter):]
	// Drop the newline that closed the delimiter line.
	body = strings.TrimPrefix(body, "\n")
	return meta, body, true
}

// ParseDocument parses raw steering document content into a Document.
// Malformed or missing frontmatter is not an error: the document falls back
// to manual inclusion with its ID as the display name, so a bad user file
// never breaks loading.
func ParseDocument(id string, content []byte, source steering.Source, filePath string) steering.Document {
	doc := steering.Document{
		ID:        id,
		Name:      id,
		Inclusion: steering.InclusionManual,
		Content:   string(content),
		Raw:       string(content),
		Source:    source,
		FilePath:  filePath,
	}

	meta, body, ok := splitFrontmatter(string(content))
	if !ok {
		return doc
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		log.Warn(log.CatSteering, "invalid frontmatter, using defaults", "doc", id, "error", err.Error())
		return doc
	}

	doc.Content = body
	doc.Description = fm.Description
	doc.Keywords = fm.Keywords

	if fm.DisplayName != "" {
		doc.Name = fm.DisplayName
	} else if fm.Name != "" {
		doc.Name = fm.Name
	}

	if inc := steering.Inclusion(fm.Inclusion); inc.IsValid() {
		doc.Inclusion = inc
	} else if fm.Inclusion != "" {
		log.Warn(log.CatSteering, "unknown inclusion mode, treating as manual",
			"doc", id, "inclusion", fm.Inclusion)
	}

	return doc
}

// ParsePowerManifest parses a manifest document (POWER.md). Unlike plain
// steering documents, a manifest without valid frontmatter is an error:
// the metadata is the point of the file.
func ParsePowerManifest(content []byte) (steering.PowerManifest, string, error) {
	meta, body, ok := splitFrontmatter(string(content))
	if !ok {
		return steering.PowerManifest{}, "", fmt.Errorf("manifest has no frontmatter block")
	}

	var m steering.PowerManifest
	if err := yaml.Unmarshal([]byte(meta), &m); err != nil {
		return steering.PowerManifest{}, "", fmt.Errorf("parsing manifest frontmatter: %w", err)
	}
	if m.Name == "" {
		return steering.PowerManifest{}, "", fmt.Errorf("manifest frontmatter missing name")
	}
	return m, body, nil
}

// LoadFromFS loads every .md document under dir in the given filesystem.
// Used for the embedded built-in documents.
func LoadFromFS(fsys fs.FS, dir string, source steering.Source) ([]steering.Document, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading steering dir %s: %w", dir, err)
	}

	var docs []steering.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		data, err := fs.ReadFile(fsys, dir+"/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading steering doc %s: %w", entry.Name(), err)
		}
		id := strings.TrimSuffix(entry.Name(), ".md")
		docs = append(docs, ParseDocument(id, data, source, ""))
	}
	return docs, nil
}

// LoadUserDir loads steering documents from the user's steering directory.
// A missing directory is not an error; any other read failure is logged and
// skipped so one bad file cannot take down startup.
func LoadUserDir(dir string) []steering.Document {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn(log.CatSteering, "reading user steering directory", "dir", dir, "error", err.Error())
		}
		return nil
	}

	var docs []steering.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn(log.CatSteering, "reading user steering doc", "path", path, "error", err.Error())
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".md")
		docs = append(docs, ParseDocument(id, data, steering.SourceUser, path))
	}
	return docs
}
