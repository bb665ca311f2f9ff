package index

import (
	"strings"

	steering "github.com/zjrosen/ngsteer/internal/steering/domain"
)

// SectionsFromDocument splits a steering document body into indexable
// sections at level-2 headings. Text before the first "## " heading is
// indexed under the document title (or the ID when there is no title line).
func SectionsFromDocument(doc steering.Document) []Section {
	keywords := strings.Join(doc.Keywords, " ")

	var sections []Section
	heading := doc.Name
	var body strings.Builder

	flush := func() {
		text := strings.TrimSpace(body.String())
		if text != "" {
			sections = append(sections, Section{
				DocID:    doc.ID,
				Heading:  heading,
				Body:     text,
				Keywords: keywords,
			})
		}
		body.Reset()
	}

	for _, line := range strings.Split(doc.Content, "\n") {
		if strings.HasPrefix(line, "## ") {
			flush()
			heading = strings.TrimSpace(strings.TrimPrefix(line, "## "))
			continue
		}
		body.WriteString(line)
		body.WriteString("\n")
	}
	flush()

	return sections
}

// Reindex replaces the indexed sections of every given document.
func Reindex(store *Store, docs []steering.Document) error {
	for _, doc := range docs {
		if err := store.ReplaceSections(doc.ID, SectionsFromDocument(doc)); err != nil {
			return err
		}
	}
	return nil
}
