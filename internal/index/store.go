package index

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Section is one indexed slice of a steering document.
type Section struct {
	DocID    string
	Heading  string
	Body     string
	Keywords string
}

// SearchResult is one ranked hit from a documentation search.
type SearchResult struct {
	DocID   string
	Heading string
	Snippet string
	Score   int
}

// DetectionRecord is one audited version detection.
type DetectionRecord struct {
	ID         string
	ProjectDir string
	Major      int
	Method     string
	Raw        string
	DetectedAt time.Time
}

// Store implements the documentation index repository.
type Store struct {
	db *sql.DB
}

// ReplaceSections replaces every indexed section of a document in one
// transaction, so a failed reindex never leaves a document half-indexed.
func (s *Store) ReplaceSections(docID string, sections []Section) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting reindex transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM doc_sections WHERE doc_id = ?`, docID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clearing sections for %s: %w", docID, err)
	}

	now := time.Now().Unix()
	for _, sec := range sections {
		_, err := tx.Exec(
			`INSERT INTO doc_sections (doc_id, heading, body, keywords, indexed_at) VALUES (?, ?, ?, ?, ?)`,
			docID, sec.Heading, sec.Body, sec.Keywords, now,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("inserting section %q of %s: %w", sec.Heading, docID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reindex of %s: %w", docID, err)
	}
	return nil
}

// SectionCount returns the number of indexed sections across all documents.
func (s *Store) SectionCount() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM doc_sections`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting sections: %w", err)
	}
	return n, nil
}

// Search returns sections matching the query, ranked by where the terms
// hit: headings score highest, then keywords, then body text. The query is
// split into terms; a section matches when every term appears somewhere.
func (s *Store) Search(query string, limit int) ([]SearchResult, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	// SQL narrows to sections containing the first term anywhere; scoring
	// and the remaining terms are applied in Go. The index is small (tens
	// of sections), so this stays simple rather than clever.
	like := "%" + terms[0] + "%"
	rows, err := s.db.Query(
		`SELECT doc_id, heading, body, keywords FROM doc_sections
		 WHERE lower(heading) LIKE ? OR lower(keywords) LIKE ? OR lower(body) LIKE ?`,
		like, like, like,
	)
	if err != nil {
		return nil, fmt.Errorf("searching sections: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var sec Section
		if err := rows.Scan(&sec.DocID, &sec.Heading, &sec.Body, &sec.Keywords); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		score, ok := scoreSection(sec, terms)
		if !ok {
			continue
		}
		results = append(results, SearchResult{
			DocID:   sec.DocID,
			Heading: sec.Heading,
			Snippet: snippet(sec.Body, terms[0]),
			Score:   score,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// scoreSection returns the section's score for the terms and whether every
// term matched.
func scoreSection(sec Section, terms []string) (int, bool) {
	heading := strings.ToLower(sec.Heading)
	keywords := strings.ToLower(sec.Keywords)
	body := strings.ToLower(sec.Body)

	score := 0
	for _, term := range terms {
		termScore := 0
		if strings.Contains(heading, term) {
			termScore += 3
		}
		if strings.Contains(keywords, term) {
			termScore += 2
		}
		if strings.Contains(body, term) {
			termScore++
		}
		if termScore == 0 {
			return 0, false
		}
		score += termScore
	}
	return score, true
}

// snippetLen bounds how much body text a search result carries.
const snippetLen = 200

// snippet extracts a window of body text around the first occurrence of the
// term, collapsed to a single line. Window edges land on rune boundaries so
// multibyte text is never cut mid-rune.
func snippet(body, term string) string {
	flat := strings.Join(strings.Fields(body), " ")
	idx := indexFold(flat, term)
	if idx < 0 {
		idx = 0
	}
	start := idx - snippetLen/4
	if start < 0 {
		start = 0
	}
	for start > 0 && !utf8.RuneStart(flat[start]) {
		start--
	}
	end := start + snippetLen
	if end > len(flat) {
		end = len(flat)
	}
	for end < len(flat) && !utf8.RuneStart(flat[end]) {
		end++
	}
	out := flat[start:end]
	if start > 0 {
		out = "…" + out
	}
	if end < len(flat) {
		out += "…"
	}
	return out
}

// indexFold returns the byte offset in s of the first case-insensitive
// occurrence of term, or -1. Offsets refer to s itself, not a lowered
// copy, because case folding can change a rune's encoded length.
func indexFold(s, term string) int {
	if term == "" {
		return 0
	}
	for i := range s {
		if hasPrefixFold(s[i:], term) {
			return i
		}
	}
	return -1
}

func hasPrefixFold(s, prefix string) bool {
	for _, pr := range prefix {
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 {
			return false
		}
		if unicode.ToLower(r) != unicode.ToLower(pr) {
			return false
		}
		s = s[size:]
	}
	return true
}

// RecordDetection persists a detection audit record. A missing ID is
// generated.
func (s *Store) RecordDetection(rec DetectionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.DetectedAt.IsZero() {
		rec.DetectedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO detections (id, project_dir, major, method, raw_range, detected_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.ProjectDir, rec.Major, rec.Method, rec.Raw, rec.DetectedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("recording detection: %w", err)
	}
	return nil
}

// RecentDetections returns the most recent detection records for a project
// directory, newest first. An empty projectDir returns records for all
// projects.
func (s *Store) RecentDetections(projectDir string, limit int) ([]DetectionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, project_dir, major, method, raw_range, detected_at FROM detections`
	args := []any{}
	if projectDir != "" {
		query += ` WHERE project_dir = ?`
		args = append(args, projectDir)
	}
	query += ` ORDER BY detected_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying detections: %w", err)
	}
	defer rows.Close()

	var records []DetectionRecord
	for rows.Next() {
		var rec DetectionRecord
		var ts int64
		if err := rows.Scan(&rec.ID, &rec.ProjectDir, &rec.Major, &rec.Method, &rec.Raw, &ts); err != nil {
			return nil, fmt.Errorf("scanning detection: %w", err)
		}
		rec.DetectedAt = time.Unix(ts, 0)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating detections: %w", err)
	}
	return records, nil
}
