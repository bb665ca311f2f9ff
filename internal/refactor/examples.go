// Package refactor extracts the paired before/after migration examples from
// the legacy-refactor steering document.
package refactor

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Example is one migration example: a legacy snippet and its modern
// replacement.
type Example struct {
	// ID is a slug derived from the section title.
	ID string

	// Title is the section heading, e.g. "NgModule component to standalone".
	Title string

	// Feature names the modernization the example demonstrates
	// (matches the compat feature identifiers).
	Feature string

	// Before and After are the fenced code block contents.
	Before string
	After  string

	// Lang is the code fence language of the snippets.
	Lang string
}

// Diff returns an ANSI-colored character diff from Before to After.
func (e Example) Diff() string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(e.Before, e.After, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}

// Extract parses migration examples out of a steering document body.
// An example is a level-2 section containing a "**Feature:**" line and
// "### Before" / "### After" subsections with fenced code blocks. Sections
// missing either snippet are skipped: the document is prose first, data
// second, and a half-written section must not break the command.
func Extract(content string) []Example {
	var examples []Example

	var cur *Example
	lines := strings.Split(content, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		switch {
		case strings.HasPrefix(line, "## "):
			if cur != nil && cur.Before != "" && cur.After != "" {
				examples = append(examples, *cur)
			}
			title := strings.TrimSpace(strings.TrimPrefix(line, "## "))
			cur = &Example{ID: slugify(title), Title: title}

		case cur == nil:
			continue

		case strings.HasPrefix(line, "**Feature:**"):
			cur.Feature = strings.TrimSpace(strings.TrimPrefix(line, "**Feature:**"))

		case strings.HasPrefix(line, "### Before"):
			code, lang, next := fencedBlock(lines, i+1)
			cur.Before = code
			if cur.Lang == "" {
				cur.Lang = lang
			}
			i = next

		case strings.HasPrefix(line, "### After"):
			code, lang, next := fencedBlock(lines, i+1)
			cur.After = code
			if cur.Lang == "" {
				cur.Lang = lang
			}
			i = next
		}
	}
	if cur != nil && cur.Before != "" && cur.After != "" {
		examples = append(examples, *cur)
	}

	return examples
}

// fencedBlock finds the next fenced code block at or after index start and
// returns its contents, fence language, and the index of the closing fence.
// Returns start-1 as next when no block is found so the caller's loop
// continues from where it was.
func fencedBlock(lines []string, start int) (code, lang string, next int) {
	i := start
	for ; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "```") {
			lang = strings.TrimPrefix(lines[i], "```")
			break
		}
		// A new section before any fence means the block is missing.
		if strings.HasPrefix(lines[i], "## ") || strings.HasPrefix(lines[i], "### ") {
			return "", "", start - 1
		}
	}
	if i >= len(lines) {
		return "", "", start - 1
	}

	var b strings.Builder
	for i++; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "```") {
			return strings.TrimRight(b.String(), "\n"), lang, i
		}
		b.WriteString(lines[i])
		b.WriteString("\n")
	}
	return "", "", start - 1
}

// slugify turns a section title into a stable example ID.
func slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
