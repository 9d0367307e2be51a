package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

var (
	urlPattern       = regexp.MustCompile(`https?://[^\s]+`)
	fileExtension    = regexp.MustCompile(`\.[^/.]+$`)
	fileNamePrefixes = regexp.MustCompile(`^(model_|checkpoint_|ckpt_|lora_)`)
)

// ExtractURLs returns every HTTP(S) URL in text, in order of appearance.
func ExtractURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

// FileNameFromURL returns the last path segment of a URL with its query,
// fragment and extension removed.
func FileNameFromURL(rawURL string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	if i := strings.LastIndex(rawURL, "/"); i >= 0 {
		rawURL = rawURL[i+1:]
	}
	return fileExtension.ReplaceAllString(rawURL, "")
}

// NormalizeCandidate lowercases a file name, drops one known prefix and
// removes separators.
func NormalizeCandidate(name string) string {
	lower := fileNamePrefixes.ReplaceAllString(strings.ToLower(name), "")
	return nameSeparators.Replace(lower)
}

// modelLookup maps lowercased entry names to entries. Keys keep their
// first insertion order; a later entry with the same name replaces the
// earlier one.
type modelLookup struct {
	keys    []string
	entries map[string]*domain.EditableEntry
}

func newModelLookup(entries []*domain.EditableEntry) *modelLookup {
	l := &modelLookup{entries: make(map[string]*domain.EditableEntry, len(entries))}
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Model.Name))
		if key == "" {
			continue
		}
		if _, seen := l.entries[key]; !seen {
			l.keys = append(l.keys, key)
		}
		l.entries[key] = e
	}
	return l
}

// find matches a candidate file name: exact case-insensitive first, then
// normalised equality or containment either way. First match wins.
func (l *modelLookup) find(fileName string) *domain.EditableEntry {
	if e, ok := l.entries[strings.ToLower(fileName)]; ok {
		return e
	}

	candidate := NormalizeCandidate(fileName)
	if candidate == "" {
		return nil
	}
	for _, key := range l.keys {
		stored := NormalizeCandidate(key)
		if stored == "" {
			continue
		}
		if stored == candidate || strings.Contains(candidate, stored) || strings.Contains(stored, candidate) {
			return l.entries[key]
		}
	}
	return nil
}

// BulkMatch fills entry URLs from the URLs found in text. An entry is
// updated when its URL is blank, invalid or different from the match.
// Updated entries are re-validated in place. The caller commits when
// anything matched.
func BulkMatch(text string, entries []*domain.EditableEntry) domain.BulkMatchResult {
	urls := ExtractURLs(text)
	result := domain.BulkMatchResult{URLsFound: len(urls)}
	if len(urls) == 0 {
		return result
	}

	lookup := newModelLookup(entries)
	for _, u := range urls {
		fileName := FileNameFromURL(u)
		if fileName == "" {
			continue
		}
		e := lookup.find(fileName)
		if e == nil {
			continue
		}

		current := strings.TrimSpace(e.Model.URL)
		wasError := current != "" && !e.URL.Valid()
		if current != "" && !wasError && current == u {
			continue
		}

		e.Model.URL = u
		ValidateEntry(e)
		result.Matched++
		if wasError {
			result.RepairedErrors++
		}
	}
	return result
}
