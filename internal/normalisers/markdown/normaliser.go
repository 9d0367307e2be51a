// Package markdown normalises markdown posts and model cards into link
// source text.
package markdown

import (
	"regexp"
	"strings"
)

// Normaliser handles markdown documents.
type Normaliser struct{}

// New creates a new markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".md", ".markdown", ".mdown"}
}

var (
	codeFence     = regexp.MustCompile("(?m)^\\s*```.*$")
	images        = regexp.MustCompile(`!\[([^\]]*)\]\(\s*<?([^)\s>]+)>?(?:\s+"[^"]*")?\s*\)`)
	links         = regexp.MustCompile(`\[([^\]]*)\]\(\s*<?([^)\s>]+)>?(?:\s+"[^"]*")?\s*\)`)
	autolinks     = regexp.MustCompile(`<(https?://[^>\s]+)>`)
	referenceDefs = regexp.MustCompile(`(?m)^\s{0,3}\[[^\]]+\]:\s*<?(\S+?)>?(?:\s+.*)?$`)
	headings      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquote    = regexp.MustCompile(`(?m)^>\s*`)
	listMarkers   = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// Normalise rewrites links as "text url" and drops block markup.
// Code blocks keep their content, since pasted URLs often sit inside them.
func (n *Normaliser) Normalise(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = codeFence.ReplaceAllString(content, "")
	content = strings.ReplaceAll(content, "`", "")

	content = referenceDefs.ReplaceAllString(content, "$1")
	content = images.ReplaceAllString(content, "$1 $2 ")
	content = links.ReplaceAllString(content, "$1 $2 ")
	content = autolinks.ReplaceAllString(content, "$1")

	content = headings.ReplaceAllString(content, "")
	content = blockquote.ReplaceAllString(content, "")
	content = listMarkers.ReplaceAllString(content, "")
	content = strings.ReplaceAll(content, "**", "")

	content = multiNewlines.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
