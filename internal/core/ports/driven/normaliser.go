package driven

// LinkNormaliser turns a link source, such as a saved web page or a
// markdown post, into plain text where every link is a bare URL ready for
// bulk matching.
type LinkNormaliser interface {
	// Normalise converts text. name is the source file name and selects
	// the format; unknown formats fall back to content sniffing.
	Normalise(name, text string) string
}
