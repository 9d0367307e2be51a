package domain

// NoLine marks a position that was not found.
const NoLine = -1

// ModelEntryPosition locates one persisted model entry in the text.
type ModelEntryPosition struct {
	Name     string `json:"name"`
	NameLine int    `json:"name_line"`
	URLLine  int    `json:"url_line"`
}

// NodePosition locates a node in the serialised text. Lines are 0-based.
// Positions are advisory and only drive navigation.
type NodePosition struct {
	StartLine      int                  `json:"start_line"`
	IDLine         int                  `json:"id_line"`
	PropertiesLine int                  `json:"properties_line"`
	ModelsLine     int                  `json:"models_line"`
	ModelEntries   []ModelEntryPosition `json:"model_entries,omitempty"`
}

// NewNodePosition returns a position with only the node lines set.
func NewNodePosition(startLine, idLine int) NodePosition {
	return NodePosition{
		StartLine:      startLine,
		IDLine:         idLine,
		PropertiesLine: NoLine,
		ModelsLine:     NoLine,
	}
}

// EntryByName returns the first entry position with the given name.
func (p NodePosition) EntryByName(name string) (ModelEntryPosition, bool) {
	for _, e := range p.ModelEntries {
		if e.Name == name {
			return e, true
		}
	}
	return ModelEntryPosition{}, false
}

// FocusLine returns the line to highlight for a model name: the entry's
// name line, else the models line, else the properties line, else the
// node start.
func (p NodePosition) FocusLine(name string) int {
	if e, ok := p.EntryByName(name); ok && e.NameLine > NoLine {
		return e.NameLine
	}
	if p.ModelsLine > NoLine {
		return p.ModelsLine
	}
	if p.PropertiesLine > NoLine {
		return p.PropertiesLine
	}
	return p.StartLine
}
