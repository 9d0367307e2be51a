// Package nodes provides the model node editing view for the TUI.
package nodes

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wfmodels/internal/core/domain"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driving"
)

// RowKind identifies what a list row shows.
type RowKind int

const (
	// RowNode is a node header.
	RowNode RowKind = iota
	// RowPath is one candidate model path of a node.
	RowPath
	// RowEntry is one editable model entry.
	RowEntry
)

// Row is one line of the node list.
type Row struct {
	Kind   RowKind
	NodeID domain.NodeID
	Index  int
	Path   string
	Entry  domain.EditableEntry
}

// editMode tracks what the inline input is editing.
type editMode int

const (
	editNone editMode = iota
	editEntry
	editPath
	editFileName
)

// fieldOrder is the tab order of entry fields.
var fieldOrder = []domain.EntryField{domain.FieldName, domain.FieldURL, domain.FieldDirectory}

// errNoExport is returned when saving without an export service.
var errNoExport = errors.New("export service not available")

// View lists model loader nodes with their paths and entries and edits
// them in place.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	editor driving.EditorService
	export driving.ExportService
	outDir string

	list *list.List
	rows []Row

	input   *input.FieldInput
	mode    editMode
	editing Row
	field   domain.EntryField

	notice string
	err    error

	width  int
	height int
	ready  bool
}

// NewView creates a new nodes view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	editor driving.EditorService,
	export driving.ExportService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		editor: editor,
		export: export,
		outDir: ".",
		list:   list.New(s, "No model loader nodes found"),
		input:  input.NewFieldInput(s, "Name", ""),
		width:  80,
		height: 24,
	}
}

// Init refreshes the rows from the editor.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	return nil
}

// SetOutputDir sets the directory saves are written to.
func (v *View) SetOutputDir(dir string) {
	if dir != "" {
		v.outDir = dir
	}
}

// Refresh rebuilds the rows from the editor state.
func (v *View) Refresh() {
	v.rows = v.rows[:0]
	states := map[domain.NodeID]domain.NodeState{}
	if v.editor != nil {
		for _, state := range v.editor.Nodes() {
			id, _ := state.ID()
			states[id] = state
			v.rows = append(v.rows, Row{Kind: RowNode, NodeID: id})
			for i, f := range state.Context.ModelFiles {
				v.rows = append(v.rows, Row{Kind: RowPath, NodeID: id, Index: i, Path: f.Raw})
			}
			for _, e := range state.Entries {
				v.rows = append(v.rows, Row{Kind: RowEntry, NodeID: id, Entry: e})
			}
		}
	}
	v.list.SetRows(v.renderRows(states))
}

// renderRows formats every row for the list.
func (v *View) renderRows(states map[domain.NodeID]domain.NodeState) []string {
	out := make([]string, len(v.rows))
	for i, r := range v.rows {
		state := states[r.NodeID]
		switch r.Kind {
		case RowNode:
			out[i] = v.renderNode(state)
		case RowPath:
			out[i] = v.renderPath(state, r)
		case RowEntry:
			out[i] = v.renderEntry(r.Entry)
		}
	}
	return out
}

func (v *View) renderNode(state domain.NodeState) string {
	id, _ := state.ID()
	stats := state.Stats()
	line := v.styles.Subtitle.Render(fmt.Sprintf("#%s %s", id, state.Type()))
	line += v.styles.Muted.Render(fmt.Sprintf("  %d/%d valid", stats.Valid, stats.Total))
	if state.EmptyProperties {
		line += v.styles.Warning.Render("  (no properties)")
	}
	return line
}

func (v *View) renderPath(state domain.NodeState, r Row) string {
	line := v.styles.Muted.Render("  path ") + v.styles.Normal.Render(r.Path)
	if r.Index == 0 {
		return line + "  " + v.styles.ForPath(state.PathStatus).Render(state.PathStatus.Description())
	}
	if r.Index < len(state.Context.ModelFiles) && !state.Context.ModelFiles[r.Index].Valid {
		return line + "  " + v.styles.Error.Render(domain.PathInvalidExtension.Description())
	}
	return line
}

func (v *View) renderEntry(e domain.EditableEntry) string {
	name := e.Model.Name
	if name == "" {
		name = "(no name)"
	}
	url := e.Model.URL
	if url == "" {
		url = "(no url)"
	}

	line := "    " + v.styles.ForField(e.Name).Render(name) +
		"  " + v.styles.ForField(e.URL).Render(url) +
		v.styles.Muted.Render("  → "+e.Model.Directory)

	var reasons []string
	if !e.Name.Valid() && e.Name.Reason != "" {
		reasons = append(reasons, e.Name.Reason)
	}
	if !e.URL.Valid() && e.URL.Reason != "" {
		reasons = append(reasons, e.URL.Reason)
	}
	if len(reasons) > 0 {
		line += "  " + v.styles.ForClass(e.Class()).Render(strings.Join(reasons, "; "))
	}
	return line
}

// Update handles messages for the nodes view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DocumentEdited:
		v.err = msg.Err
		v.notice = msg.Notice
		v.Refresh()
		if msg.Focus != "" {
			v.selectEntry(msg.Focus)
		}
		return v, nil

	case messages.DocumentLoaded:
		v.err = msg.Err
		v.mode = editNone
		v.Refresh()
		v.list.SetSelected(0)
		return v, nil

	case tea.KeyMsg:
		if v.mode != editNone {
			return v.handleEditKeys(msg)
		}
		return v.handleKeys(msg)
	}

	return v, nil
}

//nolint:gocyclo // one case per binding
func (v *View) handleKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	row, hasRow := v.SelectedRow()

	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(key, v.keymap.Select):
		if hasRow {
			return v, v.startEdit(row)
		}

	case keymap.Matches(key, v.keymap.Add):
		if hasRow {
			return v, v.addEntry(row.NodeID)
		}

	case keymap.Matches(key, v.keymap.Delete):
		if hasRow && row.Kind == RowEntry {
			return v, v.removeEntry(row.Entry.ID)
		}

	case keymap.Matches(key, v.keymap.Commit):
		return v, v.commit()

	case keymap.Matches(key, v.keymap.ToggleAuto):
		return v, v.toggleAutoUpdate()

	case keymap.Matches(key, v.keymap.NextMissing):
		v.jumpTo(domain.ClassMissingURL, "No entries are missing a URL")
		return v, nil

	case keymap.Matches(key, v.keymap.NextError):
		v.jumpTo(domain.ClassErrorURL, "No entries have URL errors")
		return v, nil

	case keymap.Matches(key, v.keymap.Source):
		if hasRow {
			name := ""
			if row.Kind == RowEntry {
				name = row.Entry.Model.Name
			}
			return v, func() tea.Msg {
				return messages.SourceRequested{NodeID: row.NodeID, Name: name}
			}
		}

	case keymap.Matches(key, v.keymap.Save):
		return v, v.save()

	case keymap.Matches(key, v.keymap.Copy):
		return v, v.copyText()

	case keymap.Matches(key, v.keymap.Rename):
		if v.export != nil {
			v.mode = editFileName
			v.input.SetLabel("File name")
			v.input.SetValue(strings.TrimSuffix(v.export.FileName(), ".json"))
			return v, v.input.Focus()
		}

	default:
		v.list, _ = v.list.Update(msg)
	}

	return v, nil
}

// startEdit opens the inline input for a row.
func (v *View) startEdit(row Row) tea.Cmd {
	switch row.Kind {
	case RowEntry:
		v.mode = editEntry
		v.editing = row
		v.setField(domain.FieldName)
	case RowPath:
		v.mode = editPath
		v.editing = row
		v.input.SetLabel(fmt.Sprintf("Path %d", row.Index+1))
		v.input.SetValue(row.Path)
	default:
		return nil
	}
	return v.input.Focus()
}

// setField points the entry editor at a field.
func (v *View) setField(field domain.EntryField) {
	v.field = field
	v.input.SetLabel(fieldLabel(field))
	v.input.SetValue(fieldValue(v.editing.Entry.Model, field))
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Back):
		v.stopEdit()
		return v, nil

	case keymap.Matches(key, v.keymap.Select):
		cmd := v.applyEdit()
		v.stopEdit()
		return v, cmd

	case keymap.Matches(key, v.keymap.NextField) && v.mode == editEntry:
		cmd := v.applyEdit()
		v.setField(nextField(v.field))
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// applyEdit returns the command writing the input value back.
func (v *View) applyEdit() tea.Cmd {
	value := v.input.Value()

	switch v.mode {
	case editEntry:
		entryID, field := v.editing.Entry.ID, v.field
		v.editing.Entry.Model = withField(v.editing.Entry.Model, field, value)
		return func() tea.Msg {
			_, err := v.editor.UpdateEntry(entryID, field, value)
			return messages.DocumentEdited{Focus: entryID, Err: err}
		}

	case editPath:
		nodeID, index := v.editing.NodeID, v.editing.Index
		return func() tea.Msg {
			err := v.editor.SetModelPath(nodeID, index, value)
			return messages.DocumentEdited{Err: err}
		}

	case editFileName:
		return func() tea.Msg {
			v.export.SetBaseName(value)
			return messages.DocumentEdited{Notice: "Export file name: " + v.export.FileName()}
		}

	case editNone:
	}
	return nil
}

func (v *View) stopEdit() {
	v.mode = editNone
	v.input.Blur()
	v.input.Reset()
}

func (v *View) addEntry(id domain.NodeID) tea.Cmd {
	return func() tea.Msg {
		entry, err := v.editor.AddEntry(id)
		return messages.DocumentEdited{Focus: entry.ID, Err: err}
	}
}

func (v *View) removeEntry(id domain.EntryID) tea.Cmd {
	return func() tea.Msg {
		return messages.DocumentEdited{Err: v.editor.RemoveEntry(id)}
	}
}

func (v *View) commit() tea.Cmd {
	return func() tea.Msg {
		if _, err := v.editor.Commit(); err != nil {
			return messages.DocumentEdited{Err: err}
		}
		return messages.DocumentEdited{Notice: "JSON updated"}
	}
}

func (v *View) toggleAutoUpdate() tea.Cmd {
	return func() tea.Msg {
		enabled := !v.editor.AutoUpdate()
		v.editor.SetAutoUpdate(enabled)
		if enabled {
			return messages.DocumentEdited{Notice: "Auto update on"}
		}
		return messages.DocumentEdited{Notice: "Auto update off"}
	}
}

func (v *View) save() tea.Cmd {
	dir := v.outDir
	return func() tea.Msg {
		if v.export == nil {
			return messages.DocumentSaved{Err: errNoExport}
		}
		path, err := v.export.Save(dir)
		return messages.DocumentSaved{Path: path, Err: err}
	}
}

func (v *View) copyText() tea.Cmd {
	return func() tea.Msg {
		if v.export == nil {
			return messages.DocumentCopied{Err: errNoExport}
		}
		return messages.DocumentCopied{Err: v.export.Copy()}
	}
}

// jumpTo selects the first entry of a class.
func (v *View) jumpTo(class domain.EntryClass, none string) {
	if v.editor == nil {
		return
	}
	if _, entryID, ok := v.editor.FirstEntry(class); ok {
		v.selectEntry(entryID)
		v.notice = ""
		return
	}
	v.notice = none
}

// selectEntry moves the cursor to an entry row.
func (v *View) selectEntry(id domain.EntryID) {
	for i, r := range v.rows {
		if r.Kind == RowEntry && r.Entry.ID == id {
			v.list.SetSelected(i)
			return
		}
	}
}

// View renders the nodes view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Model Nodes"))
	if v.editor != nil && !v.editor.AutoUpdate() {
		b.WriteString(v.styles.Warning.Render("  auto update off, press u to write changes"))
	}
	b.WriteString("\n\n")

	switch {
	case v.editor == nil || !v.editor.Loaded():
		b.WriteString(v.styles.Muted.Render("No workflow loaded. Open a file from the menu."))
	default:
		b.WriteString(v.list.View())
	}
	b.WriteString("\n")

	if v.mode != editNone {
		b.WriteString("\n")
		b.WriteString(v.input.View())
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	} else if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(v.notice))
		b.WriteString("\n")
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, height-10)
	v.input.SetWidth(width)
}

// Rows returns the current rows.
func (v *View) Rows() []Row {
	return v.rows
}

// SelectedRow returns the row under the cursor.
func (v *View) SelectedRow() (Row, bool) {
	i := v.list.Selected()
	if i < 0 || i >= len(v.rows) {
		return Row{}, false
	}
	return v.rows[i], true
}

// Select moves the cursor to a row index.
func (v *View) Select(index int) {
	v.list.SetSelected(index)
}

// Editing reports whether an inline input is open.
func (v *View) Editing() bool {
	return v.mode != editNone
}

// Field returns the entry field being edited.
func (v *View) Field() domain.EntryField {
	return v.field
}

// InputValue returns the inline input value.
func (v *View) InputValue() string {
	return v.input.Value()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Notice returns the last notice.
func (v *View) Notice() string {
	return v.notice
}

func fieldLabel(field domain.EntryField) string {
	switch field {
	case domain.FieldURL:
		return "URL"
	case domain.FieldDirectory:
		return "Directory"
	default:
		return "Name"
	}
}

func fieldValue(m domain.ModelEntry, field domain.EntryField) string {
	switch field {
	case domain.FieldURL:
		return m.URL
	case domain.FieldDirectory:
		return m.Directory
	default:
		return m.Name
	}
}

func withField(m domain.ModelEntry, field domain.EntryField, value string) domain.ModelEntry {
	switch field {
	case domain.FieldURL:
		m.URL = value
	case domain.FieldDirectory:
		m.Directory = value
	default:
		m.Name = value
	}
	return m
}

func nextField(field domain.EntryField) domain.EntryField {
	for i, f := range fieldOrder {
		if f == field {
			return fieldOrder[(i+1)%len(fieldOrder)]
		}
	}
	return domain.FieldName
}
