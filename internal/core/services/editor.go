package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driven"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driving"
	"github.com/custodia-labs/wfmodels/internal/logger"
)

// Ensure EditorService implements the interface.
var _ driving.EditorService = (*EditorService)(nil)

// nodeSession is the mutable state of one model loader node.
type nodeSession struct {
	ctx     domain.NodeEditContext
	entries []domain.EditableEntry

	// edited maps entries changed in this session to the name they had
	// before the first change ("" for added entries). removed holds the
	// keys of names removed in this session. Both survive Reparse.
	edited  map[domain.EntryID]string
	removed map[string]bool
}

func (n *nodeSession) markEdited(e domain.EditableEntry) {
	if n.edited == nil {
		n.edited = make(map[domain.EntryID]string)
	}
	if _, ok := n.edited[e.ID]; !ok {
		n.edited[e.ID] = e.Model.Name
	}
}

func (n *nodeSession) markRemoved(e domain.EditableEntry) {
	if n.removed == nil {
		n.removed = make(map[string]bool)
	}
	for _, name := range []string{e.Model.Name, n.edited[e.ID]} {
		if key := entryKey(name); key != "" {
			n.removed[key] = true
		}
	}
	delete(n.edited, e.ID)
}

// entryKey is the name entries are matched by across a reparse.
func entryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (n *nodeSession) id() (domain.NodeID, bool) {
	return n.ctx.Node.ID()
}

// EditorService is the in-memory editing session over one workflow.
// Every edit goes through it; presentation layers only render snapshots.
type EditorService struct {
	mu sync.Mutex

	codec driven.DocumentCodec
	rules domain.DirectoryRules

	doc        *domain.Document
	text       string
	nodes      []*nodeSession
	positions  map[domain.NodeID]domain.NodePosition
	autoUpdate bool
}

// NewEditorService creates an editor with no document loaded.
func NewEditorService(codec driven.DocumentCodec, rules domain.DirectoryRules, autoUpdate bool) *EditorService {
	return &EditorService{
		codec:      codec,
		rules:      rules,
		positions:  map[domain.NodeID]domain.NodePosition{},
		autoUpdate: autoUpdate,
	}
}

// Load parses text and replaces the session state.
// On failure the previous state is kept.
func (s *EditorService) Load(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(text)
}

// Reparse rebuilds the session from the current text, picking up rule
// table changes. Entries edited, added or removed since the last load are
// carried over by node id and name, committed or not.
func (s *EditorService) Reparse() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return domain.ErrNoDocument
	}

	previous := make(map[domain.NodeID]*nodeSession, len(s.nodes))
	for _, n := range s.nodes {
		if id, ok := n.id(); ok {
			previous[id] = n
		}
	}
	if err := s.loadLocked(s.text); err != nil {
		return err
	}
	for _, n := range s.nodes {
		if id, ok := n.id(); ok && previous[id] != nil {
			carryEdits(previous[id], n)
		}
	}
	return nil
}

// carryEdits moves the session edits of old onto the freshly reconciled n.
// An edited entry replaces the fresh entry with its current or original
// name; the rest are appended. Fresh entries with removed names are dropped.
func carryEdits(old, n *nodeSession) {
	var carried []domain.EditableEntry
	for _, e := range old.entries {
		if _, ok := old.edited[e.ID]; ok {
			carried = append(carried, e)
		}
	}

	placed := make(map[domain.EntryID]bool, len(carried))
	entries := make([]domain.EditableEntry, 0, len(n.entries)+len(carried))
	for _, fresh := range n.entries {
		key := entryKey(fresh.Model.Name)
		replaced := false
		for _, e := range carried {
			if placed[e.ID] || key == "" {
				continue
			}
			if key == entryKey(e.Model.Name) || key == entryKey(old.edited[e.ID]) {
				e.ReferenceFile = fresh.ReferenceFile
				entries = append(entries, e)
				placed[e.ID] = true
				replaced = true
				break
			}
		}
		if !replaced && !old.removed[key] {
			entries = append(entries, fresh)
		}
	}
	for _, e := range carried {
		if !placed[e.ID] {
			entries = append(entries, e)
		}
	}
	for i := range entries {
		ValidateEntry(&entries[i])
	}

	n.entries = entries
	n.edited = old.edited
	n.removed = old.removed
}

func (s *EditorService) loadLocked(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("%w: please paste or upload JSON data first", domain.ErrParse)
	}
	if s.codec == nil {
		return fmt.Errorf("%w: no codec configured", domain.ErrParse)
	}

	doc, err := s.codec.Decode(trimmed)
	if err != nil {
		return err
	}

	logger.Section("Load workflow")
	contexts := Extract(doc.Nodes(), s.rules)
	nodes := make([]*nodeSession, len(contexts))
	entryCount := 0
	for i, ctx := range contexts {
		nodes[i] = &nodeSession{ctx: ctx, entries: Reconcile(ctx, s.rules)}
		entryCount += len(nodes[i].entries)
	}
	logger.Debug("found %d nodes, %d model loader nodes, %d entries", len(doc.Nodes()), len(nodes), entryCount)

	s.doc = doc
	s.text = trimmed
	s.nodes = nodes
	s.positions = IndexPositions(trimmed)
	return nil
}

// Loaded reports whether a document is loaded.
func (s *EditorService) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc != nil
}

// Text returns the current document text.
func (s *EditorService) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Nodes returns a snapshot of every model loader node in document order.
func (s *EditorService) Nodes() []domain.NodeState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.NodeState, len(s.nodes))
	for i, n := range s.nodes {
		out[i] = s.snapshot(n)
	}
	return out
}

// Node returns a snapshot of one node.
func (s *EditorService) Node(id domain.NodeID) (domain.NodeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.findNode(id)
	if err != nil {
		return domain.NodeState{}, err
	}
	return s.snapshot(n), nil
}

// AddEntry appends a blank entry to a node.
func (s *EditorService) AddEntry(id domain.NodeID) (domain.EditableEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.findNode(id)
	if err != nil {
		return domain.EditableEntry{}, err
	}
	entry := BlankEntry(n.ctx.Node.Type(), s.rules)
	n.entries = append(n.entries, entry)
	n.markEdited(entry)
	return entry, s.afterEdit()
}

// RemoveEntry removes an entry.
func (s *EditorService) RemoveEntry(entryID domain.EntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, idx, err := s.findEntry(entryID)
	if err != nil {
		return err
	}
	n.markRemoved(n.entries[idx])
	n.entries = append(n.entries[:idx], n.entries[idx+1:]...)
	return s.afterEdit()
}

// UpdateEntry sets one field of an entry and re-validates it.
func (s *EditorService) UpdateEntry(
	entryID domain.EntryID,
	field domain.EntryField,
	value string,
) (domain.EditableEntry, error) {
	if !field.IsValid() {
		return domain.EditableEntry{}, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidInput, field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, idx, err := s.findEntry(entryID)
	if err != nil {
		return domain.EditableEntry{}, err
	}

	e := &n.entries[idx]
	n.markEdited(*e)
	switch field {
	case domain.FieldName:
		e.Model.Name = value
		// Added entries have no reference file until they are named.
		if e.ReferenceFile == "" {
			e.ReferenceFile = ClosestFileName(strings.TrimSpace(value), n.ctx.Files())
		}
	case domain.FieldURL:
		e.Model.URL = value
	case domain.FieldDirectory:
		e.Model.Directory = value
	}
	ValidateEntry(e)
	return *e, s.afterEdit()
}

// SetModelPath rewrites a candidate model path in widgets_values.
// Entries that referenced the old file now reference the new one, and the
// first entry follows a rename of the primary file when it still carried
// the old name.
func (s *EditorService) SetModelPath(id domain.NodeID, index int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.findNode(id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(n.ctx.ModelFiles) {
		return fmt.Errorf("%w: model path index %d out of range", domain.ErrInvalidInput, index)
	}

	old := n.ctx.ModelFiles[index]
	if !n.ctx.Node.SetWidgetValue(old.Raw, value) {
		return nil
	}

	nodeType := n.ctx.Node.Type()
	n.ctx.ModelFiles[index] = NewFileReference(value, nodeType, s.rules)
	newBase := domain.BaseName(value)

	for i := range n.entries {
		if n.entries[i].ReferenceFile == old.Base {
			n.entries[i].ReferenceFile = newBase
		}
	}
	if index == 0 && len(n.entries) > 0 && n.entries[0].Model.Name == old.Base {
		n.markEdited(n.entries[0])
		n.entries[0].Model.Name = newBase
	}
	for i := range n.entries {
		ValidateEntry(&n.entries[i])
	}

	logger.Debug("node %s: model path %q -> %q", id, old.Raw, value)
	if s.autoUpdate {
		_, err = s.commitLocked()
		return err
	}
	return s.encodeLocked()
}

// Commit writes the complete entries back to the document and
// re-serialises it.
func (s *EditorService) Commit() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked()
}

func (s *EditorService) commitLocked() (string, error) {
	if s.doc == nil {
		return "", domain.ErrNoDocument
	}

	for _, n := range s.nodes {
		var models []domain.ModelEntry
		for _, e := range n.entries {
			if e.Model.Complete() {
				models = append(models, e.Model.Trimmed())
			}
		}
		n.ctx.Node.SetModels(models)
		n.ctx.ExistingModels = n.ctx.Node.ExistingModels()
	}

	if err := s.encodeLocked(); err != nil {
		return s.text, err
	}
	return s.text, nil
}

// encodeLocked re-serialises the document. The previous text survives a
// serialiser failure.
func (s *EditorService) encodeLocked() error {
	text, err := s.codec.Encode(s.doc)
	if err != nil {
		logger.Warn("serialise failed, keeping previous text: %v", err)
		return err
	}
	s.text = text
	s.positions = IndexPositions(text)
	return nil
}

// BulkMatch fills entry URLs from the links found in text and commits
// when anything matched.
func (s *EditorService) BulkMatch(text string) (domain.BulkMatchResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.BulkMatchResult{}, fmt.Errorf("%w: please enter links first", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return domain.BulkMatchResult{}, domain.ErrNoDocument
	}

	var entries []*domain.EditableEntry
	owners := make(map[*domain.EditableEntry]*nodeSession)
	before := make(map[*domain.EditableEntry]domain.EditableEntry)
	for _, n := range s.nodes {
		for i := range n.entries {
			e := &n.entries[i]
			entries = append(entries, e)
			owners[e] = n
			before[e] = *e
		}
	}

	result := BulkMatch(text, entries)
	for _, e := range entries {
		if e.Model != before[e].Model {
			owners[e].markEdited(before[e])
		}
	}
	logger.Debug("bulk match: %s", result.Message())
	if result.URLsFound == 0 {
		return result, domain.ErrNoURLs
	}
	if result.Matched > 0 {
		if _, err := s.commitLocked(); err != nil {
			return result, err
		}
	}
	return result, nil
}

// Stats counts all entries by class.
func (s *EditorService) Stats() domain.EntryStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats domain.EntryStats
	for _, n := range s.nodes {
		for _, e := range n.entries {
			stats.Add(e.Class())
		}
	}
	return stats
}

// Audit runs the document-wide validation pass.
func (s *EditorService) Audit() domain.ValidationStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return domain.ValidationStatus{}
	}
	return Audit(s.contexts(), s.rules)
}

// InvalidModelFiles lists candidate files failing the extension rule.
func (s *EditorService) InvalidModelFiles() []domain.InvalidModelFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return InvalidModelFiles(s.contexts(), s.rules)
}

// Positions returns the advisory text positions of the current text.
func (s *EditorService) Positions() map[domain.NodeID]domain.NodePosition {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[domain.NodeID]domain.NodePosition, len(s.positions))
	for k, v := range s.positions {
		out[k] = v
	}
	return out
}

// FirstEntry finds the first entry of the given class.
func (s *EditorService) FirstEntry(class domain.EntryClass) (domain.NodeID, domain.EntryID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.nodes {
		for _, e := range n.entries {
			if e.Class() == class {
				id, _ := n.id()
				return id, e.ID, true
			}
		}
	}
	return 0, "", false
}

// SetAutoUpdate toggles immediate write-back after each edit.
func (s *EditorService) SetAutoUpdate(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoUpdate = enabled
}

// AutoUpdate reports whether edits are written back immediately.
func (s *EditorService) AutoUpdate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoUpdate
}

func (s *EditorService) afterEdit() error {
	if !s.autoUpdate {
		return nil
	}
	_, err := s.commitLocked()
	return err
}

func (s *EditorService) contexts() []domain.NodeEditContext {
	out := make([]domain.NodeEditContext, len(s.nodes))
	for i, n := range s.nodes {
		out[i] = n.ctx
	}
	return out
}

func (s *EditorService) findNode(id domain.NodeID) (*nodeSession, error) {
	if s.doc == nil {
		return nil, domain.ErrNoDocument
	}
	for _, n := range s.nodes {
		if nid, ok := n.id(); ok && nid == id {
			return n, nil
		}
	}
	return nil, fmt.Errorf("node %s: %w", id, domain.ErrNotFound)
}

func (s *EditorService) findEntry(entryID domain.EntryID) (*nodeSession, int, error) {
	if s.doc == nil {
		return nil, 0, domain.ErrNoDocument
	}
	for _, n := range s.nodes {
		for i, e := range n.entries {
			if e.ID == entryID {
				return n, i, nil
			}
		}
	}
	return nil, 0, fmt.Errorf("entry %s: %w", entryID, domain.ErrNotFound)
}

func (s *EditorService) snapshot(n *nodeSession) domain.NodeState {
	ctx := n.ctx
	ctx.ModelFiles = append([]domain.ModelFileReference(nil), n.ctx.ModelFiles...)
	ctx.ExistingModels = append([]domain.ModelEntry(nil), n.ctx.ExistingModels...)

	return domain.NodeState{
		Context:         ctx,
		Entries:         append([]domain.EditableEntry(nil), n.entries...),
		PathStatus:      PathStatusOf(ctx.PrimaryFile().Raw, ctx.Node.Type(), s.rules),
		EmptyProperties: ctx.Node.HasEmptyProperties(),
	}
}
