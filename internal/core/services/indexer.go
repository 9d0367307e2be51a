package services

import (
	"math"
	"strconv"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

// frameRole tells the indexer what a container is within the workflow.
type frameRole int

const (
	roleOther frameRole = iota
	roleRoot
	roleNodes
	roleNode
	roleProperties
	roleModels
	roleModel
)

type frame struct {
	kind        byte
	role        frameRole
	key         string
	expectValue bool
}

type nodeScan struct {
	pos   domain.NodePosition
	id    domain.NodeID
	hasID bool
}

// positionIndexer walks JSON text once, tracking container depth, and
// records where nodes and their model entries start. It never fails:
// malformed input simply yields fewer positions.
type positionIndexer struct {
	text  string
	line  int
	stack []frame

	node      *nodeScan
	entry     *domain.ModelEntryPosition
	positions map[domain.NodeID]domain.NodePosition
}

// IndexPositions maps node IDs to the 0-based lines of their node object,
// id, properties, models array and model entries. The scan is tolerant of
// any key order and of braces inside strings. Positions are advisory.
func IndexPositions(text string) map[domain.NodeID]domain.NodePosition {
	ix := &positionIndexer{text: text, positions: make(map[domain.NodeID]domain.NodePosition)}
	ix.run()
	return ix.positions
}

func (ix *positionIndexer) run() {
	for i := 0; i < len(ix.text); i++ {
		c := ix.text[i]
		switch c {
		case '\n':
			ix.line++
		case '"':
			start := i
			i = ix.skipString(i)
			ix.value(ix.text[start:i+1], true)
		case '{', '[':
			ix.open(c)
		case '}', ']':
			ix.close()
		case ':':
			if f := ix.top(); f != nil && f.kind == '{' {
				f.expectValue = true
			}
		case ',', ' ', '\t', '\r':
		default:
			start := i
			for i+1 < len(ix.text) && !isDelimiter(ix.text[i+1]) {
				i++
			}
			ix.value(ix.text[start:i+1], false)
		}
	}
}

// skipString returns the index of the closing quote of the string starting
// at i, counting newlines it crosses.
func (ix *positionIndexer) skipString(i int) int {
	for j := i + 1; j < len(ix.text); j++ {
		switch ix.text[j] {
		case '\\':
			j++
		case '\n':
			ix.line++
		case '"':
			return j
		}
	}
	return len(ix.text) - 1
}

func (ix *positionIndexer) top() *frame {
	if len(ix.stack) == 0 {
		return nil
	}
	return &ix.stack[len(ix.stack)-1]
}

// value handles a string or scalar token.
func (ix *positionIndexer) value(token string, quoted bool) {
	f := ix.top()
	if f == nil {
		return
	}

	if f.kind == '{' && !f.expectValue {
		if quoted {
			f.key = unquote(token)
		}
		return
	}
	f.expectValue = false

	switch {
	case f.role == roleNode && f.key == "id" && !quoted && ix.node != nil:
		if id, ok := parseNodeID(token); ok {
			ix.node.id = id
			ix.node.hasID = true
			ix.node.pos.IDLine = ix.line
		}
	case f.role == roleModel && f.key == "name" && quoted && ix.entry != nil:
		ix.entry.Name = unquote(token)
		ix.entry.NameLine = ix.line
	case f.role == roleModel && f.key == "url" && quoted && ix.entry != nil:
		ix.entry.URLLine = ix.line
	}
}

func (ix *positionIndexer) open(kind byte) {
	role := roleOther
	parent := ix.top()

	switch {
	case parent == nil:
		if kind == '{' {
			role = roleRoot
		}
	case parent.role == roleRoot && parent.key == "nodes" && kind == '[':
		role = roleNodes
	case parent.role == roleNodes && kind == '{':
		role = roleNode
		ix.node = &nodeScan{pos: domain.NewNodePosition(ix.line, domain.NoLine)}
	case parent.role == roleNode && parent.key == "properties" && kind == '{' && ix.node != nil:
		role = roleProperties
		ix.node.pos.PropertiesLine = ix.line
	case parent.role == roleProperties && parent.key == "models" && kind == '[' && ix.node != nil:
		role = roleModels
		ix.node.pos.ModelsLine = ix.line
	case parent.role == roleModels && kind == '{':
		role = roleModel
		ix.entry = &domain.ModelEntryPosition{NameLine: domain.NoLine, URLLine: domain.NoLine}
	}

	if parent != nil {
		parent.expectValue = false
	}
	ix.stack = append(ix.stack, frame{kind: kind, role: role})
}

func (ix *positionIndexer) close() {
	f := ix.top()
	if f == nil {
		return
	}
	ix.stack = ix.stack[:len(ix.stack)-1]

	switch f.role {
	case roleModel:
		if ix.entry != nil && ix.entry.NameLine != domain.NoLine && ix.node != nil {
			ix.node.pos.ModelEntries = append(ix.node.pos.ModelEntries, *ix.entry)
		}
		ix.entry = nil
	case roleNode:
		if ix.node != nil && ix.node.hasID {
			ix.positions[ix.node.id] = ix.node.pos
		}
		ix.node = nil
	}
}

func isDelimiter(c byte) bool {
	switch c {
	case ',', ':', '{', '}', '[', ']', '"', ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func unquote(token string) string {
	if s, err := strconv.Unquote(token); err == nil {
		return s
	}
	if len(token) >= 2 {
		return token[1 : len(token)-1]
	}
	return token
}

func parseNodeID(token string) (domain.NodeID, bool) {
	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return domain.NodeID(n), true
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return domain.NodeID(f), true
}
