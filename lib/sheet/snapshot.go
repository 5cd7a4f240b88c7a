package sheet

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pthm/hxstyle/lib/encoding"
	"github.com/pthm/hxstyle/lib/props"
)

// ErrSnapshot is returned when a snapshot cannot be applied to a sheet.
var ErrSnapshot = errors.New("sheet: invalid snapshot")

const snapshotVersion = 1

type snapshot struct {
	Version int             `msgpack:"v"`
	Key     string          `msgpack:"k"`
	Classes []snapshotClass `msgpack:"c"`
}

// snapshotClass is a class, or a keyframes or global block when Kind is
// set, in registration order.
type snapshotClass struct {
	Class string    `msgpack:"c"`
	Kind  entryKind `msgpack:"g,omitempty"`
	Style []node    `msgpack:"s"`
}

type nodeKind uint8

const (
	nodeString nodeKind = iota
	nodeNumber
	nodeFallbacks
	nodeBlock
)

// node is the wire form of a Decl. Values are stored in typed fields so
// they survive msgpack without interface guessing.
type node struct {
	Property string   `msgpack:"p"`
	Kind     nodeKind `msgpack:"t"`
	Text     string   `msgpack:"s,omitempty"`
	Number   float64  `msgpack:"n,omitempty"`
	List     []string `msgpack:"l,omitempty"`
	Block    []node   `msgpack:"b,omitempty"`
}

// Snapshot encodes every registered style, keyframes and global block so
// another process can hydrate an identical sheet, typically a client
// picking up server-rendered classes.
func (s *Sheet) Snapshot(enc *encoding.Encoder, mode encoding.Mode) (string, error) {
	snap := snapshot{Version: snapshotVersion, Key: s.key}
	s.mu.RLock()
	for _, id := range s.order {
		if style, ok := s.registered[id]; ok {
			snap.Classes = append(snap.Classes, snapshotClass{Class: id, Style: toNodes(style)})
			continue
		}
		g := s.globals[id]
		snap.Classes = append(snap.Classes, snapshotClass{Class: id, Kind: g.kind, Style: toNodes(g.style)})
	}
	s.mu.RUnlock()
	return enc.Encode(snap, mode)
}

// Hydrate registers the entries of a snapshot and returns how many classes,
// keyframes and global blocks were added. Entries already present are
// skipped.
func (s *Sheet) Hydrate(enc *encoding.Encoder, mode encoding.Mode, data string) (int, error) {
	var snap snapshot
	if err := enc.Decode(data, mode, &snap); err != nil {
		return 0, err
	}
	if snap.Version != snapshotVersion {
		return 0, fmt.Errorf("%w: version %d", ErrSnapshot, snap.Version)
	}
	if snap.Key != s.key {
		return 0, fmt.Errorf("%w: key %q does not match sheet key %q", ErrSnapshot, snap.Key, s.key)
	}

	added := 0
	for _, c := range snap.Classes {
		if s.has(c.Class) {
			continue
		}
		var got string
		switch style := fromNodes(c.Style); c.Kind {
		case kindClass:
			got = s.Compile(style)
		case kindKeyframes:
			got = s.Keyframes(style)
		case kindGlobal:
			s.Global(style)
			got = globalID(s.tables, style)
		default:
			return added, fmt.Errorf("%w: entry %q has unknown kind %d", ErrSnapshot, c.Class, c.Kind)
		}
		if got != c.Class {
			return added, fmt.Errorf("%w: class %q hydrated as %q", ErrSnapshot, c.Class, got)
		}
		added++
	}
	s.log.Debug("Hydrated sheet", zap.Int("entries", added))
	return added, nil
}

func (s *Sheet) has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, class := s.registered[id]
	_, global := s.globals[id]
	return class || global
}

func toNodes(style Style) []node {
	out := make([]node, 0, len(style))
	for _, d := range style {
		n := node{Property: d.Property}
		if nested, ok := nestedStyle(d.Value); ok {
			n.Kind = nodeBlock
			n.Block = toNodes(nested)
			out = append(out, n)
			continue
		}
		v := d.Value
		if pv, ok := v.(props.Value); ok {
			v = pv.Any()
		}
		switch x := v.(type) {
		case string:
			n.Kind = nodeString
			n.Text = x
		case []string:
			n.Kind = nodeFallbacks
			n.List = x
		default:
			f, ok := toFloat(v)
			if !ok {
				// Skipped by the serialiser too, so hashes agree.
				continue
			}
			n.Kind = nodeNumber
			n.Number = f
		}
		out = append(out, n)
	}
	return out
}

func fromNodes(nodes []node) Style {
	out := make(Style, 0, len(nodes))
	for _, n := range nodes {
		var v any
		switch n.Kind {
		case nodeString:
			v = n.Text
		case nodeNumber:
			v = n.Number
		case nodeFallbacks:
			v = n.List
		case nodeBlock:
			v = fromNodes(n.Block)
		default:
			continue
		}
		out = append(out, Decl{Property: n.Property, Value: v})
	}
	return out
}
