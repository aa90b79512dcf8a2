// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Tree is the raw key-value document produced by [Parse]: nested tables as
// map[string]any, arrays as []any, scalars as string/int64/float64/bool.
//
// Keys are addressed by dotted paths ("server.listener.smtp.bind"). A path
// segment consisting only of digits addresses an array element, so after
// flattening, "server.listener.smtp.bind.0" round-trips: [SetDefault] grafts
// it back as a numerically keyed table, which the binder reads as an ordered
// list again. This is what lets config-store entries (always flat text)
// extend a parsed document.
type Tree struct {
	root map[string]any
}

func newTree(root map[string]any) *Tree {
	if root == nil {
		root = map[string]any{}
	}
	return &Tree{root: root}
}

// Entry is one flattened dotted-key/value pair. Values are rendered as
// plain text regardless of their original scalar type; the binder coerces
// text back when a typed field requires it.
type Entry struct {
	Key   string
	Value string
}

// Lookup returns the node at the dotted path. A digits-only segment indexes
// into an array node.
func (t *Tree) Lookup(path string) (any, bool) {
	node := any(t.root)
	for _, seg := range strings.Split(path, ".") {
		switch n := node.(type) {
		case map[string]any:
			child, ok := n[seg]
			if !ok {
				return nil, false
			}
			node = child
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(n) {
				return nil, false
			}
			node = n[idx]
		default:
			return nil, false
		}
	}
	return node, true
}

// SetDefault inserts a string leaf at the dotted path unless the path (or a
// prefix of it that is not a table) already exists. Intermediate tables are
// created as needed. Reports whether the value was inserted.
func (t *Tree) SetDefault(path, value string) bool {
	segs := strings.Split(path, ".")
	node := t.root
	for _, seg := range segs[:len(segs)-1] {
		child, ok := node[seg]
		if !ok {
			next := map[string]any{}
			node[seg] = next
			node = next
			continue
		}
		table, ok := child.(map[string]any)
		if !ok {
			// a scalar or array occupies the prefix; the local document wins
			return false
		}
		node = table
	}

	last := segs[len(segs)-1]
	if _, ok := node[last]; ok {
		return false
	}
	node[last] = value
	return true
}

// Flatten renders the whole tree as sorted dotted-key entries. Array
// elements become numeric segments, scalar values become text.
func (t *Tree) Flatten() []Entry {
	var entries []Entry
	flattenNode("", t.root, &entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

func flattenNode(path string, node any, out *[]Entry) {
	switch n := node.(type) {
	case map[string]any:
		for _, key := range sortedKeys(n) {
			flattenNode(joinPath(path, key), n[key], out)
		}
	case []any:
		for i, elem := range n {
			flattenNode(joinPath(path, strconv.Itoa(i)), elem, out)
		}
	default:
		*out = append(*out, Entry{Key: path, Value: renderScalar(node)})
	}
}

// renderScalar converts a decoded scalar to its flat text form.
func renderScalar(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case time.Time:
		return s.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinPath(parent, seg string) string {
	if parent == "" {
		return seg
	}
	return parent + "." + seg
}
