// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package config

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// Resolver supplies content for one placeholder scheme. Implementations
// live in the resolver package (file, env, memory, store, remote); any
// failure to supply content — including resolver.ErrNotFound — aborts the
// load with a [KindUnresolvedPlaceholder] error.
type Resolver interface {
	Resolve(ctx context.Context, key string) ([]byte, error)
}

// Resolvers registers a [Resolver] per placeholder scheme. The "cfg" scheme
// is intercepted by [Resolve] itself and re-reads the document tree; its map
// value is ignored and may be nil.
type Resolvers map[string]Resolver

// Placeholder schemes understood by the daemon. Documents may carry tokens
// with other schemes; they pass through untouched unless a resolver is
// registered for them.
const (
	SchemeFile  = "file"
	SchemeEnv   = "env"
	SchemeCfg   = "cfg"
	SchemeStore = "store"
)

// macroPattern matches %{scheme:argument}% placeholder tokens. The argument
// may itself be wrapped in braces (%{file:{CERT}}%); the wrapper is stripped
// before the resolver sees the key.
var macroPattern = regexp.MustCompile(`%\{([a-z]+):(.*?)\}%`)

// Resolve substitutes every placeholder token in the tree's string leaves
// whose scheme has a registered resolver. Leaves are visited in sorted key
// order, so resolution is deterministic. Substitution is textual and
// non-recursive: content returned by a resolver is inserted verbatim and
// not scanned for further tokens.
//
// Tokens of unregistered schemes stay in place, which is what lets the boot
// manager resolve %{env:...}% in an early pass and %{file:...}%/%{cfg:...}%
// after the document has been extended from the config store.
func Resolve(ctx context.Context, t *Tree, res Resolvers) error {
	if len(res) == 0 {
		return nil
	}

	resolved, err := resolveNode(ctx, t, "", t.root, res)
	if err != nil {
		return err
	}
	t.root = resolved.(map[string]any)
	return nil
}

func resolveNode(ctx context.Context, t *Tree, path string, node any, res Resolvers) (any, error) {
	switch n := node.(type) {
	case map[string]any:
		for _, key := range sortedKeys(n) {
			child, err := resolveNode(ctx, t, joinPath(path, key), n[key], res)
			if err != nil {
				return nil, err
			}
			n[key] = child
		}
		return n, nil
	case []any:
		for i, elem := range n {
			child, err := resolveNode(ctx, t, joinPath(path, strconv.Itoa(i)), elem, res)
			if err != nil {
				return nil, err
			}
			n[i] = child
		}
		return n, nil
	case string:
		return resolveString(ctx, t, path, n, res)
	default:
		return node, nil
	}
}

// resolveString substitutes all matching tokens inside one string leaf.
// A value may mix literal text and several tokens.
func resolveString(ctx context.Context, t *Tree, path, value string, res Resolvers) (string, error) {
	matches := macroPattern.FindAllStringSubmatchIndex(value, -1)
	if len(matches) == 0 {
		return value, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		scheme := value[m[2]:m[3]]
		arg := trimBraces(value[m[4]:m[5]])

		if _, registered := res[scheme]; !registered {
			continue // foreign scheme, keep the token verbatim
		}

		content, err := resolveToken(ctx, t, path, scheme, arg, res)
		if err != nil {
			return "", err
		}

		b.WriteString(value[last:m[0]])
		b.WriteString(content)
		last = m[1]
	}
	b.WriteString(value[last:])
	return b.String(), nil
}

func resolveToken(ctx context.Context, t *Tree, path, scheme, arg string, res Resolvers) (string, error) {
	if scheme == SchemeCfg {
		node, ok := t.Lookup(arg)
		if !ok {
			return "", newError(KindUnresolvedPlaceholder, path, "%%{cfg:%s}%% references an undefined key", arg)
		}
		if _, isTable := node.(map[string]any); isTable {
			return "", newError(KindUnresolvedPlaceholder, path, "%%{cfg:%s}%% references a table, not a value", arg)
		}
		if _, isArray := node.([]any); isArray {
			return "", newError(KindUnresolvedPlaceholder, path, "%%{cfg:%s}%% references an array, not a value", arg)
		}
		return renderScalar(node), nil
	}

	r := res[scheme]
	if r == nil {
		return "", newError(KindUnresolvedPlaceholder, path, "no resolver registered for scheme %q", scheme)
	}

	content, err := r.Resolve(ctx, arg)
	if err != nil {
		return "", wrapError(KindUnresolvedPlaceholder, path, err, "cannot resolve %%{%s:%s}%%: %s", scheme, arg, err)
	}
	return string(content), nil
}

// trimBraces strips one brace wrapper from a placeholder argument:
// "{CERT}" -> "CERT". Arguments without the wrapper pass through.
func trimBraces(arg string) string {
	if len(arg) >= 2 && strings.HasPrefix(arg, "{") && strings.HasSuffix(arg, "}") {
		return arg[1 : len(arg)-1]
	}
	return arg
}
