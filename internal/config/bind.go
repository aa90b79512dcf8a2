// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package config

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
)

// Bind maps the raw tree into a typed [ServerConfig].
//
// Shape violations return [KindTypeMismatch], absent required fields return
// [KindMissingField], and listener or certificate names colliding after
// normalization (trim + lowercase) return [KindDuplicateKey]. Keys the
// schema does not know are rejected with [KindValidation] instead of being
// ignored; the reserved `management` table is the one exception, it belongs
// to the daemon plane and is read before binding.
//
// Per-listener tls/socket tables are merged over the global [server.tls] and
// [server.socket] blocks field by field: a field set on the listener wins,
// an absent field falls back to the global value. SNI maps merge subject by
// subject with listener entries winning.
//
// Values grafted from the config store are flat text; scalar accessors
// therefore coerce numeric and boolean strings where a typed field requires
// it, exactly as if the value had been written in the document.
func Bind(tree *Tree) (*ServerConfig, error) {
	b := newBinder()
	cfg := &ServerConfig{
		Listeners:    map[string]ListenerConfig{},
		Certificates: map[string]CertificateConfig{},
	}

	server, ok, bindErr := b.table(tree.root, "", "server")
	if bindErr != nil {
		return nil, bindErr
	}
	if !ok {
		return nil, newError(KindMissingField, "server.hostname", "required field is absent")
	}

	hostname, bindErr := b.requiredString(server, "server", "hostname")
	if bindErr != nil {
		return nil, bindErr
	}
	cfg.Hostname = hostname

	greeting, bindErr := b.optionalString(server, "server", "greeting")
	if bindErr != nil {
		return nil, bindErr
	}
	if greeting != nil {
		cfg.Greeting = *greeting
	}

	if cfg.TLS, bindErr = b.tlsBlock(server, "server"); bindErr != nil {
		return nil, bindErr
	}
	if cfg.Socket, bindErr = b.socketBlock(server, "server"); bindErr != nil {
		return nil, bindErr
	}

	if bindErr = b.bindListeners(server, cfg); bindErr != nil {
		return nil, bindErr
	}
	if bindErr = b.bindCertificates(tree.root, cfg); bindErr != nil {
		return nil, bindErr
	}

	if bindErr = b.sweepUnknown(tree.root); bindErr != nil {
		return nil, bindErr
	}

	return cfg, nil
}

// normalizeName canonicalizes listener and certificate names so that quoted
// key variants ("SMTP", " smtp ") address the same entry.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// binder tracks which leaf paths the schema consumed so Bind can reject
// everything left over.
type binder struct {
	used map[string]bool
}

func newBinder() *binder {
	return &binder{used: map[string]bool{}}
}

func (b *binder) mark(path string) {
	b.used[path] = true
}

// ── listener binding ─────────────────────────────────────────────────────

func (b *binder) bindListeners(server map[string]any, cfg *ServerConfig) *Error {
	const path = "server.listener"

	listeners, ok, err := b.table(server, "server", "listener")
	if err != nil {
		return err
	}
	if !ok || len(listeners) == 0 {
		return newError(KindMissingField, path, "at least one listener is required")
	}

	for _, rawName := range sortedKeys(listeners) {
		lpath := joinPath(path, rawName)

		name := normalizeName(rawName)
		if name == "" {
			return newError(KindValidation, lpath, "listener name is empty")
		}
		if _, exists := cfg.Listeners[name]; exists {
			return newError(KindDuplicateKey, lpath, "listener %q is defined more than once", name)
		}

		ltable, isTable := listeners[rawName].(map[string]any)
		if !isTable {
			return newError(KindTypeMismatch, lpath, "expected table, found %s", typeName(listeners[rawName]))
		}

		listener, err := b.bindListener(ltable, lpath, name, cfg)
		if err != nil {
			return err
		}
		cfg.Listeners[name] = listener
	}

	return nil
}

func (b *binder) bindListener(ltable map[string]any, lpath, name string, cfg *ServerConfig) (ListenerConfig, *Error) {
	lc := ListenerConfig{Name: name}

	bind, ok, err := b.stringList(ltable, lpath, "bind")
	if err != nil {
		return lc, err
	}
	if !ok || len(bind) == 0 {
		return lc, newError(KindMissingField, joinPath(lpath, "bind"), "required field is absent")
	}
	lc.Bind = bind

	protocol, err := b.requiredString(ltable, lpath, "protocol")
	if err != nil {
		return lc, err
	}
	lc.Protocol = normalizeName(protocol)

	if lc.Hostname, err = b.optionalString(ltable, lpath, "hostname"); err != nil {
		return lc, err
	}
	if lc.Greeting, err = b.optionalString(ltable, lpath, "greeting"); err != nil {
		return lc, err
	}
	if lc.MaxConnections, err = b.optionalInt(ltable, lpath, "max-connections"); err != nil {
		return lc, err
	}
	if lc.Backlog, err = b.optionalInt(ltable, lpath, "backlog"); err != nil {
		return lc, err
	}

	if lc.TLS, err = b.tlsBlock(ltable, lpath); err != nil {
		return lc, err
	}
	if lc.Socket, err = b.socketBlock(ltable, lpath); err != nil {
		return lc, err
	}

	// Field-level override with fallback to the global blocks. Pointers are
	// compared by nilness, so an explicit false or zero on the listener is
	// never clobbered by an inherited value.
	if mergeErr := mergo.Merge(&lc.TLS, cfg.TLS, mergo.WithoutDereference); mergeErr != nil {
		return lc, wrapError(KindValidation, joinPath(lpath, "tls"), mergeErr, "cannot merge global tls block")
	}
	if mergeErr := mergo.Merge(&lc.Socket, cfg.Socket, mergo.WithoutDereference); mergeErr != nil {
		return lc, wrapError(KindValidation, joinPath(lpath, "socket"), mergeErr, "cannot merge global socket block")
	}

	return lc, nil
}

// ── certificate binding ──────────────────────────────────────────────────

func (b *binder) bindCertificates(root map[string]any, cfg *ServerConfig) *Error {
	const path = "certificate"

	certs, ok, err := b.table(root, "", path)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	for _, rawName := range sortedKeys(certs) {
		cpath := joinPath(path, rawName)

		name := normalizeName(rawName)
		if name == "" {
			return newError(KindValidation, cpath, "certificate name is empty")
		}
		if _, exists := cfg.Certificates[name]; exists {
			return newError(KindDuplicateKey, cpath, "certificate %q is defined more than once", name)
		}

		ctable, isTable := certs[rawName].(map[string]any)
		if !isTable {
			return newError(KindTypeMismatch, cpath, "expected table, found %s", typeName(certs[rawName]))
		}

		cert, err := b.requiredString(ctable, cpath, "cert")
		if err != nil {
			return err
		}
		key, err := b.requiredString(ctable, cpath, "private-key")
		if err != nil {
			return err
		}

		cfg.Certificates[name] = CertificateConfig{Name: name, Cert: cert, PrivateKey: key}
	}

	return nil
}

// ── tls / socket blocks ──────────────────────────────────────────────────

func (b *binder) tlsBlock(parent map[string]any, parentPath string) (TLSConfig, *Error) {
	var tc TLSConfig

	tbl, ok, err := b.table(parent, parentPath, "tls")
	if err != nil || !ok {
		return tc, err
	}
	path := joinPath(parentPath, "tls")

	if tc.Enable, err = b.optionalBool(tbl, path, "enable"); err != nil {
		return tc, err
	}
	if tc.Implicit, err = b.optionalBool(tbl, path, "implicit"); err != nil {
		return tc, err
	}
	if tc.Timeout, err = b.optionalInt(tbl, path, "timeout"); err != nil {
		return tc, err
	}
	if tc.Certificate, err = b.optionalString(tbl, path, "certificate"); err != nil {
		return tc, err
	}
	if tc.SNI, err = b.sniList(tbl, path); err != nil {
		return tc, err
	}
	if tc.Protocols, _, err = b.stringList(tbl, path, "protocols"); err != nil {
		return tc, err
	}
	if tc.Ciphers, _, err = b.stringList(tbl, path, "ciphers"); err != nil {
		return tc, err
	}
	if tc.IgnoreClientOrder, err = b.optionalBool(tbl, path, "ignore-client-order"); err != nil {
		return tc, err
	}

	return tc, nil
}

func (b *binder) socketBlock(parent map[string]any, parentPath string) (SocketConfig, *Error) {
	var sc SocketConfig

	tbl, ok, err := b.table(parent, parentPath, "socket")
	if err != nil || !ok {
		return sc, err
	}
	path := joinPath(parentPath, "socket")

	if sc.ReuseAddr, err = b.optionalBool(tbl, path, "reuse-addr"); err != nil {
		return sc, err
	}
	if sc.ReusePort, err = b.optionalBool(tbl, path, "reuse-port"); err != nil {
		return sc, err
	}
	if sc.Backlog, err = b.optionalInt(tbl, path, "backlog"); err != nil {
		return sc, err
	}
	if sc.TTL, err = b.optionalInt(tbl, path, "ttl"); err != nil {
		return sc, err
	}
	if sc.SendBufferSize, err = b.optionalInt(tbl, path, "send-buffer-size"); err != nil {
		return sc, err
	}
	if sc.RecvBufferSize, err = b.optionalInt(tbl, path, "recv-buffer-size"); err != nil {
		return sc, err
	}
	if sc.Linger, err = b.optionalInt(tbl, path, "linger"); err != nil {
		return sc, err
	}
	if sc.TOS, err = b.optionalInt(tbl, path, "tos"); err != nil {
		return sc, err
	}

	return sc, nil
}

// sniList reads the tls sni override list: an array of {subject,
// certificate} tables. Subjects must be unique within the block.
func (b *binder) sniList(tbl map[string]any, parentPath string) (map[string]string, *Error) {
	path := joinPath(parentPath, "sni")

	node, ok := tbl["sni"]
	if !ok {
		return nil, nil
	}

	elems, ok := indexedElements(node)
	if !ok {
		return nil, newError(KindTypeMismatch, path, "expected array of {subject, certificate} tables, found %s", typeName(node))
	}

	sni := make(map[string]string, len(elems))
	for _, ie := range elems {
		epath := joinPath(path, ie.seg)

		entry, isTable := ie.elem.(map[string]any)
		if !isTable {
			return nil, newError(KindTypeMismatch, epath, "expected {subject, certificate} table, found %s", typeName(ie.elem))
		}

		subject, err := b.requiredString(entry, epath, "subject")
		if err != nil {
			return nil, err
		}
		certificate, err := b.requiredString(entry, epath, "certificate")
		if err != nil {
			return nil, err
		}

		subject = normalizeName(subject)
		if _, dup := sni[subject]; dup {
			return nil, newError(KindValidation, joinPath(epath, "subject"), "sni subject %q is mapped more than once", subject)
		}
		sni[subject] = certificate
	}

	return sni, nil
}

// ── typed accessors ──────────────────────────────────────────────────────

func (b *binder) table(parent map[string]any, parentPath, key string) (map[string]any, bool, *Error) {
	node, ok := parent[key]
	if !ok {
		return nil, false, nil
	}
	tbl, isTable := node.(map[string]any)
	if !isTable {
		return nil, false, newError(KindTypeMismatch, joinPath(parentPath, key), "expected table, found %s", typeName(node))
	}
	return tbl, true, nil
}

func (b *binder) requiredString(parent map[string]any, parentPath, key string) (string, *Error) {
	s, err := b.optionalString(parent, parentPath, key)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", newError(KindMissingField, joinPath(parentPath, key), "required field is absent")
	}
	return *s, nil
}

func (b *binder) optionalString(parent map[string]any, parentPath, key string) (*string, *Error) {
	path := joinPath(parentPath, key)

	node, ok := parent[key]
	if !ok {
		return nil, nil
	}
	s, isString := node.(string)
	if !isString {
		return nil, newError(KindTypeMismatch, path, "expected string, found %s", typeName(node))
	}

	b.mark(path)
	return &s, nil
}

func (b *binder) optionalBool(parent map[string]any, parentPath, key string) (*bool, *Error) {
	path := joinPath(parentPath, key)

	node, ok := parent[key]
	if !ok {
		return nil, nil
	}

	switch v := node.(type) {
	case bool:
		b.mark(path)
		return &v, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, newError(KindTypeMismatch, path, "expected boolean, found string %q", v)
		}
		b.mark(path)
		return &parsed, nil
	default:
		return nil, newError(KindTypeMismatch, path, "expected boolean, found %s", typeName(node))
	}
}

func (b *binder) optionalInt(parent map[string]any, parentPath, key string) (*int64, *Error) {
	path := joinPath(parentPath, key)

	node, ok := parent[key]
	if !ok {
		return nil, nil
	}

	switch v := node.(type) {
	case int64:
		b.mark(path)
		return &v, nil
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, newError(KindTypeMismatch, path, "expected integer, found string %q", v)
		}
		b.mark(path)
		return &parsed, nil
	default:
		return nil, newError(KindTypeMismatch, path, "expected integer, found %s", typeName(node))
	}
}

// stringList accepts a single string, an array of strings, or the grafted
// numeric-table form, and returns the values in document order.
func (b *binder) stringList(parent map[string]any, parentPath, key string) ([]string, bool, *Error) {
	path := joinPath(parentPath, key)

	node, ok := parent[key]
	if !ok {
		return nil, false, nil
	}

	if s, isString := node.(string); isString {
		b.mark(path)
		return []string{s}, true, nil
	}

	elems, isList := indexedElements(node)
	if !isList {
		return nil, false, newError(KindTypeMismatch, path, "expected string or array of strings, found %s", typeName(node))
	}

	values := make([]string, 0, len(elems))
	for _, ie := range elems {
		epath := joinPath(path, ie.seg)
		s, isString := ie.elem.(string)
		if !isString {
			return nil, false, newError(KindTypeMismatch, epath, "expected string, found %s", typeName(ie.elem))
		}
		b.mark(epath)
		values = append(values, s)
	}

	return values, true, nil
}

// indexedElem is one element of an ordered list node, keeping the original
// path segment so used-key tracking matches the flattened tree exactly.
type indexedElem struct {
	seg  string
	elem any
}

// indexedElements returns the ordered elements of an array node or of the
// grafted numeric-table equivalent ({"0": ..., "1": ...}).
func indexedElements(node any) ([]indexedElem, bool) {
	switch n := node.(type) {
	case []any:
		elems := make([]indexedElem, len(n))
		for i, elem := range n {
			elems[i] = indexedElem{seg: strconv.Itoa(i), elem: elem}
		}
		return elems, true
	case map[string]any:
		type indexed struct {
			idx int
			indexedElem
		}
		elems := make([]indexed, 0, len(n))
		for key, elem := range n {
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 {
				return nil, false
			}
			elems = append(elems, indexed{idx: idx, indexedElem: indexedElem{seg: key, elem: elem}})
		}
		sort.Slice(elems, func(i, j int) bool { return elems[i].idx < elems[j].idx })

		ordered := make([]indexedElem, len(elems))
		for i, e := range elems {
			ordered[i] = e.indexedElem
		}
		return ordered, true
	default:
		return nil, false
	}
}

// reservedNamespaces are top-level tables consumed by the daemon plane
// before binding (admin credentials, generated management keys). Their
// leaves are accepted without inspection so quickstart-produced documents
// check cleanly.
var reservedNamespaces = map[string]bool{"management": true}

// sweepUnknown rejects every leaf the schema did not consume.
func (b *binder) sweepUnknown(root map[string]any) *Error {
	var entries []Entry
	flattenNode("", root, &entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	for _, entry := range entries {
		if b.used[entry.Key] {
			continue
		}
		if ns, _, _ := strings.Cut(entry.Key, "."); reservedNamespaces[ns] {
			continue
		}
		return newError(KindValidation, entry.Key, "unknown key")
	}
	return nil
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int64:
		return "integer"
	case float64:
		return "float"
	case time.Time:
		return "datetime"
	case map[string]any:
		return "table"
	case []any:
		return "array"
	default:
		return "value"
	}
}
