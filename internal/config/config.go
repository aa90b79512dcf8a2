// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package config

import "sort"

// ServerConfig is the validated, immutable configuration of an arbormail
// instance. It is constructed once at process start by [Load] (or the
// Parse/Resolve/Bind/Validate pipeline), read-only afterwards, and discarded
// at shutdown. A configuration change means building a new snapshot, never
// mutating an existing one.
type ServerConfig struct {
	// Hostname is the primary server hostname (EHLO identity). Required.
	Hostname string

	// Greeting is the banner presented on connect. Optional; empty means
	// the external server process chooses its own.
	Greeting string

	// Listeners maps normalized listener names to their effective
	// configuration. At least one listener is required.
	Listeners map[string]ListenerConfig

	// TLS is the global TLS block ([server.tls]); listener blocks are
	// merged over it field by field.
	TLS TLSConfig

	// Socket is the global socket tuning block ([server.socket]); listener
	// blocks are merged over it field by field.
	Socket SocketConfig

	// Certificates maps normalized certificate names to their material.
	Certificates map[string]CertificateConfig
}

// ListenerNames returns the listener names in deterministic (sorted) order.
func (c *ServerConfig) ListenerNames() []string {
	names := make([]string, 0, len(c.Listeners))
	for name := range c.Listeners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CertificateNames returns the certificate names in deterministic (sorted)
// order.
func (c *ServerConfig) CertificateNames() []string {
	names := make([]string, 0, len(c.Certificates))
	for name := range c.Certificates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListenerConfig describes one bound network endpoint. TLS and Socket hold
// the effective per-listener settings: the listener's own table merged over
// the global [server.tls] / [server.socket] blocks, listener fields winning
// and absent fields falling back to the global value (field-level override
// with global fallback).
//
// Optional scalar fields are pointers: nil means "not configured", which is
// distinct from a configured zero.
type ListenerConfig struct {
	// Name is the normalized (trimmed, lowercased) listener name, unique
	// within the document.
	Name string

	// Bind is the ordered list of host:port addresses the listener binds.
	// The document form may be a single string or a list; both normalize
	// to this slice with order preserved. Required, at least one entry.
	Bind []string

	// Protocol is the enumerated protocol tag served on this listener:
	// smtp, lmtp, imap, http or managesieve. Required.
	Protocol string

	// Hostname overrides the server hostname for this listener.
	Hostname *string

	// Greeting overrides the server greeting for this listener.
	Greeting *string

	// MaxConnections caps concurrent connections on this listener.
	// Positive when present.
	MaxConnections *int64

	// Backlog overrides the accept-queue size for this listener.
	// Non-negative when present.
	Backlog *int64

	// TLS is the effective TLS policy for this listener.
	TLS TLSConfig

	// Socket is the effective socket tuning for this listener.
	Socket SocketConfig
}

// TLSConfig is a TLS policy block. All fields are optional in the document;
// nil/empty means "not configured here" and, on a listener, falls back to
// the global block during bind.
type TLSConfig struct {
	// Enable turns TLS support on for the scope of the block.
	Enable *bool

	// Implicit selects TLS-on-connect instead of an in-protocol upgrade
	// (STARTTLS).
	Implicit *bool

	// Timeout is the TLS handshake timeout in seconds. Zero is accepted
	// but meaningless; the boot manager warns about it.
	Timeout *int64

	// Certificate names the entry of the certificate map used by default.
	// Required (here or inherited) whenever Enable is true.
	Certificate *string

	// SNI maps client-supplied server names to certificate map entries.
	// Listener entries override global entries subject by subject.
	SNI map[string]string

	// Protocols restricts the allowed TLS protocol versions. Known tags:
	// "TLSv1.2", "TLSv1.3". Empty means implementation default.
	Protocols []string

	// Ciphers restricts the allowed cipher suites, in preference order.
	// Empty means implementation default.
	Ciphers []string

	// IgnoreClientOrder makes the server's cipher preference win over the
	// client's.
	IgnoreClientOrder *bool
}

// Enabled reports whether the block explicitly enables TLS.
func (c TLSConfig) Enabled() bool {
	return c.Enable != nil && *c.Enable
}

// IsImplicit reports whether the block selects implicit (on-connect) TLS.
func (c TLSConfig) IsImplicit() bool {
	return c.Implicit != nil && *c.Implicit
}

// SocketConfig is a socket tuning block. All fields are optional: nil means
// "leave the OS default", which is distinct from configuring zero.
type SocketConfig struct {
	// ReuseAddr sets SO_REUSEADDR on the listener socket.
	ReuseAddr *bool

	// ReusePort sets SO_REUSEPORT on the listener socket.
	ReusePort *bool

	// Backlog is the accept-queue size. Non-negative.
	Backlog *int64

	// TTL is the IP time-to-live. Positive.
	TTL *int64

	// SendBufferSize is SO_SNDBUF in bytes. Positive.
	SendBufferSize *int64

	// RecvBufferSize is SO_RCVBUF in bytes. Positive.
	RecvBufferSize *int64

	// Linger is the SO_LINGER timeout in seconds. Non-negative.
	Linger *int64

	// TOS is the IP type-of-service byte. 0..255.
	TOS *int64
}

// CertificateConfig holds one named certificate's material. The document
// expresses both fields as %{file:...}% placeholders; after Resolve they
// contain the raw PEM text.
type CertificateConfig struct {
	// Name is the normalized certificate name, unique within the document.
	Name string

	// Cert is the certificate (chain) material.
	Cert string

	// PrivateKey is the private key material. Redacted from every dump the
	// management API produces.
	PrivateKey string
}
