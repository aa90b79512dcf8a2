// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package config

import (
	"net"
	"sort"
	"strconv"
)

// Validate checks every cross-field invariant of a bound [ServerConfig]:
// certificate referential integrity (default references and SNI mappings),
// bind address parseability, protocol and TLS tag membership, and numeric
// ranges. It is pure: the config is never mutated, and on success the
// caller's object is exactly the object that was checked.
//
// Violations are returned as [KindValidation] errors carrying the dotted
// key path of the offending field. The first violation aborts the check;
// loading is fail-fast end to end.
func Validate(cfg *ServerConfig) error {
	for _, rule := range validationRules {
		if err := rule(cfg); err != nil {
			return err
		}
	}
	return nil
}

// validationRules are applied in order; each rule checks one concern.
var validationRules = []func(*ServerConfig) *Error{
	checkHostname,
	checkListenersPresent,
	checkListeners,
	checkGlobalBlocks,
	checkCertificateMaterial,
}

// listenerProtocols are the protocol tags the daemon can serve.
var listenerProtocols = map[string]bool{
	"smtp":        true,
	"lmtp":        true,
	"imap":        true,
	"http":        true,
	"managesieve": true,
}

// tlsVersionTags are the accepted protocol version names.
var tlsVersionTags = map[string]bool{
	"TLSv1.2": true,
	"TLSv1.3": true,
}

// cipherSuiteTags are the accepted cipher suite names (TLS 1.3 suites and
// the ECDHE suites for TLS 1.2).
var cipherSuiteTags = map[string]bool{
	"TLS13_AES_256_GCM_SHA384":                      true,
	"TLS13_AES_128_GCM_SHA256":                      true,
	"TLS13_CHACHA20_POLY1305_SHA256":                true,
	"TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384":       true,
	"TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256":       true,
	"TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256": true,
	"TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384":         true,
	"TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256":         true,
	"TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256":   true,
}

func checkHostname(cfg *ServerConfig) *Error {
	if cfg.Hostname == "" {
		return newError(KindValidation, "server.hostname", "hostname is empty")
	}
	return nil
}

func checkListenersPresent(cfg *ServerConfig) *Error {
	if len(cfg.Listeners) == 0 {
		return newError(KindValidation, "server.listener", "at least one listener is required")
	}
	return nil
}

func checkListeners(cfg *ServerConfig) *Error {
	for _, name := range cfg.ListenerNames() {
		listener := cfg.Listeners[name]
		path := joinPath("server.listener", name)

		if !listenerProtocols[listener.Protocol] {
			return newError(KindValidation, joinPath(path, "protocol"),
				"unknown protocol %q (known: smtp, lmtp, imap, http, managesieve)", listener.Protocol)
		}

		if len(listener.Bind) == 0 {
			return newError(KindValidation, joinPath(path, "bind"), "at least one bind address is required")
		}
		for i, addr := range listener.Bind {
			if err := checkBindAddress(joinPath(path, "bind"), i, addr); err != nil {
				return err
			}
		}

		if listener.MaxConnections != nil && *listener.MaxConnections <= 0 {
			return newError(KindValidation, joinPath(path, "max-connections"),
				"must be positive, got %d", *listener.MaxConnections)
		}
		if listener.Backlog != nil && *listener.Backlog < 0 {
			return newError(KindValidation, joinPath(path, "backlog"),
				"must be non-negative, got %d", *listener.Backlog)
		}

		if err := checkTLSBlock(cfg, listener.TLS, joinPath(path, "tls")); err != nil {
			return err
		}
		if err := checkSocketBlock(listener.Socket, joinPath(path, "socket")); err != nil {
			return err
		}
	}
	return nil
}

func checkGlobalBlocks(cfg *ServerConfig) *Error {
	if err := checkTLSBlock(cfg, cfg.TLS, "server.tls"); err != nil {
		return err
	}
	return checkSocketBlock(cfg.Socket, "server.socket")
}

// checkBindAddress requires a host:port form with a numeric port in
// 1..65535. An empty host means "all interfaces" and is accepted.
func checkBindAddress(path string, index int, addr string) *Error {
	epath := joinPath(path, strconv.Itoa(index))

	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return wrapError(KindValidation, epath, err, "invalid bind address %q", addr)
	}

	portNum, err := strconv.ParseUint(port, 10, 16)
	if err != nil || portNum == 0 {
		return newError(KindValidation, epath, "invalid port %q in bind address %q", port, addr)
	}
	return nil
}

func checkTLSBlock(cfg *ServerConfig, tls TLSConfig, path string) *Error {
	if tls.Timeout != nil && *tls.Timeout < 0 {
		return newError(KindValidation, joinPath(path, "timeout"),
			"must be non-negative, got %d", *tls.Timeout)
	}

	if tls.Certificate != nil {
		name := normalizeName(*tls.Certificate)
		if _, ok := cfg.Certificates[name]; !ok {
			return newError(KindValidation, joinPath(path, "certificate"),
				"references undefined certificate %q", *tls.Certificate)
		}
	} else if tls.Enabled() {
		return newError(KindValidation, joinPath(path, "certificate"),
			"required when tls.enable is true")
	}

	for _, subject := range sortedStringMapKeys(tls.SNI) {
		name := normalizeName(tls.SNI[subject])
		if _, ok := cfg.Certificates[name]; !ok {
			return newError(KindValidation, joinPath(path, "sni"),
				"subject %q references undefined certificate %q", subject, tls.SNI[subject])
		}
	}

	for i, tag := range tls.Protocols {
		if !tlsVersionTags[tag] {
			return newError(KindValidation, joinPath(path, "protocols."+strconv.Itoa(i)),
				"unknown TLS version %q (known: TLSv1.2, TLSv1.3)", tag)
		}
	}
	for i, tag := range tls.Ciphers {
		if !cipherSuiteTags[tag] {
			return newError(KindValidation, joinPath(path, "ciphers."+strconv.Itoa(i)),
				"unknown cipher suite %q", tag)
		}
	}

	return nil
}

func checkSocketBlock(socket SocketConfig, path string) *Error {
	checks := []struct {
		key      string
		value    *int64
		min      int64
		max      int64
		required string
	}{
		{key: "backlog", value: socket.Backlog, min: 0, max: -1, required: "non-negative"},
		{key: "ttl", value: socket.TTL, min: 1, max: 255, required: "in 1..255"},
		{key: "send-buffer-size", value: socket.SendBufferSize, min: 1, max: -1, required: "positive"},
		{key: "recv-buffer-size", value: socket.RecvBufferSize, min: 1, max: -1, required: "positive"},
		{key: "linger", value: socket.Linger, min: 0, max: -1, required: "non-negative"},
		{key: "tos", value: socket.TOS, min: 0, max: 255, required: "in 0..255"},
	}

	for _, c := range checks {
		if c.value == nil {
			continue
		}
		if *c.value < c.min || (c.max >= 0 && *c.value > c.max) {
			return newError(KindValidation, joinPath(path, c.key),
				"must be %s, got %d", c.required, *c.value)
		}
	}
	return nil
}

func checkCertificateMaterial(cfg *ServerConfig) *Error {
	for _, name := range cfg.CertificateNames() {
		cert := cfg.Certificates[name]
		path := joinPath("certificate", name)

		if cert.Cert == "" {
			return newError(KindValidation, joinPath(path, "cert"), "certificate material is empty")
		}
		if cert.PrivateKey == "" {
			return newError(KindValidation, joinPath(path, "private-key"), "private key material is empty")
		}
	}
	return nil
}

func sortedStringMapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
