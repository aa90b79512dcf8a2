// Package http implements the management API transport layer.
//
// It exposes route wiring, request handlers, and middleware for the admin
// REST surface: session creation, the effective-config dump, document
// checking, and the config-store key editor. Cross-cutting concerns such as
// authentication, request identification, access logging, and response
// compression are handled in this package before requests are delegated to
// the service layer.
package http
