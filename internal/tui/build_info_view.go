// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package tui

import (
	"strings"

	"github.com/arbormail/arbormail/models"
)

// renderDaemonInfoWindow shows the build metadata reported by the connected
// daemon. An all-N/A window means the version request has not completed.
func renderDaemonInfoWindow(info models.BuildInfo) string {
	var b strings.Builder

	b.WriteString("Daemon:  Arbormail\n")
	b.WriteString("Version: ")
	b.WriteString(valueOrNA(info.Version))
	b.WriteString("\n")
	b.WriteString("Built:   ")
	b.WriteString(valueOrNA(info.Date))
	b.WriteString("\n")
	b.WriteString("Commit:  ")
	b.WriteString(valueOrNA(info.Commit))

	return renderPage("DAEMON BUILD INFO", b.String(), "esc: back")
}

func valueOrNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "N/A"
	}
	return v
}
