// Package settings provides loading, merging, and validation of the process's
// own settings, as opposed to the mail configuration the daemon serves.
//
// Settings are assembled from multiple sources in the following priority
// order (earlier sources override later ones per field):
//  1. Command-line flags
//  2. Environment variables (ARBORMAIL_*)
//  3. JSON settings file
//  4. Built-in defaults
//
// The main entry points are [GetDaemonSettings] for arbormaild and
// [GetConsoleSettings] for arbormailctl.
package settings
