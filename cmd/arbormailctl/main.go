// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/arbormail/arbormail/internal/app"
	"github.com/arbormail/arbormail/internal/client"
	"github.com/arbormail/arbormail/internal/config"
	"github.com/arbormail/arbormail/internal/crypto"
	"github.com/arbormail/arbormail/internal/logger"
	"github.com/arbormail/arbormail/internal/manager"
	"github.com/arbormail/arbormail/internal/resolver"
	"github.com/arbormail/arbormail/internal/settings"
	"github.com/arbormail/arbormail/internal/store"
	"github.com/arbormail/arbormail/models"
)

// Build metadata injected at link time via
// -ldflags "-X main.buildVersion=... -X main.buildDate=... -X main.buildCommit=...".
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `Usage: arbormailctl <command> [flags] [args]

Commands:
  check [file]        validate a configuration document and exit
  init [dir]          scaffold a starter configuration (default ".")
  console             open the interactive console against a running daemon
  import <url|path>   load a document's keys into the config store
  export [file]       write the config store as a TOML document (stdout by default)
  version             print build information

Run "arbormailctl <command> -h" for the flags a command accepts.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	command := os.Args[1]

	// The settings layer parses the global flag set, and flag.Parse stops
	// at the first non-flag argument. Shifting the subcommand out lets
	// flags follow it: arbormailctl check -resource-base /etc config.toml.
	os.Args = append(os.Args[:1], os.Args[2:]...)

	switch command {
	case "check":
		os.Exit(runCheck())
	case "init":
		os.Exit(runInit())
	case "console":
		os.Exit(runConsole())
	case "import":
		os.Exit(runImport())
	case "export":
		os.Exit(runExport())
	case "version":
		fmt.Println("arbormailctl " + models.NewBuildInfo(buildVersion, buildDate, buildCommit).String())
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "arbormailctl: unknown command %q\n\n%s", command, usage)
		os.Exit(2)
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Subcommands
// ────────────────────────────────────────────────────────────────────────────

// runCheck validates a configuration document without touching a daemon: the
// full load pipeline runs locally, with env and file macros resolved against
// this machine. The positional argument overrides the configured path.
func runCheck() int {
	consoleSettings, err := settings.GetConsoleSettings()
	if err != nil {
		return fail(err)
	}

	path := flag.Arg(0)
	if path == "" {
		path = consoleSettings.ConfigPath
	}

	document, err := os.ReadFile(path)
	if err != nil {
		return fail(err)
	}

	resolvers := config.Resolvers{
		config.SchemeEnv:  resolver.NewEnv(),
		config.SchemeFile: resolver.NewFile(consoleSettings.ResourceBase),
		config.SchemeCfg:  nil,
	}

	if _, err = config.Load(context.Background(), string(document), resolvers); err != nil {
		printCheckError(path, err)
		return 1
	}

	fmt.Printf("%s: OK\n", path)
	return 0
}

// printCheckError renders a load failure as kind, key path, and message,
// followed by the remediation hint for that kind when one exists.
func printCheckError(path string, err error) {
	var loadErr *config.Error
	if !errors.As(err, &loadErr) {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return
	}

	kind := loadErr.Kind.String()
	if loadErr.Key != "" {
		fmt.Fprintf(os.Stderr, "%s: %s at %s: %s\n", path, kind, loadErr.Key, loadErr.Message)
	} else {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", path, kind, loadErr.Message)
	}

	if hint := app.HintForKind(kind); hint != "" {
		fmt.Fprintf(os.Stderr, "  hint: %s\n", hint)
	}
}

// runInit scaffolds a starter configuration in the given directory. The
// generated admin secret is printed exactly once; only its hash lands on
// disk.
func runInit() int {
	consoleSettings, err := settings.GetConsoleSettings()
	if err != nil {
		return fail(err)
	}

	dir := flag.Arg(0)
	if dir == "" {
		dir = "."
	}

	quickstart := manager.NewManager(manager.Options{}, nil, crypto.NewKeychain(), logger.NewConsoleLogger("arbormailctl"))

	result, err := quickstart.Quickstart(dir, manager.QuickstartOptions{
		AdminLogin: consoleSettings.Login,
	})
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Wrote %s for host %s.\n", result.Path, result.Hostname)
	fmt.Printf("Management login:  %s\n", result.AdminLogin)
	fmt.Printf("Management secret: %s\n", result.AdminSecret)
	fmt.Println("The secret above is shown once; the document stores only its hash.")
	return 0
}

// runConsole opens the interactive console against a running daemon.
func runConsole() int {
	log := logger.NewConsoleLogger("arbormailctl")

	consoleSettings, err := settings.GetConsoleSettings()
	if err != nil {
		return fail(err)
	}

	if err = logger.SetGlobalLevel(consoleSettings.LogLevel); err != nil {
		return fail(err)
	}

	var console client.Client
	console, err = client.NewApp(client.Config{
		Address:        consoleSettings.ServerURL,
		Login:          consoleSettings.Login,
		RequestTimeout: consoleSettings.RequestTimeout,
	}, log)
	if err != nil {
		return fail(err)
	}

	if err = console.Run(); err != nil {
		return fail(err)
	}

	return 0
}

// runImport loads every key of a TOML document into the config store. The
// source may be a local path, a file:// URL, or an http(s):// URL.
func runImport() int {
	log := logger.NewConsoleLogger("arbormailctl")

	consoleSettings, err := settings.GetConsoleSettings()
	if err != nil {
		return fail(err)
	}

	source := flag.Arg(0)
	if source == "" {
		fmt.Fprintln(os.Stderr, "arbormailctl: import needs a document path or URL")
		return 2
	}

	if consoleSettings.StoreDSN == "" {
		fmt.Fprintln(os.Stderr, "arbormailctl: import needs a config store DSN (-d or ARBORMAIL_STORE_DSN)")
		return 2
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, consoleSettings.StoreDSN, log)
	if err != nil {
		return fail(err)
	}
	defer closeStore(storages, log)

	transfer := manager.NewManager(manager.Options{
		FetchTimeout: consoleSettings.RequestTimeout,
	}, storages.ConfigKeys, crypto.NewKeychain(), log)

	count, err := transfer.Import(ctx, source)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Imported %d keys from %s.\n", count, source)
	return 0
}

// runExport writes the config store as a TOML document to the positional
// file argument, or to stdout when none is given. With -seal the document is
// encrypted under the given passphrase.
func runExport() int {
	seal := flag.String("seal", "", "Encrypt the export under this passphrase")

	log := logger.NewConsoleLogger("arbormailctl")

	consoleSettings, err := settings.GetConsoleSettings()
	if err != nil {
		return fail(err)
	}

	if consoleSettings.StoreDSN == "" {
		fmt.Fprintln(os.Stderr, "arbormailctl: export needs a config store DSN (-d or ARBORMAIL_STORE_DSN)")
		return 2
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, consoleSettings.StoreDSN, log)
	if err != nil {
		return fail(err)
	}
	defer closeStore(storages, log)

	var out io.Writer = os.Stdout
	var file *os.File
	if target := flag.Arg(0); target != "" {
		if file, err = os.Create(target); err != nil {
			return fail(err)
		}
		out = file
	}

	transfer := manager.NewManager(manager.Options{}, storages.ConfigKeys, crypto.NewKeychain(), log)

	count, exportErr := transfer.Export(ctx, out, *seal)

	if file != nil {
		if closeErr := file.Close(); closeErr != nil && exportErr == nil {
			exportErr = closeErr
		}
	}

	if exportErr != nil {
		return fail(exportErr)
	}

	// The summary goes to stderr so a stdout export stays a clean document.
	fmt.Fprintf(os.Stderr, "Exported %d keys.\n", count)
	return 0
}

// ────────────────────────────────────────────────────────────────────────────
// Helpers
// ────────────────────────────────────────────────────────────────────────────

func fail(err error) int {
	fmt.Fprintln(os.Stderr, "arbormailctl:", err)
	return 1
}

func closeStore(storages *store.Storages, log *logger.Logger) {
	if err := storages.ConfigKeys.Close(); err != nil {
		log.Err(err).Msg("error closing config store")
	}
}
