package settings

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all settings flags.
//
// Flags:
//
//	-a management listen address in format [host]:[port]
//	-config mail configuration document path
//	-resource-base directory jailing %{file:...}% lookups
//	-log-level zerolog level name
//	-d config store DSN
//	-token-secret JWT signing secret override
//	-token-lifetime session token lifetime (e.g., "1h", "30m")
//	-request-timeout management request timeout (e.g., "30s", "1m")
//	-s/-settings json file path with settings
//	-server management API base URL (arbormailctl)
//	-login admin account name (arbormailctl)
func ParseFlags() *Settings {
	var managementAddress NetAddress
	var configPath string
	var resourceBase string
	var logLevel string
	var storeDSN string
	var tokenSecret string
	var tokenLifetime time.Duration
	var requestTimeout time.Duration
	var settingsPath string
	var serverURL string
	var login string

	flag.Var(&managementAddress, "a", "Management listen address host:port")
	flag.StringVar(&configPath, "config", "", "Mail configuration document path")
	flag.StringVar(&resourceBase, "resource-base", "", "Directory jailing file macro lookups")
	flag.StringVar(&logLevel, "log-level", "", "Log level (trace..fatal)")
	flag.StringVar(&storeDSN, "d", "", "Config store DSN")
	flag.StringVar(&tokenSecret, "token-secret", "", "Token signing secret")
	flag.DurationVar(&tokenLifetime, "token-lifetime", 0, "Session token lifetime (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Management request timeout (e.g., 30s, 1m)")
	flag.StringVar(&settingsPath, "s", "", "JSON settings file path")
	flag.StringVar(&settingsPath, "settings", "", "JSON settings file path (alias)")
	flag.StringVar(&serverURL, "server", "", "Management API base URL")
	flag.StringVar(&login, "login", "", "Admin account name")

	flag.Parse()

	return &Settings{
		Daemon: Daemon{
			ConfigPath:   configPath,
			ResourceBase: resourceBase,
			LogLevel:     logLevel,
		},
		Management: Management{
			Address:        managementAddress.String(),
			RequestTimeout: requestTimeout,
			TokenSecret:    tokenSecret,
			TokenLifetime:  tokenLifetime,
		},
		Store: Store{
			DSN: storeDSN,
		},
		Console: Console{
			ServerURL: serverURL,
			Login:     login,
		},
		SettingsFilePath: settingsPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string so the merge
// treats the flag as absent.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
