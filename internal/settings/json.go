package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type jsonSettings struct {
	Daemon struct {
		ConfigPath   string `json:"config"`
		ResourceBase string `json:"resource_base"`
		LogLevel     string `json:"log_level"`
	} `json:"daemon,omitempty"`

	Management struct {
		Address        string   `json:"address"`
		RequestTimeout Duration `json:"request_timeout"`
		TokenSecret    string   `json:"token_secret"`
		TokenLifetime  Duration `json:"token_lifetime"`
	} `json:"management,omitempty"`

	Store struct {
		DSN string `json:"dsn"`
	} `json:"store,omitempty"`

	Console struct {
		ServerURL      string   `json:"server_url"`
		RequestTimeout Duration `json:"request_timeout"`
		Login          string   `json:"login"`
	} `json:"console,omitempty"`
}

func parseJSON(settingsFilePath string) (*Settings, error) {
	settingsFile, err := os.Open(settingsFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer settingsFile.Close()

	var decoded jsonSettings
	if err := json.NewDecoder(settingsFile).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("error decoding json settings: %w", err)
	}

	s := &Settings{
		Daemon: Daemon{
			ConfigPath:   decoded.Daemon.ConfigPath,
			ResourceBase: decoded.Daemon.ResourceBase,
			LogLevel:     decoded.Daemon.LogLevel,
		},
		Management: Management{
			Address:        decoded.Management.Address,
			RequestTimeout: time.Duration(decoded.Management.RequestTimeout),
			TokenSecret:    decoded.Management.TokenSecret,
			TokenLifetime:  time.Duration(decoded.Management.TokenLifetime),
		},
		Store: Store{
			DSN: decoded.Store.DSN,
		},
		Console: Console{
			ServerURL:      decoded.Console.ServerURL,
			RequestTimeout: time.Duration(decoded.Console.RequestTimeout),
			Login:          decoded.Console.Login,
		},
		SettingsFilePath: "",
	}

	return s, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
