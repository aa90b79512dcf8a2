package settings

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

type settingsBuilder struct {
	sources []*Settings
	err     error
}

func newSettingsBuilder() *settingsBuilder {
	return &settingsBuilder{
		sources: make([]*Settings, 0, 4),
	}
}

// build merges the collected sources in order. mergo only fills fields the
// destination still holds a zero value for, so earlier sources take
// precedence over later ones.
func (b *settingsBuilder) build() (*Settings, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building settings: %w", b.err)
	}

	merged := new(Settings)
	for _, src := range b.sources {
		if err := mergo.Merge(merged, src); err != nil {
			return nil, fmt.Errorf("error merging settings: %w", err)
		}
	}

	return merged, nil
}

func (b *settingsBuilder) withFlags() *settingsBuilder {
	b.sources = append(b.sources, ParseFlags())
	return b
}

func (b *settingsBuilder) withEnv() *settingsBuilder {
	envSettings := &Settings{}
	if err := parseEnv(envSettings); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.sources = append(b.sources, envSettings)
	return b
}

// withJSON resolves the settings file path from the sources collected so far
// (first non-empty wins, matching the merge precedence) and, when one is
// present, parses the file and appends it below them.
func (b *settingsBuilder) withJSON() *settingsBuilder {
	var jsonPath string
	for _, src := range b.sources {
		if src.SettingsFilePath != "" {
			jsonPath = src.SettingsFilePath
			break
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonSettings, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.sources = append(b.sources, jsonSettings)
	return b
}

func (b *settingsBuilder) withDefaults() *settingsBuilder {
	b.sources = append(b.sources, defaultSettings())
	return b
}
