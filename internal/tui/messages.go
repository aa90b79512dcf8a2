package tui

import (
	"github.com/arbormail/arbormail/models"
)

type sessionOpenedMsg struct {
	err error
}

type keysLoadedMsg struct {
	entries []models.ConfigKey
	err     error
}

type keySavedMsg struct {
	err error
}

type keyDeletedMsg struct {
	key string
	err error
}

type daemonInfoMsg struct {
	info models.BuildInfo
	err  error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
