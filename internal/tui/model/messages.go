package model

import (
	"procdeck/internal/process"
)

// ProcessUpdateMsg reports that the named process changed.
type ProcessUpdateMsg struct {
	Name string
}

// StatsTickMsg asks for a new resource sample of the selected process.
type StatsTickMsg struct{}

// StatsMsg carries a resource sample.
type StatsMsg struct {
	Name  string
	Stats process.Stats
	Err   error
}

// ProcessActionMsg reports the result of a start, restart or kill.
type ProcessActionMsg struct {
	Name   string
	Action string
	Err    error
}

// DocsRenderedMsg carries rendered documentation for a process.
type DocsRenderedMsg struct {
	Name     string
	Width    int
	Rendered string
	Err      error
}

type ClearStatusBarMsg struct{}
