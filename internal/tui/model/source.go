package model

import (
	"procdeck/internal/process"
	"procdeck/internal/scroll"
)

// ProcessSource presents a process's output to a viewport. Messages are
// read live, so the viewport only needs Update after new output.
type ProcessSource struct {
	Process *process.Process
}

// Len implements scroll.Source.
func (s ProcessSource) Len() int {
	return s.Process.MessageCount()
}

// At implements scroll.Source.
func (s ProcessSource) At(i int) scroll.Entry {
	msg := s.Process.MessageAt(i)
	return scroll.Entry{ID: msg.ID, Content: msg.Content}
}
