package process

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrAlreadyRunning is returned when starting a process that is alive.
	ErrAlreadyRunning = errors.New("process already running")
	// ErrClosing is returned when starting a process whose previous run has
	// been signalled but not yet exited.
	ErrClosing = errors.New("process still closing")
	// ErrUnknownProcess is returned when a store lookup misses.
	ErrUnknownProcess = errors.New("unknown process")
)

// Type classifies a script. It decides the sidebar section and sort weight.
type Type string

const (
	TypeService Type = "service"
	TypeTask    Type = "task"
	TypeScript  Type = "script"
	TypeDev     Type = "dev"
)

// ParseType maps a manifest value to a Type, defaulting to TypeScript.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case "":
		return TypeScript, nil
	case TypeService, TypeTask, TypeScript:
		return Type(s), nil
	}
	return "", fmt.Errorf("invalid script type %q", s)
}

// weight orders types within the sorted process list.
func (t Type) weight() int {
	switch t {
	case TypeTask:
		return 10
	case TypeScript:
		return 100
	case TypeDev:
		return 1000
	default:
		return 1
	}
}

// State is the lifecycle state of a process.
type State int

const (
	StateClosed State = iota
	StateStarting
	StateRunning
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateClosing:
		return "closing"
	default:
		return "closed"
	}
}

// Alive reports whether the state belongs to a live process.
func (s State) Alive() bool {
	return s == StateStarting || s == StateRunning
}

// Channel names the stream a message was read from.
type Channel string

const (
	Stdout Channel = "stdout"
	Stderr Channel = "stderr"
)

// Message is one line of process output.
type Message struct {
	ID        string
	Timestamp time.Time
	Content   string
	Channel   Channel
}

// NewMessage stamps content with a fresh id and the current time.
func NewMessage(content string, channel Channel) Message {
	return Message{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Content:   content,
		Channel:   channel,
	}
}

// Script describes a runnable command as declared in a manifest.
type Script struct {
	Name      string
	Command   string
	Type      Type
	Autostart bool
	// Docs is a path to a markdown file or inline markdown.
	Docs string
}
