package process

import (
	"context"
	"procdeck/pkg/logging"
	"time"
)

// LogProcessName is the name of the process listing procdeck's own log.
const LogProcessName = "procdeck"

// NewLogProcess creates a running virtual process that only collects
// appended messages. It has no child to spawn or signal.
func NewLogProcess() *Process {
	p := New(Script{Name: LogProcessName, Type: TypeDev}, "")
	p.virtual = true
	p.state = StateRunning
	p.runningSince = time.Now()
	return p
}

// Follow appends log entries from ch to p until ch closes or ctx ends.
func Follow(ctx context.Context, p *Process, ch <-chan logging.LogEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			channel := Stdout
			if entry.Level >= logging.LevelWarn {
				channel = Stderr
			}
			p.Append(entry.String(), channel)
		}
	}
}
