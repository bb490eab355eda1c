package process

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"procdeck/pkg/logging"
	"slices"
	"sync"
)

// Group is a titled sidebar section of processes.
type Group struct {
	Title     string
	Type      Type
	Processes []*Process
}

var groupTitles = []struct {
	title string
	typ   Type
}{
	{"Services", TypeService},
	{"Tasks", TypeTask},
	{"Package Scripts", TypeScript},
	{"Development", TypeDev},
}

// Store keeps the supervised processes keyed by name and fans their change
// notifications into one channel.
type Store struct {
	mu        sync.RWMutex
	shell     string
	processes map[string]*Process
	updates   chan string
}

// NewStore creates a store running scripts through shell.
func NewStore(shell string, scripts ...Script) *Store {
	s := &Store{
		shell:     shell,
		processes: make(map[string]*Process),
		updates:   make(chan string, 256),
	}
	for _, script := range scripts {
		s.Add(script)
	}
	return s
}

// Updates delivers the names of processes that changed. Notifications are
// dropped while the channel is full; receivers re-read the whole store.
func (s *Store) Updates() <-chan string {
	return s.updates
}

func (s *Store) notify(p *Process) {
	select {
	case s.updates <- p.Name():
	default:
	}
}

// Add creates a process for script, replacing any process of the same name.
func (s *Store) Add(script Script) *Process {
	p := New(script, s.shell)
	s.AddProcess(p)
	return p
}

// AddProcess adds an existing process, replacing any process of the same name.
func (s *Store) AddProcess(p *Process) {
	s.mu.Lock()
	old := s.processes[p.Name()]
	s.processes[p.Name()] = p
	s.mu.Unlock()

	if old != nil && old != p {
		old.Disconnect()
		old.Kill()
	}
	p.Connect(s.notify)
}

// Remove kills and drops the named process.
func (s *Store) Remove(name string) {
	s.mu.Lock()
	p, ok := s.processes[name]
	delete(s.processes, name)
	s.mu.Unlock()

	if ok {
		p.Disconnect()
		p.Kill()
	}
}

// Get returns the named process.
func (s *Store) Get(name string) (*Process, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.processes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProcess, name)
	}
	return p, nil
}

// Len returns the number of processes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.processes)
}

// Sorted returns processes by score and then by name. The score weighs the
// type (services first, development last) and doubles for dead processes.
func (s *Store) Sorted() []*Process {
	s.mu.RLock()
	out := make([]*Process, 0, len(s.processes))
	for _, p := range s.processes {
		out = append(out, p)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Process) int {
		return cmp.Or(cmp.Compare(score(a), score(b)), cmp.Compare(a.Name(), b.Name()))
	})
	return out
}

func score(p *Process) int {
	if p.State().Alive() {
		return p.Type().weight()
	}
	return 2 * p.Type().weight()
}

// First returns the first sorted process, or nil.
func (s *Store) First() *Process {
	sorted := s.Sorted()
	if len(sorted) == 0 {
		return nil
	}
	return sorted[0]
}

// Groups returns the non-empty sidebar sections in display order.
func (s *Store) Groups() []Group {
	sorted := s.Sorted()
	var groups []Group
	for _, g := range groupTitles {
		var members []*Process
		for _, p := range sorted {
			if p.Type() == g.typ {
				members = append(members, p)
			}
		}
		if len(members) > 0 {
			groups = append(groups, Group{Title: g.title, Type: g.typ, Processes: members})
		}
	}
	return groups
}

// StartAutostart starts every autostart process that is not running.
func (s *Store) StartAutostart(ctx context.Context) error {
	var errs []error
	for _, p := range s.Sorted() {
		if !p.Autostart() || p.State().Alive() {
			continue
		}
		if err := p.Start(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		logging.Error("Process", err, "Some autostart processes failed")
		return err
	}
	return nil
}

// KillAll kills every live process.
func (s *Store) KillAll() {
	for _, p := range s.Sorted() {
		p.Kill()
	}
}

// ForceKillAll sends SIGKILL to every child that has not exited yet.
func (s *Store) ForceKillAll() {
	for _, p := range s.Sorted() {
		p.ForceKill()
	}
}

// WaitAll blocks until every started process has exited or ctx ends.
func (s *Store) WaitAll(ctx context.Context) error {
	for _, p := range s.Sorted() {
		done := p.Done()
		if done == nil || p.IsVirtual() {
			continue
		}
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
