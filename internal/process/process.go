package process

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"procdeck/pkg/logging"
	"slices"
	"sync"
	"syscall"
	"time"
)

// execCommand is swapped in tests.
var execCommand = exec.Command

// DefaultShell runs script commands when the manifest names none.
const DefaultShell = "sh"

// Process supervises one script. Output is kept for the lifetime of the
// process value and survives restarts.
type Process struct {
	script Script
	shell  string

	mu           sync.RWMutex
	state        State
	runningSince time.Time
	exitCode     int
	pid          int
	messages     []Message
	cmd          *exec.Cmd
	done         chan struct{}
	notify       func(*Process)
	virtual      bool
}

// New creates a closed process for script, run through shell.
func New(script Script, shell string) *Process {
	if shell == "" {
		shell = DefaultShell
	}
	if script.Type == "" {
		script.Type = TypeScript
	}
	return &Process{script: script, shell: shell}
}

func (p *Process) Name() string    { return p.script.Name }
func (p *Process) Command() string { return p.script.Command }
func (p *Process) Type() Type      { return p.script.Type }
func (p *Process) Autostart() bool { return p.script.Autostart }
func (p *Process) Script() Script  { return p.script }
func (p *Process) HasDocs() bool   { return p.script.Docs != "" }
func (p *Process) IsVirtual() bool { return p.virtual }

// State returns the lifecycle state.
func (p *Process) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// RunningSince returns when the process last started. The zero time means
// it never ran.
func (p *Process) RunningSince() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.runningSince
}

// ExitCode returns the code of the last exit. A process killed by a signal
// reports -1.
func (p *Process) ExitCode() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exitCode
}

// PID returns the pid of the running child, or 0.
func (p *Process) PID() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pid
}

// Messages returns a copy of the output collected so far.
func (p *Process) Messages() []Message {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.messages)
}

// MessageCount returns the number of collected messages.
func (p *Process) MessageCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.messages)
}

// MessageAt returns the i-th message.
func (p *Process) MessageAt(i int) Message {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.messages[i]
}

// Done returns a channel closed when the current run exits. It is nil when
// the process never started.
func (p *Process) Done() <-chan struct{} {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.done
}

// Connect subscribes fn to state and output changes. fn runs on the
// goroutine that made the change and must not block.
func (p *Process) Connect(fn func(*Process)) {
	p.mu.Lock()
	p.notify = fn
	p.mu.Unlock()
}

// Disconnect drops the change subscriber.
func (p *Process) Disconnect() {
	p.mu.Lock()
	p.notify = nil
	p.mu.Unlock()
}

func (p *Process) changed() {
	p.mu.RLock()
	fn := p.notify
	p.mu.RUnlock()
	if fn != nil {
		fn(p)
	}
}

// Append adds a message to the output.
func (p *Process) Append(content string, channel Channel) {
	p.mu.Lock()
	p.messages = append(p.messages, NewMessage(content, channel))
	p.mu.Unlock()
	p.changed()
}

// Start spawns the script in its own process group. Output lines become
// messages until the child exits. When ctx is cancelled the child is killed.
func (p *Process) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.state.Alive() {
		p.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrAlreadyRunning, p.script.Name)
	}
	if p.state == StateClosing {
		p.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrClosing, p.script.Name)
	}
	if p.virtual {
		p.state = StateRunning
		p.runningSince = time.Now()
		p.mu.Unlock()
		p.changed()
		return nil
	}

	cmd := execCommand(p.shell, "-c", p.script.Command)
	env := cmd.Env
	if env == nil {
		env = os.Environ()
	}
	cmd.Env = append(env, "FORCE_COLOR=1")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		p.mu.Unlock()
		return fmt.Errorf("stdout pipe for %s: %w", p.script.Name, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		stdout.Close()
		p.mu.Unlock()
		return fmt.Errorf("stderr pipe for %s: %w", p.script.Name, err)
	}

	p.state = StateStarting
	p.runningSince = time.Now()
	p.exitCode = 0
	if err := cmd.Start(); err != nil {
		p.state = StateClosed
		p.exitCode = -1
		p.mu.Unlock()
		p.changed()
		return fmt.Errorf("failed to start %s: %w", p.script.Name, err)
	}
	p.state = StateRunning
	p.runningSince = time.Now()
	p.pid = cmd.Process.Pid
	p.cmd = cmd
	done := make(chan struct{})
	p.done = done
	p.mu.Unlock()

	logging.Info("Process", "Started %s (PID: %d)", p.script.Name, cmd.Process.Pid)
	p.changed()

	var readers sync.WaitGroup
	readers.Add(2)
	go p.read(stdout, Stdout, &readers)
	go p.read(stderr, Stderr, &readers)

	go func() {
		readers.Wait()
		p.exit(cmd, cmd.Wait())
		close(done)
	}()

	if ctx != nil {
		go func() {
			select {
			case <-ctx.Done():
				p.Kill()
			case <-done:
			}
		}()
	}
	return nil
}

func (p *Process) read(r io.Reader, channel Channel, wg *sync.WaitGroup) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.Append(scanner.Text(), channel)
	}
}

func (p *Process) exit(cmd *exec.Cmd, err error) {
	code := 0
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		code = exitErr.ExitCode()
	case err != nil:
		code = -1
	}

	p.mu.Lock()
	if p.cmd != cmd {
		p.mu.Unlock()
		return
	}
	p.state = StateClosed
	p.exitCode = code
	p.pid = 0
	p.cmd = nil
	p.mu.Unlock()

	logging.Info("Process", "%s exited with code %d", p.script.Name, code)
	p.changed()
}

// Kill signals the process group and marks the process closing. The state
// becomes closed once the child has exited.
func (p *Process) Kill() {
	p.mu.Lock()
	if !p.state.Alive() {
		p.mu.Unlock()
		return
	}
	if p.cmd == nil {
		p.state = StateClosed
		p.mu.Unlock()
		p.changed()
		return
	}
	p.state = StateClosing
	pid := p.pid
	p.mu.Unlock()

	if err := syscall.Kill(-pid, syscall.SIGTERM); err != nil && !errors.Is(err, syscall.ESRCH) {
		logging.Error("Process", err, "Failed to signal %s (PID: %d)", p.script.Name, pid)
	}
	p.changed()
}

// ForceKill sends SIGKILL to the process group of a child that is still
// running or closing.
func (p *Process) ForceKill() {
	p.mu.Lock()
	if p.cmd == nil {
		p.mu.Unlock()
		return
	}
	p.state = StateClosing
	pid := p.pid
	p.mu.Unlock()

	logging.Warn("Process", "Force killing %s (PID: %d)", p.script.Name, pid)
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		logging.Error("Process", err, "Failed to force kill %s (PID: %d)", p.script.Name, pid)
	}
	p.changed()
}

// Restart kills the process, waits for the current run to exit and starts
// it again. A run that is already closing is waited for as well.
func (p *Process) Restart(ctx context.Context) error {
	done := p.Done()
	p.Kill()
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return p.Start(ctx)
}

// Docs returns the process documentation. A docs value naming a readable
// file yields the file's content; anything else is returned as is.
func (p *Process) Docs() string {
	if p.script.Docs == "" {
		return ""
	}
	data, err := os.ReadFile(p.script.Docs)
	if err != nil {
		return p.script.Docs
	}
	return string(data)
}
