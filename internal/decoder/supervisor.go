package decoder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrAlreadyRunning is returned by Start when a decoder process is live.
	ErrAlreadyRunning = errors.New("decoder is already running")
	// ErrNotRunning is returned by Stop when no decoder process is live.
	ErrNotRunning = errors.New("decoder is not running")
)

const (
	stopWait = 3 * time.Second

	// How long after the decoder exits its output pipes may stay open.
	// A wrapper script can leave a forked child holding the write ends;
	// past this delay the pipes are force-closed so the readers unblock.
	pipeDrain = time.Second
)

// Supervisor owns the external decoder process: it starts it with tuning
// parameters, turns its interleaved stdout/stderr into parsed events, and
// reports process exit. At most one process is live at a time.
type Supervisor struct {
	mu      sync.Mutex
	cmd     *exec.Cmd
	done    chan struct{}
	handler Handler
}

// NewSupervisor returns a supervisor that forwards every event to handler.
// The handler is invoked from the supervisor's reader goroutines and must
// be safe for that context.
func NewSupervisor(handler Handler) *Supervisor {
	return &Supervisor{handler: handler}
}

// Start validates cfg, spawns the decoder, and begins reading its output.
// Spawn failures are reported synchronously and never retried.
func (s *Supervisor) Start(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd != nil {
		return ErrAlreadyRunning
	}

	path, err := exec.LookPath(cfg.Binary())
	if err != nil {
		return fmt.Errorf("decoder binary: %w", err)
	}

	cmd := exec.Command(path, cfg.Args()...)
	cmd.WaitDelay = pipeDrain
	configureSysProc(cmd)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start decoder: %w", err)
	}

	done := make(chan struct{})
	s.cmd = cmd
	s.done = done

	s.emit(Event{Kind: EventProcessStarted})
	go s.supervise(cmd, stdout, stderr, cfg.verbose(), done)
	return nil
}

// Stop kills the live decoder process and waits briefly for it to be
// reaped. The handle is cleared even if the wait times out; the reaper
// still emits the ProcessExited event when the process is collected.
func (s *Supervisor) Stop() error {
	s.mu.Lock()
	cmd, done := s.cmd, s.done
	if cmd == nil {
		s.mu.Unlock()
		return ErrNotRunning
	}
	s.cmd = nil
	s.done = nil
	s.mu.Unlock()

	terminate(cmd)

	select {
	case <-done:
	case <-time.After(stopWait):
	}
	return nil
}

// Running reports whether a decoder process is live.
func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cmd != nil
}

// supervise drains both output streams, reaps the process, and emits
// exactly one ProcessExited event with the observed status.
func (s *Supervisor) supervise(cmd *exec.Cmd, stdout, stderr io.Reader, verbose bool, done chan struct{}) {
	var g errgroup.Group
	g.Go(func() error { return s.scan(stdout, verbose) })
	g.Go(func() error { return s.scan(stderr, verbose) })

	// Wait first: it reaps the process and, once WaitDelay expires,
	// force-closes the pipes, so the scanners cannot stay blocked on a
	// write end inherited by an orphaned child.
	err := cmd.Wait()
	// Read errors mean the process went away; the exit status below is
	// the source of truth.
	_ = g.Wait()

	// Wait returns ErrWaitDelay when the pipes had to be force-closed,
	// so take the code from the process state. Signal death reads as -1.
	code := 0
	if ps := cmd.ProcessState; ps != nil {
		code = ps.ExitCode()
	} else if err != nil {
		code = -1
	}

	s.mu.Lock()
	if s.cmd == cmd {
		s.cmd = nil
		s.done = nil
	}
	s.mu.Unlock()

	s.emit(Event{Kind: EventProcessExited, Code: code})
	close(done)
}

// scan splits a stream into completed lines and forwards parsed events.
// Partial lines stay buffered until a terminator arrives.
func (s *Supervisor) scan(r io.Reader, verbose bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		ev, ok := ParseLine(sc.Text())
		if !ok {
			continue
		}
		if ev.Kind == EventLogLine && !verbose {
			continue
		}
		s.emit(ev)
	}
	return sc.Err()
}

func (s *Supervisor) emit(ev Event) {
	if s.handler != nil {
		s.handler(ev)
	}
}
