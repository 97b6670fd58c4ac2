// Package devrun runs the API and the web frontend side by side for local development.
package devrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultStopTimeout is how long a process may take to exit after a signal before it is killed.
const DefaultStopTimeout = 10 * time.Second

// Process is one command to supervise.
type Process struct {
	Name string
	Path string
	Args []string
	Dir  string
	Env  []string
}

// StartError means a process could not be launched at all.
type StartError struct {
	Name string
	Err  error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Name, e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

// Runner starts processes together and stops them together.
type Runner struct {
	Out         io.Writer
	StopTimeout time.Duration
	logger      *zap.Logger
}

func NewRunner(out io.Writer, logger *zap.Logger) *Runner {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Out: out, StopTimeout: DefaultStopTimeout, logger: logger}
}

// Run starts every process, forwards each signal received on sigs to all of
// them and returns once all have exited. The first process to exit on its own
// stops the others. Run returns a *StartError if any process fails to start,
// and the exit error of the first process that failed before a stop was requested.
func (r *Runner) Run(ctx context.Context, sigs <-chan os.Signal, procs ...Process) error {
	var outMu sync.Mutex
	started := make([]*exec.Cmd, 0, len(procs))
	writers := make([]*prefixWriter, 0, len(procs))

	for _, p := range procs {
		cmd := exec.Command(p.Path, p.Args...)
		cmd.Dir = p.Dir
		cmd.Env = append(os.Environ(), p.Env...)
		out := &prefixWriter{mu: &outMu, w: r.Out, prefix: "[" + p.Name + "] "}
		cmd.Stdout = out
		cmd.Stderr = out
		setProcessGroup(cmd)

		if err := cmd.Start(); err != nil {
			r.logger.Error("Process failed to start", zap.String("process", p.Name), zap.Error(err))
			for _, running := range started {
				signalProcess(running, syscall.SIGTERM)
				_ = running.Wait()
			}
			return &StartError{Name: p.Name, Err: err}
		}
		r.logger.Info("Process started", zap.String("process", p.Name), zap.Int("pid", cmd.Process.Pid))
		started = append(started, cmd)
		writers = append(writers, out)
	}

	var stopping atomic.Bool
	var exitOnce sync.Once
	firstExit := make(chan struct{})
	done := make(chan struct{})

	stopAll := func(sig os.Signal) {
		stopping.Store(true)
		for _, cmd := range started {
			signalProcess(cmd, sig)
		}
	}

	go func() {
		select {
		case sig := <-sigs:
			r.logger.Info("Forwarding signal", zap.String("signal", sig.String()))
			stopAll(sig)
		case <-ctx.Done():
			stopAll(syscall.SIGTERM)
		case <-firstExit:
			stopAll(syscall.SIGTERM)
		case <-done:
			return
		}

		select {
		case <-done:
		case <-time.After(r.StopTimeout):
			r.logger.Warn("Processes did not stop in time, killing them")
			for _, cmd := range started {
				_ = cmd.Process.Kill()
			}
		}
	}()

	var g errgroup.Group
	for i, cmd := range started {
		name := procs[i].Name
		out := writers[i]
		g.Go(func() error {
			err := cmd.Wait()
			out.Flush()
			requested := stopping.Load()
			exitOnce.Do(func() { close(firstExit) })

			r.logger.Info("Process exited", zap.String("process", name), zap.Error(err))
			if requested || err == nil {
				return nil
			}
			return fmt.Errorf("%s exited: %w", name, err)
		})
	}

	err := g.Wait()
	close(done)
	return err
}

// ExitCode maps a Run error onto a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}

// prefixWriter writes complete lines tagged with the process name.
type prefixWriter struct {
	mu     *sync.Mutex
	w      io.Writer
	prefix string
	buf    []byte
}

func (p *prefixWriter) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.buf = append(p.buf, b...)
	for {
		i := bytes.IndexByte(p.buf, '\n')
		if i < 0 {
			break
		}
		if _, err := io.WriteString(p.w, p.prefix+string(p.buf[:i+1])); err != nil {
			return 0, err
		}
		p.buf = p.buf[i+1:]
	}
	return len(b), nil
}

// Flush writes any trailing partial line.
func (p *prefixWriter) Flush() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.buf) == 0 {
		return
	}
	_, _ = io.WriteString(p.w, p.prefix+string(p.buf)+"\n")
	p.buf = nil
}
