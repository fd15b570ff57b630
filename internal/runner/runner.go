package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"cuesplit/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onOutput func(string)) error
}

// tailLines is how many trailing output lines are kept for error messages.
const tailLines = 8

// CommandExecutor runs binaries with os/exec. A positive Timeout bounds each
// invocation.
type CommandExecutor struct {
	Timeout time.Duration
}

// New returns a CommandExecutor with the timeout given in seconds.
func New(timeoutSeconds int) CommandExecutor {
	return CommandExecutor{Timeout: time.Duration(timeoutSeconds) * time.Second}
}

// Run starts binary with args and streams stdout and stderr lines to
// onOutput. A failed command's error carries the last lines it printed.
func (e CommandExecutor) Run(ctx context.Context, binary string, args []string, onOutput func(string)) error {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrExternalTool, "", binary, "start command", err)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		scanErr error
		once    sync.Once
		tail    []string
	)

	forward := func(line string) {
		mu.Lock()
		tail = append(tail, line)
		if len(tail) > tailLines {
			tail = tail[len(tail)-tailLines:]
		}
		if onOutput != nil {
			onOutput(line)
		}
		mu.Unlock()
	}

	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			forward(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
		}
	}

	wg.Add(2)
	go scan(stdout)
	go scan(stderr)
	wg.Wait()

	if scanErr != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("scan output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, "", binary, fmt.Sprintf("timed out after %s", e.Timeout), err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		detail := "exited with failure"
		if len(tail) > 0 {
			detail = strings.Join(tail, " | ")
		}
		return services.Wrap(services.ErrExternalTool, "", binary, detail, err)
	}
	return nil
}

// CommandLine renders a binary and its arguments for logs.
func CommandLine(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, p := range append([]string{binary}, args...) {
		if p == "" || strings.ContainsAny(p, " \t\"'") {
			p = fmt.Sprintf("%q", p)
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}
