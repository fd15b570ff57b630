package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// Call captures one external command invocation.
type Call struct {
	Binary string
	Args   []string
}

// RecordingExecutor records invocations instead of running binaries. Fn, when
// set, runs for every call and its error is returned.
type RecordingExecutor struct {
	mu    sync.Mutex
	calls []Call
	Fn    func(binary string, args []string) error
}

// Run records the invocation.
func (e *RecordingExecutor) Run(ctx context.Context, binary string, args []string, onOutput func(string)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	e.calls = append(e.calls, Call{Binary: binary, Args: slices.Clone(args)})
	e.mu.Unlock()
	if e.Fn != nil {
		return e.Fn(binary, args)
	}
	return nil
}

// Calls returns a copy of the recorded invocations in call order.
func (e *RecordingExecutor) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.calls)
}

// TouchFile creates path with placeholder content, creating parents. It is
// intended for Fn implementations that emulate an output-producing tool.
func TouchFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte("placeholder audio data"), 0o644)
}
