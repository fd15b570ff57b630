package runner_test

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"cuesplit/internal/runner"
	"cuesplit/internal/services"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRunStreamsOutput(t *testing.T) {
	requireShell(t)
	var lines []string
	err := runner.New(10).Run(context.Background(), "sh", []string{"-c", "echo one; echo two 1>&2"}, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	joined := strings.Join(lines, ",")
	if !strings.Contains(joined, "one") || !strings.Contains(joined, "two") {
		t.Fatalf("expected both streams, got %v", lines)
	}
}

func TestRunFailureCarriesOutputTail(t *testing.T) {
	requireShell(t)
	err := runner.New(10).Run(context.Background(), "sh", []string{"-c", "echo 'bad header' 1>&2; exit 3"}, nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if !strings.Contains(err.Error(), "bad header") {
		t.Fatalf("expected output tail in %q", err.Error())
	}
}

func TestRunTimeout(t *testing.T) {
	requireShell(t)
	executor := runner.CommandExecutor{Timeout: 50 * time.Millisecond}
	err := executor.Run(context.Background(), "sh", []string{"-c", "exec sleep 5"}, nil)
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestRunMissingBinary(t *testing.T) {
	err := runner.New(1).Run(context.Background(), "cuesplit-definitely-missing", nil, nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestCommandLine(t *testing.T) {
	got := runner.CommandLine("flac", []string{"--decode", "-o", "/tmp/a b.wav", ""})
	want := `flac --decode -o "/tmp/a b.wav" ""`
	if got != want {
		t.Fatalf("CommandLine = %q want %q", got, want)
	}
}
