package workflow_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/gofrs/flock"

	"cuesplit/internal/config"
	"cuesplit/internal/history"
	"cuesplit/internal/services"
	"cuesplit/internal/testsupport"
	"cuesplit/internal/workflow"
)

const albumCue = `REM DATE 2004
PERFORMER "the harbour band"
TITLE "low tide"
FILE "Low Tide.flac" WAVE
  TRACK 01 AUDIO
    TITLE "opening of the gates"
    INDEX 01 00:00:00
  TRACK 02 AUDIO
    TITLE "middle: a way out"
    INDEX 01 03:15:30
  TRACK 03 AUDIO
    TITLE "closing part ii"
    INDEX 01 07:02:74
`

const crossingCue = `FILE "01 A.flac" WAVE
  TRACK 01 AUDIO
    INDEX 01 00:00:00
  TRACK 02 AUDIO
    INDEX 00 04:58:12
FILE "02 B.flac" WAVE
    INDEX 01 00:00:00
`

type harness struct {
	cfg     *config.Config
	exec    *testsupport.RecordingExecutor
	store   *history.Store
	manager *workflow.Manager
	srcDir  string
}

func newHarness(t *testing.T, opts ...testsupport.ConfigOption) *harness {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	tempDir := cfg.Paths.TempDir
	exec := &testsupport.RecordingExecutor{
		Fn: func(_ string, args []string) error {
			for _, arg := range args {
				if strings.HasPrefix(arg, tempDir) {
					if err := testsupport.TouchFile(arg); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	store := testsupport.MustOpenHistory(t, cfg)
	return &harness{
		cfg:     cfg,
		exec:    exec,
		store:   store,
		manager: workflow.NewManager(cfg, exec, store, nil),
		srcDir:  filepath.Join(testsupport.BaseDir(cfg), "source"),
	}
}

func (h *harness) lastRun(t *testing.T) history.Run {
	t.Helper()
	runs, err := h.store.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one recorded run, got %d", len(runs))
	}
	return runs[0]
}

func TestSplitStandardSheet(t *testing.T) {
	h := newHarness(t)
	cuePath := testsupport.WriteCueSheet(t, h.srcDir, "album.cue", albumCue, "Low Tide.flac")
	cover := filepath.Join(h.srcDir, "front.PNG")
	testsupport.WriteFile(t, cover, 32)

	result, err := h.manager.Split(context.Background(), workflow.Request{CuePath: cuePath, CoverPath: cover})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	out := h.cfg.Paths.OutputDir
	wantPaths := []string{
		filepath.Join(out, "mp3", "1 - Opening of the Gates.mp3"),
		filepath.Join(out, "mp3", "2 - Middle- A Way Out.mp3"),
		filepath.Join(out, "mp3", "3 - Closing Part II.mp3"),
	}
	if len(result.Outputs) != len(wantPaths) {
		t.Fatalf("expected %d outputs, got %d", len(wantPaths), len(result.Outputs))
	}
	for i, want := range wantPaths {
		if result.Outputs[i].Path != want {
			t.Fatalf("output %d = %q want %q", i, result.Outputs[i].Path, want)
		}
		if _, err := os.Stat(want); err != nil {
			t.Fatalf("expected output on disk: %v", err)
		}
	}

	tag, err := id3v2.Open(wantPaths[0], id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("open tags: %v", err)
	}
	defer tag.Close()
	if tag.GetTextFrame("TPE1").Text != "The Harbour Band" || tag.GetTextFrame("TRCK").Text != "1/3" {
		t.Fatalf("unexpected tags: artist=%q track=%q", tag.GetTextFrame("TPE1").Text, tag.GetTextFrame("TRCK").Text)
	}

	for _, name := range []string{"album.cue", "Low Tide.flac"} {
		if _, err := os.Stat(filepath.Join(out, "flac", name)); err != nil {
			t.Fatalf("expected original %s copied: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "cover.png")); err != nil {
		t.Fatalf("expected cover copied: %v", err)
	}

	entries, err := os.ReadDir(h.cfg.Paths.TempDir)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected temp dir to be empty, found %d entries", len(entries))
	}

	run := h.lastRun(t)
	if run.ID != result.RunID || run.Status != history.StatusSucceeded || run.Layout != "standard" || run.Tracks != 3 {
		t.Fatalf("unexpected history row: %#v", run)
	}
	if run.Encoder != config.EncoderLame || run.FinishedAt == nil {
		t.Fatalf("unexpected history row: %#v", run)
	}
}

func TestSplitWithoutTitleCaseOrOriginals(t *testing.T) {
	h := newHarness(t)
	h.cfg.Tagging.TitleCase = false
	h.cfg.Workflow.CopyOriginals = false
	cuePath := testsupport.WriteCueSheet(t, h.srcDir, "album.cue", albumCue, "Low Tide.flac")

	result, err := h.manager.Split(context.Background(), workflow.Request{CuePath: cuePath})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if filepath.Base(result.Outputs[0].Path) != "1 - opening of the gates.mp3" {
		t.Fatalf("unexpected output name %q", result.Outputs[0].Path)
	}
	if result.OriginalsDir != "" {
		t.Fatalf("expected no originals, got %q", result.OriginalsDir)
	}
	if _, err := os.Stat(filepath.Join(h.cfg.Paths.OutputDir, "flac")); !os.IsNotExist(err) {
		t.Fatalf("expected no originals directory, stat err=%v", err)
	}
}

func TestSplitRejectsNoncompliantSheet(t *testing.T) {
	h := newHarness(t)
	h.cfg.Workflow.AllowNonstandard = true
	cuePath := testsupport.WriteCueSheet(t, h.srcDir, "album.cue", crossingCue, "01 A.flac", "02 B.flac")

	_, err := h.manager.Split(context.Background(), workflow.Request{CuePath: cuePath})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(h.exec.Calls()) != 0 {
		t.Fatal("expected no external commands")
	}
	run := h.lastRun(t)
	if run.Status != history.StatusRejected || run.Layout != "nonstandard-noncompliant" || run.Error == "" {
		t.Fatalf("unexpected history row: %#v", run)
	}
}

func TestSplitRejectsMalformedSheet(t *testing.T) {
	h := newHarness(t)
	bad := strings.Replace(albumCue, "03:15:30", "03:75:30", 1)
	cuePath := testsupport.WriteCueSheet(t, h.srcDir, "album.cue", bad, "Low Tide.flac")

	if _, err := h.manager.Split(context.Background(), workflow.Request{CuePath: cuePath}); err == nil {
		t.Fatal("expected parse error")
	}
	if run := h.lastRun(t); run.Status != history.StatusRejected {
		t.Fatalf("expected rejected run, got %s", run.Status)
	}
}

func TestSplitEncoderFailure(t *testing.T) {
	h := newHarness(t)
	inner := h.exec.Fn
	h.exec.Fn = func(binary string, args []string) error {
		if binary == "lame" {
			return errors.New("exit status 1")
		}
		return inner(binary, args)
	}
	cuePath := testsupport.WriteCueSheet(t, h.srcDir, "album.cue", albumCue, "Low Tide.flac")

	_, err := h.manager.Split(context.Background(), workflow.Request{CuePath: cuePath})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	run := h.lastRun(t)
	if run.Status != history.StatusFailed || !strings.Contains(run.Error, "lame") {
		t.Fatalf("unexpected history row: %#v", run)
	}
}

func TestSplitMissingCueSheet(t *testing.T) {
	h := newHarness(t)
	_, err := h.manager.Split(context.Background(), workflow.Request{CuePath: filepath.Join(h.srcDir, "nope.cue")})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestSplitRefusesLockedOutput(t *testing.T) {
	h := newHarness(t)
	cuePath := testsupport.WriteCueSheet(t, h.srcDir, "album.cue", albumCue, "Low Tide.flac")
	if err := os.MkdirAll(h.cfg.Paths.OutputDir, 0o755); err != nil {
		t.Fatal(err)
	}
	held := flock.New(filepath.Join(h.cfg.Paths.OutputDir, workflow.LockFileName))
	if ok, err := held.TryLock(); err != nil || !ok {
		t.Fatalf("TryLock: ok=%v err=%v", ok, err)
	}
	defer held.Unlock()

	_, err := h.manager.Split(context.Background(), workflow.Request{CuePath: cuePath})
	if err == nil || !strings.Contains(err.Error(), "another cuesplit run") {
		t.Fatalf("expected lock error, got %v", err)
	}
}

func TestSplitWithoutHistory(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutHistory())
	exec := &testsupport.RecordingExecutor{
		Fn: func(_ string, args []string) error {
			for _, arg := range args {
				if strings.HasPrefix(arg, cfg.Paths.TempDir) {
					_ = testsupport.TouchFile(arg)
				}
			}
			return nil
		},
	}
	cuePath := testsupport.WriteCueSheet(t, filepath.Join(testsupport.BaseDir(cfg), "src"), "album.cue", albumCue, "Low Tide.flac")
	manager := workflow.NewManager(cfg, exec, nil, nil)
	if _, err := manager.Split(context.Background(), workflow.Request{CuePath: cuePath}); err != nil {
		t.Fatalf("Split: %v", err)
	}
}
