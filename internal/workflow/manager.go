package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"cuesplit/internal/config"
	"cuesplit/internal/cuesheet"
	"cuesplit/internal/encoder"
	"cuesplit/internal/fileutil"
	"cuesplit/internal/history"
	"cuesplit/internal/logging"
	"cuesplit/internal/runner"
	"cuesplit/internal/services"
	"cuesplit/internal/splitter"
	"cuesplit/internal/tagging"
)

// LockFileName is created in the output directory for the length of a run.
const LockFileName = ".cuesplit.lock"

// Stage names stamped on the run context.
const (
	StageParse     = "parse"
	StageSplit     = "split"
	StageEncode    = "encode"
	StageOriginals = "originals"
)

// Request describes one split run. Empty fields fall back to configuration.
type Request struct {
	CuePath   string
	OutputDir string
	CoverPath string
}

// Output is one encoded track filed in the output directory.
type Output struct {
	Track int
	Title string
	Path  string
}

// Result summarises a successful run.
type Result struct {
	RunID        string
	Layout       cuesheet.Layout
	Outputs      []Output
	OriginalsDir string
	Elapsed      time.Duration
}

// Manager executes split runs.
type Manager struct {
	cfg    *config.Config
	exec   runner.Executor
	store  *history.Store
	logger *slog.Logger
	newID  func() string
}

// NewManager constructs a Manager. store may be nil to skip history.
func NewManager(cfg *config.Config, exec runner.Executor, store *history.Store, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		exec:   exec,
		store:  store,
		logger: logging.NewComponentLogger(logger, "workflow"),
		newID:  uuid.NewString,
	}
}

// Split runs the full pipeline for req.
func (m *Manager) Split(ctx context.Context, req Request) (*Result, error) {
	cuePath, err := filepath.Abs(strings.TrimSpace(req.CuePath))
	if err != nil || strings.TrimSpace(req.CuePath) == "" {
		return nil, services.Wrap(services.ErrValidation, "", "resolve cue path", req.CuePath, err)
	}
	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = m.cfg.Paths.OutputDir
	}
	coverPath := req.CoverPath
	if coverPath == "" {
		coverPath = m.cfg.Tagging.CoverPath
	}

	runID := m.newID()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, m.logger)
	started := time.Now()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "", "create output dir", outputDir, err)
	}
	lock := flock.New(filepath.Join(outputDir, LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrTransient, "", "acquire output lock",
			fmt.Sprintf("another cuesplit run is writing to %s", outputDir), nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release output lock", logging.Error(err))
		}
	}()

	m.begin(ctx, logger, history.Run{
		ID:        runID,
		CuePath:   cuePath,
		OutputDir: outputDir,
		Encoder:   config.NormalizeEncoderType(m.cfg.Encoder.Type),
		StartedAt: started,
	})

	logger.Info("split started",
		logging.String("cue", cuePath),
		logging.String("output_dir", outputDir),
		logging.String("encoder", m.cfg.Encoder.Type),
	)
	result, runErr := m.run(ctx, cuePath, outputDir, coverPath)
	if runErr != nil {
		status := services.FailureStatus(runErr)
		logger.Error("split failed",
			logging.Error(runErr),
			logging.String("status", string(status)),
			logging.Alert("split_failure"),
			logging.String(logging.FieldEventType, "split_failure"),
		)
		m.finish(ctx, logger, runID, status, runErr)
		return nil, runErr
	}

	result.RunID = runID
	result.Elapsed = time.Since(started)
	m.finish(ctx, logger, runID, history.StatusSucceeded, nil)
	logger.Info("split completed",
		logging.Int("tracks", len(result.Outputs)),
		logging.Duration("elapsed", result.Elapsed),
		logging.String(logging.FieldEventType, "split_complete"),
	)
	return result, nil
}

func (m *Manager) run(ctx context.Context, cuePath, outputDir, coverPath string) (*Result, error) {
	parseCtx := services.WithStage(ctx, StageParse)
	sheet, err := cuesheet.ParseFile(cuePath, cuesheet.Options{Encoding: m.cfg.Input.Encoding})
	if errors.Is(err, os.ErrNotExist) {
		return nil, services.Wrap(services.ErrNotFound, StageParse, "open cue sheet", cuePath, err)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(cuePath), err)
	}
	layout := sheet.Layout()
	logging.WithContext(parseCtx, m.logger).Info("cue sheet parsed",
		logging.String("layout", layout.String()),
		logging.Int("files", len(sheet.Files)),
		logging.Int("tracks", sheet.TrackCount()),
	)
	m.update(ctx, layout, sheet.TrackCount())

	if err := splitter.CheckLayout(sheet, m.cfg.Workflow.AllowNonstandard); err != nil {
		return nil, err
	}
	if m.cfg.Tagging.TitleCase {
		ApplyTitleCase(sheet)
	}

	enc, err := encoder.New(m.withCover(coverPath), m.exec, m.logger)
	if err != nil {
		return nil, err
	}

	split := splitter.New(m.cfg, m.exec, m.logger)
	defer func() {
		if err := split.Close(); err != nil {
			m.logger.Warn("failed to remove temporary files", logging.Error(err))
		}
	}()
	parts, err := split.Split(services.WithStage(ctx, StageSplit), sheet, filepath.Dir(cuePath))
	if err != nil {
		return nil, err
	}

	outputs, err := m.encodeAll(services.WithStage(ctx, StageEncode), sheet, parts, enc, outputDir)
	if err != nil {
		return nil, err
	}

	result := &Result{Layout: layout, Outputs: outputs}
	if m.cfg.Workflow.CopyOriginals {
		dir, err := copyOriginals(outputDir, cuePath, sheet, coverPath)
		if err != nil {
			return nil, services.Wrap(services.ErrTransient, StageOriginals, "copy originals", "", err)
		}
		result.OriginalsDir = dir
		logging.WithContext(services.WithStage(ctx, StageOriginals), m.logger).Info("originals copied",
			logging.String("dir", dir))
	}
	return result, nil
}

// encodeAll encodes, tags, and files every part with at most Workers
// encoders running at once. The first failure cancels the rest.
func (m *Manager) encodeAll(ctx context.Context, sheet *cuesheet.Sheet, parts []splitter.Part, enc *encoder.Encoder, outputDir string) ([]Output, error) {
	profile := enc.Profile()
	destDir := filepath.Join(outputDir, profile.FileType)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, StageEncode, "create output dir", destDir, err)
	}
	tagger := enc.Tagger()
	if _, nop := tagger.(tagging.NopTagger); nop && !enc.TagsInArguments() {
		m.logger.Warn("encoder output will not be tagged",
			logging.String("encoder", profile.Type),
			logging.Alert("untagged_output"),
		)
	}

	workers := m.cfg.Workflow.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	trackCount := sheet.TrackCount()
	outputs := make([]Output, len(parts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, part := range parts {
		g.Go(func() error {
			trackCtx := services.WithTrack(gctx, part.Track.Number)
			logger := logging.WithContext(trackCtx, m.logger)
			logger.Info("encoding track", logging.String("title", part.Track.Title))

			tags := tagging.FromSheet(sheet, part.Track)
			encoded, err := enc.Encode(trackCtx, part.Path, part.Track.Number, tags)
			if err != nil {
				return err
			}
			if err := tagger.Tag(encoded, tags); err != nil {
				_ = os.Remove(encoded)
				return services.Wrap(services.ErrTransient, StageEncode, "tag", part.Track.Label(), err)
			}
			dest := filepath.Join(destDir, TrackFileName(part.Track, trackCount, profile.Extension))
			if err := fileutil.MoveFile(encoded, dest); err != nil {
				_ = os.Remove(encoded)
				return services.Wrap(services.ErrTransient, StageEncode, "move", dest, err)
			}
			outputs[i] = Output{Track: part.Track.Number, Title: part.Track.Title, Path: dest}
			logger.Debug("track filed", logging.String("path", dest))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

func (m *Manager) withCover(coverPath string) *config.Config {
	if coverPath == m.cfg.Tagging.CoverPath {
		return m.cfg
	}
	cfg := *m.cfg
	cfg.Tagging.CoverPath = coverPath
	return &cfg
}

func (m *Manager) begin(ctx context.Context, logger *slog.Logger, run history.Run) {
	if m.store == nil {
		return
	}
	if err := m.store.Begin(ctx, run); err != nil {
		logger.Warn("failed to record run start", logging.Error(err))
	}
}

func (m *Manager) update(ctx context.Context, layout cuesheet.Layout, tracks int) {
	if m.store == nil {
		return
	}
	id, _ := services.RunIDFromContext(ctx)
	if err := m.store.Update(ctx, id, layout.String(), tracks); err != nil {
		logging.WithContext(ctx, m.logger).Warn("failed to record run layout", logging.Error(err))
	}
}

func (m *Manager) finish(ctx context.Context, logger *slog.Logger, id string, status history.Status, runErr error) {
	if m.store == nil {
		return
	}
	if err := m.store.Finish(context.WithoutCancel(ctx), id, status, runErr); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("failed to record run result", logging.Error(err))
	}
}
