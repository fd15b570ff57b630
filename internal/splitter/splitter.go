package splitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"cuesplit/internal/config"
	"cuesplit/internal/cuesheet"
	"cuesplit/internal/logging"
	"cuesplit/internal/runner"
	"cuesplit/internal/services"
)

const stageName = "split"

// Source file kinds keyed by lower-case extension.
const (
	SourceFlac    = ".flac"
	SourceWavPack = ".wv"
	SourceMonkey  = ".ape"
)

// Part is one decoded track.
type Part struct {
	Track cuesheet.Track
	// Path is the temporary WAV holding the track audio.
	Path string
}

// Splitter decodes cue sheet audio into per-track WAV files. Temporary files
// live until Close.
type Splitter struct {
	decoders config.Decoders
	tempDir  string
	allowNon bool
	exec     runner.Executor
	logger   *slog.Logger

	mu    sync.Mutex
	temps []string
}

// New builds a Splitter from cfg. A nil logger discards output.
func New(cfg *config.Config, exec runner.Executor, logger *slog.Logger) *Splitter {
	return &Splitter{
		decoders: cfg.Decoders,
		tempDir:  cfg.Paths.TempDir,
		allowNon: cfg.Workflow.AllowNonstandard,
		exec:     exec,
		logger:   logging.NewComponentLogger(logger, "splitter"),
	}
}

// SourcePath resolves a FILE name against the cue sheet directory. Absolute
// names are used as-is.
func SourcePath(cueDir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(cueDir, name)
}

// CheckLayout reports whether sheet can be split. Noncompliant sheets are
// always refused; nonstandard sheets need allowNonstandard.
func CheckLayout(sheet *cuesheet.Sheet, allowNonstandard bool) error {
	switch sheet.Layout() {
	case cuesheet.LayoutNoncompliant:
		return services.Wrap(services.ErrValidation, stageName, "check layout",
			"noncompliant cue sheet: track boundaries cross files", nil)
	case cuesheet.LayoutNonstandard:
		if !allowNonstandard {
			return services.Wrap(services.ErrValidation, stageName, "check layout",
				"nonstandard cue sheet (one file per track) requires workflow.allow_nonstandard", nil)
		}
	}
	if len(sheet.Files) == 0 {
		return services.Wrap(services.ErrValidation, stageName, "check layout", "cue sheet has no FILE entries", nil)
	}
	return nil
}

// Split decodes every track of sheet. cueDir resolves relative FILE names.
func (s *Splitter) Split(ctx context.Context, sheet *cuesheet.Sheet, cueDir string) ([]Part, error) {
	if err := CheckLayout(sheet, s.allowNon); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.tempDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, stageName, "create temp dir", s.tempDir, err)
	}
	if sheet.IsStandard {
		return s.splitStandard(ctx, sheet.Files[0], cueDir)
	}
	return s.splitPerFile(ctx, sheet.Files, cueDir)
}

// Boundaries computes the sample range of every track in a single-file sheet
// from INDEX 01 of the track and of the track after it.
func Boundaries(tracks []cuesheet.Track) ([]Boundary, error) {
	out := make([]Boundary, len(tracks))
	for i, track := range tracks {
		start, ok := track.FindIndex(1)
		if !ok {
			return nil, missingIndex(track)
		}
		out[i].Skip = start.Time.Samples()
		if next, ok := cuesheet.NextTrack(tracks, i); ok {
			end, ok := next.FindIndex(1)
			if !ok {
				return nil, missingIndex(next)
			}
			out[i].Until = end.Time.Samples()
			out[i].HasUntil = true
		}
	}
	return out, nil
}

func missingIndex(track cuesheet.Track) error {
	return services.Wrap(services.ErrValidation, stageName, "find index",
		fmt.Sprintf("INDEX 01 not found for %q", track.Label()), nil)
}

func (s *Splitter) splitStandard(ctx context.Context, file cuesheet.File, cueDir string) ([]Part, error) {
	bounds, err := Boundaries(file.Tracks)
	if err != nil {
		return nil, err
	}
	src, kind, err := s.prepareSource(ctx, SourcePath(cueDir, file.Name))
	if err != nil {
		return nil, err
	}

	s.logger.Info("splitting source",
		logging.String("source", src),
		logging.Int("tracks", len(file.Tracks)),
	)
	parts := make([]Part, 0, len(file.Tracks))
	for i, track := range file.Tracks {
		dst := s.tempPath(fmt.Sprintf("%02d-%s.wav", track.Number, newID()))
		var args []string
		var binary string
		switch kind {
		case SourceWavPack:
			binary, args = s.decoders.WavPack, wavpackDecodeArgs(src, dst, &bounds[i])
		default:
			binary, args = s.decoders.Flac, flacDecodeArgs(src, dst, &bounds[i])
		}
		if err := s.run(services.WithTrack(ctx, track.Number), binary, args); err != nil {
			return nil, err
		}
		parts = append(parts, Part{Track: track, Path: dst})
	}
	return parts, nil
}

func (s *Splitter) splitPerFile(ctx context.Context, files []cuesheet.File, cueDir string) ([]Part, error) {
	parts := make([]Part, 0, len(files))
	for _, file := range files {
		if len(file.Tracks) == 0 {
			return nil, services.Wrap(services.ErrValidation, stageName, "decode file",
				fmt.Sprintf("FILE %q has no TRACK", file.Name), nil)
		}
		track := file.Tracks[0]
		src := SourcePath(cueDir, file.Name)
		kind, err := sourceKind(src)
		if err != nil {
			return nil, err
		}
		if err := requireFile(src); err != nil {
			return nil, err
		}

		trackCtx := services.WithTrack(ctx, track.Number)
		dst := s.tempPath(fmt.Sprintf("%02d-%s.wav", track.Number, newID()))
		var binary string
		var args []string
		switch kind {
		case SourceWavPack:
			binary, args = s.decoders.WavPack, wavpackDecodeArgs(src, dst, nil)
		case SourceMonkey:
			binary, args = s.decoders.Monkey, monkeyDecodeArgs(src, dst)
		default:
			binary, args = s.decoders.Flac, flacDecodeArgs(src, dst, nil)
		}
		if err := s.run(trackCtx, binary, args); err != nil {
			return nil, err
		}
		parts = append(parts, Part{Track: track, Path: dst})
	}
	return parts, nil
}

// prepareSource validates the source and converts Monkey's Audio to a
// temporary FLAC so it can be cut by sample offset.
func (s *Splitter) prepareSource(ctx context.Context, src string) (string, string, error) {
	kind, err := sourceKind(src)
	if err != nil {
		return "", "", err
	}
	if err := requireFile(src); err != nil {
		return "", "", err
	}
	if kind != SourceMonkey {
		return src, kind, nil
	}

	wav := s.tempPath("ape-" + newID() + ".wav")
	if err := s.run(ctx, s.decoders.Monkey, monkeyDecodeArgs(src, wav)); err != nil {
		return "", "", err
	}
	flac := s.tempPath("flac-" + newID() + ".flac")
	if err := s.run(ctx, s.decoders.Flac, flacEncodeArgs(wav, flac)); err != nil {
		return "", "", err
	}
	return flac, SourceFlac, nil
}

func sourceKind(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case SourceFlac, SourceWavPack, SourceMonkey:
		return ext, nil
	case "":
		return "", services.Wrap(services.ErrConfiguration, stageName, "select decoder",
			fmt.Sprintf("%s has no file extension", filepath.Base(path)), nil)
	default:
		return "", services.Wrap(services.ErrConfiguration, stageName, "select decoder",
			fmt.Sprintf("no decoder for %q files", ext), nil)
	}
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return services.Wrap(services.ErrNotFound, stageName, "open source", path, err)
	}
	if err != nil {
		return services.Wrap(services.ErrValidation, stageName, "open source", path, err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrValidation, stageName, "open source", path+" is a directory", nil)
	}
	return nil
}

func (s *Splitter) run(ctx context.Context, binary string, args []string) error {
	logger := logging.WithContext(ctx, s.logger)
	logger.Debug("running decoder", logging.String("command", runner.CommandLine(binary, args)))
	err := s.exec.Run(ctx, binary, args, func(line string) {
		logger.Debug(line, logging.String("tool", filepath.Base(binary)))
	})
	if err != nil {
		return services.Wrap(services.ErrExternalTool, stageName, "decode", filepath.Base(binary), err)
	}
	return nil
}

func (s *Splitter) tempPath(name string) string {
	path := filepath.Join(s.tempDir, name)
	s.mu.Lock()
	s.temps = append(s.temps, path)
	s.mu.Unlock()
	return path
}

// Close removes every temporary file created by Split.
func (s *Splitter) Close() error {
	s.mu.Lock()
	temps := s.temps
	s.temps = nil
	s.mu.Unlock()

	var errs []error
	for _, path := range temps {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
