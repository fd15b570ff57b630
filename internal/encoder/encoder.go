// Package encoder transcodes decoded WAV tracks with an external encoder.
package encoder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"cuesplit/internal/config"
	"cuesplit/internal/logging"
	"cuesplit/internal/runner"
	"cuesplit/internal/services"
	"cuesplit/internal/tagging"
)

const stageName = "encode"

// Encoder runs the configured encoder. It is safe for concurrent use.
type Encoder struct {
	profile   Profile
	binary    string
	quality   float64
	tempDir   string
	coverPath string
	id3       int
	exec      runner.Executor
	logger    *slog.Logger
}

// New builds an Encoder for cfg.Encoder.Type.
func New(cfg *config.Config, exec runner.Executor, logger *slog.Logger) (*Encoder, error) {
	profile, ok := Lookup(cfg.Encoder.Type)
	if !ok {
		return nil, services.Wrap(services.ErrConfiguration, stageName, "select encoder",
			fmt.Sprintf("unsupported encoder type %q", cfg.Encoder.Type), nil)
	}
	binary := cfg.EncoderBinaryFor(profile.Type)
	if strings.TrimSpace(binary) == "" {
		return nil, services.Wrap(services.ErrConfiguration, stageName, "select encoder",
			fmt.Sprintf("no binary configured for %s", profile.Type), nil)
	}
	return &Encoder{
		profile:   profile,
		binary:    binary,
		quality:   cfg.Encoder.Quality,
		tempDir:   cfg.Paths.TempDir,
		coverPath: cfg.Tagging.CoverPath,
		id3:       cfg.Tagging.ID3Version,
		exec:      exec,
		logger:    logging.NewComponentLogger(logger, "encoder"),
	}, nil
}

// Profile describes the encoder's output.
func (e *Encoder) Profile() Profile { return e.profile }

// Tagger returns the tagger for files this encoder writes. Encoders that take
// tags as arguments, or whose container is not ID3, get a NopTagger.
func (e *Encoder) Tagger() tagging.Tagger {
	if e.profile.Type == config.EncoderLame {
		return tagging.ID3Tagger{Version: e.id3, CoverPath: e.coverPath}
	}
	return tagging.NopTagger{}
}

// TagsInArguments reports whether Encode writes tags itself.
func (e *Encoder) TagsInArguments() bool {
	switch e.profile.Type {
	case config.EncoderOggEnc, config.EncoderQaac, config.EncoderQaac64:
		return true
	}
	return false
}

// Encode transcodes wavPath into a new temporary file named
// <track>-<id><ext> and returns its path.
func (e *Encoder) Encode(ctx context.Context, wavPath string, track int, tags tagging.Tags) (string, error) {
	if err := os.MkdirAll(e.tempDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrConfiguration, stageName, "create temp dir", e.tempDir, err)
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	out := filepath.Join(e.tempDir, fmt.Sprintf("%d-%s%s", track, id, e.profile.Extension))
	args := Args(e.profile.Type, e.quality, wavPath, out, tags, e.coverPath)

	logger := logging.WithContext(ctx, e.logger)
	logger.Debug("running encoder", logging.String("command", runner.CommandLine(e.binary, args)))
	err := e.exec.Run(ctx, e.binary, args, func(line string) {
		logger.Debug(line, logging.String("tool", e.profile.Type))
	})
	if err != nil {
		_ = os.Remove(out)
		return "", services.Wrap(services.ErrExternalTool, stageName, "encode", e.profile.Type, err)
	}
	if _, err := os.Stat(out); err != nil {
		return "", services.Wrap(services.ErrExternalTool, stageName, "encode",
			fmt.Sprintf("%s produced no output", e.profile.Type), err)
	}
	return out, nil
}
