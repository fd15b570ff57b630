package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	TempDir   string `toml:"temp_dir"`
}

// Input controls how cue sheets are read.
type Input struct {
	// Encoding is the cue sheet character set: auto, utf-8, utf-16,
	// windows-1252, or iso-8859-1.
	Encoding string `toml:"encoding"`
}

// Encoder selects the transcoder and its quality setting.
type Encoder struct {
	Type    string  `toml:"type"`
	Quality float64 `toml:"quality"`
	// Binaries overrides the executable used for an encoder type, keyed by
	// type name (for example nero = "/opt/nero/neroAacEnc").
	Binaries map[string]string `toml:"binaries"`
}

// Decoders names the executables used to split source audio.
type Decoders struct {
	Flac    string `toml:"flac"`
	WavPack string `toml:"wvunpack"`
	Monkey  string `toml:"mac"`
}

// Tagging contains configuration for metadata written to encoded tracks.
type Tagging struct {
	TitleCase  bool   `toml:"title_case"`
	CoverPath  string `toml:"cover_path"`
	ID3Version int    `toml:"id3_version"`
}

// Workflow contains configuration for the split pipeline.
type Workflow struct {
	// Workers bounds parallel encoders; zero or less uses every CPU.
	Workers          int  `toml:"workers"`
	CommandTimeout   int  `toml:"command_timeout"`
	CopyOriginals    bool `toml:"copy_originals"`
	// AllowNonstandard accepts one-file-per-track sheets. Noncompliant
	// sheets are rejected regardless.
	AllowNonstandard bool `toml:"allow_nonstandard"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// History contains configuration for the run history database.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Config encapsulates all configuration values for cuesplit.
//
// Configuration sections by subsystem:
//   - Paths: output, log, and scratch directories
//   - Input: cue sheet character set
//   - Encoder: transcoder type, quality, and binary overrides
//   - Decoders: flac, wvunpack, and mac executables
//   - Tagging: title casing, cover art, and ID3 version
//   - Workflow: parallelism, command timeout, and originals handling
//   - Logging: log format and level
//   - History: SQLite run history
type Config struct {
	Paths    Paths    `toml:"paths"`
	Input    Input    `toml:"input"`
	Encoder  Encoder  `toml:"encoder"`
	Decoders Decoders `toml:"decoders"`
	Tagging  Tagging  `toml:"tagging"`
	Workflow Workflow `toml:"workflow"`
	Logging  Logging  `toml:"logging"`
	History  History  `toml:"history"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("cuesplit.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log and scratch directories. The output
// directory is created by the split workflow once a run starts.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.TempDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// EncoderBinary returns the executable for the configured encoder type,
// honouring [encoder.binaries] overrides.
func (c *Config) EncoderBinary() string {
	return c.EncoderBinaryFor(c.Encoder.Type)
}

// EncoderBinaryFor returns the executable for an arbitrary encoder type.
func (c *Config) EncoderBinaryFor(encoderType string) string {
	encoderType = NormalizeEncoderType(encoderType)
	if override := strings.TrimSpace(c.Encoder.Binaries[encoderType]); override != "" {
		return override
	}
	return defaultEncoderBinaries[encoderType]
}

// HistoryPath returns the history database location, defaulting to the log
// directory.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(c.Paths.LogDir, defaultHistoryFile)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultTempDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "cuesplit", "tmp")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/cuesplit/tmp"
	}
	return filepath.Join(home, ".cache", "cuesplit", "tmp")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
