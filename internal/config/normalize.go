package config

import (
	"fmt"
	"runtime"
	"strings"

	"cuesplit/internal/cuesheet"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.Input.Encoding = cuesheet.NormalizeEncoding(c.Input.Encoding)
	c.normalizeEncoder()
	c.normalizeDecoders()
	if err := c.normalizeTagging(); err != nil {
		return err
	}
	c.normalizeWorkflow()
	c.normalizeLogging()
	return c.normalizeHistory()
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TempDir) == "" {
		c.Paths.TempDir = defaultTempDir()
	}
	if c.Paths.TempDir, err = expandPath(c.Paths.TempDir); err != nil {
		return fmt.Errorf("paths.temp_dir: %w", err)
	}
	return nil
}

// NormalizeEncoderType lowercases an encoder name and folds common aliases.
func NormalizeEncoderType(value string) string {
	switch v := strings.ToLower(strings.TrimSpace(value)); v {
	case "mp3":
		return EncoderLame
	case "ogg", "vorbis":
		return EncoderOggEnc
	case "neroaacenc":
		return EncoderNero
	default:
		return v
	}
}

func (c *Config) normalizeEncoder() {
	c.Encoder.Type = NormalizeEncoderType(c.Encoder.Type)
	if c.Encoder.Type == "" {
		c.Encoder.Type = defaultEncoderType
	}
	if len(c.Encoder.Binaries) == 0 {
		return
	}
	binaries := make(map[string]string, len(c.Encoder.Binaries))
	for key, value := range c.Encoder.Binaries {
		binaries[NormalizeEncoderType(key)] = strings.TrimSpace(value)
	}
	c.Encoder.Binaries = binaries
}

func (c *Config) normalizeDecoders() {
	c.Decoders.Flac = strings.TrimSpace(c.Decoders.Flac)
	if c.Decoders.Flac == "" {
		c.Decoders.Flac = "flac"
	}
	c.Decoders.WavPack = strings.TrimSpace(c.Decoders.WavPack)
	if c.Decoders.WavPack == "" {
		c.Decoders.WavPack = "wvunpack"
	}
	c.Decoders.Monkey = strings.TrimSpace(c.Decoders.Monkey)
	if c.Decoders.Monkey == "" {
		c.Decoders.Monkey = "mac"
	}
}

func (c *Config) normalizeTagging() error {
	var err error
	if c.Tagging.CoverPath, err = expandPath(strings.TrimSpace(c.Tagging.CoverPath)); err != nil {
		return fmt.Errorf("tagging.cover_path: %w", err)
	}
	if c.Tagging.ID3Version == 0 {
		c.Tagging.ID3Version = defaultID3Version
	}
	return nil
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.Workers <= 0 {
		c.Workflow.Workers = runtime.NumCPU()
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeHistory() error {
	var err error
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}
