package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"cuesplit/internal/cuesheet"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateInput(); err != nil {
		return err
	}
	if err := c.validateEncoder(); err != nil {
		return err
	}
	if err := c.validateTagging(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if strings.TrimSpace(c.Paths.TempDir) == "" {
		return errors.New("paths.temp_dir must be set")
	}
	return nil
}

func (c *Config) validateInput() error {
	if _, err := cuesheet.Decode(nil, c.Input.Encoding); err != nil {
		return fmt.Errorf("input.encoding: %w", err)
	}
	return nil
}

func (c *Config) validateEncoder() error {
	if !slices.Contains(EncoderTypes(), c.Encoder.Type) {
		return fmt.Errorf("encoder.type %q is not supported (use one of %s)", c.Encoder.Type, strings.Join(EncoderTypes(), ", "))
	}
	if c.Encoder.Quality < 0 {
		return errors.New("encoder.quality must be >= 0")
	}
	for key := range c.Encoder.Binaries {
		if !slices.Contains(EncoderTypes(), key) {
			return fmt.Errorf("encoder.binaries.%s does not name a supported encoder", key)
		}
	}
	return nil
}

func (c *Config) validateTagging() error {
	if c.Tagging.ID3Version != 3 && c.Tagging.ID3Version != 4 {
		return errors.New("tagging.id3_version must be 3 or 4")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.Workers <= 0 {
		return errors.New("workflow.workers must be positive")
	}
	if c.Workflow.CommandTimeout <= 0 {
		return errors.New("workflow.command_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
}
