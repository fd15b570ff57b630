package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"cuesplit/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CACHE_HOME", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantOutput := filepath.Join(tempHome, "Music", "cuesplit")
	if cfg.Paths.OutputDir != wantOutput {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, wantOutput)
	}
	wantLogs := filepath.Join(tempHome, ".local", "share", "cuesplit", "logs")
	if cfg.Paths.LogDir != wantLogs {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogs)
	}
	if cfg.Paths.TempDir != filepath.Join(tempHome, ".cache", "cuesplit", "tmp") {
		t.Fatalf("unexpected temp dir: %q", cfg.Paths.TempDir)
	}
	if cfg.Encoder.Type != config.EncoderLame {
		t.Fatalf("unexpected encoder type %q", cfg.Encoder.Type)
	}
	if cfg.EncoderBinary() != "lame" {
		t.Fatalf("unexpected encoder binary %q", cfg.EncoderBinary())
	}
	if cfg.Input.Encoding != "auto" {
		t.Fatalf("unexpected encoding %q", cfg.Input.Encoding)
	}
	if cfg.Workflow.Workers <= 0 {
		t.Fatalf("expected positive worker count, got %d", cfg.Workflow.Workers)
	}
	if cfg.Workflow.AllowNonstandard {
		t.Fatal("expected nonstandard sheets to be refused by default")
	}
	if cfg.HistoryPath() != filepath.Join(wantLogs, "history.db") {
		t.Fatalf("unexpected history path %q", cfg.HistoryPath())
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "cuesplit.toml")

	type payload struct {
		Paths struct {
			OutputDir string `toml:"output_dir"`
		} `toml:"paths"`
		Input struct {
			Encoding string `toml:"encoding"`
		} `toml:"input"`
		Encoder struct {
			Type     string            `toml:"type"`
			Quality  float64           `toml:"quality"`
			Binaries map[string]string `toml:"binaries"`
		} `toml:"encoder"`
		Workflow struct {
			Workers        int `toml:"workers"`
			CommandTimeout int `toml:"command_timeout"`
		} `toml:"workflow"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.OutputDir = filepath.Join(tempDir, "out")
	custom.Input.Encoding = "CP1252"
	custom.Encoder.Type = "Ogg"
	custom.Encoder.Quality = 6.5
	custom.Encoder.Binaries = map[string]string{"Vorbis": " /opt/bin/oggenc "}
	custom.Workflow.Workers = 3
	custom.Workflow.CommandTimeout = 60
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempDir, "out") {
		t.Fatalf("unexpected output dir %q", cfg.Paths.OutputDir)
	}
	if cfg.Input.Encoding != "windows-1252" {
		t.Fatalf("expected canonical encoding, got %q", cfg.Input.Encoding)
	}
	if cfg.Encoder.Type != config.EncoderOggEnc || cfg.Encoder.Quality != 6.5 {
		t.Fatalf("unexpected encoder %+v", cfg.Encoder)
	}
	if cfg.EncoderBinary() != "/opt/bin/oggenc" {
		t.Fatalf("expected binary override, got %q", cfg.EncoderBinary())
	}
	if cfg.EncoderBinaryFor("nero") != "neroAacEnc" {
		t.Fatalf("unexpected nero binary %q", cfg.EncoderBinaryFor("nero"))
	}
	if cfg.Workflow.Workers != 3 || cfg.Workflow.CommandTimeout != 60 {
		t.Fatalf("unexpected workflow %+v", cfg.Workflow)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json logging, got %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(configPath, []byte("[encoder\ntype = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[encoder]") {
		t.Fatalf("sample config missing encoder section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Encoder.Type != config.EncoderLame {
		t.Fatalf("unexpected sample encoder %q", cfg.Encoder.Type)
	}
	if !strings.Contains(cfg.Paths.OutputDir, "cuesplit") {
		t.Fatalf("expected output dir to contain cuesplit, got %q", cfg.Paths.OutputDir)
	}

	loaded, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample does not load: %v", err)
	}
	if !exists || loaded.Workflow.Workers <= 0 {
		t.Fatalf("unexpected loaded sample %+v", loaded.Workflow)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown encoder", func(c *config.Config) { c.Encoder.Type = "shorten" }},
		{"negative quality", func(c *config.Config) { c.Encoder.Quality = -1 }},
		{"unknown binary override", func(c *config.Config) { c.Encoder.Binaries = map[string]string{"wma": "x"} }},
		{"unknown charset", func(c *config.Config) { c.Input.Encoding = "ebcdic" }},
		{"zero workers", func(c *config.Config) { c.Workflow.Workers = 0 }},
		{"zero timeout", func(c *config.Config) { c.Workflow.CommandTimeout = 0 }},
		{"bad id3 version", func(c *config.Config) { c.Tagging.ID3Version = 2 }},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "chatty" }},
		{"empty output", func(c *config.Config) { c.Paths.OutputDir = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestNormalizeEncoderType(t *testing.T) {
	cases := map[string]string{
		"MP3":        config.EncoderLame,
		" vorbis ":   config.EncoderOggEnc,
		"NeroAacEnc": config.EncoderNero,
		"qaac64":     config.EncoderQaac64,
	}
	for in, want := range cases {
		if got := config.NormalizeEncoderType(in); got != want {
			t.Fatalf("NormalizeEncoderType(%q) = %q want %q", in, got, want)
		}
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.TempDir = filepath.Join(base, "tmp")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LogDir, cfg.Paths.TempDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q", dir)
		}
	}
}
