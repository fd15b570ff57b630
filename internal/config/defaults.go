package config

import "runtime"

const (
	defaultConfigPath     = "~/.config/cuesplit/config.toml"
	defaultOutputDir      = "~/Music/cuesplit"
	defaultLogDir         = "~/.local/share/cuesplit/logs"
	defaultHistoryFile    = "history.db"
	defaultInputEncoding  = "auto"
	defaultEncoderType    = EncoderLame
	defaultEncoderQuality = 2
	defaultID3Version     = 4
	defaultCommandTimeout = 1800
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Encoder type names.
const (
	EncoderLame      = "lame"
	EncoderOggEnc    = "oggenc"
	EncoderQaac      = "qaac"
	EncoderQaac64    = "qaac64"
	EncoderFhgAacEnc = "fhgaacenc"
	EncoderNero      = "nero"
)

var defaultEncoderBinaries = map[string]string{
	EncoderLame:      "lame",
	EncoderOggEnc:    "oggenc",
	EncoderQaac:      "qaac",
	EncoderQaac64:    "qaac64",
	EncoderFhgAacEnc: "fhgaacenc",
	EncoderNero:      "neroAacEnc",
}

// EncoderTypes lists the supported encoder type names in display order.
func EncoderTypes() []string {
	return []string{EncoderLame, EncoderOggEnc, EncoderQaac, EncoderQaac64, EncoderFhgAacEnc, EncoderNero}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			TempDir:   defaultTempDir(),
		},
		Input: Input{
			Encoding: defaultInputEncoding,
		},
		Encoder: Encoder{
			Type:    defaultEncoderType,
			Quality: defaultEncoderQuality,
		},
		Decoders: Decoders{
			Flac:    "flac",
			WavPack: "wvunpack",
			Monkey:  "mac",
		},
		Tagging: Tagging{
			TitleCase:  true,
			ID3Version: defaultID3Version,
		},
		Workflow: Workflow{
			Workers:        runtime.NumCPU(),
			CommandTimeout: defaultCommandTimeout,
			CopyOriginals:  true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
		},
	}
}
