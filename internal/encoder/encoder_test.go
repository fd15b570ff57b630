package encoder_test

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"cuesplit/internal/config"
	"cuesplit/internal/encoder"
	"cuesplit/internal/services"
	"cuesplit/internal/tagging"
	"cuesplit/internal/testsupport"
)

func TestArgs(t *testing.T) {
	tags := tagging.Tags{Title: "Dusk", Track: 3, TrackCount: 10}
	cases := []struct {
		encoderType string
		quality     float64
		want        []string
	}{
		{config.EncoderLame, 2.7, []string{"-V2", "--silent", "in.wav", "out"}},
		{config.EncoderOggEnc, 6, []string{"-q", "6.00", "-o", "out", "-t", "Dusk", "-N", "3", "-c", "TRACKTOTAL=10", "in.wav"}},
		{config.EncoderQaac, 91.5, []string{"--silent", "--tvbr", "91", "-o", "out", "--title", "Dusk", "--track", "3/10", "in.wav"}},
		{config.EncoderQaac64, 64, []string{"--silent", "--tvbr", "64", "-o", "out", "--title", "Dusk", "--track", "3/10", "in.wav"}},
		{config.EncoderFhgAacEnc, 5, []string{"--vbr", "5", "--quiet", "in.wav", "out"}},
		{config.EncoderNero, 0.45, []string{"-q", "0.45", "-if", "in.wav", "-of", "out"}},
		{"mp3", 0, []string{"-V0", "--silent", "in.wav", "out"}},
	}
	for _, tc := range cases {
		t.Run(tc.encoderType, func(t *testing.T) {
			got := encoder.Args(tc.encoderType, tc.quality, "in.wav", "out", tags, "")
			if !slices.Equal(got, tc.want) {
				t.Fatalf("Args = %q want %q", got, tc.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	p, ok := encoder.Lookup("vorbis")
	if !ok || p.Extension != ".ogg" || p.FileType != "ogg" {
		t.Fatalf("unexpected profile %#v ok=%v", p, ok)
	}
	p, ok = encoder.Lookup(config.EncoderNero)
	if !ok || p.Extension != ".m4a" || p.FileType != "aac" {
		t.Fatalf("unexpected profile %#v ok=%v", p, ok)
	}
	if _, ok := encoder.Lookup("wma"); ok {
		t.Fatal("expected unknown encoder to be rejected")
	}
}

func TestNewRejectsUnknownType(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Encoder.Type = "wma"
	if _, err := encoder.New(cfg, &testsupport.RecordingExecutor{}, nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestEncode(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithEncoder(config.EncoderLame, 4))
	cfg.Encoder.Binaries = map[string]string{config.EncoderLame: "/opt/lame/bin/lame"}
	exec := &testsupport.RecordingExecutor{
		Fn: func(_ string, args []string) error {
			return testsupport.TouchFile(args[len(args)-1])
		},
	}
	enc, err := encoder.New(cfg, exec, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := enc.Encode(context.Background(), "/tmp/02-abc.wav", 2, tagging.Tags{Title: "Dusk"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if filepath.Dir(out) != cfg.Paths.TempDir || !strings.HasPrefix(filepath.Base(out), "2-") || filepath.Ext(out) != ".mp3" {
		t.Fatalf("unexpected output path %q", out)
	}
	calls := exec.Calls()
	if len(calls) != 1 || calls[0].Binary != "/opt/lame/bin/lame" {
		t.Fatalf("unexpected calls: %#v", calls)
	}
	if _, ok := enc.Tagger().(tagging.ID3Tagger); !ok {
		t.Fatal("expected ID3 tagger for lame")
	}
	if enc.TagsInArguments() {
		t.Fatal("lame does not take tag arguments")
	}
}

func TestEncodeFailures(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string, []string) error
	}{
		{name: "tool error", fn: func(string, []string) error { return errors.New("exit status 2") }},
		{name: "no output", fn: func(string, []string) error { return nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testsupport.NewConfig(t, testsupport.WithEncoder(config.EncoderOggEnc, 5))
			enc, err := encoder.New(cfg, &testsupport.RecordingExecutor{Fn: tc.fn}, nil)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if !enc.TagsInArguments() {
				t.Fatal("expected oggenc to take tag arguments")
			}
			if _, err := enc.Encode(context.Background(), "in.wav", 1, tagging.Tags{}); !errors.Is(err, services.ErrExternalTool) {
				t.Fatalf("expected external tool error, got %v", err)
			}
		})
	}
}
