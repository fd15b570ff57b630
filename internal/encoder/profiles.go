package encoder

import (
	"strconv"

	"cuesplit/internal/config"
	"cuesplit/internal/tagging"
)

// Profile describes the output an encoder type produces.
type Profile struct {
	Type string
	// Extension of encoded files, with the leading dot.
	Extension string
	// FileType names the output subdirectory.
	FileType string
}

var profiles = map[string]Profile{
	config.EncoderLame:      {Type: config.EncoderLame, Extension: ".mp3", FileType: "mp3"},
	config.EncoderOggEnc:    {Type: config.EncoderOggEnc, Extension: ".ogg", FileType: "ogg"},
	config.EncoderQaac:      {Type: config.EncoderQaac, Extension: ".m4a", FileType: "aac"},
	config.EncoderQaac64:    {Type: config.EncoderQaac64, Extension: ".m4a", FileType: "aac"},
	config.EncoderFhgAacEnc: {Type: config.EncoderFhgAacEnc, Extension: ".m4a", FileType: "aac"},
	config.EncoderNero:      {Type: config.EncoderNero, Extension: ".m4a", FileType: "aac"},
}

// Lookup returns the profile for an encoder type or alias.
func Lookup(encoderType string) (Profile, bool) {
	p, ok := profiles[config.NormalizeEncoderType(encoderType)]
	return p, ok
}

// Args builds the command line for one encode. Tags are embedded through
// arguments for encoders that support it.
func Args(encoderType string, quality float64, in, out string, tags tagging.Tags, coverPath string) []string {
	whole := strconv.Itoa(int(quality))
	fixed := strconv.FormatFloat(quality, 'f', 2, 64)

	switch config.NormalizeEncoderType(encoderType) {
	case config.EncoderLame:
		return []string{"-V" + whole, "--silent", in, out}
	case config.EncoderOggEnc:
		args := []string{"-q", fixed, "-o", out}
		args = append(args, tagging.VorbisArgs(tags)...)
		return append(args, in)
	case config.EncoderQaac, config.EncoderQaac64:
		args := []string{"--silent", "--tvbr", whole, "-o", out}
		args = append(args, tagging.QaacArgs(tags, coverPath)...)
		return append(args, in)
	case config.EncoderFhgAacEnc:
		return []string{"--vbr", whole, "--quiet", in, out}
	case config.EncoderNero:
		return []string{"-q", fixed, "-if", in, "-of", out}
	}
	return nil
}
