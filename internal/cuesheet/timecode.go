package cuesheet

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// FramesPerSecond is the Red Book frame rate used by cue timecodes.
	FramesPerSecond = 75
	// SamplesPerFrame is the number of 44.1kHz PCM samples in one frame.
	SamplesPerFrame = 588

	maxMinutes = 99
	maxSeconds = 99
	// maxFrames is 75, one above the last valid Red Book frame. Sheets in the
	// wild carry frame 75 and are accepted.
	maxFrames = 75
)

// IndexTime is an immutable MM:SS:FF timecode.
type IndexTime struct {
	minutes uint8
	seconds uint8
	frames  uint8
}

// ParseIndexTime parses a timecode of the form MM:SS:FF.
func ParseIndexTime(value string) (IndexTime, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return IndexTime{}, &FormatError{Field: "IndexTime", Message: fmt.Sprintf("time %q must be formatted MM:SS:FF", value)}
	}
	minutes, err := parseTimeField("Minutes", parts[0], maxMinutes)
	if err != nil {
		return IndexTime{}, err
	}
	seconds, err := parseTimeField("Seconds", parts[1], maxSeconds)
	if err != nil {
		return IndexTime{}, err
	}
	frames, err := parseTimeField("Frames", parts[2], maxFrames)
	if err != nil {
		return IndexTime{}, err
	}
	return IndexTime{minutes: minutes, seconds: seconds, frames: frames}, nil
}

// NewIndexTime builds a timecode from its components, applying the same
// bounds as ParseIndexTime.
func NewIndexTime(minutes, seconds, frames int) (IndexTime, error) {
	if err := checkTimeField("Minutes", minutes, maxMinutes); err != nil {
		return IndexTime{}, err
	}
	if err := checkTimeField("Seconds", seconds, maxSeconds); err != nil {
		return IndexTime{}, err
	}
	if err := checkTimeField("Frames", frames, maxFrames); err != nil {
		return IndexTime{}, err
	}
	return IndexTime{minutes: uint8(minutes), seconds: uint8(seconds), frames: uint8(frames)}, nil
}

// MustIndexTime is NewIndexTime for constant inputs; it panics on error.
func MustIndexTime(minutes, seconds, frames int) IndexTime {
	t, err := NewIndexTime(minutes, seconds, frames)
	if err != nil {
		panic(err)
	}
	return t
}

func parseTimeField(field, value string, limit int) (uint8, error) {
	n, err := strconv.ParseUint(value, 10, 8)
	if err != nil {
		return 0, timeFieldError(field, limit)
	}
	if int(n) > limit {
		return 0, timeFieldError(field, limit)
	}
	return uint8(n), nil
}

func checkTimeField(field string, value, limit int) error {
	if value < 0 || value > limit {
		return timeFieldError(field, limit)
	}
	return nil
}

func timeFieldError(field string, limit int) error {
	return &FormatError{
		Field:   field,
		Message: fmt.Sprintf("%s value must be a number between 0 and %d", field, limit),
	}
}

func (t IndexTime) Minutes() int { return int(t.minutes) }

func (t IndexTime) Seconds() int { return int(t.seconds) }

func (t IndexTime) Frames() int { return int(t.frames) }

// Samples converts the timecode to a PCM sample offset at 75 frames per
// second and 588 samples per frame.
func (t IndexTime) Samples() uint64 {
	totalSeconds := uint64(t.minutes)*60 + uint64(t.seconds)
	return (totalSeconds*FramesPerSecond + uint64(t.frames)) * SamplesPerFrame
}

// Milliseconds returns the frame component expressed in milliseconds,
// floor(Frames * 1000 / 75). Minutes and seconds do not contribute.
func (t IndexTime) Milliseconds() uint32 {
	return uint32(t.frames) * 1000 / FramesPerSecond
}

// String renders the timecode as zero-padded MM:SS:FF.
func (t IndexTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.minutes, t.seconds, t.frames)
}

func (t IndexTime) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *IndexTime) UnmarshalText(text []byte) error {
	parsed, err := ParseIndexTime(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
