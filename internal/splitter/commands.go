package splitter

import (
	"strconv"
)

// Boundary is a sample range within a source file. Without an Until the
// range runs to the end of the file.
type Boundary struct {
	Skip     uint64
	Until    uint64
	HasUntil bool
}

func flacDecodeArgs(src, dst string, b *Boundary) []string {
	args := []string{"--decode", "--silent"}
	args = append(args, rangeArgs(b)...)
	return append(args, "-o", dst, src)
}

func wavpackDecodeArgs(src, dst string, b *Boundary) []string {
	args := []string{"-z", "-q"}
	args = append(args, rangeArgs(b)...)
	return append(args, src, dst)
}

func monkeyDecodeArgs(src, dst string) []string {
	return []string{src, dst, "-d"}
}

func flacEncodeArgs(wav, dst string) []string {
	return []string{"-0", "--delete-input-file", "-o", dst, wav}
}

func rangeArgs(b *Boundary) []string {
	if b == nil {
		return nil
	}
	args := []string{"--skip=" + strconv.FormatUint(b.Skip, 10)}
	if b.HasUntil {
		args = append(args, "--until="+strconv.FormatUint(b.Until, 10))
	}
	return args
}
