// Package deps reports which external decoder and encoder binaries are
// available on PATH.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"cuesplit/internal/config"
)

// Requirement defines an external dependency cuesplit relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Need labels whether the run cannot start without the tool.
func (s Status) Need() string {
	if s.Optional {
		return "optional"
	}
	return "required"
}

// AudioRequirements lists the decoders and encoders named by cfg. The flac
// decoder and the configured encoder are required; the remaining decoders and
// encoders are optional because only some inputs or runs need them.
func AudioRequirements(cfg *config.Config) []Requirement {
	reqs := []Requirement{
		{Name: "flac", Command: cfg.Decoders.Flac, Description: "Decodes and splits FLAC sources"},
		{Name: "wvunpack", Command: cfg.Decoders.WavPack, Description: "Decodes WavPack sources", Optional: true},
		{Name: "mac", Command: cfg.Decoders.Monkey, Description: "Decodes Monkey's Audio sources", Optional: true},
	}
	selected := config.NormalizeEncoderType(cfg.Encoder.Type)
	for _, encoderType := range config.EncoderTypes() {
		reqs = append(reqs, Requirement{
			Name:        encoderType,
			Command:     cfg.EncoderBinaryFor(encoderType),
			Description: fmt.Sprintf("Encodes tracks with %s", encoderType),
			Optional:    encoderType != selected,
		})
	}
	return reqs
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		switch path, err := exec.LookPath(cmd); {
		case cmd == "":
			status.Detail = "command not configured"
		case err != nil:
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
		default:
			status.Available = true
			status.Command = path
		}
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the required entries that are unavailable.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			missing = append(missing, status)
		}
	}
	return missing
}
