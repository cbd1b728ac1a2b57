// Package deps reports availability of the external binaries the pipeline
// shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"chapsplit/internal/config"
)

// Requirements lists the external tools for the given configuration.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: cfg.FFmpegBinary(), Description: "segment export and cover art extraction"},
		{Name: "FFprobe", Command: cfg.FFprobeBinary(), Description: "duration and embedded chapter inspection"},
		{Name: "Whisper", Command: cfg.ASR.Binary, Description: "transcription of recordings without an SRT", Optional: true},
	}
}

// Requirement defines an external dependency the pipeline relies on.
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
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
