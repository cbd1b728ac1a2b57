// Package ffmpeg drives the ffmpeg binary for cover art extraction and
// chapter segment export.
package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"chapsplit/internal/logging"
)

type commandRunner func(ctx context.Context, name string, args ...string) error

// Service wraps ffmpeg invocations behind an injectable command runner.
type Service struct {
	binary string
	logger *slog.Logger
	run    commandRunner
}

// NewService constructs an ffmpeg service. An empty binary falls back to
// "ffmpeg" on PATH.
func NewService(binary string, logger *slog.Logger) *Service {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Service{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "ffmpeg"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (s *Service) WithCommandRunner(r commandRunner) {
	if s != nil && r != nil {
		s.run = r
	}
}

// ExtractCover pulls the first video frame out of source and writes it to
// dest. Audiobook files carry their cover art as a single-frame video
// stream. Returns false without error when ffmpeg produced no output file.
func (s *Service) ExtractCover(ctx context.Context, source, dest string) (bool, error) {
	if s == nil {
		return false, fmt.Errorf("ffmpeg service not initialized")
	}
	if strings.TrimSpace(source) == "" {
		return false, fmt.Errorf("source path is required")
	}
	if strings.TrimSpace(dest) == "" {
		return false, fmt.Errorf("destination path is required")
	}

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-y",
		"-i", source,
		"-an",
		"-frames:v", "1",
		"-q:v", "2",
		dest,
	}

	if s.logger != nil {
		s.logger.Debug("extracting cover art",
			logging.String("source", source),
			logging.String("dest", dest),
		)
	}

	if err := s.run(ctx, s.binary, args...); err != nil {
		_ = os.Remove(dest)
		return false, fmt.Errorf("cover extraction failed: %w", err)
	}
	if _, err := os.Stat(dest); err != nil {
		return false, nil
	}
	return true, nil
}

// SegmentRequest describes a single chapter export.
type SegmentRequest struct {
	Source    string
	Dest      string
	StartMS   int64
	EndMS     int64
	CoverPath string // optional cover art to embed
}

// ExportSegment cuts one chapter out of the source recording and encodes it
// as MP3, embedding cover art when provided. The write is atomic: output
// goes to a temp file in the destination directory and is renamed on
// success.
func (s *Service) ExportSegment(ctx context.Context, req SegmentRequest) error {
	if s == nil {
		return fmt.Errorf("ffmpeg service not initialized")
	}
	if strings.TrimSpace(req.Source) == "" {
		return fmt.Errorf("source path is required")
	}
	if strings.TrimSpace(req.Dest) == "" {
		return fmt.Errorf("destination path is required")
	}
	if req.EndMS <= req.StartMS {
		return fmt.Errorf("segment end %dms must be after start %dms", req.EndMS, req.StartMS)
	}

	dir := filepath.Dir(req.Dest)
	base := filepath.Base(req.Dest)
	tmpPath := filepath.Join(dir, ".export-"+base+".tmp"+filepath.Ext(base))

	args := s.buildSegmentArgs(req, tmpPath)

	if s.logger != nil {
		s.logger.Debug("exporting segment",
			logging.String("source", req.Source),
			logging.String("dest", req.Dest),
			logging.Int64("start_ms", req.StartMS),
			logging.Int64("end_ms", req.EndMS),
			logging.Bool("cover", req.CoverPath != ""),
		)
	}

	if err := s.run(ctx, s.binary, args...); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("segment export failed: %w", err)
	}
	if _, err := os.Stat(tmpPath); err != nil {
		return fmt.Errorf("ffmpeg did not produce output file: %w", err)
	}
	if err := os.Rename(tmpPath, req.Dest); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize segment: %w", err)
	}
	return nil
}

func (s *Service) buildSegmentArgs(req SegmentRequest, outputPath string) []string {
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-y",
		"-ss", formatSeconds(req.StartMS),
		"-to", formatSeconds(req.EndMS),
		"-i", req.Source,
	}
	if req.CoverPath != "" {
		args = append(args, "-i", req.CoverPath)
	}
	args = append(args,
		"-map", "0:a",
	)
	if req.CoverPath != "" {
		args = append(args,
			"-map", "1:0",
			"-c:v", "mjpeg",
			"-id3v2_version", "3",
			"-metadata:s:v", "title=Album cover",
			"-metadata:s:v", "comment=Cover (front)",
		)
	}
	args = append(args,
		"-c:a", "libmp3lame",
		"-q:a", "2",
		"-f", "mp3",
		outputPath,
	)
	return args
}

// formatSeconds renders a millisecond offset as fractional seconds for
// ffmpeg seek flags.
func formatSeconds(ms int64) string {
	return fmt.Sprintf("%.3f", float64(ms)/1000.0)
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
