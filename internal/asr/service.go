// Package asr generates SRT transcripts for recordings that arrive without
// one, shelling out to a whisper CLI.
package asr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"chapsplit/internal/logging"
	"chapsplit/internal/srt"
)

// Service provides whisper transcription capabilities.
type Service struct {
	cfg           Config
	ffmpegBinary  string
	logger        *slog.Logger
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a transcription service with the given configuration.
func NewService(cfg Config, ffmpegBinary string, logger *slog.Logger) *Service {
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	return &Service{
		cfg:          cfg.withDefaults(),
		ffmpegBinary: ffmpegBinary,
		logger:       logging.NewComponentLogger(logger, "asr"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	return s.cfg.Model
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Transcribe produces an SRT transcript for the source recording and returns
// its path. Recordings longer than the configured chunk threshold are
// transcribed in fixed-length chunks with cue timestamps shifted back onto
// the recording's timeline.
func (s *Service) Transcribe(ctx context.Context, source string, durationSeconds float64, workDir string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("asr service not initialized")
	}
	if strings.TrimSpace(source) == "" {
		return "", fmt.Errorf("transcribe: source path required")
	}
	if workDir == "" {
		workDir = filepath.Dir(source)
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", fmt.Errorf("transcribe: ensure work dir: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	srtPath := filepath.Join(workDir, stem+".srt")

	if s.cfg.ChunkThresholdSeconds > 0 && durationSeconds > s.cfg.ChunkThresholdSeconds {
		if err := s.transcribeChunked(ctx, source, durationSeconds, workDir, srtPath); err != nil {
			return "", err
		}
		return srtPath, nil
	}

	if s.logger != nil {
		s.logger.Info("transcribing recording",
			logging.String("source", source),
			logging.String("model", s.cfg.Model),
			logging.String("device", s.cfg.Device),
		)
	}
	if err := s.run(ctx, s.cfg.Binary, s.buildArgs(source, workDir)...); err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}
	if _, err := os.Stat(srtPath); err != nil {
		return "", fmt.Errorf("whisper did not produce transcript: %w", err)
	}
	return srtPath, nil
}

// transcribeChunked splits the recording into fixed-length chunks, runs the
// recognizer on each, and merges the per-chunk transcripts into a single
// SRT with absolute timestamps.
func (s *Service) transcribeChunked(ctx context.Context, source string, durationSeconds float64, workDir, srtPath string) error {
	chunkCount := int(durationSeconds/ChunkLengthSeconds) + 1
	if s.logger != nil {
		s.logger.Info("transcribing in chunks",
			logging.String("source", source),
			logging.Int("chunks", chunkCount),
			logging.Float64("duration_seconds", durationSeconds),
		)
	}

	chunkDir := filepath.Join(workDir, "chunks")
	if err := os.MkdirAll(chunkDir, 0o755); err != nil {
		return fmt.Errorf("transcribe: ensure chunk dir: %w", err)
	}
	defer os.RemoveAll(chunkDir)

	var merged []srt.Cue
	for i := 0; i < chunkCount; i++ {
		offset := float64(i * ChunkLengthSeconds)
		chunkPath := filepath.Join(chunkDir, fmt.Sprintf("chunk_%d.mp3", i))
		if err := s.extractChunk(ctx, source, offset, chunkPath); err != nil {
			return fmt.Errorf("transcribe chunk %d: extract: %w", i, err)
		}
		if err := s.run(ctx, s.cfg.Binary, s.buildArgs(chunkPath, chunkDir)...); err != nil {
			return fmt.Errorf("transcribe chunk %d: whisper: %w", i, err)
		}

		chunkSRT := strings.TrimSuffix(chunkPath, filepath.Ext(chunkPath)) + ".srt"
		cues, _, err := srt.ParseFile(chunkSRT)
		if err != nil {
			return fmt.Errorf("transcribe chunk %d: parse: %w", i, err)
		}
		for _, cue := range cues {
			cue.Start += offset
			cue.End += offset
			merged = append(merged, cue)
		}
	}

	f, err := os.Create(srtPath)
	if err != nil {
		return fmt.Errorf("transcribe: write transcript: %w", err)
	}
	defer f.Close()
	if err := srt.Write(f, merged); err != nil {
		return fmt.Errorf("transcribe: write transcript: %w", err)
	}
	return nil
}

func (s *Service) extractChunk(ctx context.Context, source string, offsetSeconds float64, dest string) error {
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-y",
		"-ss", fmt.Sprintf("%.3f", offsetSeconds),
		"-t", fmt.Sprintf("%d", ChunkLengthSeconds),
		"-i", source,
		"-vn",
		"-c:a", "libmp3lame",
		"-q:a", "4",
		dest,
	}
	return s.run(ctx, s.ffmpegBinary, args...)
}

// buildArgs constructs the whisper CLI arguments.
func (s *Service) buildArgs(source, outputDir string) []string {
	args := []string{
		source,
		"--model", s.cfg.Model,
		"--device", s.cfg.Device,
		"--language", s.cfg.Language,
		"--output_format", "srt",
		"--output_dir", outputDir,
		"--word_timestamps", "True",
		"--verbose", "False",
	}
	if s.cfg.ModelDir != "" {
		args = append(args, "--model_dir", s.cfg.ModelDir)
	}
	return args
}
