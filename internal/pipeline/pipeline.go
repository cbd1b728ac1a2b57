// Package pipeline orchestrates the batch: discover recordings, detect
// chapters, plan cuts, export segments, and archive processed files.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"chapsplit/internal/asr"
	"chapsplit/internal/chaptercache"
	"chapsplit/internal/chapters"
	"chapsplit/internal/config"
	"chapsplit/internal/fileutil"
	"chapsplit/internal/history"
	"chapsplit/internal/logging"
	"chapsplit/internal/media/ffmpeg"
	"chapsplit/internal/media/ffprobe"
	"chapsplit/internal/scanner"
	"chapsplit/internal/segmentplan"
	"chapsplit/internal/services"
	"chapsplit/internal/srt"
)

// Prober inspects media containers.
type Prober func(ctx context.Context, path string) (ffprobe.Result, error)

// Transcriber produces an SRT transcript for a recording.
type Transcriber interface {
	Transcribe(ctx context.Context, source string, durationSeconds float64, workDir string) (string, error)
}

// Exporter cuts segments and extracts cover art.
type Exporter interface {
	ExtractCover(ctx context.Context, source, dest string) (bool, error)
	ExportSegment(ctx context.Context, req ffmpeg.SegmentRequest) error
}

// Runner drives chapter processing for a configured set of directories.
type Runner struct {
	cfg         *config.Config
	logger      *slog.Logger
	store       *history.Store
	cache       *chaptercache.Cache
	probe       Prober
	transcriber Transcriber
	exporter    Exporter
}

// NewRunner wires a runner against the real external tools.
func NewRunner(cfg *config.Config, logger *slog.Logger, store *history.Store) *Runner {
	componentLogger := logging.NewComponentLogger(logger, "pipeline")
	return &Runner{
		cfg:    cfg,
		logger: componentLogger,
		store:  store,
		cache:  chaptercache.New(logger),
		probe: func(ctx context.Context, path string) (ffprobe.Result, error) {
			return ffprobe.Inspect(ctx, cfg.FFprobeBinary(), path)
		},
		transcriber: asr.NewService(asr.Config{
			Binary:                cfg.ASR.Binary,
			Model:                 cfg.ASR.Model,
			ModelDir:              cfg.ASR.ModelDir,
			Device:                cfg.ASR.Device,
			Language:              cfg.ASR.Language,
			ChunkThresholdSeconds: cfg.ASR.ChunkThresholdSeconds,
		}, cfg.FFmpegBinary(), logger),
		exporter: ffmpeg.NewService(cfg.FFmpegBinary(), logger),
	}
}

// WithProbe overrides the container prober (for tests).
func (r *Runner) WithProbe(p Prober) {
	if r != nil && p != nil {
		r.probe = p
	}
}

// WithTranscriber overrides the transcription service (for tests).
func (r *Runner) WithTranscriber(t Transcriber) {
	if r != nil && t != nil {
		r.transcriber = t
	}
}

// WithExporter overrides the segment exporter (for tests).
func (r *Runner) WithExporter(e Exporter) {
	if r != nil && e != nil {
		r.exporter = e
	}
}

// Options adjusts a batch run.
type Options struct {
	// DryRun plans cuts but skips exporting, archiving, and history.
	DryRun bool
}

// Summary aggregates per-recording outcomes for one batch run.
type Summary struct {
	Scanned    int
	Done       int
	Failed     int
	Skipped    int
	NoChapters int
	// Plans carries the cut plans for dry runs, keyed by relative path.
	Plans map[string][]segmentplan.Segment
}

// Process scans the input directory and works through every recording.
// Failures are recorded and the batch continues with the next file.
func (r *Runner) Process(ctx context.Context, opts Options) (Summary, error) {
	summary := Summary{}
	if opts.DryRun {
		summary.Plans = make(map[string][]segmentplan.Segment)
	}

	recordings, err := scanner.Scan(r.cfg.Paths.InputDir)
	if err != nil {
		return summary, services.Wrap(services.ErrConfiguration, "pipeline", "scan", "input directory", err)
	}
	summary.Scanned = len(recordings)
	if len(recordings) == 0 {
		r.logger.Info("no recordings to process", logging.String("input_dir", r.cfg.Paths.InputDir))
		return summary, nil
	}

	for _, recording := range recordings {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		runID := uuid.NewString()
		recordingLogger := r.logger.With(
			logging.String(logging.FieldRecording, recording.RelPath),
			logging.String(logging.FieldRunID, runID),
		)
		outcome, chapterCount, plan, err := r.processRecording(ctx, recordingLogger, recording, opts)
		switch outcome {
		case history.OutcomeDone:
			summary.Done++
		case history.OutcomeNoChapters:
			summary.NoChapters++
		case history.OutcomeSkipped:
			summary.Skipped++
		case history.OutcomeFailed:
			summary.Failed++
		}
		if opts.DryRun {
			if plan != nil {
				summary.Plans[recording.RelPath] = plan
			}
			continue
		}
		r.record(ctx, recordingLogger, history.Entry{
			RunID:        runID,
			SourcePath:   recording.Path,
			Outcome:      outcome,
			ChapterCount: chapterCount,
			ErrorText:    errorText(err),
		})
		if err != nil {
			logging.WarnWithContext(recordingLogger, "recording not processed", "recording_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "fix the underlying issue and rerun; the file stays in the input directory"),
				logging.String(logging.FieldImpact, "recording left unprocessed"),
			)
		}
	}

	r.logger.Info("batch complete",
		logging.Int("scanned", summary.Scanned),
		logging.Int("done", summary.Done),
		logging.Int("no_chapters", summary.NoChapters),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (r *Runner) processRecording(ctx context.Context, logger *slog.Logger, recording scanner.Recording, opts Options) (history.Outcome, int, []segmentplan.Segment, error) {
	logger.Info("processing recording", logging.String("path", recording.Path))

	detection, err := r.detect(ctx, logger, recording)
	if err != nil {
		return services.FailureOutcome(err), 0, nil, err
	}
	if len(detection.Chapters) == 0 {
		logger.Info("no chapter markers found", logging.String("source", detection.Source))
		return history.OutcomeNoChapters, 0, nil, nil
	}

	logger.Info("chapters detected",
		logging.Int("count", len(detection.Chapters)),
		logging.String("source", detection.Source),
		logging.Float64("duration_seconds", detection.Duration),
	)

	plan := segmentplan.Plan(detection.Chapters, detection.Duration, segmentplan.Options{
		WithTitles: r.cfg.Chapters.ExtractTitles,
		PreRollMS:  r.cfg.Chapters.PrerollMS,
	})
	if opts.DryRun {
		return history.OutcomeDone, len(detection.Chapters), plan, nil
	}

	if err := r.export(ctx, logger, recording, detection, plan); err != nil {
		return services.FailureOutcome(err), len(detection.Chapters), nil, err
	}

	r.archive(logger, recording)
	logger.Info("recording complete", logging.Int("segments", len(plan)))
	return history.OutcomeDone, len(detection.Chapters), nil, nil
}

// Detection is the outcome of chapter detection for one recording.
type Detection struct {
	Recording scanner.Recording
	Duration  float64
	Source    string // "embedded", "cache", "transcript", or "asr"
	Chapters  []chapters.Chapter
	HasCover  bool
}

// DetectChapters probes a single recording and returns its canonical
// chapter sequence without exporting anything.
func (r *Runner) DetectChapters(ctx context.Context, path string) (Detection, error) {
	if !scanner.IsSupported(path) {
		return Detection{}, services.Wrap(services.ErrValidation, "pipeline", "detect", fmt.Sprintf("unsupported file type %q", filepath.Ext(path)), nil)
	}
	name := filepath.Base(path)
	recording := scanner.Recording{
		Path:    path,
		RelPath: name,
		Stem:    strings.TrimSuffix(name, filepath.Ext(name)),
	}
	return r.detect(ctx, r.logger.With(logging.String(logging.FieldRecording, recording.RelPath)), recording)
}

func (r *Runner) detect(ctx context.Context, logger *slog.Logger, recording scanner.Recording) (Detection, error) {
	detection := Detection{Recording: recording}

	probed, err := r.probe(ctx, recording.Path)
	if err != nil {
		return detection, services.Wrap(services.ErrExternalTool, "pipeline", "probe", recording.RelPath, err)
	}
	detection.Duration = probed.DurationSeconds()
	if detection.Duration <= 0 {
		return detection, services.Wrap(services.ErrExternalTool, "pipeline", "probe", "container reports no duration", nil)
	}
	detection.HasCover = probed.VideoStreamCount() > 0

	if embedded := probed.EmbeddedChapters(); len(embedded) > 0 {
		logger.Info("using embedded container chapters", logging.Int("count", len(embedded)))
		detection.Source = "embedded"
		candidates := chapters.FromEmbedded(embedded)
		r.saveCache(logger, recording, candidates)
		detection.Chapters = chapters.Sequence(candidates, logger)
		return detection, nil
	}

	if r.cfg.Chapters.CacheEnabled {
		if cached, ok := r.cache.Load(recording.Path, r.cfg.Chapters.ExtractTitles); ok {
			detection.Source = "cache"
			detection.Chapters = chapters.Sequence(cached, logger)
			return detection, nil
		}
	}

	transcriptPath := strings.TrimSuffix(recording.Path, filepath.Ext(recording.Path)) + ".srt"
	detection.Source = "transcript"
	if _, statErr := os.Stat(transcriptPath); statErr != nil {
		logger.Info("no transcript found, transcribing",
			logging.String("transcript", filepath.Base(transcriptPath)),
		)
		generated, asrErr := r.transcriber.Transcribe(ctx, recording.Path, detection.Duration, filepath.Dir(recording.Path))
		if asrErr != nil {
			return detection, services.Wrap(services.ErrExternalTool, "pipeline", "transcribe", recording.RelPath, asrErr)
		}
		transcriptPath = generated
		detection.Source = "asr"
	}

	cues, stats, err := srt.ParseFile(transcriptPath)
	if err != nil {
		return detection, services.Wrap(services.ErrExternalTool, "pipeline", "parse transcript", transcriptPath, err)
	}
	if stats.SkippedBlocks > 0 {
		logger.Debug("transcript had malformed blocks", logging.Int("skipped", stats.SkippedBlocks))
	}

	candidates := chapters.NewScanner(r.cfg.Chapters.ExtractTitles, logger).Scan(cues)
	r.saveCache(logger, recording, candidates)
	detection.Chapters = chapters.Sequence(candidates, logger)
	return detection, nil
}

// saveCache writes the sidecar cache for a detection. Cache write failures
// never fail the recording.
func (r *Runner) saveCache(logger *slog.Logger, recording scanner.Recording, candidates []chapters.Candidate) {
	if len(candidates) == 0 || !r.cfg.Chapters.CacheEnabled {
		return
	}
	if err := r.cache.Save(recording.Path, candidates, r.cfg.Chapters.ExtractTitles); err != nil {
		logging.WarnWithContext(logger, "failed to cache chapters", "cache_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "next run repeats detection"),
		)
	}
}

func (r *Runner) export(ctx context.Context, logger *slog.Logger, recording scanner.Recording, detection Detection, plan []segmentplan.Segment) error {
	relDir := filepath.Dir(recording.RelPath)
	if relDir == "." {
		relDir = ""
	}
	outputDir := filepath.Join(r.cfg.Paths.OutputDir, relDir, strings.TrimSpace(recording.Stem))
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return services.Wrap(services.ErrTransient, "pipeline", "export", "create output directory", err)
	}

	tempDir, err := os.MkdirTemp("", "chapsplit-")
	if err != nil {
		return services.Wrap(services.ErrTransient, "pipeline", "export", "create temp directory", err)
	}
	defer os.RemoveAll(tempDir)

	coverPath := ""
	if detection.HasCover {
		candidate := filepath.Join(tempDir, "cover.jpg")
		ok, coverErr := r.exporter.ExtractCover(ctx, recording.Path, candidate)
		if coverErr != nil {
			logging.WarnWithContext(logger, "cover art extraction failed", "cover_extract_failed",
				logging.Error(coverErr),
				logging.String(logging.FieldImpact, "segments exported without embedded artwork"),
			)
		} else if ok {
			coverPath = candidate
		}
	}

	for _, segment := range plan {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Info("exporting segment",
			logging.String("file", segment.Filename),
			logging.Float64("start_seconds", float64(segment.StartMS)/1000.0),
			logging.Float64("end_seconds", float64(segment.EndMS)/1000.0),
		)
		err := r.exporter.ExportSegment(ctx, ffmpeg.SegmentRequest{
			Source:    recording.Path,
			Dest:      filepath.Join(outputDir, segment.Filename),
			StartMS:   segment.StartMS,
			EndMS:     segment.EndMS,
			CoverPath: coverPath,
		})
		if err != nil {
			return services.Wrap(services.ErrExternalTool, "pipeline", "export", segment.Filename, err)
		}
	}
	return nil
}

// archive moves the processed recording and its sidecars into the done
// directory. Failures are logged but do not fail the recording: the
// segments are already exported.
func (r *Runner) archive(logger *slog.Logger, recording scanner.Recording) {
	relDir := filepath.Dir(recording.RelPath)
	if relDir == "." {
		relDir = ""
	}
	archiveDir := filepath.Join(r.cfg.Paths.DoneDir, relDir)

	base := strings.TrimSuffix(recording.Path, filepath.Ext(recording.Path))
	moves := []string{
		recording.Path,
		base + ".srt",
		chaptercache.SidecarPath(recording.Path),
	}
	for _, src := range moves {
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dest := filepath.Join(archiveDir, filepath.Base(src))
		if err := fileutil.MoveFile(src, dest); err != nil {
			logging.WarnWithContext(logger, "failed to archive file", "archive_failed",
				logging.Error(err),
				logging.String("file", filepath.Base(src)),
				logging.String(logging.FieldImpact, "file remains in the input directory"),
			)
			continue
		}
		logger.Debug("archived file", logging.String("file", filepath.Base(src)))
	}
}

func (r *Runner) record(ctx context.Context, logger *slog.Logger, entry history.Entry) {
	if r.store == nil {
		return
	}
	if _, err := r.store.Record(ctx, entry); err != nil {
		logging.WarnWithContext(logger, "failed to record run history", "history_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run missing from history output"),
		)
	}
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
