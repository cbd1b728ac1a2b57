package chaptercache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"chapsplit/internal/chapters"
	"chapsplit/internal/logging"
)

// record is the on-disk shape of one cached chapter. Title is a pointer so
// the presence of title keys as a group can be checked against the current
// title-extraction policy.
type record struct {
	Number int      `json:"number"`
	Start  float64  `json:"start_time"`
	Title  *string  `json:"title,omitempty"`
}

// Cache persists detected chapter lists next to their source recordings so
// repeat runs skip transcript scanning.
type Cache struct {
	logger *slog.Logger
}

// New creates a cache. A nil logger is replaced with a no-op logger.
func New(logger *slog.Logger) *Cache {
	return &Cache{logger: logging.NewComponentLogger(logger, "chaptercache")}
}

// SidecarPath returns the cache file path for a recording: the audio path
// with its extension swapped for .json.
func SidecarPath(audioPath string) string {
	ext := filepath.Ext(audioPath)
	return strings.TrimSuffix(audioPath, ext) + ".json"
}

// Load returns the cached chapter candidates for the recording, or false
// when no usable cache exists. A cache whose title shape disagrees with the
// current title-extraction policy is treated as absent; the stale file is
// left in place for the operator to delete.
func (c *Cache) Load(audioPath string, wantTitles bool) ([]chapters.Candidate, bool) {
	path := SidecarPath(audioPath)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.WarnWithContext(c.logger, "failed to read chapter cache", "cache_read_failed",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "chapters will be re-detected"))
		}
		return nil, false
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		logging.WarnWithContext(c.logger, "failed to parse chapter cache", "cache_parse_failed",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "chapters will be re-detected"))
		return nil, false
	}
	if len(records) == 0 {
		return nil, false
	}

	hasTitles := records[0].Title != nil
	if hasTitles != wantTitles {
		logging.WarnWithContext(c.logger, "chapter cache shape mismatches title policy", "cache_shape_mismatch",
			logging.String("path", path),
			logging.Bool("cache_has_titles", hasTitles),
			logging.Bool("want_titles", wantTitles),
			logging.String(logging.FieldImpact, "chapters will be re-detected and not re-cached"),
			logging.String(logging.FieldErrorHint, "delete the cache file to allow re-caching"))
		return nil, false
	}

	candidates := make([]chapters.Candidate, 0, len(records))
	for _, rec := range records {
		candidate := chapters.Candidate{Number: rec.Number, Start: rec.Start}
		if rec.Title != nil {
			candidate.Title = *rec.Title
		}
		candidates = append(candidates, candidate)
	}

	c.logger.Debug("loaded chapter cache",
		logging.String("path", path),
		logging.Int("chapter_count", len(candidates)))

	return candidates, true
}

// Save writes the chapter candidates to the recording's sidecar cache. The
// cache is write-once: if a file already exists it is left untouched. The
// write itself goes through a temp file and rename.
func (c *Cache) Save(audioPath string, candidates []chapters.Candidate, withTitles bool) error {
	if len(candidates) == 0 {
		return nil
	}
	path := SidecarPath(audioPath)

	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat cache file: %w", err)
	}

	records := make([]record, 0, len(candidates))
	for _, candidate := range candidates {
		rec := record{Number: candidate.Number, Start: candidate.Start}
		if withTitles {
			title := candidate.Title
			rec.Title = &title
		}
		records = append(records, rec)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	c.logger.Debug("saved chapter cache",
		logging.String("path", path),
		logging.Int("chapter_count", len(records)))

	return nil
}
