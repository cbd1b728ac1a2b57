package config

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateChapters(); err != nil {
		return err
	}
	if err := c.validateASR(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.InputDir == "" {
		return errors.New("paths.input_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.InputDir == c.Paths.OutputDir {
		return errors.New("paths.input_dir and paths.output_dir must differ")
	}
	if c.Paths.DoneDir == c.Paths.InputDir {
		return errors.New("paths.done_dir must differ from paths.input_dir")
	}
	return nil
}

func (c *Config) validateChapters() error {
	if c.Chapters.PrerollMS < 0 {
		return errors.New("chapters.preroll_ms must not be negative")
	}
	return nil
}

func (c *Config) validateASR() error {
	switch c.ASR.Device {
	case "cpu", "cuda":
	default:
		return fmt.Errorf("asr.device must be \"cpu\" or \"cuda\", got %q", c.ASR.Device)
	}
	if _, err := language.ParseBase(c.ASR.Language); err != nil {
		return fmt.Errorf("asr.language %q is not an ISO 639 language code: %w", c.ASR.Language, err)
	}
	if c.ASR.ChunkThresholdSeconds < 0 {
		return errors.New("asr.chunk_threshold_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
