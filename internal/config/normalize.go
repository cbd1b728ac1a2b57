package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeASR(); err != nil {
		return err
	}
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.DoneDir, err = expandPath(c.Paths.DoneDir); err != nil {
		return fmt.Errorf("paths.done_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeASR() error {
	c.ASR.Binary = strings.TrimSpace(c.ASR.Binary)
	if c.ASR.Binary == "" {
		c.ASR.Binary = defaultASRBinary
	}
	c.ASR.Model = strings.TrimSpace(c.ASR.Model)
	if c.ASR.Model == "" {
		c.ASR.Model = defaultASRModel
	}
	c.ASR.Device = strings.ToLower(strings.TrimSpace(c.ASR.Device))
	if c.ASR.Device == "" {
		c.ASR.Device = defaultASRDevice
	}
	c.ASR.Language = strings.ToLower(strings.TrimSpace(c.ASR.Language))
	if c.ASR.Language == "" {
		c.ASR.Language = defaultASRLanguage
	}
	if strings.TrimSpace(c.ASR.ModelDir) != "" {
		var err error
		if c.ASR.ModelDir, err = expandPath(c.ASR.ModelDir); err != nil {
			return fmt.Errorf("asr.model_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	var err error
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
