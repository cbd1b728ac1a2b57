package config

const (
	defaultInputDir              = "~/chapsplit/input"
	defaultOutputDir             = "~/chapsplit/output"
	defaultDoneDir               = "~/chapsplit/done"
	defaultLogDir                = "~/.local/share/chapsplit/logs"
	defaultHistoryPath           = "~/.local/share/chapsplit/history.db"
	defaultPrerollMS             = 500
	defaultASRBinary             = "whisper"
	defaultASRModel              = "small"
	defaultASRModelDir           = "~/.cache/chapsplit/models"
	defaultASRDevice             = "cpu"
	defaultASRLanguage           = "en"
	defaultASRChunkThresholdSecs = 3600
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
			DoneDir:   defaultDoneDir,
			LogDir:    defaultLogDir,
		},
		Chapters: Chapters{
			ExtractTitles: true,
			PrerollMS:     defaultPrerollMS,
			CacheEnabled:  true,
		},
		ASR: ASR{
			Binary:                defaultASRBinary,
			Model:                 defaultASRModel,
			ModelDir:              defaultASRModelDir,
			Device:                defaultASRDevice,
			Language:              defaultASRLanguage,
			ChunkThresholdSeconds: defaultASRChunkThresholdSecs,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
