package asr

// Config captures runtime settings for speech recognition runs.
type Config struct {
	// Binary is the whisper CLI used for transcription.
	Binary string
	// Model is the whisper model to use (e.g., "small").
	Model string
	// ModelDir is where downloaded models are cached.
	ModelDir string
	// Device selects the compute device ("cpu" or "cuda").
	Device string
	// Language is the ISO 639-1 language code forced during transcription.
	Language string
	// ChunkThresholdSeconds is the duration above which recordings are
	// transcribed in chunks to bound memory use. Zero disables chunking.
	ChunkThresholdSeconds float64
}

// Transcription defaults.
const (
	DefaultBinary                = "whisper"
	DefaultModel                 = "small"
	DefaultDevice                = "cpu"
	DefaultLanguage              = "en"
	DefaultChunkThresholdSeconds = 3600
	ChunkLengthSeconds           = 15 * 60
	CPUDevice                    = "cpu"
	CUDADevice                   = "cuda"
)

func (c Config) withDefaults() Config {
	if c.Binary == "" {
		c.Binary = DefaultBinary
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Device == "" {
		c.Device = DefaultDevice
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	return c
}
