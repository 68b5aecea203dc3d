// Package config holds the afiche generator configuration, loaded with
// Viper from afiche.toml and AFICHE_-prefixed environment variables.
package config

// Config represents the full service configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Converter ConverterConfig `mapstructure:"converter"`
	Layout    LayoutConfig    `mapstructure:"layout"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Auth      AuthConfig      `mapstructure:"auth"`
}

// ServerConfig configures the HTTP surface
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TemplatesConfig locates the source document templates.
// The two template kinds are provisioned before the service starts and are
// never mutated at runtime.
type TemplatesConfig struct {
	Dir           string `mapstructure:"dir"`
	CompactLetter string `mapstructure:"compact_letter"` // filename of the compact (a4) template
	BannerStrip   string `mapstructure:"banner_strip"`   // filename of the banner (4x1) template
}

// StorageConfig configures the temporary artifact store
type StorageConfig struct {
	Dir                  string `mapstructure:"dir"`
	CleanupHours         int    `mapstructure:"cleanup_hours"`          // files older than this are evicted
	SweepIntervalMinutes int    `mapstructure:"sweep_interval_minutes"` // how often the eviction sweep runs
}

// ConverterConfig configures the external document converter
type ConverterConfig struct {
	Binary         string `mapstructure:"binary"`          // LibreOffice executable
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // per-conversion timeout
	MaxConcurrent  int    `mapstructure:"max_concurrent"`  // concurrent external conversions
}

// LayoutConfig configures the large-format layout transformer.
// The pixel target is derived from the physical size and DPI, never set
// directly.
type LayoutConfig struct {
	RendererBinary string  `mapstructure:"renderer_binary"` // pdftoppm executable
	DPI            int     `mapstructure:"dpi"`
	WidthCM        float64 `mapstructure:"width_cm"`
	HeightCM       float64 `mapstructure:"height_cm"`
	MaxConcurrent  int     `mapstructure:"max_concurrent"` // concurrent external renders
}

// PipelineConfig configures orchestrator concurrency
type PipelineConfig struct {
	VariantWorkers int `mapstructure:"variant_workers"` // variants generated in parallel per request
}

// AuthConfig configures the security-question sequence
type AuthConfig struct {
	Questions       []QuestionConfig `mapstructure:"questions"`
	SessionTTLHours int              `mapstructure:"session_ttl_hours"` // stale sessions older than this are evicted
}

// QuestionConfig is one question/answer pair in the fixed sequence
type QuestionConfig struct {
	Text   string `mapstructure:"text"`
	Answer string `mapstructure:"answer"`
}
