package config

import (
	"github.com/spf13/viper"
)

// Default file permissions for created directories
const DefaultDirPermissions = 0o755

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	// Template defaults: the two template kinds, provisioned externally
	v.SetDefault("templates.dir", "templates")
	v.SetDefault("templates.compact_letter", "Formato a4.docx")
	v.SetDefault("templates.banner_strip", "Formato 4x1.docx")

	// Storage defaults
	v.SetDefault("storage.dir", "temp_files")
	v.SetDefault("storage.cleanup_hours", 24)
	v.SetDefault("storage.sweep_interval_minutes", 60)

	// External converter defaults
	v.SetDefault("converter.binary", "libreoffice")
	v.SetDefault("converter.timeout_seconds", 120)
	v.SetDefault("converter.max_concurrent", 2)

	// Large-format layout defaults: 100cm x 150cm at 300 DPI, press CMYK
	v.SetDefault("layout.renderer_binary", "pdftoppm")
	v.SetDefault("layout.dpi", 300)
	v.SetDefault("layout.width_cm", 100.0)
	v.SetDefault("layout.height_cm", 150.0)
	v.SetDefault("layout.max_concurrent", 1)

	// Pipeline defaults: generate the three variants in parallel
	v.SetDefault("pipeline.variant_workers", 3)

	// Auth defaults: the question set itself comes from config or the
	// SECURITY_QUESTION_N / SECURITY_ANSWER_N environment pairs
	v.SetDefault("auth.session_ttl_hours", 24)
}
