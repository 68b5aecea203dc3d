package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "Formato a4.docx", cfg.Templates.CompactLetter)
	assert.Equal(t, "Formato 4x1.docx", cfg.Templates.BannerStrip)
	assert.Equal(t, 24, cfg.Storage.CleanupHours)
	assert.Equal(t, 120, cfg.Converter.TimeoutSeconds)
	assert.Equal(t, 2, cfg.Converter.MaxConcurrent)
	assert.Equal(t, 300, cfg.Layout.DPI)
	assert.Equal(t, 100.0, cfg.Layout.WidthCM)
	assert.Equal(t, 150.0, cfg.Layout.HeightCM)
	assert.Equal(t, 3, cfg.Pipeline.VariantWorkers)
}

func TestLoadCaching(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestLoadConcurrent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	const goroutines = 8
	configs := make([]*Config, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cfg, err := Load()
			assert.NoError(t, err)
			configs[i] = cfg
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, configs[0], configs[i])
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "afiche.toml")
	content := `
[server]
port = 9999

[storage]
dir = "/tmp/afiche-test"
cleanup_hours = 2

[converter]
binary = "soffice"

[[auth.questions]]
text = "What is the project name?"
answer = "afiche"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "/tmp/afiche-test", cfg.Storage.Dir)
	assert.Equal(t, 2, cfg.Storage.CleanupHours)
	assert.Equal(t, "soffice", cfg.Converter.Binary)

	// Defaults still apply for unset sections
	assert.Equal(t, 300, cfg.Layout.DPI)

	require.Len(t, cfg.Auth.Questions, 1)
	assert.Equal(t, "What is the project name?", cfg.Auth.Questions[0].Text)
	assert.Equal(t, "afiche", cfg.Auth.Questions[0].Answer)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
