package language

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "locstat.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("should return empty config for missing file", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
		require.NoError(t, err)
		assert.Empty(t, cfg.Languages)
		assert.Zero(t, cfg.Workers)
	})

	t.Run("should parse defaults and languages", func(t *testing.T) {
		path := writeConfig(t, `
sort = "code"
output = "markdown"
workers = 4
exclude = ["**/testdata/**"]

[[languages]]
name = "Zig"
extensions = ["zig"]
single = ["//"]

[[languages]]
name = "Pascal"
extensions = ["pas"]
single = ["//"]

[[languages.multi]]
start = "{"
end = "}"
`)

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "code", cfg.Sort)
		assert.Equal(t, "markdown", cfg.Output)
		assert.Equal(t, 4, cfg.Workers)
		assert.Equal(t, []string{"**/testdata/**"}, cfg.Exclude)
		require.Len(t, cfg.Languages, 2)

		r := cfg.Registry()
		spec, ok := r.Lookup("pas")
		require.True(t, ok)
		assert.Equal(t, "Pascal", spec.Name)
		require.Len(t, spec.MultiLine, 1)
		assert.Equal(t, "{", spec.MultiLine[0].Start)
		assert.Equal(t, "}", spec.MultiLine[0].End)
	})

	t.Run("should reject invalid toml", func(t *testing.T) {
		path := writeConfig(t, `sort = [broken`)
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("should reject a language without a name", func(t *testing.T) {
		path := writeConfig(t, `
[[languages]]
extensions = ["zig"]
`)
		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no name")
	})

	t.Run("should reject a language without extensions", func(t *testing.T) {
		path := writeConfig(t, `
[[languages]]
name = "Zig"
`)
		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no extensions")
	})

	t.Run("should reject an empty block delimiter", func(t *testing.T) {
		path := writeConfig(t, `
[[languages]]
name = "Zig"
extensions = ["zig"]

[[languages.multi]]
start = "/*"
end = ""
`)
		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "delimiter")
	})

	t.Run("should build default registry when no languages defined", func(t *testing.T) {
		cfg := &Config{}
		assert.Equal(t, Default().Len(), cfg.Registry().Len())
	})
}
