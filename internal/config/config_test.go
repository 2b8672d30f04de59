package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/lister/internal/config"
	"gotest.tools/v3/assert"
)

func TestLoad_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	assert.DeepEqual(t, *cfg, config.DefaultConfig())
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoad_CommentsAndMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
  // wider indentation
  "indentWidth": 4,
  "defaultSort": "desc", /* sort on load */
}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	assert.NilError(t, err)

	assert.Equal(t, cfg.IndentWidth, 4)
	assert.Equal(t, cfg.DefaultSort, config.SortDescending)
	assert.Equal(t, cfg.FocusGlyph, ">")
	assert.Equal(t, cfg.MarkGlyph, "*")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "syntax", data: `{"indentWidth": }`, want: "parsing"},
		{name: "sort", data: `{"defaultSort": "random"}`, want: "defaultSort"},
		{name: "indent", data: `{"indentWidth": 40}`, want: "too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := config.Load(path)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := config.DefaultConfig()
	cfg.MarkGlyph = "+"
	cfg.Header = "Todo"

	assert.NilError(t, config.Save(path, &cfg))

	loaded, err := config.Load(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, *loaded, cfg)
}
