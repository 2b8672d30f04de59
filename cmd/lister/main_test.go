package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/lister/internal/config"
	"github.com/nikbrunner/lister/internal/importer"
	"github.com/nikbrunner/lister/internal/model"
	"github.com/nikbrunner/lister/internal/tui"
	"gotest.tools/v3/assert"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NilError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadList_ByExtension(t *testing.T) {
	outline := writeFile(t, "list.txt", "a\n  b\nc\n")
	html := writeFile(t, "list.html", `<ul><li>a<ul><li><a href="https://b.example">b</a></li></ul></li><li>c</li></ul>`)

	got, err := readList(outline)
	assert.NilError(t, err)
	assert.DeepEqual(t, got, []any{"a", []any{"b"}, "c"})

	got, err = readList(html)
	assert.NilError(t, err)
	assert.Equal(t, len(got), 3)
	link, ok := got[1].([]any)[0].(importer.Link)
	assert.Assert(t, ok)
	assert.Equal(t, link.URL, "https://b.example")
}

func TestReadList_Missing(t *testing.T) {
	_, err := readList(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Assert(t, os.IsNotExist(err))
}

func TestOpenList_SortsAndAddsHeader(t *testing.T) {
	path := writeFile(t, "list.txt", "b\na\n  z\n  y\n")
	cfg := config.DefaultConfig()
	cfg.DefaultSort = config.SortAscending
	cfg.Header = "Todo"

	store, buffer, sortMode, err := openList(path, &cfg, slog.New(slog.DiscardHandler))
	assert.NilError(t, err)

	assert.Equal(t, sortMode, tui.SortAscending)
	data, err := store.GetAllDataTree(model.Position{}, model.Position{})
	assert.NilError(t, err)
	assert.DeepEqual(t, data, []any{"a", []any{"y", "z"}, "b"})

	first, _ := buffer.First()
	assert.DeepEqual(t, buffer.Lines(first), []string{"Todo"})
}

func TestItemText(t *testing.T) {
	assert.Equal(t, itemText(importer.Link{Title: "Go", URL: "https://go.dev"}), "Go https://go.dev")
	assert.Equal(t, itemText("plain"), "plain")
}

func TestLoadConfig_SortFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := loadConfig(options{configPath: path, sort: "desc"})
	assert.NilError(t, err)
	assert.Equal(t, cfg.DefaultSort, config.SortDescending)

	_, err = loadConfig(options{configPath: path, sort: "sideways"})
	assert.ErrorContains(t, err, "--sort")
}
