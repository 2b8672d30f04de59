// lister is a terminal outliner: it loads a nested list from an HTML or
// indented text file and lets you browse, filter, mark, sort and reorder it.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/nikbrunner/lister/internal/config"
	"github.com/nikbrunner/lister/internal/exporter"
	"github.com/nikbrunner/lister/internal/importer"
	"github.com/nikbrunner/lister/internal/model"
	"github.com/nikbrunner/lister/internal/picker"
	"github.com/nikbrunner/lister/internal/search"
	"github.com/nikbrunner/lister/internal/surface"
	"github.com/nikbrunner/lister/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the global flags.
type options struct {
	configPath string
	debug      bool
	noColor    bool
	sort       string
}

func run(args []string) error {
	var opts options

	flagSet := pflag.NewFlagSet("lister", pflag.ContinueOnError)
	flagSet.StringVar(&opts.configPath, "config", "", "config file (default: ~/.config/lister/config.json)")
	flagSet.BoolVar(&opts.debug, "debug", false, "log debug output to stderr")
	flagSet.BoolVar(&opts.noColor, "no-color", false, "disable colors")
	flagSet.StringVar(&opts.sort, "sort", "", `sort the list after loading: "asc" or "desc"`)
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	args = flagSet.Args()
	if len(args) == 0 {
		printHelp(flagSet)
		return errors.New("missing file")
	}
	if args[0] == "help" {
		printHelp(flagSet)
		return nil
	}

	level := slog.LevelWarn
	if opts.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if opts.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	switch args[0] {
	case "print":
		if len(args) < 2 {
			return errors.New("usage: lister print <file>")
		}
		return runPrint(args[1], cfg, logger)
	case "export":
		if len(args) < 2 {
			return errors.New("usage: lister export <file> [path]")
		}
		var outputPath string
		if len(args) >= 3 {
			outputPath = args[2]
		}
		return runExport(args[1], outputPath, cfg, logger)
	case "pick":
		if len(args) < 3 {
			return errors.New("usage: lister pick <file> <query>")
		}
		return runPick(args[1], strings.Join(args[2:], " "), cfg, logger)
	default:
		return runTUI(args[0], cfg, logger)
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	help := `lister - vim-style outliner for nested lists

Usage:
  lister [flags] <file>                Open the list in the interactive TUI
  lister [flags] print <file>          Print the list as an indented outline
  lister [flags] export <file> [path]  Export the list as a Netscape HTML file
  lister [flags] pick <file> <query>   Fuzzy search, pick an item and print it
  lister help                          Show this help

Files ending in .html or .htm are read as bookmark files or nested
<ul>/<ol> lists, anything else as an indented text outline. Use - to
read an outline from stdin.

TUI Keybindings:
  j/k         Move down/up
  gg/G        Jump to top/bottom
  space       Toggle mark and move down
  u           Unmark all
  /           Filter (Enter keeps, Esc clears)
  o           Sort the current level, alternating asc/desc
  J/K         Move item down/up among its siblings
  d           Delete marked items, or the focused one
  y           Copy marked items, or the focused one
  q           Quit and print the marked items

Flags:
`
	fmt.Fprint(os.Stderr, help)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("getting config path: %w", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if opts.sort != "" {
		cfg.DefaultSort = opts.sort
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("--sort: %w", err)
		}
	}
	return cfg, nil
}

// readList parses path as HTML or as an outline, by extension.
func readList(path string) ([]any, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		r = file
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		data, err := importer.ParseHTML(r)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return data, nil
	default:
		data, err := importer.ParseOutline(r)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return data, nil
	}
}

// itemText is the searchable text of list data. Links match on their URL
// as well as their title.
func itemText(data any) string {
	if link, ok := data.(importer.Link); ok {
		return link.Title + " " + link.URL
	}
	return search.DefaultText(data)
}

// openList loads path into a new store over a fresh buffer, sorted as
// configured.
func openList(path string, cfg *config.Config, logger *slog.Logger) (*model.Store, *surface.Buffer, tui.SortMode, error) {
	data, err := readList(path)
	if err != nil {
		return nil, nil, tui.SortNone, err
	}

	var header []string
	if cfg.Header != "" {
		header = []string{cfg.Header}
	}

	buffer := surface.NewBuffer(surface.BufferParams{Logger: logger})
	store, err := model.New(model.StoreParams{
		Surface: buffer,
		Mapper:  func(d any) []string { return []string{search.DefaultText(d)} },
		Data:    data,
		Header:  header,
		Logger:  logger,
	})
	if err != nil {
		return nil, nil, tui.SortNone, err
	}

	sortMode := tui.SortNone
	switch cfg.DefaultSort {
	case config.SortAscending:
		sortMode = tui.SortAscending
	case config.SortDescending:
		sortMode = tui.SortDescending
	}
	if sortMode != tui.SortNone {
		less := search.Less(itemText, sortMode == tui.SortDescending)
		if _, err := store.SortRange(less, model.Position{}, model.Position{}); err != nil {
			return nil, nil, tui.SortNone, fmt.Errorf("sorting: %w", err)
		}
	}

	return store, buffer, sortMode, nil
}

func renderOptions(cfg *config.Config) surface.RenderOptions {
	opts := surface.DefaultRenderOptions()
	opts.IndentWidth = cfg.IndentWidth
	opts.FocusGlyph = cfg.FocusGlyph
	opts.MarkGlyph = cfg.MarkGlyph
	return opts
}

// runTUI runs the interactive TUI and prints the marked items on exit.
func runTUI(path string, cfg *config.Config, logger *slog.Logger) error {
	store, buffer, sortMode, err := openList(path, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	render := renderOptions(cfg)
	app := tui.NewApp(tui.AppParams{
		Store:    store,
		Buffer:   buffer,
		Render:   &render,
		Text:     itemText,
		SortMode: sortMode,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running app: %w", err)
	}

	for _, data := range store.MarkedData() {
		fmt.Println(search.DefaultText(data))
	}
	return nil
}

// runPrint prints the list as an indented outline.
func runPrint(path string, cfg *config.Config, logger *slog.Logger) error {
	store, buffer, _, err := openList(path, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Print(buffer.Render(renderOptions(cfg)))
	return nil
}

// runExport writes the list as a Netscape bookmark file.
func runExport(path, outputPath string, cfg *config.Config, logger *slog.Logger) error {
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			return fmt.Errorf("getting default export path: %w", err)
		}
	}

	store, _, _, err := openList(path, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	data, err := store.GetAllDataTree(model.Position{}, model.Position{})
	if err != nil {
		return err
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := os.WriteFile(outputPath, []byte(exporter.ExportHTML(data, title)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	fmt.Printf("Exported %d items to %s\n", store.Len(), outputPath)
	return nil
}

// runPick fuzzy searches the list and prints the picked item. Links print
// their URL.
func runPick(path, query string, cfg *config.Config, logger *slog.Logger) error {
	store, _, _, err := openList(path, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	results := search.FuzzyItems(store, query, itemText)
	if len(results) == 0 {
		fmt.Fprintf(os.Stderr, "No items found for '%s'\n", query)
		return nil
	}

	var selected *model.Item
	if len(results) == 1 {
		selected = results[0].Item
	} else {
		program := tea.NewProgram(picker.New(results, query), tea.WithOutput(os.Stderr))
		finalModel, err := program.Run()
		if err != nil {
			return fmt.Errorf("running picker: %w", err)
		}
		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return nil
		}
		selected = finalPicker.Selected()
	}
	if selected == nil {
		return nil
	}

	if link, ok := selected.Data.(importer.Link); ok {
		fmt.Println(link.URL)
		return nil
	}
	fmt.Println(search.DefaultText(selected.Data))
	return nil
}
