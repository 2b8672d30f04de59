package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/lister/internal/model"
	"github.com/nikbrunner/lister/internal/search"
	"github.com/nikbrunner/lister/internal/surface"
	"github.com/nikbrunner/lister/internal/tui/layout"
)

// Mode is the input mode of the App.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
)

// SortMode is the order applied by the last sort.
type SortMode int

const (
	SortNone SortMode = iota
	SortAscending
	SortDescending
)

func (s SortMode) String() string {
	switch s {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return "none"
	}
}

// MessageType selects how the status message is styled.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageError
)

// App is the bubbletea model browsing a Store rendered into a Buffer.
type App struct {
	store        *model.Store
	buffer       *surface.Buffer
	keys         KeyMap
	styles       Styles
	render       surface.RenderOptions
	layoutConfig layout.LayoutConfig
	text         search.Text
	copy         func(string) error

	mode        Mode
	filterInput textinput.Model
	filterQuery string
	sortMode    SortMode

	messageText string
	messageType MessageType

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store        *model.Store
	Buffer       *surface.Buffer        // the Store's surface
	Keys         *KeyMap                // optional, uses default if nil
	Styles       *Styles                // optional, uses default if nil
	Render       *surface.RenderOptions // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig   // optional, uses default if nil
	Text         search.Text            // optional, search.DefaultText if nil
	Clipboard    func(string) error     // optional, system clipboard if nil
	SortMode     SortMode               // order the list was loaded with
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	render := surface.DefaultRenderOptions()
	if params.Render != nil {
		render = *params.Render
	}

	layoutConfig := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutConfig = *params.LayoutConfig
	}

	text := params.Text
	if text == nil {
		text = search.DefaultText
	}

	copyText := params.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	filterInput := textinput.New()
	filterInput.Placeholder = "Filter..."
	filterInput.Prompt = "/"
	filterInput.CharLimit = layoutConfig.Input.FilterCharLimit
	filterInput.Width = layoutConfig.Input.FilterWidth

	app := App{
		store:        params.Store,
		buffer:       params.Buffer,
		keys:         keys,
		styles:       styles,
		render:       render,
		layoutConfig: layoutConfig,
		text:         text,
		copy:         copyText,
		filterInput:  filterInput,
		sortMode:     params.SortMode,
		width:        80,
		height:       24,
	}

	app.ensureFocus()
	return app
}

// WithDimensions returns a copy of the App sized to the given terminal.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Store returns the underlying store.
func (a App) Store() *model.Store {
	return a.store
}

// Mode returns the current input mode.
func (a App) Mode() Mode {
	return a.mode
}

// SortMode returns the order applied by the last sort.
func (a App) SortMode() SortMode {
	return a.sortMode
}

// FilterQuery returns the active filter query.
func (a App) FilterQuery() string {
	return a.filterQuery
}

// Message returns the current status message.
func (a App) Message() string {
	return a.messageText
}

// FocusedData returns the data of the focused item.
func (a App) FocusedData() (any, bool) {
	item, ok := a.store.FocusedItem()
	if !ok {
		return nil, false
	}
	return item.Data, true
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if a.mode == ModeFilter {
			return a.updateFilter(msg)
		}
		return a.updateNormal(msg)
	}

	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.clearMessage()

	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.lastKeyWasG = false
			_ = a.store.Goto(model.FirstItem)
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		a.store.Next()

	case key.Matches(msg, a.keys.Up):
		a.store.Prev()

	case key.Matches(msg, a.keys.Bottom):
		_ = a.store.Goto(model.LastItem)

	case key.Matches(msg, a.keys.Mark):
		a.toggleMark()

	case key.Matches(msg, a.keys.UnmarkAll):
		if n := len(a.store.MarkedItems()); n > 0 {
			a.store.MarkAll(false)
			a.setMessage(MessageInfo, fmt.Sprintf("unmarked %d", n))
		}

	case key.Matches(msg, a.keys.Filter):
		a.mode = ModeFilter
		a.filterInput.SetValue(a.filterQuery)
		a.filterInput.CursorEnd()
		return a, a.filterInput.Focus()

	case key.Matches(msg, a.keys.Sort):
		a.cycleSort()

	case key.Matches(msg, a.keys.MoveUp):
		a.shift(a.store.MoveUp)

	case key.Matches(msg, a.keys.MoveDown):
		a.shift(a.store.MoveDown)

	case key.Matches(msg, a.keys.Delete):
		a.deleteItems()

	case key.Matches(msg, a.keys.Yank):
		a.yank()
	}

	a.ensureFocus()
	return a, nil
}

func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.filterInput.Blur()
		a.filterInput.Reset()
		a.applyFilter("")
		return a, nil

	case tea.KeyEnter:
		a.mode = ModeNormal
		a.filterInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(msg)
	if q := a.filterInput.Value(); q != a.filterQuery {
		a.applyFilter(q)
	}
	return a, cmd
}

// applyFilter shows only items fuzzy matching query; an empty query shows
// everything.
func (a *App) applyFilter(query string) {
	a.filterQuery = query
	if err := a.store.SetFilter(search.FuzzyPredicate(query, a.text)); err != nil {
		a.setMessage(MessageError, err.Error())
		return
	}
	a.ensureFocus()
}

func (a *App) toggleMark() {
	item, ok := a.store.FocusedItem()
	if !ok {
		return
	}
	if !a.store.CanMark(item) {
		a.setMessage(MessageError, "item cannot be marked")
		return
	}
	if _, err := a.store.Mark(model.Point, !item.Marked); err != nil {
		a.setMessage(MessageError, err.Error())
		return
	}
	a.store.Next()
}

// cycleSort sorts the focused level ascending, then descending, alternating.
func (a *App) cycleSort() {
	next := SortAscending
	if a.sortMode == SortAscending {
		next = SortDescending
	}
	if _, err := a.store.SortDWIM(search.Less(a.text, next == SortDescending)); err != nil {
		a.setMessage(MessageError, err.Error())
		return
	}
	a.sortMode = next
	a.setMessage(MessageSuccess, "sorted "+next.String())
}

// shift moves the focused item among its siblings.
func (a *App) shift(move func(model.Position) (surface.Anchor, error)) {
	if _, ok := a.store.FocusedItem(); !ok {
		return
	}
	if _, err := move(model.Point); err != nil {
		var structure model.StructureError
		if errors.As(err, &structure) {
			a.setMessage(MessageInfo, structure.Reason)
			return
		}
		a.setMessage(MessageError, err.Error())
		return
	}
	a.sortMode = SortNone
}

// deleteItems removes the marked items, or the focused one if none are
// marked. Children of a removed item move up a level.
func (a *App) deleteItems() {
	var anchors []surface.Anchor
	for _, item := range a.store.MarkedItems() {
		anchors = append(anchors, item.Anchor)
	}
	if len(anchors) == 0 {
		item, ok := a.store.FocusedItem()
		if !ok {
			return
		}
		anchors = append(anchors, item.Anchor)
	}

	err := a.store.Locked(func() error {
		for _, anchor := range anchors {
			if err := a.store.Remove(model.AtAnchor(anchor)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		a.setMessage(MessageError, err.Error())
		return
	}
	a.setMessage(MessageSuccess, fmt.Sprintf("removed %d", len(anchors)))
}

// yank copies the text of the marked items, or of the focused one, one
// per line.
func (a *App) yank() {
	items := a.store.MarkedItems()
	if len(items) == 0 {
		item, ok := a.store.FocusedItem()
		if !ok {
			return
		}
		items = []*model.Item{item}
	}

	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = a.text(item.Data)
	}
	if err := a.copy(strings.Join(texts, "\n")); err != nil {
		a.setMessage(MessageError, "clipboard: "+err.Error())
		return
	}
	a.setMessage(MessageSuccess, fmt.Sprintf("yanked %d", len(items)))
}

// ensureFocus focuses the first visible item when nothing has focus.
func (a *App) ensureFocus() {
	if _, ok := a.store.Focus(); ok || a.store.VisibleLen() == 0 {
		return
	}
	_ = a.store.Goto(model.FirstItem)
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
}
