// Package ui wires the session engine to a bubbletea program: one model
// routing keys and mouse clicks into session transitions, and a renderer
// mapping the session's view model to the screen.
package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/4nzor/dbrowse/internal/config"
	"github.com/4nzor/dbrowse/internal/export"
	"github.com/4nzor/dbrowse/internal/history"
	"github.com/4nzor/dbrowse/internal/session"
	"github.com/4nzor/dbrowse/internal/store"
	"github.com/4nzor/dbrowse/internal/ui/components"
	"github.com/4nzor/dbrowse/internal/ui/theme"
)

// App is the main application model
type App struct {
	ctx     context.Context
	cfg     *config.Config
	theme   theme.Theme
	session *session.Session
	store   *store.Store
	history *history.Store // nil when persistence is off

	width  int
	height int

	searchInput  textinput.Model
	whereInput   textinput.Model
	orderInput   textinput.Model
	consoleInput textinput.Model

	showHelp bool
	showForm bool
	form     *components.ConnectionForm
}

// New creates the application model over a ready session.
func New(ctx context.Context, cfg *config.Config, sess *session.Session, st *store.Store, hist *history.Store) *App {
	th := theme.GetTheme(cfg.UI.Theme)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"

	where := textinput.New()
	where.Prompt = "WHERE "

	order := textinput.New()
	order.Prompt = "ORDER BY "

	console := textinput.New()
	console.Prompt = "> "
	console.CharLimit = 0

	return &App{
		ctx:          ctx,
		cfg:          cfg,
		theme:        th,
		session:      sess,
		store:        st,
		history:      hist,
		searchInput:  search,
		whereInput:   where,
		orderInput:   order,
		consoleInput: console,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if len(a.session.Connections()) > 0 {
		a.session.SelectConnection(a.ctx, 0)
		a.seedConsoleHistory()
	}
	return textinput.Blink
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.MouseMsg:
		if a.cfg.UI.MouseEnabled {
			return a.handleMouse(msg)
		}
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		a.session.Close()
		return a, tea.Quit
	}

	if a.showHelp {
		if key == "?" || key == "esc" || key == "q" {
			a.showHelp = false
		}
		return a, nil
	}
	if a.showForm {
		return a.handleFormKey(msg)
	}
	if a.session.ConsoleOpen() {
		return a.handleConsoleKey(msg)
	}

	inText := a.inTextField()

	switch key {
	case "tab":
		a.session.CycleFocus()
		a.syncInputFocus()
		return a, nil
	case "ctrl+e":
		a.session.EnterConsole()
		a.consoleInput.SetValue(a.session.ConsoleText())
		a.consoleInput.CursorEnd()
		a.syncInputFocus()
		return a, nil
	case "ctrl+n":
		a.session.NextPage(a.ctx)
		return a, nil
	case "ctrl+p":
		a.session.PrevPage(a.ctx)
		return a, nil
	case "ctrl+x":
		a.session.ClearFilters(a.ctx)
		a.whereInput.SetValue("")
		a.orderInput.SetValue("")
		return a, nil
	case "up":
		a.session.MoveUp(session.SchemaWindow(a.schemaPanelHeight()))
		a.syncInputFocus()
		return a, nil
	case "down":
		a.session.MoveDown(session.SchemaWindow(a.schemaPanelHeight()))
		a.syncInputFocus()
		return a, nil
	case "enter":
		return a.handleEnter()
	case "esc":
		return a.handleEscape()
	}

	if !inText {
		switch key {
		case "q":
			a.session.Close()
			return a, tea.Quit
		case "?":
			a.showHelp = true
			return a, nil
		case "a":
			a.showForm = true
			a.form = components.NewConnectionForm()
			return a, nil
		case "f":
			a.session.SetFocus(session.FocusSchemaSearch)
			a.syncInputFocus()
			return a, nil
		case "r", "f5":
			a.session.ReloadObjects(a.ctx)
			a.session.LoadRows(a.ctx, true)
			return a, nil
		case " ", "space":
			if obj, ok := a.session.CurrentObject(); ok {
				a.session.ToggleDetails(a.ctx, obj.Schema, obj.Name)
			}
			return a, nil
		case "e":
			a.exportPage(export.FormatCSV)
			return a, nil
		case "j":
			a.exportPage(export.FormatJSON)
			return a, nil
		case "y":
			a.copyPage()
			return a, nil
		}
		return a, nil
	}

	// Focused text field consumes the keystroke.
	var cmd tea.Cmd
	switch a.session.Focus() {
	case session.FocusSchemaSearch:
		a.searchInput, cmd = a.searchInput.Update(msg)
		a.session.SetSearchFilter(a.searchInput.Value())
	case session.FocusDataWhere:
		a.whereInput, cmd = a.whereInput.Update(msg)
	case session.FocusDataOrderBy:
		a.orderInput, cmd = a.orderInput.Update(msg)
	}
	return a, cmd
}

func (a *App) handleEnter() (tea.Model, tea.Cmd) {
	switch a.session.Focus() {
	case session.FocusConnections:
		a.session.SelectConnection(a.ctx, a.session.SelectedConnection())
		a.seedConsoleHistory()
	case session.FocusSchemaSearch:
		a.session.SetFocus(session.FocusSchemaList)
		a.syncInputFocus()
	case session.FocusSchemaList:
		a.loadSelectedObject()
	case session.FocusDataWhere:
		a.session.ApplyWhere(a.ctx, a.whereInput.Value())
		a.whereInput.SetValue(a.session.Where())
	case session.FocusDataOrderBy:
		a.session.ApplyOrderBy(a.ctx, a.orderInput.Value())
		a.orderInput.SetValue(a.session.OrderBy())
	}
	return a, nil
}

func (a *App) handleEscape() (tea.Model, tea.Cmd) {
	switch a.session.Focus() {
	case session.FocusSchemaSearch:
		a.searchInput.SetValue("")
		a.session.ClearSearchFilter()
		a.session.SetFocus(session.FocusSchemaList)
		a.syncInputFocus()
	case session.FocusDataWhere, session.FocusDataOrderBy:
		a.session.SetFocus(session.FocusSchemaList)
		a.syncInputFocus()
	}
	return a, nil
}

func (a *App) handleConsoleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.session.LeaveConsole()
		a.syncInputFocus()
		return a, nil
	case "f5", "ctrl+r":
		a.session.SetConsoleText(a.consoleInput.Value())
		a.session.ExecuteConsole(a.ctx)
		a.persistConsoleQuery()
		return a, nil
	case "up":
		a.session.HistoryOlder()
		a.consoleInput.SetValue(a.session.ConsoleText())
		a.consoleInput.CursorEnd()
		return a, nil
	case "down":
		a.session.HistoryNewer()
		a.consoleInput.SetValue(a.session.ConsoleText())
		a.consoleInput.CursorEnd()
		return a, nil
	}

	var cmd tea.Cmd
	a.consoleInput, cmd = a.consoleInput.Update(msg)
	a.session.SetConsoleText(a.consoleInput.Value())
	return a, cmd
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.showForm = false
		a.form = nil
		return a, nil
	case "up", "shift+tab":
		a.form.MoveField(-1)
		return a, nil
	case "down", "tab":
		a.form.MoveField(1)
		return a, nil
	case "enter":
		cfg, err := a.form.Descriptor()
		if err != nil {
			a.form.SetError(err.Error())
			return a, nil
		}
		if err := a.store.Save(cfg); err != nil {
			a.form.SetError(err.Error())
			return a, nil
		}
		a.showForm = false
		a.form = nil
		a.reloadConnections()
		a.session.Status().Pushf("Saved connection %s.", cfg.Name)
		return a, nil
	}
	return a, a.form.Update(msg)
}

// reloadConnections re-reads the descriptors and rebuilds the session around
// them, preserving the config and factory.
func (a *App) reloadConnections() {
	configs, err := a.store.LoadAll()
	if err != nil {
		a.session.Status().Pushf("Load connections error: %v", err)
		return
	}
	a.session.ReplaceConnections(configs)
}

func (a *App) loadSelectedObject() {
	if _, ok := a.session.CurrentObject(); !ok {
		return
	}
	a.session.LoadRows(a.ctx, true)
	a.whereInput.SetValue(a.session.Where())
	a.orderInput.SetValue(a.session.OrderBy())
}

// syncInputFocus gives the cursor to the text field matching the session
// focus and blurs the rest.
func (a *App) syncInputFocus() {
	a.searchInput.Blur()
	a.whereInput.Blur()
	a.orderInput.Blur()
	a.consoleInput.Blur()

	switch a.session.Focus() {
	case session.FocusSchemaSearch:
		a.searchInput.Focus()
	case session.FocusDataWhere:
		a.whereInput.SetValue(a.session.Where())
		a.whereInput.Focus()
		a.whereInput.CursorEnd()
	case session.FocusDataOrderBy:
		a.orderInput.SetValue(a.session.OrderBy())
		a.orderInput.Focus()
		a.orderInput.CursorEnd()
	case session.FocusConsole:
		a.consoleInput.Focus()
	}
}

func (a *App) inTextField() bool {
	switch a.session.Focus() {
	case session.FocusSchemaSearch, session.FocusDataWhere, session.FocusDataOrderBy:
		return true
	}
	return false
}

func (a *App) exportPage(format export.Format) {
	obj, ok := a.session.CurrentObject()
	if !ok || len(a.session.Columns()) == 0 {
		a.session.Status().Pushf("Nothing to export.")
		return
	}
	conns := a.session.Connections()
	connName := "dbrowse"
	if idx := a.session.ActiveConnection(); idx >= 0 && idx < len(conns) {
		connName = conns[idx].Name
	}
	path := export.Filename(connName, obj.Display(), format, time.Now())
	if err := export.Page(path, format, a.session.Columns(), a.session.Rows()); err != nil {
		a.session.Status().Pushf("Export error: %v", err)
		return
	}
	a.session.Status().Pushf("Exported %d rows to %s.", len(a.session.Rows()), path)
}

func (a *App) copyPage() {
	if len(a.session.Columns()) == 0 {
		a.session.Status().Pushf("Nothing to copy.")
		return
	}
	text, err := export.CSVString(a.session.Columns(), a.session.Rows())
	if err != nil {
		a.session.Status().Pushf("Copy error: %v", err)
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		a.session.Status().Pushf("Clipboard error: %v", err)
		return
	}
	a.session.Status().Pushf("Copied %d rows to clipboard.", len(a.session.Rows()))
}

// seedConsoleHistory restores persisted queries for the active connection.
func (a *App) seedConsoleHistory() {
	if a.history == nil || !a.session.Connected() {
		return
	}
	conns := a.session.Connections()
	idx := a.session.ActiveConnection()
	if idx < 0 || idx >= len(conns) {
		return
	}
	queries, err := a.history.Recent(conns[idx].Name, a.cfg.History.MaxEntries)
	if err != nil {
		a.session.Status().Pushf("History load error: %v", err)
		return
	}
	a.session.SeedHistory(queries)
}

// persistConsoleQuery writes the last successful console query to disk.
func (a *App) persistConsoleQuery() {
	if a.history == nil || a.session.ConsoleError() != "" {
		return
	}
	conns := a.session.Connections()
	idx := a.session.ActiveConnection()
	if idx < 0 || idx >= len(conns) {
		return
	}
	name := conns[idx].Name
	if err := a.history.Add(name, a.session.ConsoleText()); err != nil {
		a.session.Status().Pushf("History save error: %v", err)
		return
	}
	if err := a.history.Prune(name, a.cfg.History.MaxEntries); err != nil {
		a.session.Status().Pushf("History prune error: %v", err)
	}
}
