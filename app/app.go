package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spritepad/cmd"
	"spritepad/cmd/commands"
	"spritepad/config"
	"spritepad/console"
	"spritepad/keys"
	"spritepad/log"
	"spritepad/ui"
	"spritepad/ui/colorsel"
	"spritepad/ui/overlay"
	"spritepad/ui/tooltip"
)

// Run is the main entrypoint into the application.
func Run(ctx context.Context) error {
	h := newHome(ctx, config.LoadConfig(), config.LoadState())
	if watcher, err := config.NewWatcher(); err != nil {
		log.WarningLog.Printf("config watching unavailable: %v", err)
	} else {
		h.watcher = watcher
		defer watcher.Close()
	}
	defer h.appState.Close()

	p := tea.NewProgram(
		h,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // hover synthesis needs motion events
	)
	_, err := p.Run()
	return err
}

type state int

const (
	stateDefault state = iota
	// statePrompt is the state when a command is asking for an argument.
	statePrompt
	// statePalette is the state when the command palette is open.
	statePalette
	// stateHelp is the state when the help screen is displayed.
	stateHelp
	// stateConsole is the state when the console overlay is displayed.
	stateConsole
)

// hideFlashMsg clears the status bar flash. gen ties it to the flash
// that scheduled it so a newer flash is not wiped early.
type hideFlashMsg struct {
	gen uint64
}

// configChangedMsg arrives when the watcher sees the config file settle.
type configChangedMsg struct{}

type home struct {
	ctx context.Context

	// appConfig stores the user-editable configuration
	appConfig *config.Config
	// appState stores persistent application state like the last color
	appState *config.State

	// registry owns the command table; cmdCtx is handed to every dispatch
	registry *cmd.Registry
	cmdCtx   *cmd.Context
	sink     *console.Console

	// state is the current discrete state of the application
	state state
	// focusGrid routes navigation keys: true for the palette grid,
	// false for the color selector panel
	focusGrid bool

	// -- UI Components --

	sel       *colorsel.Selector
	grid      *ui.PaletteGrid
	menubar   *ui.MenuBar
	statusBar *ui.StatusBar
	tips      *tooltip.Manager
	layout    *layout

	// textInputOverlay prompts for a command argument
	textInputOverlay *overlay.TextInputOverlay
	// promptCommand is dispatched again with the prompt's value
	promptCommand string
	// textOverlay displays the help screen or the console log
	textOverlay *overlay.TextOverlay
	// cmdPalette is the fuzzy command launcher
	cmdPalette *overlay.CommandPalette
	// pendingRun carries the palette's chosen command out of its key handler
	pendingRun string

	watcher *config.Watcher

	hover    tooltip.Handle
	hovering bool
	flashGen uint64
}

func newHome(ctx context.Context, appConfig *config.Config, appState *config.State) *home {
	if err := ui.ApplyTheme(appConfig.Theme); err != nil {
		log.WarningLog.Printf("%v", err)
	}

	pal := colorsel.DefaultPalette()
	sel := colorsel.NewSelector(pal)
	grid := ui.NewPaletteGrid(sel)

	registry := cmd.NewRegistry()
	commands.RegisterAll(registry)

	h := &home{
		ctx:       ctx,
		appConfig: appConfig,
		appState:  appState,
		registry:  registry,
		sink:      console.New(),
		state:     stateDefault,
		focusGrid: true,
		sel:       sel,
		grid:      grid,
		statusBar: ui.NewStatusBar(sel),
		layout:    newLayout(grid, sel),
	}
	h.cmdCtx = cmd.NewContext(h.sink, sel, pal, h)
	h.cmdCtx.ReloadKeys = h.reloadKeys
	h.menubar = ui.NewMenuBar(registry, h.cmdCtx, defaultMenus())

	h.tips = tooltip.NewManager(ctx, h.layout)
	h.tips.SetDelay(appConfig.TooltipDelay())
	h.tips.SetMaxWidth(appConfig.TooltipMaxWidth)
	h.tips.SetEnabled(appConfig.TooltipsEnabled)

	if len(appConfig.Keys) > 0 {
		if err := cmd.ApplyKeyConfig(registry, appConfig.Keys, commands.BindDefaults); err != nil {
			log.ErrorLog.Printf("%v", err)
			h.sink.Open()
			h.sink.Printf("%v", err)
			h.sink.Close()
			h.sink.ConsumeDirty()
		}
	}

	h.restoreState()
	sel.OnChange = h.selectorChanged
	h.refreshTips()
	return h
}

// defaultMenus lays out the menu bar. Items name registry commands; an
// empty name is a separator.
func defaultMenus() []ui.Menu {
	return []ui.Menu{
		{Title: "File", Items: []string{"NewPalette", "", "QuitApp"}},
		{Title: "Edit", Items: []string{"CopyColor", "PasteColor", "", "SetColor", "SwatchRamp"}},
		{Title: "View", Items: []string{
			"RgbModel", "HsvModel", "GrayModel", "MaskModel", "",
			"ToggleTips", "ShowConsole", "CommandPalette",
		}},
		{Title: "Palette", Items: []string{"LockPalette", "", "SortPalette"}},
		{Title: "Help", Items: []string{"ShowHelp", "", "ReloadKeys"}},
	}
}

// restoreState adopts the persisted workbench state.
func (m *home) restoreState() {
	if c, err := colorsel.ParseColor(m.appState.LastColor); err == nil {
		m.sel.SetColor(c)
	}
	if mdl, err := colorsel.ParseModel(m.appState.ActiveModel); err == nil {
		m.sel.SetModel(mdl)
	}
	m.sel.SetPaletteLocked(m.appState.PaletteLocked)
	if i := m.appState.SelectedIndex; i >= 0 && i < m.sel.Palette().Len() {
		m.sel.SelectIndex(i)
	}
}

// selectorChanged runs after every color, selection, lock or model
// change: tooltip texts track palette contents and the lock position.
func (m *home) selectorChanged() {
	m.refreshTips()
	m.syncState()
}

// refreshTips re-registers every tooltip whose text depends on current
// state. Registration replaces, so this is safe to run at any time.
func (m *home) refreshTips() {
	for i := 0; i < m.sel.Palette().Len(); i++ {
		m.tips.AddTip(cellHandle(i), tooltip.TipInfo{
			Text:  m.grid.CellTip(i),
			Align: tooltip.AlignBottom,
		})
	}
	for _, mdl := range []colorsel.Model{
		colorsel.ModelRGB, colorsel.ModelHSV, colorsel.ModelGray, colorsel.ModelMask,
	} {
		m.tips.AddTip(handleTabBase+tooltip.Handle(mdl), tooltip.TipInfo{
			Text:  "Edit colors as " + mdl.String(),
			Align: tooltip.AlignTop,
		})
	}
	lockTip := tooltip.TipInfo{Text: m.sel.LockTip(), Align: tooltip.AlignTop}
	if hint := m.registry.KeyHint(m.registry.FindByName("LockPalette")); hint != "" {
		lockTip.Extra = []tooltip.Child{tooltip.StaticChild(hint)}
	}
	m.tips.AddTip(handleLock, lockTip)
}

// syncState mirrors the selector into the persisted state. Writing to
// disk happens once per dispatch, not here.
func (m *home) syncState() {
	m.appState.LastColor = m.sel.Color().Hex(m.sel.Palette())
	m.appState.ActiveModel = strings.ToLower(m.sel.Model().String())
	m.appState.PaletteLocked = m.sel.PaletteLocked()
	m.appState.SelectedIndex = m.sel.Index()
}

func (m *home) saveState() {
	m.syncState()
	if err := config.SaveState(m.appState); err != nil {
		log.ErrorLog.Printf("save state: %v", err)
	}
}

// reloadKeys re-reads the config file and re-applies the key bindings.
// Wired into the command context for the ReloadKeys command and run by
// the config watcher.
func (m *home) reloadKeys() error {
	cfg := config.LoadConfig()
	if err := cmd.ApplyKeyConfig(m.registry, cfg.Keys, commands.BindDefaults); err != nil {
		return err
	}
	m.appConfig = cfg
	return nil
}

func (m *home) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.waitForConfigChange()
}

// waitForConfigChange bridges the watcher's channel into the event loop.
// Re-armed after every delivery.
func (m *home) waitForConfigChange() tea.Cmd {
	ch := m.watcher.Changes()
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			return configChangedMsg{}
		}
	}
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.resize(msg.Width, msg.Height)
		m.menubar.SetWidth(msg.Width)
		m.statusBar.SetWidth(msg.Width)
		if m.textOverlay != nil {
			m.textOverlay.SetSize(min(msg.Width-8, 72), msg.Height-6)
		}
		if m.cmdPalette != nil {
			m.cmdPalette.SetSize(min(msg.Width-8, 48), msg.Height-8)
		}
		return m, nil
	case tooltip.TickMsg:
		m.tips.Tick(msg)
		return m, nil
	case hideFlashMsg:
		if msg.gen == m.flashGen {
			m.statusBar.ClearFlash()
		}
		return m, nil
	case configChangedMsg:
		return m, tea.Batch(m.handleConfigChange(), m.waitForConfigChange())
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// handleConfigChange reloads configuration after the watcher fires:
// theme, tooltip settings, and key bindings all re-apply in place.
func (m *home) handleConfigChange() tea.Cmd {
	if err := m.reloadKeys(); err != nil {
		log.ErrorLog.Printf("config reload: %v", err)
		return m.setFlash(fmt.Sprintf("config reload failed: %v", err))
	}
	if err := ui.ApplyTheme(m.appConfig.Theme); err != nil {
		log.WarningLog.Printf("%v", err)
	}
	m.tips.SetDelay(m.appConfig.TooltipDelay())
	m.tips.SetMaxWidth(m.appConfig.TooltipMaxWidth)
	m.tips.SetEnabled(m.appConfig.TooltipsEnabled)
	log.InfoLog.Printf("configuration reloaded")
	return m.setFlash("configuration reloaded")
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case statePrompt:
		if m.textInputOverlay.HandleKeyPress(msg) {
			submitted := m.textInputOverlay.IsSubmitted()
			value := m.textInputOverlay.Value()
			name := m.promptCommand
			m.textInputOverlay = nil
			m.promptCommand = ""
			m.state = stateDefault
			if submitted && name != "" {
				return m, m.dispatch(m.registry.FindByName(name), value)
			}
		}
		return m, nil
	case statePalette:
		if m.cmdPalette.HandleKeyPress(msg) {
			m.cmdPalette = nil
			m.state = stateDefault
			if name := m.pendingRun; name != "" {
				m.pendingRun = ""
				return m, m.dispatch(m.registry.FindByName(name), "")
			}
		}
		return m, nil
	case stateHelp, stateConsole:
		if m.textOverlay.HandleKeyPress(msg) {
			m.textOverlay = nil
			m.state = stateDefault
		}
		return m, nil
	}

	// A key press ends any tooltip session. The popup's own handler keeps
	// it open through modifier-only chatter.
	m.tips.KeyDown(msg)

	if m.menubar.IsOpen() {
		name, handled := m.menubar.HandleKey(msg)
		if name != "" {
			return m, m.dispatch(m.registry.FindByName(name), "")
		}
		if handled {
			return m, nil
		}
	}

	if c := m.registry.FindByKey(msg); c != nil {
		return m, m.dispatch(c, "")
	}

	switch {
	case keyIs(msg, keys.KeyMenu):
		if m.menubar.IsOpen() {
			m.menubar.Close()
		} else {
			m.menubar.Open(0)
		}
	case keyIs(msg, keys.KeyTab):
		m.focusGrid = !m.focusGrid
	default:
		if m.focusGrid {
			m.grid.HandleKey(msg)
		} else {
			m.sel.HandleKey(msg)
		}
	}
	return m, nil
}

func (m *home) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
	if press {
		m.tips.Dismiss()
	}
	if m.state != stateDefault {
		return m, nil
	}

	hoverCmd := m.trackHover(msg)

	if m.menubar.IsOpen() || msg.Y == 0 {
		name, handled := m.menubar.HandleMouse(msg.X, msg.Y, press)
		if name != "" {
			return m, tea.Batch(hoverCmd, m.dispatch(m.registry.FindByName(name), ""))
		}
		if handled {
			return m, hoverCmd
		}
	}

	drag := msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonLeft
	if press || drag {
		if m.grid.HandleMouse(msg.X-m.layout.gridPos.X, msg.Y-m.layout.gridPos.Y, press, msg.Shift) {
			m.focusGrid = true
		} else if m.sel.HandleMouse(msg.X-m.layout.selPos.X, msg.Y-m.layout.selPos.Y, press) {
			m.focusGrid = false
		}
	}
	return m, hoverCmd
}

// trackHover synthesizes enter/leave from mouse motion: crossing into a
// widget arms the tooltip delay, leaving the widget set dismisses.
func (m *home) trackHover(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionMotion || msg.Button != tea.MouseButtonNone {
		return nil
	}
	h, ok := m.layout.hitTest(msg.X, msg.Y)
	if !ok {
		if m.hovering {
			m.hovering = false
			m.tips.Dismiss()
		}
		return nil
	}
	if m.hovering && h == m.hover {
		return nil
	}
	m.hovering = true
	m.hover = h
	return m.tips.MouseEnter(h)
}

// dispatch runs a command through the registry. Output captured by the
// console span raises the console overlay, and the workbench state is
// saved after every dispatch.
func (m *home) dispatch(c cmd.Command, arg string) tea.Cmd {
	out := m.registry.Execute(m.cmdCtx, c, arg)
	if m.sink.ConsumeDirty() && m.state == stateDefault {
		m.ShowConsole()
	}
	m.saveState()
	return out
}

// setFlash replaces the status bar flash and returns the timer that
// clears it.
func (m *home) setFlash(text string) tea.Cmd {
	m.statusBar.SetFlash(text)
	m.flashGen++
	gen := m.flashGen
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case <-ctx.Done():
		case <-time.After(3 * time.Second):
		}
		return hideFlashMsg{gen: gen}
	}
}

// -- cmd.Surface --

func (m *home) Flash(format string, args ...any) {
	m.cmdCtx.Defer(m.setFlash(fmt.Sprintf(format, args...)))
}

func (m *home) ShowConsole() {
	t := overlay.NewTextOverlay("Console", strings.Join(m.sink.Lines(), "\n"))
	t.SetSize(min(m.layout.width-8, 72), m.layout.height-6)
	t.GotoBottom()
	m.textOverlay = t
	m.state = stateConsole
	m.tips.Dismiss()
}

func (m *home) ShowHelp() {
	t := overlay.NewTextOverlay("Help", helpContent(m.registry, m.cmdCtx))
	t.SetSize(min(m.layout.width-8, 72), m.layout.height-6)
	m.textOverlay = t
	m.state = stateHelp
	m.tips.Dismiss()
	m.appState.HelpSeen = true
}

func (m *home) ShowCommandPalette() {
	p := overlay.NewCommandPalette(m.registry, m.cmdCtx)
	p.SetSize(min(m.layout.width-8, 48), m.layout.height-8)
	p.OnRun = func(name string) {
		m.pendingRun = name
	}
	m.cmdPalette = p
	m.state = statePalette
	m.tips.Dismiss()
	m.cmdCtx.Defer(p.Init())
}

func (m *home) PromptArg(title, command string) {
	t := overlay.NewTextInputOverlay(title, "")
	t.SetSize(min(m.layout.width-8, 48))
	m.textInputOverlay = t
	m.promptCommand = command
	m.state = statePrompt
	m.tips.Dismiss()
	m.cmdCtx.Defer(t.Init())
}

func (m *home) SetTooltipsEnabled(enabled bool) {
	m.tips.SetEnabled(enabled)
	m.appConfig.TooltipsEnabled = enabled
}

func (m *home) TooltipsEnabled() bool {
	return m.tips.Enabled()
}

func (m *home) View() string {
	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		strings.Repeat(" ", contentX),
		m.grid.View(),
		strings.Repeat(" ", panelGap),
		m.sel.View(),
	)
	mainView := lipgloss.JoinVertical(
		lipgloss.Left,
		m.menubar.View(),
		"",
		body,
	)
	if filler := m.layout.height - 1 - lipgloss.Height(mainView); filler > 0 {
		mainView += strings.Repeat("\n", filler)
	}
	mainView = lipgloss.JoinVertical(lipgloss.Left, mainView, m.statusBar.View())

	if m.menubar.IsOpen() {
		dropdown, x := m.menubar.DropdownView()
		mainView = overlay.PlaceOverlay(x, 1, dropdown, mainView, false)
	}
	if popup, pos, ok := m.tips.Popup(); ok && m.state == stateDefault {
		mainView = overlay.PlaceOverlay(pos.X, pos.Y, popup, mainView, false)
	}

	switch m.state {
	case statePrompt:
		if m.textInputOverlay == nil {
			log.ErrorLog.Printf("text input overlay is nil")
			return mainView
		}
		return overlay.PlaceCentered(m.textInputOverlay.View(), mainView, true)
	case statePalette:
		if m.cmdPalette == nil {
			log.ErrorLog.Printf("command palette is nil")
			return mainView
		}
		return overlay.PlaceCentered(m.cmdPalette.View(), mainView, true)
	case stateHelp, stateConsole:
		if m.textOverlay == nil {
			log.ErrorLog.Printf("text overlay is nil")
			return mainView
		}
		return overlay.PlaceCentered(m.textOverlay.View(), mainView, true)
	}
	return mainView
}

func keyIs(msg tea.KeyMsg, name keys.KeyName) bool {
	return key.Matches(msg, keys.GlobalkeyBindings[name])
}
