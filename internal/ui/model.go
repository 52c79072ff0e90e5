package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sdsweep/internal/config"
	"sdsweep/internal/logging"
	"sdsweep/internal/selection"
	"sdsweep/internal/services"
	"sdsweep/internal/state"
	"sdsweep/internal/units"
)

type mode int

const (
	modeMenu mode = iota
	modeSnapshots
	modeBrowser
)

type inputKind int

const (
	inputNone inputKind = iota
	inputCutoffDate
	inputTargetSize
	inputTrimSize
	inputTreeDepth
	inputMinSize
)

const cutoffLayout = "2006-01-02"

type Model struct {
	state    *state.State
	scanner  services.Scanner
	source   services.SnapshotSource
	actions  *services.SnapshotActions
	progress services.ProgressProvider
	log      logging.Logger
	keys     KeyMap

	mode       mode
	inputKind  inputKind
	input      textinput.Model
	status     string
	showHelp   bool
	scanning   bool
	listing    bool
	polling    bool
	confirming bool
	pendingIDs []string

	cancel        context.CancelFunc
	width         int
	height        int
	progressCount int64
}

type ConfigProvider interface {
	ConfigSnapshot() config.Config
}

func NewModel(appState *state.State, scanner services.Scanner, source services.SnapshotSource,
	actions *services.SnapshotActions, log logging.Logger) Model {
	input := textinput.New()
	input.CharLimit = 64
	model := Model{
		state:   appState,
		scanner: scanner,
		source:  source,
		actions: actions,
		log:     log,
		keys:    DefaultKeyMap(),
		input:   input,
		status:  fmt.Sprintf("Checking local Time Machine snapshots for %s...", appState.MountPoint),
		width:   100,
		height:  30,
	}
	if provider, ok := scanner.(services.ProgressProvider); ok {
		model.progress = provider
	}
	if appState.BrowseOnly {
		model.mode = modeBrowser
	}
	return model
}

func (model Model) WithStatus(message string) Model {
	if message != "" {
		model.status = message
	}
	return model
}

func (model Model) ConfigSnapshot() config.Config {
	return config.Config{
		MountPoint: model.state.MountPoint,
		TreeDepth:  model.state.Prefs.TreeDepth,
		MinSize:    units.Format(model.state.Prefs.MinSize),
		Theme:      model.state.Prefs.Theme,
	}
}

func (model Model) Init() tea.Cmd {
	if model.state.BrowseOnly {
		return func() tea.Msg { return startScanMsg{} }
	}
	return model.listCmd()
}

func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return model.handleKey(typed)
	case tea.WindowSizeMsg:
		model.width = typed.Width
		model.height = typed.Height
		return model, nil
	case startScanMsg:
		if model.scanning {
			return model, nil
		}
		return model.beginScan()
	case inventoryMsg:
		return model.handleInventory(typed)
	case scanResultMsg:
		model.scanning = false
		model.cancel = nil
		if typed.err != nil {
			if errors.Is(typed.err, context.Canceled) {
				model.status = "Scan cancelled"
				return model, nil
			}
			model.status = fmt.Sprintf("Scan error: %v", typed.err)
			return model, nil
		}
		model.state.SetScan(typed.result)
		model.status = scanSummary(typed.result)
		return model, nil
	case scanProgressMsg:
		if typed.progress.Completed {
			// Another scan may already be underway; keep reading
			// until the channel goes quiet with nothing running.
			if model.scanning {
				return model, model.progressCmd()
			}
			model.polling = false
			return model, nil
		}
		model.progressCount = typed.progress.Entries
		if typed.progress.Current != "" {
			model.status = fmt.Sprintf("Measuring... %s entries (%s)",
				commaCount(typed.progress.Entries), typed.progress.Current)
		}
		return model, model.progressCmd()
	case deleteResultMsg:
		if typed.err != nil {
			model.status = fmt.Sprintf("Delete error: %v", typed.err)
			return model, nil
		}
		model.status = fmt.Sprintf("Deleted %d snapshots (%d failed)",
			typed.result.SuccessCount(), typed.result.FailureCount())
		model.state.InvalidateInventory()
		model.listing = true
		return model, model.listCmd()
	case thinResultMsg:
		if typed.err != nil {
			model.status = fmt.Sprintf("Trim error: %v", typed.err)
			return model, nil
		}
		model.status = "Finished thinning local Time Machine snapshots"
		if typed.output != "" {
			model.status = fmt.Sprintf("%s: %s", model.status, firstLine(typed.output))
		}
		model.state.InvalidateInventory()
		model.listing = true
		return model, model.listCmd()
	default:
		return model, nil
	}
}

func (model Model) handleInventory(msg inventoryMsg) (tea.Model, tea.Cmd) {
	model.listing = false
	switch {
	case msg.err == nil:
		model.state.SetInventory(msg.inv, "")
		model.status = fmt.Sprintf("Found %s local Time Machine snapshots for %s",
			commaCount(int64(len(msg.inv.Snapshots))), msg.inv.MountPoint)
	case errors.Is(msg.err, services.ErrNoSnapshots):
		model.state.SetInventory(msg.inv, "no snapshots found")
		model.status = fmt.Sprintf("No Time Machine snapshots found for %s", msg.inv.MountPoint)
	default:
		model.state.InvalidateInventory()
		model.status = fmt.Sprintf("Snapshot listing error: %v", msg.err)
	}
	return model, nil
}

func (model Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.inputKind != inputNone {
		return model.handleInput(msg)
	}
	switch {
	case key.Matches(msg, model.keys.Quit):
		if model.cancel != nil {
			model.cancel()
		}
		return model, tea.Quit
	case key.Matches(msg, model.keys.Help):
		model.showHelp = !model.showHelp
		return model, nil
	case model.confirming && key.Matches(msg, model.keys.Confirm):
		return model.executeDelete()
	case model.confirming && key.Matches(msg, model.keys.Cancel):
		model.confirming = false
		model.pendingIDs = nil
		model.status = "Deletion cancelled"
		return model, nil
	case model.confirming:
		return model, nil
	}

	switch model.mode {
	case modeMenu:
		return model.handleMenuKey(msg)
	case modeSnapshots:
		return model.handleSnapshotsKey(msg)
	case modeBrowser:
		return model.handleBrowserKey(msg)
	}
	return model, nil
}

func (model Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.Snapshots):
		model.mode = modeSnapshots
		if !model.state.HaveInventory && !model.listing {
			model.listing = true
			return model, model.listCmd()
		}
		return model, nil
	case key.Matches(msg, model.keys.Trim):
		return model.beginInput(inputTrimSize, "Minimum amount of space to reclaim (e.g. 1G)"), nil
	case key.Matches(msg, model.keys.Browse):
		model.mode = modeBrowser
		if !model.state.HaveScan && !model.scanning {
			return model.beginScan()
		}
		return model, nil
	case key.Matches(msg, model.keys.Refresh):
		model.listing = true
		return model, model.listCmd()
	}
	return model, nil
}

func (model Model) handleSnapshotsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snapshots := model.state.SnapshotsByDate()
	switch {
	case key.Matches(msg, model.keys.Cancel):
		model.mode = modeMenu
		return model, nil
	case key.Matches(msg, model.keys.Up):
		if model.state.Cursor > 0 {
			model.state.Cursor--
		}
		return model, nil
	case key.Matches(msg, model.keys.Down):
		if model.state.Cursor < len(snapshots)-1 {
			model.state.Cursor++
		}
		return model, nil
	case key.Matches(msg, model.keys.Select):
		if snap, ok := model.state.CurrentSnapshot(); ok {
			model.state.ToggleSelection(snap.ID)
		}
		return model, nil
	case key.Matches(msg, model.keys.Cutoff):
		return model.beginInput(inputCutoffDate, "Delete snapshots on or before (YYYY-MM-DD)"), nil
	case key.Matches(msg, model.keys.Target):
		return model.beginInput(inputTargetSize, "Reclaim at least (e.g. 10G)"), nil
	case key.Matches(msg, model.keys.Delete):
		ids := model.state.SelectedIDs()
		if len(ids) == 0 {
			model.status = "Nothing selected - space toggles, c/t select in bulk"
			return model, nil
		}
		model.confirming = true
		model.pendingIDs = ids
		count, total := model.state.SelectionSummary()
		model.status = fmt.Sprintf("Delete %d snapshots (%s reclaimable)? y/n", count, units.Format(total))
		return model, nil
	case key.Matches(msg, model.keys.Refresh):
		model.listing = true
		return model, model.listCmd()
	}
	return model, nil
}

func (model Model) handleBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.Cancel):
		if model.state.BrowseOnly {
			return model, tea.Quit
		}
		model.mode = modeMenu
		return model, nil
	case key.Matches(msg, model.keys.Depth):
		return model.beginInput(inputTreeDepth, "Tree depth (0 = unlimited)"), nil
	case key.Matches(msg, model.keys.MinSize):
		return model.beginInput(inputMinSize, "Size threshold (e.g. 10G)"), nil
	case key.Matches(msg, model.keys.Refresh):
		if !model.scanning {
			return model.beginScan()
		}
		return model, nil
	}
	return model, nil
}

func (model Model) beginInput(kind inputKind, prompt string) Model {
	model.inputKind = kind
	model.input.Placeholder = prompt
	model.input.SetValue("")
	model.input.Focus()
	model.status = prompt
	return model
}

func (model Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		model.inputKind = inputNone
		model.input.Blur()
		model.status = "Cancelled"
		return model, nil
	case tea.KeyEnter:
		return model.submitInput(strings.TrimSpace(model.input.Value()))
	}
	var cmd tea.Cmd
	model.input, cmd = model.input.Update(msg)
	return model, cmd
}

func (model Model) submitInput(value string) (tea.Model, tea.Cmd) {
	kind := model.inputKind
	model.inputKind = inputNone
	model.input.Blur()

	switch kind {
	case inputCutoffDate:
		cutoff, err := time.Parse(cutoffLayout, value)
		if err != nil {
			model.status = fmt.Sprintf("Invalid date %q (want YYYY-MM-DD)", value)
			return model, nil
		}
		sel := selection.ByCutoff(model.state.Inventory, cutoff)
		model.state.SelectIDs(sel.IDs())
		model.status = fmt.Sprintf("Selected %d snapshots up to %s", len(sel.Snapshots), value)
		return model, nil
	case inputTargetSize:
		target, err := units.Parse(value)
		if err != nil {
			model.status = fmt.Sprintf("Invalid size: %v", err)
			return model, nil
		}
		sel, err := selection.ByTarget(model.state.Inventory, target)
		model.state.SelectIDs(sel.IDs())
		switch {
		case errors.Is(err, selection.ErrInsufficientReclaimable):
			model.status = fmt.Sprintf("Only %s reclaimable in total - selected everything",
				units.Format(sel.TotalBytes))
		case err != nil:
			model.status = fmt.Sprintf("Selection error: %v", err)
		default:
			model.status = fmt.Sprintf("Selected %d oldest snapshots totalling %s",
				len(sel.Snapshots), units.Format(sel.TotalBytes))
		}
		return model, nil
	case inputTrimSize:
		purge, err := units.Parse(value)
		if err != nil {
			model.status = fmt.Sprintf("Invalid size: %v", err)
			return model, nil
		}
		model.status = fmt.Sprintf("Attempting to purge %s of Time Machine snapshots...", units.Format(purge))
		return model, model.thinCmd(purge)
	case inputTreeDepth:
		depth, err := strconv.Atoi(value)
		if err != nil || depth < 0 {
			model.status = fmt.Sprintf("Invalid depth %q", value)
			return model, nil
		}
		model.state.Prefs.TreeDepth = depth
		model.state.Reprune()
		model.status = fmt.Sprintf("Tree depth set to %d", depth)
		return model, nil
	case inputMinSize:
		minSize, err := units.Parse(value)
		if err != nil {
			model.status = fmt.Sprintf("Invalid size: %v", err)
			return model, nil
		}
		model.state.Prefs.MinSize = minSize
		model.state.Reprune()
		model.status = fmt.Sprintf("Size threshold set to %s", units.Format(minSize))
		return model, nil
	}
	return model, nil
}

func (model Model) executeDelete() (tea.Model, tea.Cmd) {
	ids := model.pendingIDs
	model.confirming = false
	model.pendingIDs = nil
	model.status = fmt.Sprintf("Deleting %d snapshots...", len(ids))
	request := services.DeleteRequest{IDs: ids, ConfirmToken: services.ConfirmDelete}
	return model, func() tea.Msg {
		result, err := model.actions.Execute(context.Background(), request)
		return deleteResultMsg{result: result, err: err}
	}
}

func (model Model) beginScan() (Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	model.cancel = cancel
	model.scanning = true
	model.progressCount = 0
	model.status = "Measuring system library directories..."
	request := services.ScanRequest{
		Roots:    model.state.Allowlist,
		MaxDepth: model.state.Prefs.TreeDepth,
		MinSize:  model.state.Prefs.MinSize,
	}
	cmds := []tea.Cmd{model.scanCmd(ctx, request)}
	if !model.polling {
		if poll := model.progressCmd(); poll != nil {
			model.polling = true
			cmds = append(cmds, poll)
		}
	}
	return model, tea.Batch(cmds...)
}

func (model Model) scanCmd(ctx context.Context, request services.ScanRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := model.scanner.Scan(ctx, request)
		return scanResultMsg{result: result, err: err}
	}
}

func (model Model) progressCmd() tea.Cmd {
	if model.progress == nil {
		return nil
	}
	channel := model.progress.Progress()
	if channel == nil {
		return nil
	}
	return func() tea.Msg {
		return scanProgressMsg{progress: <-channel}
	}
}

func (model Model) listCmd() tea.Cmd {
	mountPoint := model.state.MountPoint
	return func() tea.Msg {
		inv, err := model.source.List(context.Background(), mountPoint)
		return inventoryMsg{inv: inv, err: err}
	}
}

func (model Model) thinCmd(bytes int64) tea.Cmd {
	mountPoint := model.state.MountPoint
	return func() tea.Msg {
		output, err := model.source.Thin(context.Background(), mountPoint, bytes)
		return thinResultMsg{output: output, err: err}
	}
}

func scanSummary(result services.ScanResult) string {
	summary := fmt.Sprintf("Scan complete in %s", result.Duration.Round(time.Millisecond))
	if len(result.RootErrors) > 0 {
		summary = fmt.Sprintf("%s (%d roots unavailable)", summary, len(result.RootErrors))
	}
	if len(result.Warnings) > 0 {
		summary = fmt.Sprintf("%s, %d paths skipped", summary, len(result.Warnings))
	}
	return summary
}

func firstLine(text string) string {
	if index := strings.IndexByte(text, '\n'); index >= 0 {
		return text[:index]
	}
	return text
}
