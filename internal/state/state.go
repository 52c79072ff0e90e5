package state

import (
	"sort"

	"sdsweep/internal/config"
	"sdsweep/internal/domain"
	"sdsweep/internal/services"
)

type Preferences struct {
	TreeDepth int
	MinSize   int64
	Theme     string
}

// State is the per-invocation working set: the latest inventory, the
// latest scan and the operator's cursor/selection. Nothing in here
// survives the process; both data sets are rebuilt on demand.
type State struct {
	MountPoint string
	Prefs      Preferences
	BrowseOnly bool
	Allowlist  []string

	Inventory     domain.Inventory
	HaveInventory bool
	InventoryNote string

	Roots      []*domain.DirectoryEntry
	Pruned     []*domain.DirectoryEntry
	RootErrors []services.RootError
	Warnings   []string
	HaveScan   bool

	Cursor   int
	Selected map[string]bool
}

func NewState(cfg config.Config) *State {
	return &State{
		MountPoint: cfg.MountPoint,
		BrowseOnly: cfg.BrowseOnly,
		Allowlist:  append([]string{}, cfg.ScanRoots...),
		Prefs: Preferences{
			TreeDepth: cfg.TreeDepth,
			MinSize:   cfg.MinSizeBytes(),
			Theme:     cfg.Theme,
		},
		Selected: make(map[string]bool),
	}
}

func (appState *State) SetInventory(inv domain.Inventory, note string) {
	appState.Inventory = inv
	appState.HaveInventory = true
	appState.InventoryNote = note
	appState.Cursor = 0
	appState.Selected = make(map[string]bool)
}

// InvalidateInventory drops the listing after a deletion; sizes and
// membership are stale the moment the source mutates.
func (appState *State) InvalidateInventory() {
	appState.Inventory = domain.Inventory{MountPoint: appState.MountPoint}
	appState.HaveInventory = false
	appState.InventoryNote = ""
	appState.Cursor = 0
	appState.Selected = make(map[string]bool)
}

func (appState *State) SetScan(result services.ScanResult) {
	appState.Roots = result.Roots
	appState.Pruned = result.Pruned
	appState.RootErrors = result.RootErrors
	appState.Warnings = result.Warnings
	appState.HaveScan = true
}

// Reprune re-renders the measured trees under the current preferences
// without touching the measurements.
func (appState *State) Reprune() {
	pruned := make([]*domain.DirectoryEntry, 0, len(appState.Roots))
	for _, root := range appState.Roots {
		if kept := services.Prune(root, appState.Prefs.TreeDepth, appState.Prefs.MinSize); kept != nil {
			pruned = append(pruned, kept)
		}
	}
	appState.Pruned = pruned
}

func (appState *State) SnapshotsByDate() []domain.Snapshot {
	sorted := append([]domain.Snapshot{}, appState.Inventory.Snapshots...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Created.Equal(sorted[j].Created) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].Created.Before(sorted[j].Created)
	})
	return sorted
}

func (appState *State) CurrentSnapshot() (domain.Snapshot, bool) {
	sorted := appState.SnapshotsByDate()
	if appState.Cursor < 0 || appState.Cursor >= len(sorted) {
		return domain.Snapshot{}, false
	}
	return sorted[appState.Cursor], true
}

func (appState *State) ToggleSelection(id string) {
	if appState.Selected[id] {
		delete(appState.Selected, id)
		return
	}
	appState.Selected[id] = true
}

func (appState *State) SelectIDs(ids []string) {
	appState.Selected = make(map[string]bool, len(ids))
	for _, id := range ids {
		appState.Selected[id] = true
	}
}

// SelectedIDs returns the selection in date-ascending order.
func (appState *State) SelectedIDs() []string {
	ids := make([]string, 0, len(appState.Selected))
	for _, snap := range appState.SnapshotsByDate() {
		if appState.Selected[snap.ID] {
			ids = append(ids, snap.ID)
		}
	}
	return ids
}

func (appState *State) SelectionSummary() (int, int64) {
	var total int64
	count := 0
	for _, snap := range appState.Inventory.Snapshots {
		if appState.Selected[snap.ID] {
			count++
			total += snap.ReclaimableBytes
		}
	}
	return count, total
}
