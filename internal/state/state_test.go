package state

import (
	"testing"
	"time"

	"sdsweep/internal/config"
	"sdsweep/internal/domain"
	"sdsweep/internal/services"
)

func newTestState() *State {
	cfg := config.Default()
	cfg.ScanRoots = []string{"/tmp"}
	return NewState(cfg)
}

func day(value string) time.Time {
	parsed, _ := time.Parse("2006-01-02", value)
	return parsed
}

func TestSelectionOrderedByDate(t *testing.T) {
	appState := newTestState()
	appState.SetInventory(domain.Inventory{
		MountPoint: "/",
		Snapshots: []domain.Snapshot{
			{ID: "2024-03-01-120000", Created: day("2024-03-01")},
			{ID: "2024-01-01-101500", Created: day("2024-01-01")},
			{ID: "2024-02-01-093000", Created: day("2024-02-01")},
		},
	}, "")
	appState.ToggleSelection("2024-03-01-120000")
	appState.ToggleSelection("2024-01-01-101500")

	ids := appState.SelectedIDs()
	if len(ids) != 2 || ids[0] != "2024-01-01-101500" || ids[1] != "2024-03-01-120000" {
		t.Errorf("SelectedIDs not date-ascending: %v", ids)
	}

	appState.ToggleSelection("2024-03-01-120000")
	if len(appState.SelectedIDs()) != 1 {
		t.Error("toggle did not deselect")
	}
}

func TestInvalidateInventoryClearsSelection(t *testing.T) {
	appState := newTestState()
	appState.SetInventory(domain.Inventory{
		Snapshots: []domain.Snapshot{{ID: "2024-01-01-101500", Created: day("2024-01-01")}},
	}, "")
	appState.ToggleSelection("2024-01-01-101500")
	appState.InvalidateInventory()
	if appState.HaveInventory {
		t.Error("inventory still marked present after invalidation")
	}
	if len(appState.Selected) != 0 {
		t.Error("selection survived invalidation")
	}
}

func TestRepruneUsesCurrentPrefs(t *testing.T) {
	appState := newTestState()
	root := &domain.DirectoryEntry{
		Path: "/tmp/a", Name: "/tmp/a", TotalBytes: 5000,
		Children: []*domain.DirectoryEntry{
			{Path: "/tmp/a/b", Name: "b", Depth: 1, TotalBytes: 4000},
			{Path: "/tmp/a/c", Name: "c", Depth: 1, TotalBytes: 1000},
		},
	}
	appState.SetScan(services.ScanResult{Roots: []*domain.DirectoryEntry{root}})

	appState.Prefs.MinSize = 2000
	appState.Prefs.TreeDepth = 0
	appState.Reprune()
	if len(appState.Pruned) != 1 {
		t.Fatalf("got %d pruned roots, want 1", len(appState.Pruned))
	}
	if len(appState.Pruned[0].Children) != 1 {
		t.Errorf("threshold 2000 should keep one child, got %d", len(appState.Pruned[0].Children))
	}

	appState.Prefs.MinSize = 10000
	appState.Reprune()
	if len(appState.Pruned) != 0 {
		t.Error("threshold above the root total must prune everything")
	}
}
