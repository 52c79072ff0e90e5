// Package selection decides which snapshots to delete. Both modes are
// pure functions over an inventory; nothing here touches the source.
package selection

import (
	"errors"
	"sort"
	"time"

	"sdsweep/internal/domain"
)

var (
	ErrInvalidTarget = errors.New("invalid reclaim target")

	// ErrInsufficientReclaimable is informational: the selection it
	// accompanies is the full inventory and the caller decides whether
	// deleting everything is still worth it.
	ErrInsufficientReclaimable = errors.New("insufficient reclaimable space")
)

// Selection keeps snapshots in the date-ascending order deletion
// should proceed in.
type Selection struct {
	Snapshots  []domain.Snapshot
	TotalBytes int64
}

func (sel Selection) IDs() []string {
	ids := make([]string, 0, len(sel.Snapshots))
	for _, snap := range sel.Snapshots {
		ids = append(ids, snap.ID)
	}
	return ids
}

// ByCutoff selects every snapshot created on or before the cutoff day.
func ByCutoff(inv domain.Inventory, cutoff time.Time) Selection {
	var sel Selection
	for _, snap := range sortedByDate(inv.Snapshots) {
		if dayAfter(snap.Created, cutoff) {
			continue
		}
		sel.Snapshots = append(sel.Snapshots, snap)
		sel.TotalBytes += snap.ReclaimableBytes
	}
	return sel
}

// ByTarget selects the shortest date-ascending prefix of the inventory
// whose total reclaimable size reaches target. Old snapshots go first:
// chronological deletion is the predictable policy, not minimal count.
// When the whole inventory falls short, the full inventory is returned
// together with ErrInsufficientReclaimable.
func ByTarget(inv domain.Inventory, target int64) (Selection, error) {
	if target < 0 {
		return Selection{}, ErrInvalidTarget
	}
	if target == 0 {
		return Selection{}, nil
	}
	var sel Selection
	for _, snap := range sortedByDate(inv.Snapshots) {
		sel.Snapshots = append(sel.Snapshots, snap)
		sel.TotalBytes += snap.ReclaimableBytes
		if sel.TotalBytes >= target {
			return sel, nil
		}
	}
	return sel, ErrInsufficientReclaimable
}

func sortedByDate(snapshots []domain.Snapshot) []domain.Snapshot {
	sorted := append([]domain.Snapshot{}, snapshots...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Created.Equal(sorted[j].Created) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].Created.Before(sorted[j].Created)
	})
	return sorted
}

func dayAfter(t, cutoff time.Time) bool {
	ty, tm, td := t.Date()
	cy, cm, cd := cutoff.Date()
	if ty != cy {
		return ty > cy
	}
	if tm != cm {
		return tm > cm
	}
	return td > cd
}
