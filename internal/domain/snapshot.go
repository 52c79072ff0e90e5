package domain

import "time"

// Snapshot is one local Time Machine snapshot as reported by the
// snapshot source. ReclaimableBytes is zero when the source cannot
// price the snapshot.
type Snapshot struct {
	ID               string
	Created          time.Time
	ReclaimableBytes int64
}

// Inventory is the snapshot listing for one mount point at one instant.
// It is rebuilt from the source on every listing call and never kept
// across runs; deleting a snapshot invalidates it.
type Inventory struct {
	MountPoint string
	Snapshots  []Snapshot
}

func (inv Inventory) TotalReclaimable() int64 {
	var total int64
	for _, snap := range inv.Snapshots {
		total += snap.ReclaimableBytes
	}
	return total
}

func (inv Inventory) Empty() bool {
	return len(inv.Snapshots) == 0
}
