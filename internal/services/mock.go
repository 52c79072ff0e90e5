package services

import (
	"context"
	"time"

	"sdsweep/internal/domain"
)

// MockSource serves a fixed inventory and records deletions. Used by
// tests and for driving the UI without tmutil.
type MockSource struct {
	Inventory  domain.Inventory
	ListErr    error
	DeletedIDs []string
	ThinOutput string
}

func NewMockSource(inv domain.Inventory) *MockSource {
	return &MockSource{Inventory: inv}
}

func (source *MockSource) List(ctx context.Context, mountPoint string) (domain.Inventory, error) {
	if source.ListErr != nil {
		return domain.Inventory{MountPoint: mountPoint}, source.ListErr
	}
	inv := source.Inventory
	inv.MountPoint = mountPoint
	return inv, nil
}

func (source *MockSource) Delete(ctx context.Context, ids []string) DeleteResult {
	result := DeleteResult{Failed: map[string]string{}}
	for _, id := range ids {
		source.DeletedIDs = append(source.DeletedIDs, id)
		result.Deleted = append(result.Deleted, id)
	}
	result.Duration = time.Millisecond
	kept := source.Inventory.Snapshots[:0]
	for _, snap := range source.Inventory.Snapshots {
		if !containsID(ids, snap.ID) {
			kept = append(kept, snap)
		}
	}
	source.Inventory.Snapshots = kept
	return result
}

func (source *MockSource) Thin(ctx context.Context, mountPoint string, bytes int64) (string, error) {
	return source.ThinOutput, nil
}

func containsID(ids []string, target string) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
