package services

import (
	"context"
	"testing"
	"time"

	"sdsweep/internal/domain"
)

func testInventory() domain.Inventory {
	created, _ := time.Parse("2006-01-02", "2024-01-01")
	return domain.Inventory{
		MountPoint: "/",
		Snapshots: []domain.Snapshot{
			{ID: "2024-01-01-101500", Created: created},
			{ID: "2024-02-01-093000", Created: created.AddDate(0, 1, 0)},
		},
	}
}

func TestExecuteRequiresConfirmation(t *testing.T) {
	source := NewMockSource(testInventory())
	actions := NewSnapshotActions(source)
	_, err := actions.Execute(context.Background(), DeleteRequest{
		IDs: []string{"2024-01-01-101500"},
	})
	if err == nil {
		t.Fatal("Execute without ConfirmToken must fail")
	}
	if len(source.DeletedIDs) != 0 {
		t.Errorf("deletion happened without confirmation: %v", source.DeletedIDs)
	}
}

func TestExecuteRequiresSelection(t *testing.T) {
	actions := NewSnapshotActions(NewMockSource(testInventory()))
	if _, err := actions.Execute(context.Background(), DeleteRequest{ConfirmToken: ConfirmDelete}); err == nil {
		t.Fatal("Execute without ids must fail")
	}
}

func TestExecuteDeletesThroughSource(t *testing.T) {
	source := NewMockSource(testInventory())
	actions := NewSnapshotActions(source)
	result, err := actions.Execute(context.Background(), DeleteRequest{
		IDs:          []string{"2024-01-01-101500"},
		ConfirmToken: ConfirmDelete,
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result.SuccessCount() != 1 {
		t.Errorf("SuccessCount = %d, want 1", result.SuccessCount())
	}
	if len(source.Inventory.Snapshots) != 1 {
		t.Errorf("source inventory not updated, %d snapshots left", len(source.Inventory.Snapshots))
	}
}
