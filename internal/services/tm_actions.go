package services

import (
	"context"
	"fmt"
)

// ConfirmDelete is the token a caller must set before Execute touches
// any snapshot. Deletion is non-retractable once issued.
const ConfirmDelete = "confirm"

// SnapshotActions performs snapshot deletion through the source. It
// never decides what to delete; the selection engine does that.
type SnapshotActions struct {
	source SnapshotSource
}

func NewSnapshotActions(source SnapshotSource) *SnapshotActions {
	return &SnapshotActions{source: source}
}

func (actions *SnapshotActions) Execute(ctx context.Context, req DeleteRequest) (DeleteResult, error) {
	if len(req.IDs) == 0 {
		return DeleteResult{}, fmt.Errorf("no snapshots selected")
	}
	if req.ConfirmToken != ConfirmDelete {
		return DeleteResult{}, fmt.Errorf("snapshot deletion requires confirmation")
	}
	return actions.source.Delete(ctx, req.IDs), nil
}
