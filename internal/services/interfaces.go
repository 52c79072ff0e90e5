package services

import (
	"context"

	"sdsweep/internal/domain"
)

type Scanner interface {
	Scan(ctx context.Context, req ScanRequest) (ScanResult, error)
}

// SnapshotSource is the boundary to the OS snapshot tooling. The
// production implementation shells out to tmutil; tests inject fakes.
type SnapshotSource interface {
	List(ctx context.Context, mountPoint string) (domain.Inventory, error)
	Delete(ctx context.Context, ids []string) DeleteResult
	Thin(ctx context.Context, mountPoint string, bytes int64) (string, error)
}

type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type ProgressProvider interface {
	Progress() <-chan ScanProgress
}
