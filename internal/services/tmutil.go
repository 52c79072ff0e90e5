package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"sdsweep/internal/domain"
	"sdsweep/internal/logging"
)

const (
	snapshotPrefix = "com.apple.TimeMachine."
	snapshotSuffix = ".local"
	snapshotDate   = "2006-01-02"

	// tmutil thinning urgency; 4 is the most aggressive level.
	thinUrgency = "4"
)

type ExecRunner struct {
	log logging.Logger
}

func NewExecRunner(log logging.Logger) ExecRunner {
	return ExecRunner{log: log}
}

func (runner ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if runner.log != nil {
		runner.log.Debug("running command: %s %s", name, strings.Join(args, " "))
	}
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = strings.TrimSpace(stdout.String())
		}
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("%s: %s", name, detail)
	}
	return stdout.Bytes(), nil
}

// TmutilSource lists, deletes and thins local Time Machine snapshots
// through the tmutil command.
type TmutilSource struct {
	runner CommandRunner
	log    logging.Logger
}

func NewTmutilSource(runner CommandRunner, log logging.Logger) *TmutilSource {
	return &TmutilSource{runner: runner, log: log}
}

func (source *TmutilSource) List(ctx context.Context, mountPoint string) (domain.Inventory, error) {
	if _, err := os.Stat(mountPoint); err != nil {
		return domain.Inventory{MountPoint: mountPoint}, fmt.Errorf("%w: %s", ErrMountPointNotFound, mountPoint)
	}
	out, err := source.runner.Run(ctx, "tmutil", "listlocalsnapshots", mountPoint)
	if err != nil {
		return domain.Inventory{MountPoint: mountPoint}, err
	}
	inv := parseSnapshotListing(mountPoint, string(out))
	if inv.Empty() {
		return inv, fmt.Errorf("%w: %s", ErrNoSnapshots, mountPoint)
	}
	return inv, nil
}

func (source *TmutilSource) Delete(ctx context.Context, ids []string) DeleteResult {
	start := time.Now()
	result := DeleteResult{Failed: map[string]string{}}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		if _, err := source.runner.Run(ctx, "tmutil", "deletelocalsnapshots", id); err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		result.Deleted = append(result.Deleted, id)
	}
	result.Duration = time.Since(start)
	return result
}

func (source *TmutilSource) Thin(ctx context.Context, mountPoint string, bytes int64) (string, error) {
	out, err := source.runner.Run(ctx, "tmutil", "thinlocalsnapshots", mountPoint,
		strconv.FormatInt(bytes, 10), thinUrgency)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// parseSnapshotListing reads tmutil listlocalsnapshots output. The
// first line is a header; each following line names a snapshot like
// com.apple.TimeMachine.2024-01-01-101500.local. The listing carries
// no sizes, so reclaimable bytes stay zero (unknown).
func parseSnapshotListing(mountPoint, output string) domain.Inventory {
	inv := domain.Inventory{MountPoint: mountPoint}
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) < 2 {
		return inv
	}
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(line, snapshotPrefix), snapshotSuffix)
		inv.Snapshots = append(inv.Snapshots, domain.Snapshot{
			ID:      id,
			Created: snapshotCreation(id),
		})
	}
	return inv
}

func snapshotCreation(id string) time.Time {
	if len(id) < len(snapshotDate) {
		return time.Time{}
	}
	created, err := time.Parse(snapshotDate, id[:len(snapshotDate)])
	if err != nil {
		return time.Time{}
	}
	return created
}
