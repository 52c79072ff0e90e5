package services

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"sdsweep/internal/domain"
	"sdsweep/internal/logging"
)

// LibScanner measures the allowlisted system-library roots. Every call
// rebuilds the trees from scratch; nothing is kept between scans.
type LibScanner struct {
	mu       sync.Mutex
	warnings []string
	progress chan ScanProgress
	entries  atomic.Int64
	log      logging.Logger
}

func NewLibScanner(log logging.Logger) *LibScanner {
	return &LibScanner{
		log:      log,
		progress: make(chan ScanProgress, 64),
	}
}

// Progress returns the scanner's long-lived progress channel. It is
// never closed; a message with Completed set marks the end of a scan.
func (scanner *LibScanner) Progress() <-chan ScanProgress {
	return scanner.progress
}

func (scanner *LibScanner) Scan(ctx context.Context, req ScanRequest) (ScanResult, error) {
	start := time.Now()
	if len(req.Roots) == 0 {
		return ScanResult{}, fmt.Errorf("no scan roots configured")
	}
	if req.MaxDepth < 0 {
		return ScanResult{}, fmt.Errorf("negative tree depth: %d", req.MaxDepth)
	}
	if req.MinSize < 0 {
		return ScanResult{}, fmt.Errorf("negative size threshold: %d", req.MinSize)
	}

	scanner.mu.Lock()
	scanner.warnings = nil
	scanner.mu.Unlock()
	scanner.entries.Store(0)

	measured := make([]*domain.DirectoryEntry, len(req.Roots))
	rootErrs := make([]error, len(req.Roots))

	// Subtrees are independent, so roots scan in parallel. A failed
	// root reports through rootErrs instead of cancelling the group.
	var group errgroup.Group
	group.SetLimit(maxInt(2, runtime.NumCPU()))
	for index, root := range req.Roots {
		index, root := index, root
		group.Go(func() error {
			entry, err := scanner.scanRoot(ctx, root, scanner.progress)
			if err != nil {
				rootErrs[index] = err
				return nil
			}
			measured[index] = entry
			return nil
		})
	}
	_ = group.Wait()
	if err := ctx.Err(); err != nil {
		return ScanResult{}, err
	}

	result := ScanResult{Duration: time.Since(start)}
	for index, entry := range measured {
		if entry == nil {
			result.RootErrors = append(result.RootErrors, RootError{
				Path:    req.Roots[index],
				Message: rootErrs[index].Error(),
			})
			continue
		}
		result.Roots = append(result.Roots, entry)
		if pruned := Prune(entry, req.MaxDepth, req.MinSize); pruned != nil {
			result.Pruned = append(result.Pruned, pruned)
		}
	}
	scanner.mu.Lock()
	result.Warnings = append([]string{}, scanner.warnings...)
	scanner.mu.Unlock()

	progressNonBlocking(scanner.progress, ScanProgress{Entries: scanner.entries.Load(), Completed: true})
	return result, nil
}

func (scanner *LibScanner) scanRoot(ctx context.Context, root string, progress chan<- ScanProgress) (*domain.DirectoryEntry, error) {
	root = cleanPath(root)
	info, err := os.Lstat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrScanRootUnavailable, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s: not a directory", ErrScanRootUnavailable, root)
	}

	entry := &domain.DirectoryEntry{Path: root, Name: root, Depth: 0}
	if err := scanner.fill(ctx, entry, progress); err != nil {
		return nil, err
	}
	progressNonBlocking(progress, ScanProgress{Root: root, Entries: scanner.entries.Load(), Current: root})
	return entry, nil
}

// fill measures one directory and recurses into every subdirectory,
// whatever the requested render depth: totals always cover the full
// subtree. Unreadable subpaths degrade to warnings on the entry.
func (scanner *LibScanner) fill(ctx context.Context, entry *domain.DirectoryEntry, progress chan<- ScanProgress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	children, err := os.ReadDir(entry.Path)
	if err != nil {
		scanner.warn(entry, err)
		return nil
	}
	for _, child := range children {
		path := filepath.Join(entry.Path, child.Name())
		switch {
		case child.Type()&fs.ModeSymlink != 0:
			// never followed: avoids cycles and double counting
		case child.IsDir():
			sub := &domain.DirectoryEntry{Path: path, Name: child.Name(), Depth: entry.Depth + 1}
			if err := scanner.fill(ctx, sub, progress); err != nil {
				return err
			}
			entry.Children = append(entry.Children, sub)
			entry.TotalBytes += sub.TotalBytes
		default:
			info, err := child.Info()
			if err != nil {
				scanner.warn(entry, err)
				continue
			}
			entry.TotalBytes += info.Size()
		}
		if count := scanner.entries.Add(1); count%200 == 0 {
			progressNonBlocking(progress, ScanProgress{Root: entry.Path, Entries: count, Current: path})
		}
	}
	sortSiblings(entry.Children)
	return nil
}

func (scanner *LibScanner) warn(entry *domain.DirectoryEntry, err error) {
	message := fmt.Sprintf("%s: %v", entry.Path, err)
	entry.Warnings = append(entry.Warnings, err.Error())
	scanner.mu.Lock()
	scanner.warnings = append(scanner.warnings, message)
	scanner.mu.Unlock()
	if scanner.log != nil {
		scanner.log.Debug("scan warning: %s", message)
	}
}

// Prune returns a render copy bounded by maxDepth and minSize. Size
// values are never altered; maxDepth 0 means unbounded. An entry whose
// total falls strictly below minSize disappears with its subtree, but
// a parent meeting the threshold survives its pruned children.
func Prune(entry *domain.DirectoryEntry, maxDepth int, minSize int64) *domain.DirectoryEntry {
	if entry == nil || entry.TotalBytes < minSize {
		return nil
	}
	clone := *entry
	clone.Children = nil
	if maxDepth == 0 || entry.Depth < maxDepth {
		for _, child := range entry.Children {
			if kept := Prune(child, maxDepth, minSize); kept != nil {
				clone.Children = append(clone.Children, kept)
			}
		}
	}
	return &clone
}

func sortSiblings(entries []*domain.DirectoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalBytes == entries[j].TotalBytes {
			return entries[i].Path < entries[j].Path
		}
		return entries[i].TotalBytes > entries[j].TotalBytes
	})
}

func progressNonBlocking(ch chan<- ScanProgress, msg ScanProgress) {
	select {
	case ch <- msg:
	default:
	}
}

func cleanPath(path string) string {
	if path == "" {
		return path
	}
	clean := filepath.Clean(path)
	abs, err := filepath.Abs(clean)
	if err != nil {
		return clean
	}
	return abs
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
