package services

import (
	"time"

	"sdsweep/internal/domain"
)

// ScanResult carries both the fully measured trees and their pruned
// render views, so depth and threshold can change without rescanning.
// Roots that failed keep reporting in RootErrors while the rest of the
// result stays usable.
type ScanResult struct {
	Roots      []*domain.DirectoryEntry
	Pruned     []*domain.DirectoryEntry
	RootErrors []RootError
	Warnings   []string
	Duration   time.Duration
}

type RootError struct {
	Path    string
	Message string
}

type ScanProgress struct {
	Root      string
	Entries   int64
	Current   string
	Completed bool
}

// DeleteResult reports the outcome per snapshot id.
type DeleteResult struct {
	Deleted  []string
	Failed   map[string]string
	Duration time.Duration
}

func (result DeleteResult) SuccessCount() int { return len(result.Deleted) }
func (result DeleteResult) FailureCount() int { return len(result.Failed) }
