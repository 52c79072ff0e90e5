package services

import "errors"

var (
	ErrScanRootUnavailable = errors.New("scan root unavailable")
	ErrMountPointNotFound  = errors.New("mount point not found")
	ErrNoSnapshots         = errors.New("no local snapshots available")
)
