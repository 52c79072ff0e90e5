package ui

import (
	"sdsweep/internal/domain"
	"sdsweep/internal/services"
)

type startScanMsg struct{}

type inventoryMsg struct {
	inv domain.Inventory
	err error
}

type scanResultMsg struct {
	result services.ScanResult
	err    error
}

type scanProgressMsg struct {
	progress services.ScanProgress
}

type deleteResultMsg struct {
	result services.DeleteResult
	err    error
}

type thinResultMsg struct {
	output string
	err    error
}
