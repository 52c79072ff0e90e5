package services

// ScanRequest names the allowlisted roots to measure. MaxDepth bounds
// the rendered tree, not the measurement; 0 means unbounded. MinSize
// drops entries whose full subtree falls strictly below it.
type ScanRequest struct {
	Roots    []string
	MaxDepth int
	MinSize  int64
}

type DeleteRequest struct {
	IDs          []string
	ConfirmToken string
}
