package domain

// DirectoryEntry is one measured directory. TotalBytes covers every
// file under the full subtree that the scan could reach, even when
// Children is cut off at the render depth. Warnings carry the subpaths
// this entry could not account for.
type DirectoryEntry struct {
	Path       string
	Name       string
	Depth      int
	TotalBytes int64
	Children   []*DirectoryEntry
	Warnings   []string
}

// CountEntries reports the number of entries in the subtree rooted at
// this entry, itself included.
func (entry *DirectoryEntry) CountEntries() int {
	if entry == nil {
		return 0
	}
	count := 1
	for _, child := range entry.Children {
		count += child.CountEntries()
	}
	return count
}
