package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sdsweep/internal/domain"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// root/
//   big.dat          4000
//   sub/             3000
//     mid.dat        1000
//     deep/          2000
//       leaf.dat     2000
//   tiny/            10
//     small.dat      10
func fixtureRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "big.dat"), 4000)
	writeFile(t, filepath.Join(root, "sub", "mid.dat"), 1000)
	writeFile(t, filepath.Join(root, "sub", "deep", "leaf.dat"), 2000)
	writeFile(t, filepath.Join(root, "tiny", "small.dat"), 10)
	return root
}

func scanOne(t *testing.T, req ScanRequest) ScanResult {
	t.Helper()
	scanner := NewLibScanner(nil)
	result, err := scanner.Scan(context.Background(), req)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	return result
}

func TestScanMeasuresFullSubtree(t *testing.T) {
	root := fixtureRoot(t)
	result := scanOne(t, ScanRequest{Roots: []string{root}})

	if len(result.Roots) != 1 {
		t.Fatalf("got %d roots, want 1", len(result.Roots))
	}
	entry := result.Roots[0]
	if entry.TotalBytes != 7010 {
		t.Errorf("root TotalBytes = %d, want 7010", entry.TotalBytes)
	}
	sub := findChild(entry, "sub")
	if sub == nil {
		t.Fatal("sub not measured")
	}
	if sub.TotalBytes != 3000 {
		t.Errorf("sub TotalBytes = %d, want 3000", sub.TotalBytes)
	}
	deep := findChild(sub, "deep")
	if deep == nil || deep.TotalBytes != 2000 {
		t.Errorf("deep subtree not measured correctly: %+v", deep)
	}
}

func TestScanParentEqualsChildrenPlusOwnFiles(t *testing.T) {
	root := fixtureRoot(t)
	result := scanOne(t, ScanRequest{Roots: []string{root}})
	entry := result.Roots[0]

	var childSum int64
	for _, child := range entry.Children {
		childSum += child.TotalBytes
	}
	// 4000 bytes of big.dat are owned directly by the root.
	if entry.TotalBytes != childSum+4000 {
		t.Errorf("TotalBytes = %d, children sum %d + 4000 own bytes", entry.TotalBytes, childSum)
	}
}

func TestScanDepthBoundsRenderNotMeasurement(t *testing.T) {
	root := fixtureRoot(t)
	result := scanOne(t, ScanRequest{Roots: []string{root}, MaxDepth: 1})

	if len(result.Pruned) != 1 {
		t.Fatalf("got %d pruned roots, want 1", len(result.Pruned))
	}
	pruned := result.Pruned[0]
	sub := findChild(pruned, "sub")
	if sub == nil {
		t.Fatal("depth-1 child missing from render")
	}
	if len(sub.Children) != 0 {
		t.Errorf("grandchildren rendered despite MaxDepth=1")
	}
	// The grandchild's 2000 bytes still fold into the parent total.
	if sub.TotalBytes != 3000 {
		t.Errorf("sub TotalBytes = %d, want 3000 with deep folded in", sub.TotalBytes)
	}
}

func TestScanSiblingOrdering(t *testing.T) {
	root := fixtureRoot(t)
	result := scanOne(t, ScanRequest{Roots: []string{root}})
	entry := result.Roots[0]

	if len(entry.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(entry.Children))
	}
	if entry.Children[0].Name != "sub" || entry.Children[1].Name != "tiny" {
		t.Errorf("children not sorted by descending size: %s, %s",
			entry.Children[0].Name, entry.Children[1].Name)
	}
}

func TestScanTieBrokenByPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bbb", "f"), 100)
	writeFile(t, filepath.Join(root, "aaa", "f"), 100)
	result := scanOne(t, ScanRequest{Roots: []string{root}})
	entry := result.Roots[0]
	if entry.Children[0].Name != "aaa" || entry.Children[1].Name != "bbb" {
		t.Errorf("equal sizes must order by path: %s, %s",
			entry.Children[0].Name, entry.Children[1].Name)
	}
}

func TestScanSymlinksNotFollowed(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "real", "data"), 500)
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "loop")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	result := scanOne(t, ScanRequest{Roots: []string{root}})
	if got := result.Roots[0].TotalBytes; got != 500 {
		t.Errorf("TotalBytes = %d, want 500 (symlink must not double count)", got)
	}
}

func TestScanUnreadableSubpathDegradesToWarning(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "open", "data"), 300)
	locked := filepath.Join(root, "locked")
	writeFile(t, filepath.Join(locked, "hidden"), 700)
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	result := scanOne(t, ScanRequest{Roots: []string{root}})
	entry := result.Roots[0]
	if entry.TotalBytes != 300 {
		t.Errorf("TotalBytes = %d, want the 300 accessible bytes only", entry.TotalBytes)
	}
	if len(result.Warnings) == 0 {
		t.Error("unreadable subpath missing from the warning list")
	}
	lockedEntry := findChild(entry, "locked")
	if lockedEntry == nil {
		t.Fatal("unreadable directory missing from the tree")
	}
	if len(lockedEntry.Warnings) == 0 {
		t.Error("unreadable directory entry carries no warning")
	}
}

func TestScanRootUnavailable(t *testing.T) {
	good := fixtureRoot(t)
	missing := filepath.Join(t.TempDir(), "gone")
	result := scanOne(t, ScanRequest{Roots: []string{missing, good}})

	if len(result.Roots) != 1 {
		t.Fatalf("got %d scanned roots, want the good one only", len(result.Roots))
	}
	if len(result.RootErrors) != 1 || result.RootErrors[0].Path != missing {
		t.Fatalf("missing root not reported: %+v", result.RootErrors)
	}
}

func TestScanRootIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain")
	writeFile(t, file, 10)
	scanner := NewLibScanner(nil)
	result, err := scanner.Scan(context.Background(), ScanRequest{Roots: []string{file}})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(result.RootErrors) != 1 {
		t.Fatalf("file root must land in RootErrors, got %+v", result.RootErrors)
	}
}

func TestScanNoRoots(t *testing.T) {
	scanner := NewLibScanner(nil)
	if _, err := scanner.Scan(context.Background(), ScanRequest{}); err == nil {
		t.Error("empty root list must fail")
	}
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	scanner := NewLibScanner(nil)
	_, err := scanner.Scan(ctx, ScanRequest{Roots: []string{t.TempDir()}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestPruneZeroKeepsEverything(t *testing.T) {
	root := fixtureRoot(t)
	result := scanOne(t, ScanRequest{Roots: []string{root}})
	entry := result.Roots[0]

	pruned := Prune(entry, 0, 0)
	if pruned.CountEntries() != entry.CountEntries() {
		t.Errorf("Prune(0,0) dropped entries: %d -> %d",
			entry.CountEntries(), pruned.CountEntries())
	}
	if pruned.TotalBytes != entry.TotalBytes {
		t.Errorf("Prune altered size values: %d -> %d", entry.TotalBytes, pruned.TotalBytes)
	}
}

func TestPruneAboveRootTotalYieldsNothing(t *testing.T) {
	root := fixtureRoot(t)
	result := scanOne(t, ScanRequest{Roots: []string{root}})
	if pruned := Prune(result.Roots[0], 0, result.Roots[0].TotalBytes+1); pruned != nil {
		t.Errorf("Prune above the root total must return nil, got %+v", pruned)
	}
}

func TestPruneKeepsParentWithoutChildren(t *testing.T) {
	root := fixtureRoot(t)
	result := scanOne(t, ScanRequest{Roots: []string{root}})
	// sub (3000) survives a threshold that prunes both of its children
	// individually (1000-byte file is not an entry, deep is 2000).
	pruned := Prune(result.Roots[0], 0, 2500)
	sub := findChild(pruned, "sub")
	if sub == nil {
		t.Fatal("sub must survive the threshold it meets")
	}
	if len(sub.Children) != 0 {
		t.Errorf("children below the threshold must be dropped, got %d", len(sub.Children))
	}
	if findChild(pruned, "tiny") != nil {
		t.Error("tiny is below the threshold and must be dropped")
	}
}

func findChild(entry *domain.DirectoryEntry, name string) *domain.DirectoryEntry {
	if entry == nil {
		return nil
	}
	for _, child := range entry.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}
