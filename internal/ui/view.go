package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"sdsweep/internal/domain"
	"sdsweep/internal/units"
)

type uiStyles struct {
	headerStyle lipgloss.Style
	menuStyle   lipgloss.Style
	mutedStyle  lipgloss.Style
	statusStyle lipgloss.Style
	warnStyle   lipgloss.Style
	cursorStyle lipgloss.Style
	smallStyle  lipgloss.Style
	mediumStyle lipgloss.Style
	largeStyle  lipgloss.Style
}

func stylesFor(model Model) uiStyles {
	if strings.ToLower(model.state.Prefs.Theme) == "light" {
		return uiStyles{
			headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")),
			menuStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("31")),
			mutedStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
			statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
			warnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Bold(true),
			cursorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("90")).Bold(true),
			smallStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
			mediumStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
			largeStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("124")),
		}
	}
	return uiStyles{
		headerStyle: lipgloss.NewStyle().Bold(true),
		menuStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		mutedStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true),
		warnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true),
		cursorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		smallStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		mediumStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		largeStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
	}
}

func (model Model) View() string {
	styles := stylesFor(model)
	if model.showHelp {
		return renderHelpView(model, styles)
	}

	var body string
	switch model.mode {
	case modeMenu:
		body = renderMenu(model, styles)
	case modeSnapshots:
		body = renderSnapshots(model, styles)
	case modeBrowser:
		body = renderBrowser(model, styles)
	}
	return strings.Join([]string{body, renderFooter(model, styles)}, "\n")
}

func renderMenu(model Model, styles uiStyles) string {
	lines := []string{
		styles.headerStyle.Render(fmt.Sprintf("sdsweep - %s", model.state.MountPoint)),
		"",
		styles.menuStyle.Render("Choose from the following options:"),
	}
	if model.state.HaveInventory && !model.state.Inventory.Empty() {
		lines = append(lines,
			menuLine(styles, "1", "Delete specific Time Machine snapshots by date"),
			menuLine(styles, "2", "Trim Time Machine snapshots by specifying purge size"),
		)
	} else if model.state.HaveInventory {
		lines = append(lines, styles.mutedStyle.Render(
			fmt.Sprintf("  No Time Machine snapshots found for %s", model.state.MountPoint)))
	}
	lines = append(lines,
		menuLine(styles, "3", "Browse system library directories to clean"),
		menuLine(styles, "q", "Quit"),
	)
	return strings.Join(lines, "\n")
}

func menuLine(styles uiStyles, keyLabel, text string) string {
	return fmt.Sprintf("%s %s", styles.menuStyle.Render("["+keyLabel+"]"), text)
}

func renderSnapshots(model Model, styles uiStyles) string {
	snapshots := model.state.SnapshotsByDate()
	header := styles.headerStyle.Render(
		fmt.Sprintf("Local Time Machine snapshots for %s", model.state.MountPoint))
	if len(snapshots) == 0 {
		note := "No snapshots found"
		if model.listing {
			note = "Listing snapshots..."
		}
		return strings.Join([]string{header, styles.mutedStyle.Render(note)}, "\n")
	}

	countLine := fmt.Sprintf("  %s snapshots", commaCount(int64(len(snapshots))))
	if total := model.state.Inventory.TotalReclaimable(); total > 0 {
		countLine = fmt.Sprintf("%s, %s reclaimable", countLine, units.Format(total))
	}
	lines := []string{header, styles.mutedStyle.Render(countLine)}
	for index, snap := range snapshots {
		marker := "[ ]"
		if model.state.Selected[snap.ID] {
			marker = "[x]"
		}
		size := ""
		if snap.ReclaimableBytes > 0 {
			size = "  " + sizeLabel(styles, snap.ReclaimableBytes)
		}
		line := fmt.Sprintf("%s %s%s", marker, snap.ID, size)
		if index == model.state.Cursor {
			line = styles.cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	if count, total := model.state.SelectionSummary(); count > 0 {
		lines = append(lines, styles.statusStyle.Render(
			fmt.Sprintf("Selected: %d (%s reclaimable)", count, units.Format(total))))
	}
	return strings.Join(lines, "\n")
}

func renderBrowser(model Model, styles uiStyles) string {
	threshold := fmt.Sprintf("over %s", units.Format(model.state.Prefs.MinSize))
	if model.state.Prefs.MinSize <= 0 {
		threshold = "to clean"
	}
	if model.state.Prefs.TreeDepth > 0 {
		threshold = fmt.Sprintf("%s (max depth: %d)", threshold, model.state.Prefs.TreeDepth)
	}
	lines := []string{
		styles.headerStyle.Render(fmt.Sprintf("System library directories %s", threshold)),
	}
	if !model.state.HaveScan {
		note := "Not measured yet - r starts a scan"
		if model.scanning {
			note = fmt.Sprintf("Measuring... %s entries", commaCount(model.progressCount))
		}
		lines = append(lines, styles.mutedStyle.Render(note))
		return strings.Join(lines, "\n")
	}

	for _, root := range model.state.Pruned {
		appendEntryLines(&lines, styles, root)
	}
	if len(model.state.Pruned) == 0 {
		lines = append(lines, styles.mutedStyle.Render("Nothing above the size threshold"))
	}
	for _, rootErr := range model.state.RootErrors {
		lines = append(lines, styles.warnStyle.Render(
			fmt.Sprintf("! %s: %s", rootErr.Path, rootErr.Message)))
	}
	if count := len(model.state.Warnings); count > 0 {
		lines = append(lines, styles.mutedStyle.Render(
			fmt.Sprintf("%d subpaths were skipped; totals for those branches are partial", count)))
	}
	return strings.Join(lines, "\n")
}

func appendEntryLines(lines *[]string, styles uiStyles, entry *domain.DirectoryEntry) {
	indent := strings.Repeat("  ", entry.Depth)
	name := entry.Name
	if entry.Depth == 0 {
		name = entry.Path
	}
	line := fmt.Sprintf("%s%s  %s", indent, sizeLabel(styles, entry.TotalBytes), name)
	if len(entry.Warnings) > 0 {
		line = fmt.Sprintf("%s %s", line, styles.warnStyle.Render("(partial)"))
	}
	*lines = append(*lines, line)
	for _, child := range entry.Children {
		appendEntryLines(lines, styles, child)
	}
}

// sizeLabel colors a size the way the magnitude deserves: G red, M
// yellow, anything smaller green.
func sizeLabel(styles uiStyles, bytes int64) string {
	text := fmt.Sprintf("%8s", units.Format(bytes))
	switch {
	case bytes >= 1<<30:
		return styles.largeStyle.Render(text)
	case bytes >= 1<<20:
		return styles.mediumStyle.Render(text)
	default:
		return styles.smallStyle.Render(text)
	}
}

func renderFooter(model Model, styles uiStyles) string {
	statusStyle := styles.mutedStyle
	lowered := strings.ToLower(model.status)
	if strings.Contains(lowered, "error") || strings.Contains(lowered, "invalid") {
		statusStyle = styles.warnStyle
	}
	lines := []string{statusStyle.Render(model.status)}

	if model.inputKind != inputNone {
		lines = append(lines, model.input.View())
		lines = append(lines, styles.mutedStyle.Render("enter confirm  esc cancel"))
		return strings.Join(lines, "\n")
	}

	keys := ""
	switch {
	case model.confirming:
		keys = "y confirm  n cancel"
	case model.mode == modeMenu:
		keys = "1/2/3 choose  r refresh  ? help  q quit"
	case model.mode == modeSnapshots:
		keys = "↑/↓ move  space select  c cutoff  t target  d delete  r refresh  esc back  q quit"
	case model.mode == modeBrowser:
		keys = "d depth  s size threshold  r rescan  esc back  q quit"
	}
	lines = append(lines, styles.mutedStyle.Render(keys))
	return strings.Join(lines, "\n")
}

func renderHelpView(model Model, styles uiStyles) string {
	lines := []string{
		styles.headerStyle.Render("sdsweep help"),
		"",
		"Main menu",
		"  1  manage local Time Machine snapshots",
		"  2  trim snapshots to a purge size (tmutil thinlocalsnapshots)",
		"  3  browse allowlisted system library directories",
		"",
		"Snapshots",
		"  space  toggle one snapshot",
		"  c      select every snapshot on or before a date",
		"  t      select the oldest snapshots covering a reclaim target",
		"  d      delete the selection (asks for confirmation)",
		"",
		"Browser",
		"  d  change rendered tree depth (sizes stay full-subtree)",
		"  s  change the minimum size threshold",
		"  r  measure again",
		"",
		styles.mutedStyle.Render("? closes help"),
	}
	return strings.Join(lines, "\n")
}

func commaCount(value int64) string {
	return humanize.Comma(value)
}
