package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/depviz/pkg/deps"
	"github.com/matzehuels/depviz/pkg/graph"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleFailed      = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints graph statistics on a single line, followed by a warning
// for every limit that cut the traversal short.
func printStats(w io.Writer, g *graph.Graph, limits deps.Limits) {
	s := g.Stats()
	parts := []string{
		fmt.Sprintf("%d nodes", s.Nodes),
		fmt.Sprintf("%d edges", s.Edges),
	}
	if s.Pending > 0 {
		parts = append(parts, fmt.Sprintf("%d not expanded", s.Pending))
	}
	if n := len(g.DetectCycles()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d cycles", n))
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	if s.Failed > 0 {
		line += StyleDim.Render(" · ") + styleFailed.Render(fmt.Sprintf("%d failed", s.Failed))
	}
	fmt.Fprintln(w, line)

	if limits.DepthReached {
		printWarning(w, "depth limit reached; deeper packages are not expanded")
	}
	if limits.NodesReached {
		printWarning(w, "node limit reached; some packages are not expanded")
	}
}

// formatCycle renders the shortest dependency loop through the first member
// of cycle, e.g. "a@1.0.0 → b@2.0.0 → a@1.0.0".
func formatCycle(g *graph.Graph, cycle graph.Cycle) string {
	if len(cycle) == 0 {
		return ""
	}
	path := shortestLoop(g, cycle)
	parts := make([]string, 0, len(path)+1)
	for _, ref := range path {
		parts = append(parts, ref.String())
	}
	parts = append(parts, cycle[0].String())
	return strings.Join(parts, " "+iconArrow+" ")
}

// shortestLoop finds, by breadth-first search inside the cycle's members, the
// shortest path from cycle[0] back to itself. The returned path starts at
// cycle[0] and excludes the closing step.
func shortestLoop(g *graph.Graph, cycle graph.Cycle) []graph.PackageRef {
	start := cycle[0]
	member := make(map[graph.PackageRef]bool, len(cycle))
	for _, ref := range cycle {
		member[ref] = true
	}

	prev := map[graph.PackageRef]graph.PackageRef{}
	queue := []graph.PackageRef{start}
	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]
		n, ok := g.Lookup(ref)
		if !ok {
			continue
		}
		for _, dep := range n.Deps {
			if dep == start {
				path := []graph.PackageRef{ref}
				for ref != start {
					ref = prev[ref]
					path = append(path, ref)
				}
				slices.Reverse(path)
				return path
			}
			if _, seen := prev[dep]; seen || !member[dep] {
				continue
			}
			prev[dep] = ref
			queue = append(queue, dep)
		}
	}
	return cycle
}
