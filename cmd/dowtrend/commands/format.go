package commands

import (
	"fmt"
	"math"
	"strings"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// undefinedCell is printed for NaN returns
const undefinedCell = "-"

// PrintProgress prints a progress step with counter
// Example: [Run] index:IDIV [1/20]
func PrintProgress(tag string, message string, current int, total int) {
	fmt.Printf("[%s] %s [%d/%d]\n", tag, message, current, total)
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Println()
	fmt.Printf("⚠️  %s\n", message)
	fmt.Println()
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Printf("❌ %s\n", message)
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Printf("ℹ️  %s\n", message)
}

// PrintTableHeader prints a table header followed by a rule as wide as the columns
func PrintTableHeader(columns []string, widths []int) {
	fmt.Println(FormatRow(columns, widths))

	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Println(strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row
func PrintTableRow(values []string, widths []int) {
	fmt.Println(FormatRow(values, widths))
}

// FormatRow left-aligns values in columns of the given widths
func FormatRow(values []string, widths []int) string {
	var b strings.Builder
	for i, val := range values {
		if i < len(widths) {
			fmt.Fprintf(&b, "%-*s", widths[i], val)
		} else {
			b.WriteString(val)
		}
		if i < len(values)-1 {
			b.WriteString("  ")
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// FormatReturn renders a percentage return with sign, e.g. "+12.50%"
func FormatReturn(v float64) string {
	if math.IsNaN(v) {
		return undefinedCell
	}
	return fmt.Sprintf("%+.2f%%", v)
}

// FormatNumber renders a plain two-decimal number
func FormatNumber(v float64) string {
	if math.IsNaN(v) {
		return undefinedCell
	}
	return fmt.Sprintf("%.2f", v)
}
