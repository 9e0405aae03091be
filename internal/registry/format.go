package registry

import (
	"fmt"
	"strings"
	"time"

	"ollamakit/pkg/types"
)

// FormatSize renders a byte count in decimal gigabytes with one decimal.
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.1fGB", float64(bytes)/1e9)
}

// Describe renders the summary printed by ShowModel.
func Describe(m types.Model) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Model: %s\n", orNA(m.Name))
	fmt.Fprintf(&b, "Size: %s\n", FormatSize(m.Size))
	fmt.Fprintf(&b, "Modified: %s\n", formatTime(m.ModifiedAt))
	fmt.Fprintf(&b, "Digest: %s\n", orNA(m.Digest))
	if d := m.Details; !d.IsZero() {
		b.WriteString("\nDetails:\n")
		fmt.Fprintf(&b, "  Format: %s\n", orNA(d.Format))
		fmt.Fprintf(&b, "  Family: %s\n", orNA(d.Family))
		fmt.Fprintf(&b, "  Parameter Size: %s\n", orNA(d.ParameterSize))
		fmt.Fprintf(&b, "  Quantization: %s\n", orNA(d.QuantizationLevel))
	}
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(time.RFC3339Nano)
}
