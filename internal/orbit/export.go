package orbit

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
)

// SnapshotExport is the JSON-serializable state of a running system.
type SnapshotExport struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Frames      uint64       `json:"frames"`
	Controls    Controls     `json:"controls"`
	Bodies      []BodyExport `json:"bodies"`
}

// BodyExport is a JSON-friendly body representation.
type BodyExport struct {
	Name          string  `json:"name"`
	Kind          string  `json:"kind"`
	Parent        string  `json:"parent,omitempty"`
	Angle         float64 `json:"angle_rad"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Z             float64 `json:"z"`
	Distance      float64 `json:"distance"`
	Visible       bool    `json:"visible"`
	TrailLength   int     `json:"trail_length,omitempty"`
	TrailCapacity int     `json:"trail_capacity,omitempty"`
}

// ExportSnapshot converts the system state to an exportable format.
func ExportSnapshot(sys *System, generatedAt time.Time) *SnapshotExport {
	if sys == nil {
		return &SnapshotExport{GeneratedAt: generatedAt}
	}

	export := &SnapshotExport{
		GeneratedAt: generatedAt,
		Frames:      sys.Frames(),
		Controls:    *sys.Controls(),
	}
	for _, b := range sys.Bodies() {
		export.Bodies = append(export.Bodies, BodyExport{
			Name:          b.Name,
			Kind:          b.Kind.String(),
			Parent:        b.Parent,
			Angle:         b.Angle,
			X:             b.Position.X,
			Y:             b.Position.Y,
			Z:             b.Position.Z,
			Distance:      b.Position.Norm(),
			Visible:       b.Visible,
			TrailLength:   b.TrailLen,
			TrailCapacity: b.TrailCapacity,
		})
	}
	return export
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteSummaryTable writes a text table of every body to the given writer.
func WriteSummaryTable(w io.Writer, sys *System, timestamp time.Time) {
	fmt.Fprintf(w, "Orrery @ %s\n", timestamp.Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 84))

	if sys == nil {
		fmt.Fprintln(w, "No bodies")
		return
	}

	fmt.Fprintf(w, "%-16s %-6s %-8s %8s %8s %8s %8s %7s\n",
		"Body", "Kind", "Parent", "X", "Y", "Z", "Phase°", "Trail")
	fmt.Fprintln(w, strings.Repeat("─", 84))

	bodies := sys.Bodies()
	for _, b := range bodies {
		trail := "-"
		if b.TrailCapacity > 0 {
			trail = fmt.Sprintf("%d/%d", b.TrailLen, b.TrailCapacity)
		}
		fmt.Fprintf(w, "%-16s %-6s %-8s %8.2f %8.2f %8.2f %8.1f %7s\n",
			truncateStr(b.Name, 16),
			b.Kind,
			truncateStr(b.Parent, 8),
			b.Position.X,
			b.Position.Y,
			b.Position.Z,
			phaseDegrees(b.Angle),
			trail,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d bodies after %d frames\n", len(bodies), sys.Frames())
}

// phaseDegrees wraps an unbounded angle into [0, 360).
func phaseDegrees(rad float64) float64 {
	d := math.Mod(rad*180/math.Pi, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
