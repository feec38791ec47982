package render

import (
	"bytes"
	"fmt"
	"image"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Stats summarizes a finished render.
type Stats struct {
	Scene   string
	Bounds  image.Rectangle
	Samples int
	Workers int
	Rows    int

	PrimaryRays   uint64
	SecondaryRays uint64
	ShadowRays    uint64

	Elapsed time.Duration
}

func (s Stats) TotalRays() uint64 {
	return s.PrimaryRays + s.SecondaryRays + s.ShadowRays
}

// Table renders the statistics as a text table.
func (s Stats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Region", "Samples", "Workers", "Rows", "Primary", "Secondary", "Shadow", "Total", "Elapsed"})
	table.Append([]string{
		s.Scene,
		s.Bounds.String(),
		fmt.Sprintf("%d", s.Samples),
		fmt.Sprintf("%d", s.Workers),
		fmt.Sprintf("%d", s.Rows),
		fmt.Sprintf("%d", s.PrimaryRays),
		fmt.Sprintf("%d", s.SecondaryRays),
		fmt.Sprintf("%d", s.ShadowRays),
		fmt.Sprintf("%d", s.TotalRays()),
		s.Elapsed.Round(time.Millisecond).String(),
	})
	table.Render()
	return buf.String()
}
