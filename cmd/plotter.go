package cmd

import (
	"fmt"
	"time"

	"github.com/guptarohit/asciigraph"

	"github.com/volleyping/volley/core"
)

// plotLatencies renders the volley's per-sequence latencies as a terminal
// chart. Lost probes are drawn at zero and latencies above the clip value
// are flattened so a single outlier cannot squash the rest of the series.
func plotLatencies(report *core.Report, width, height int, maxLatency time.Duration) {
	clipMs := float64(maxLatency) / float64(time.Millisecond)

	series := make([]float64, len(report.Results))
	for seq, res := range report.Results {
		if res == nil {
			continue
		}
		ms := float64(res.Latency) / float64(time.Millisecond)
		if ms > clipMs {
			ms = clipMs
		}
		series[seq] = ms
	}

	fmt.Println(asciigraph.Plot(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(1),
		asciigraph.Caption("latency per sequence (ms)")))
}
