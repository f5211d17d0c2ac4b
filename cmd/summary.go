package cmd

import (
	"sort"
	"time"

	"github.com/volleyping/volley/core"
)

// summary condenses one volley report into the figures shown per line of
// output. Latencies are in whole milliseconds; when no replies arrived at
// all, every figure is substituted with the configured timeout.
type summary struct {
	avgMs   int64
	minMs   int64
	maxMs   int64
	p50Ms   int64
	p99Ms   int64
	missing []int
}

// summarize computes the latency distribution and the list of sequence
// numbers that never got a reply.
func summarize(report *core.Report, timeout time.Duration) summary {
	var latencies []int64
	var missing []int
	var total time.Duration

	for seq, res := range report.Results {
		if res == nil {
			missing = append(missing, seq)
			continue
		}
		latencies = append(latencies, res.Latency.Milliseconds())
		total += res.Latency
	}

	timeoutMs := timeout.Milliseconds()
	sum := summary{
		avgMs:   timeoutMs,
		minMs:   timeoutMs,
		maxMs:   timeoutMs,
		p50Ms:   timeoutMs,
		p99Ms:   timeoutMs,
		missing: missing,
	}

	if report.Received > 0 {
		sum.avgMs = (total / time.Duration(report.Received)).Milliseconds()
	}

	if len(latencies) > 0 {
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		sum.minMs = latencies[0]
		sum.maxMs = latencies[len(latencies)-1]
		sum.p50Ms = latencies[int(float64(len(latencies))*0.50)]
		sum.p99Ms = latencies[int(float64(len(latencies))*0.99)]
	}

	return sum
}
