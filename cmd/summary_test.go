package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/volleyping/volley/core"
)

func reportWithLatencies(latencies []time.Duration) *core.Report {
	report := &core.Report{Results: make([]*core.ProbeResult, len(latencies))}
	for seq, latency := range latencies {
		if latency < 0 {
			report.Lost++
			continue
		}
		report.Results[seq] = &core.ProbeResult{Latency: latency, ReplySize: 64}
		report.Received++
	}
	report.Sent = len(latencies)
	return report
}

// TestSummarizeAllReplied checks the distribution figures over a full volley.
func TestSummarizeAllReplied(t *testing.T) {
	report := reportWithLatencies([]time.Duration{
		10 * time.Millisecond,
		20 * time.Millisecond,
		30 * time.Millisecond,
		40 * time.Millisecond,
	})

	sum := summarize(report, time.Second)

	assert.Equal(t, int64(25), sum.avgMs)
	assert.Equal(t, int64(10), sum.minMs)
	assert.Equal(t, int64(40), sum.maxMs)
	assert.Equal(t, int64(30), sum.p50Ms)
	assert.Equal(t, int64(40), sum.p99Ms)
	assert.Empty(t, sum.missing)
}

// TestSummarizeMissingSequences lists lost probes by sequence number.
func TestSummarizeMissingSequences(t *testing.T) {
	report := reportWithLatencies([]time.Duration{
		10 * time.Millisecond,
		-1,
		30 * time.Millisecond,
		-1,
	})

	sum := summarize(report, time.Second)

	assert.Equal(t, []int{1, 3}, sum.missing)
	assert.Equal(t, int64(10), sum.minMs)
	assert.Equal(t, int64(30), sum.maxMs)
}

// TestSummarizeNoReplies substitutes the timeout for every figure.
func TestSummarizeNoReplies(t *testing.T) {
	report := reportWithLatencies([]time.Duration{-1, -1, -1})

	sum := summarize(report, 2*time.Second)

	assert.Equal(t, int64(2000), sum.avgMs)
	assert.Equal(t, int64(2000), sum.minMs)
	assert.Equal(t, int64(2000), sum.maxMs)
	assert.Equal(t, int64(2000), sum.p50Ms)
	assert.Equal(t, int64(2000), sum.p99Ms)
	assert.Equal(t, []int{0, 1, 2}, sum.missing)
}

// TestSummarizeSingleReply keeps the percentile indexing in range.
func TestSummarizeSingleReply(t *testing.T) {
	report := reportWithLatencies([]time.Duration{7 * time.Millisecond})

	sum := summarize(report, time.Second)

	assert.Equal(t, int64(7), sum.minMs)
	assert.Equal(t, int64(7), sum.p50Ms)
	assert.Equal(t, int64(7), sum.p99Ms)
}
