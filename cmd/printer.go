package cmd

import (
	"fmt"
	"net"
	"time"

	"github.com/volleyping/volley/core"
)

const timestampLayout = "2006-01-02 15:04:05"

// printer renders one line per finished volley.
type printer interface {
	// header prints the one-time preamble, if the format has one.
	header()
	// volley prints the report of a single volley.
	volley(start time.Time, target string, addr *net.IPAddr, report *core.Report, sum summary)
}

// newPrinter returns the printer for the requested output format.
func newPrinter(format string) (printer, error) {
	switch format {
	case "text":
		return textPrinter{}, nil
	case "csv":
		return csvPrinter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q, want \"text\" or \"csv\"", format)
	}
}

type textPrinter struct{}

func (textPrinter) header() {}

func (textPrinter) volley(start time.Time, target string, addr *net.IPAddr, report *core.Report, sum summary) {
	fmt.Printf("[%s] %s (%s): received: %d/%d, lost: %d, avg: %d ms, min: %d ms, max: %d ms,"+
		" 50th: %d ms, 99th: %d ms, missing: %v\n",
		start.Format(timestampLayout), target, addr,
		report.Received, report.Sent, report.Lost,
		sum.avgMs, sum.minMs, sum.maxMs, sum.p50Ms, sum.p99Ms, sum.missing)
}

type csvPrinter struct{}

func (csvPrinter) header() {
	fmt.Println("time,target,ip,received,sent,lost,avg,min,max,50th,99th,missing")
}

func (csvPrinter) volley(start time.Time, target string, addr *net.IPAddr, report *core.Report, sum summary) {
	fmt.Printf("%s,%s,%s,%d,%d,%d,%d,%d,%d,%d,%d,%v\n",
		start.Format(timestampLayout), target, addr,
		report.Received, report.Sent, report.Lost,
		sum.avgMs, sum.minMs, sum.maxMs, sum.p50Ms, sum.p99Ms, sum.missing)
}
