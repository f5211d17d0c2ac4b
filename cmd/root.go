package cmd

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/volleyping/volley/core"
)

var (
	count           int
	interval        float64
	size            int
	timeout         float64
	volleyInterval  float64
	format          string
	graph           bool
	graphWidth      int
	graphHeight     int
	graphMaxLatency float64
	verbose         bool
)

var rootCmd = &cobra.Command{
	Use:   "volley [flags] target...",
	Short: "volley pings in paced batches",
	Long: "volley measures round-trip latency and packet loss to one or more targets" +
		" by sending ICMP echo requests in fixed-size paced batches",
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	flags := rootCmd.Flags()
	flags.IntVarP(&count, "count", "c", 1000, "number of pings to send per volley")
	flags.Float64VarP(&interval, "interval", "i", 0.01, "seconds between each ping in a volley")
	flags.IntVarP(&size, "size", "s", 64, "payload size in bytes")
	flags.Float64Var(&timeout, "timeout", 1, "maximum number of seconds to wait for a reply")
	flags.Float64Var(&volleyInterval, "volley-interval", 0, "seconds between each volley")
	flags.StringVarP(&format, "format", "f", "text", "output format, \"text\" or \"csv\"")
	flags.BoolVar(&graph, "graph", false, "display a chart of the ping results")
	flags.IntVar(&graphWidth, "graph-width", 120, "chart width in columns")
	flags.IntVar(&graphHeight, "graph-height", 20, "chart height in rows")
	flags.Float64Var(&graphMaxLatency, "graph-max-latency", 0.1, "latency in seconds at which the chart clips")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log internal engine activity")
}

func run(cmd *cobra.Command, args []string) error {
	loggingLevel := uint32(log.ErrorLevel)
	if verbose {
		loggingLevel = uint32(log.DebugLevel)
	}

	settings := &core.Settings{
		Count:        count,
		PayloadSize:  size,
		Interval:     secondsToDuration(interval),
		Timeout:      secondsToDuration(timeout),
		LoggingLevel: loggingLevel,
	}

	printer, err := newPrinter(format)
	if err != nil {
		return err
	}

	r := newRunner(args, settings, &runnerOptions{
		volleyInterval:  secondsToDuration(volleyInterval),
		printer:         printer,
		graph:           graph,
		graphWidth:      graphWidth,
		graphHeight:     graphHeight,
		graphMaxLatency: secondsToDuration(graphMaxLatency),
	})

	return r.Run()
}

// secondsToDuration converts a fractional number of seconds into a Duration.
func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
