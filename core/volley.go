package core

import (
	"fmt"
	"math"
	"math/rand"
	"net"
	"time"

	log "github.com/sirupsen/logrus"
)

// ProbeResult is the outcome of a single answered probe.
type ProbeResult struct {
	// Latency is the time between the request send and the reply arrival.
	Latency time.Duration

	// ReplySize is the payload length of the reply in bytes.
	ReplySize int
}

// Report is the result of one volley. Results has one slot per sequence
// number in send order; a nil slot means the probe got no reply in time.
type Report struct {
	Results  []*ProbeResult
	Sent     int
	Received int
	Lost     int
}

// Volley measures round-trip latency and packet loss to a single target by
// sending a fixed-size batch of ICMP echo requests at a controlled pace.
//
// One volley runs two tasks: the sender owns the send half of the transport
// channel and the send-timestamp log, the receiver owns the receive half and
// the accepted-reply log. The only communication between them is the one-shot
// deadline handoff, so neither log needs a lock.
type Volley struct {
	settings  *Settings
	addr      *net.IPAddr
	isIPv4    bool
	transport Transport
	logger    *log.Logger
	rng       *rand.Rand

	// id is the random identifier embedded in every request of the current
	// run, used to reject replies meant for other ICMP senders. Regenerated
	// on every run, like the handoff.
	id      uint16
	handoff *deadlineHandoff
}

// NewVolley creates a volley engine aimed at the already-resolved target
// address, using raw ICMP sockets and a wall-clock-seeded random source.
func NewVolley(addr *net.IPAddr, settings *Settings) (*Volley, error) {
	rng := rand.New(rand.NewSource(time.Now().UTC().UnixNano()))
	return newVolley(addr, settings, RawTransport{}, rng)
}

// newVolley wires an engine from explicit capabilities. Tests inject an
// in-memory transport and a fixed-seed random source here.
func newVolley(addr *net.IPAddr, settings *Settings, transport Transport, rng *rand.Rand) (*Volley, error) {
	logger := NewLogger(settings.LoggingLevel)

	logger.Debug("Validating settings")
	if err := settings.validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	if addr == nil || addr.IP == nil {
		return nil, fmt.Errorf("target address is missing")
	}

	v := &Volley{
		settings:  settings,
		addr:      addr,
		isIPv4:    isIPv4(addr.IP),
		transport: transport,
		logger:    logger,
		rng:       rng,
	}

	logger.Infof("Created volley engine for %s (ipv4 %t), count %d, interval %s, timeout %s",
		addr, v.isIPv4, settings.Count, settings.Interval, settings.Timeout)

	return v, nil
}

// Run executes one volley and blocks until it completes: it opens the
// transport channel, starts the receiver, runs the sender to completion,
// joins the receiver and correlates both logs into a Report. Only a failure
// to open the channel is an error; every other fault shows up as a lower
// Sent or Received count.
func (v *Volley) Run() (*Report, error) {
	ch, err := v.transport.Open(!v.isIPv4)
	if err != nil {
		return nil, fmt.Errorf("could not open transport channel: %w", err)
	}
	defer ch.Close()

	v.id = uint16(v.rng.Intn(math.MaxUint16 + 1))
	v.handoff = newDeadlineHandoff()
	v.logger.Infof("Starting volley with identifier %d", v.id)

	replyCh := make(chan []inboundReply, 1)
	go func() {
		replyCh <- v.receive(ch)
	}()

	slog := v.send(ch)
	replies := <-replyCh

	return v.aggregate(slog, replies), nil
}

// aggregate re-keys the receiver's arrival-ordered log by sequence number
// and fills the per-probe result slots, making the output independent of
// network reordering.
func (v *Volley) aggregate(slog *sendLog, replies []inboundReply) *Report {
	report := &Report{
		Results: make([]*ProbeResult, v.settings.Count),
		Sent:    slog.sent,
	}

	for _, reply := range replies {
		seq := int(reply.seq)
		if seq >= v.settings.Count {
			v.logger.Errorf("Received packet with invalid sequence number: %d", reply.seq)
			continue
		}

		latency := reply.arrival.Sub(slog.times[seq])
		if latency > v.settings.Timeout {
			v.logger.Debugf("Discarding reply for sequence %d, arrived %s after its request", seq, latency)
			continue
		}

		if report.Results[seq] != nil {
			v.logger.Errorf("Received duplicate packet with sequence number: %d", reply.seq)
			continue
		}

		report.Received++
		report.Results[seq] = &ProbeResult{
			Latency:   latency,
			ReplySize: reply.size,
		}
	}

	report.Lost = v.settings.Count - report.Received
	return report
}

// MeasureVolley sends one volley of echo requests to target and reports
// per-sequence latency and loss. Multi-target measurement is an outer loop
// over single-target volleys.
func MeasureVolley(target *net.IPAddr, settings *Settings) (*Report, error) {
	v, err := NewVolley(target, settings)
	if err != nil {
		return nil, err
	}
	return v.Run()
}
