package core

import (
	"time"
)

// sendLog is the sender task's record of one volley: the timestamp taken
// right before each send attempt, indexed by sequence number, plus how many
// attempts actually made it onto the wire.
type sendLog struct {
	times []time.Time
	sent  int
}

// send dispatches the volley's echo requests at the configured cadence and
// signals the deadline handoff once the last attempt is done. Each send is
// scheduled against an accumulating virtual clock so that per-iteration
// drift does not compound over the volley.
//
// A failed send is logged and skipped, but its timestamp stays in the log:
// no reply will ever match it, and keeping it makes the aggregator's
// indexing uniform.
func (v *Volley) send(tx PacketSender) *sendLog {
	slog := &sendLog{times: make([]time.Time, v.settings.Count)}

	next := time.Now()
	for seq := 0; seq < v.settings.Count; seq++ {
		slog.times[seq] = time.Now()

		pkt := buildEchoRequest(!v.isIPv4, v.id, uint16(seq), v.settings.PayloadSize, v.rng)
		if err := tx.SendTo(pkt, v.addr); err != nil {
			v.logger.Errorf("Failed to send packet with sequence %d: %s", seq, err)
		} else {
			slog.sent++
		}

		next = next.Add(v.settings.Interval)
		if wait := time.Until(next); wait > 0 {
			time.Sleep(wait)
		}
	}

	// The receiver now gets exactly one more timeout window past the last
	// probe, instead of a fresh per-packet timeout for every missing reply.
	v.handoff.signal(time.Now().Add(v.settings.Timeout))

	return slog
}
