package core

import (
	"net"
	"time"
)

// inboundReply is the receiver task's record of one accepted echo reply.
type inboundReply struct {
	seq     uint16
	arrival time.Time
	size    int
}

// receive collects validated echo replies until it has one per probe or its
// deadline passes. While the sender is still active it waits up to the
// per-packet timeout for each packet, probing the handoff without blocking
// every iteration; once the handoff delivers the absolute stop instant it
// waits only for whatever remains of it.
func (v *Volley) receive(rx PacketReceiver) []inboundReply {
	replies := make([]inboundReply, 0, v.settings.Count)

	var stopAt time.Time
	haveDeadline := false

	for len(replies) < v.settings.Count {
		if !haveDeadline {
			stopAt, haveDeadline = v.handoff.probe()
			if haveDeadline {
				v.logger.Debugf("Sender finished, collecting until %s", stopAt)
			}
		}

		wait := v.settings.Timeout
		if haveDeadline {
			wait = time.Until(stopAt)
			if wait <= 0 {
				break
			}
		}

		pkt, err := rx.NextWithTimeout(wait)
		if err != nil {
			// broken channel, keep whatever was already collected
			v.logger.Errorf("Error receiving packet: %s", err)
			return replies
		}
		if pkt == nil {
			continue
		}

		if !v.fromTarget(pkt.Src) {
			v.logger.Debugf("Ignoring packet from unrelated source %s", pkt.Src)
			continue
		}

		view, ok := parseEchoReply(pkt.Content)
		if !ok {
			v.logger.Debugf("Ignoring malformed packet of %d bytes", len(pkt.Content))
			continue
		}

		if int(view.icmpType) != echoReplyType(!v.isIPv4) {
			// A non-echo ICMP message from the target, such as a destination
			// unreachable, ends the collection entirely.
			v.logger.Infof("Received ICMP type %d from target, stopping collection", view.icmpType)
			break
		}

		if v.isIPv4 && !validEchoChecksum(pkt.Content) {
			v.logger.Errorf("Received packet with invalid checksum")
			continue
		}

		if view.id != v.id {
			v.logger.Debugf("Echo reply identifier does not match volley identifier."+
				" Expected: %d. Actual: %d.", v.id, view.id)
			continue
		}

		replies = append(replies, inboundReply{
			seq:     view.seq,
			arrival: time.Now(),
			size:    len(view.payload),
		})
	}

	return replies
}

// fromTarget reports whether src is the volley's target address.
func (v *Volley) fromTarget(src net.Addr) bool {
	switch a := src.(type) {
	case *net.IPAddr:
		return a.IP.Equal(v.addr.IP)
	case *net.UDPAddr:
		return a.IP.Equal(v.addr.IP)
	default:
		return false
	}
}
