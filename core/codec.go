package core

import (
	"encoding/binary"
	"math/rand"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

const (
	echoCode                = 0
	headerLength            = 8
	icmpProtocol            = 1
	icmpv6Protocol          = 58
	icmpPrivilegedNetwork   = "ip4:icmp"
	icmpv6PrivilegedNetwork = "ip6:ipv6-icmp"
)

// echoView is a structured view over a raw ICMP echo message.
// Offsets follow the common echo header layout:
// type(1) + code(1) + checksum(2) + identifier(2) + sequence(2) + payload.
type echoView struct {
	icmpType uint8
	code     uint8
	checksum uint16
	id       uint16
	seq      uint16
	payload  []byte
}

// buildEchoRequest builds a raw ICMPv4/ICMPv6 echo request carrying the
// given identifier and sequence number, with payloadSize random bytes of
// payload. Random payload avoids degenerate all-zero packets that some
// paths compress or special-case.
func buildEchoRequest(useIPv6 bool, id, seq uint16, payloadSize int, rng *rand.Rand) []byte {
	msg := make([]byte, headerLength+payloadSize)

	msg[0] = byte(echoRequestType(useIPv6))
	msg[1] = echoCode
	binary.BigEndian.PutUint16(msg[4:6], id)
	binary.BigEndian.PutUint16(msg[6:8], seq)
	rng.Read(msg[headerLength:])

	binary.BigEndian.PutUint16(msg[2:4], icmpChecksum(msg))

	return msg
}

// parseEchoReply views raw bytes as an echo message, reporting failure if
// the buffer is too short to hold the fixed header.
func parseEchoReply(raw []byte) (*echoView, bool) {
	if len(raw) < headerLength {
		return nil, false
	}

	return &echoView{
		icmpType: raw[0],
		code:     raw[1],
		checksum: binary.BigEndian.Uint16(raw[2:4]),
		id:       binary.BigEndian.Uint16(raw[4:6]),
		seq:      binary.BigEndian.Uint16(raw[6:8]),
		payload:  raw[headerLength:],
	}, true
}

// validEchoChecksum recomputes the message checksum and compares it with
// the stored value. Only meaningful for ICMPv4: the ICMPv6 checksum covers
// an IP pseudo-header the codec cannot see, and the kernel has already
// verified it before delivering the packet.
func validEchoChecksum(raw []byte) bool {
	if len(raw) < headerLength {
		return false
	}
	return icmpChecksum(raw) == binary.BigEndian.Uint16(raw[2:4])
}

// icmpChecksum computes the RFC 1071 16-bit ones'-complement sum over msg,
// treating the checksum field itself as zero so the same routine serves
// both building and validation.
func icmpChecksum(msg []byte) uint16 {
	var sum uint32

	for i := 0; i+1 < len(msg); i += 2 {
		if i == 2 {
			continue
		}
		sum += uint32(msg[i])<<8 | uint32(msg[i+1])
	}

	// left-over byte, padded with zero
	if len(msg)%2 == 1 {
		sum += uint32(msg[len(msg)-1]) << 8
	}

	for sum > 0xffff {
		sum = (sum >> 16) + (sum & 0xffff)
	}

	return ^uint16(sum)
}

// echoRequestType returns the version-specific ICMP type of an echo request.
func echoRequestType(useIPv6 bool) int {
	if useIPv6 {
		return int(ipv6.ICMPTypeEchoRequest)
	}
	return int(ipv4.ICMPTypeEcho)
}

// echoReplyType returns the version-specific ICMP type of an echo reply.
func echoReplyType(useIPv6 bool) int {
	if useIPv6 {
		return int(ipv6.ICMPTypeEchoReply)
	}
	return int(ipv4.ICMPTypeEchoReply)
}
