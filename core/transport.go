package core

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/net/icmp"
)

// InboundPacket is a raw packet read from the wire together with its
// source address.
type InboundPacket struct {
	Content []byte
	Src     net.Addr
}

// PacketSender is the send half of a transport channel.
type PacketSender interface {
	SendTo(b []byte, dst net.Addr) error
}

// PacketReceiver is the receive half of a transport channel. NextWithTimeout
// blocks up to the given duration and returns (nil, nil) when it expires
// without a packet; a non-nil error means the channel is broken.
type PacketReceiver interface {
	NextWithTimeout(d time.Duration) (*InboundPacket, error)
}

// Channel is an open ICMP transport channel. The sender task only ever uses
// the PacketSender half and the receiver task only the PacketReceiver half,
// which keeps the two tasks free of shared mutable state.
type Channel interface {
	PacketSender
	PacketReceiver
	Close() error
}

// Transport opens raw ICMP channels. It is injected into the engine so
// tests can substitute an in-memory implementation that delivers synthetic
// replies deterministically.
type Transport interface {
	Open(useIPv6 bool) (Channel, error)
}

// RawTransport is the production Transport over privileged raw ICMP sockets.
type RawTransport struct{}

// Open listens on the version-appropriate raw ICMP network. It fails when
// raw-socket capability is unavailable, typically for lack of privilege.
func (RawTransport) Open(useIPv6 bool) (Channel, error) {
	network := icmpPrivilegedNetwork
	if useIPv6 {
		network = icmpv6PrivilegedNetwork
	}

	conn, err := icmp.ListenPacket(network, "")
	if err != nil {
		return nil, fmt.Errorf("could not listen for ICMP packets on %s: %w", network, err)
	}

	return &rawChannel{conn: conn}, nil
}

// rawChannel adapts an icmp.PacketConn to the Channel interface. WriteTo
// and ReadFrom are independently safe to call from the two tasks.
type rawChannel struct {
	conn *icmp.PacketConn
}

func (c *rawChannel) SendTo(b []byte, dst net.Addr) error {
	if _, err := c.conn.WriteTo(b, dst); err != nil {
		return fmt.Errorf("error while sending echo request: %w", err)
	}
	return nil
}

func (c *rawChannel) NextWithTimeout(d time.Duration) (*InboundPacket, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(d)); err != nil {
		return nil, fmt.Errorf("error while setting read deadline: %w", err)
	}

	buffer := make([]byte, 1500)
	length, src, err := c.conn.ReadFrom(buffer)
	if err != nil {
		if neterr, ok := err.(net.Error); ok && neterr.Timeout() {
			return nil, nil
		}
		return nil, fmt.Errorf("error while reading from connection: %w", err)
	}

	return &InboundPacket{Content: buffer[:length], Src: src}, nil
}

func (c *rawChannel) Close() error {
	return c.conn.Close()
}
