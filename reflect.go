package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ddirect/container/ttlmap"
	"golang.org/x/sys/unix"

	"clockoffset/pkg/socket"
	"clockoffset/pkg/timestamp"
)

// Reflect binds to the configured port on all interfaces and echoes every
// valid request back to its sender with the local capture time appended.
// Malformed datagrams are logged and dropped; socket failures end the loop.
func Reflect(conf Config) error {
	fd, err := socket.Listen(conf.network, fmt.Sprintf(":%d", conf.port))
	if err != nil {
		return err
	}

	log.Printf("listening for timestamps on port %d", conf.port)

	clients, expired := ttlmap.New[string, int](time.Minute, time.Second)

	recvCh := socket.NewAsyncReceiver(fd, 16)

	for {
		select {
		case gone := <-expired:
			for client := range gone {
				log.Printf("client %s idle, forgotten", client.Key())
			}

		case pkt := <-recvCh:
			if pkt.Err != nil {
				return pkt.Err
			}

			reply, ok := reflectReply(pkt)
			if !ok {
				log.Printf("dropping datagram from %s: %d bytes, want %d",
					socket.AddrToString(pkt.From), len(pkt.Buf), timestamp.RequestSize)
				continue
			}

			client, seen := clients.GetOrCreate(socket.AddrToString(pkt.From))
			if !seen {
				log.Printf("new client %s", client.Key())
			}
			client.Value++

			if err := unix.Sendto(fd, reply, 0, pkt.From); err != nil {
				return fmt.Errorf("sendto: %w", err)
			}
		}
	}
}

// reflectReply builds the reply for one inbound datagram: the request bytes
// echoed verbatim plus the arrival capture. It reports false for anything
// that is not a 16-byte request.
func reflectReply(pkt socket.Datagram) ([]byte, bool) {
	if len(pkt.Buf) != timestamp.RequestSize {
		return nil, false
	}
	return timestamp.AppendReply(nil, pkt.Buf, pkt.At), true
}
