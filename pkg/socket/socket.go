package socket

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"

	"clockoffset/pkg/timestamp"
)

func Addr(x *net.UDPAddr) unix.Sockaddr {
	res := &unix.SockaddrInet4{
		Port: x.Port,
	}
	copy(res.Addr[:], x.IP.To4())
	return res
}

func AddrToString(sa unix.Sockaddr) string {
	switch v := sa.(type) {
	case *unix.SockaddrInet4:
		ip := net.IP(v.Addr[:])
		return fmt.Sprintf("%s:%d", ip, v.Port)
	case *unix.SockaddrInet6:
		ip := net.IP(v.Addr[:])
		return fmt.Sprintf("[%s]:%d", ip, v.Port)
	case *unix.SockaddrUnix:
		return v.Name
	default:
		panic(fmt.Errorf("unsupported address type %T", v))
	}
}

// Listen creates a datagram socket bound to ep on all interfaces.
func Listen(network, ep string) (int, error) {
	addr, err := net.ResolveUDPAddr(network, ep)
	if err != nil {
		return -1, fmt.Errorf("resolve addr: %w", err)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return -1, fmt.Errorf("socket: %w", err)
	}

	if err = unix.Bind(fd, Addr(addr)); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("bind: %w", err)
	}
	return fd, nil
}

// Dial creates a datagram socket on an ephemeral local port connected to
// ep, fixing the send destination and restricting receives to that peer.
func Dial(network, ep string) (int, error) {
	addr, err := net.ResolveUDPAddr(network, ep)
	if err != nil {
		return -1, fmt.Errorf("resolve addr: %w", err)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return -1, fmt.Errorf("socket: %w", err)
	}

	if err = unix.Connect(fd, Addr(addr)); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("connect: %w", err)
	}
	return fd, nil
}

// recvBufSize is comfortably larger than any valid datagram so that
// oversized packets are seen at their true length instead of truncated to
// a valid-looking one.
const recvBufSize = 1024

// Datagram is one received packet plus its arrival stamp. At is captured
// immediately after recvfrom returns, before the packet is handed over,
// to keep added latency out of the offset estimate.
type Datagram struct {
	Buf  []byte
	From unix.Sockaddr
	At   timestamp.Timestamp
	Err  error
}

// NewReceiver returns a blocking receive function for fd. Each call yields
// a fresh copy of the payload, so callers may hold on to it.
func NewReceiver(fd int) func() Datagram {
	buf := make([]byte, recvBufSize)

	return func() Datagram {
		n, from, err := unix.Recvfrom(fd, buf, 0)
		if err != nil {
			return Datagram{Err: fmt.Errorf("recvfrom: %w", err)}
		}

		at, err := timestamp.Now()
		if err != nil {
			return Datagram{Err: err}
		}

		out := make([]byte, n)
		copy(out, buf[:n])
		return Datagram{Buf: out, From: from, At: at}
	}
}

// NewAsyncReceiver runs a receive loop on its own goroutine and delivers
// datagrams over a channel, so the caller can multiplex receives with a
// send timer in one select.
func NewAsyncReceiver(fd, chDepth int) <-chan Datagram {
	ch := make(chan Datagram, chDepth)
	go func() {
		recv := NewReceiver(fd)
		for {
			ch <- recv()
		}
	}()
	return ch
}
