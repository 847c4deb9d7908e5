package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/sys/unix"

	"clockoffset/pkg/socket"
	"clockoffset/pkg/timestamp"
)

// Measure runs the emitter and estimator over one connected socket: the
// local clock goes out on a fixed interval and every reflected reply is
// turned into one offset sample. Send and receive paths share only the fd,
// which supports concurrent send/recv natively.
func Measure(conf Config) error {
	sampleCh := make(chan timestamp.Sample, 16)
	defer close(sampleCh)

	go Process(sampleCh, conf.mode, conf.maxSamples, conf.maxSpread)

	ep := fmt.Sprintf("%s:%d", conf.remote, conf.port)
	fd, err := socket.Dial(conf.network, ep)
	if err != nil {
		return err
	}

	log.Printf("sending timestamps to %s every %v seconds", ep, conf.interval)

	return measureLoop(fd, intervalDuration(conf.interval), sampleCh)
}

func measureLoop(fd int, interval time.Duration, sampleCh chan<- timestamp.Sample) error {
	send := func() error {
		t1, err := timestamp.Now()
		if err != nil {
			return err
		}
		if err := unix.Sendto(fd, t1.Encode(), 0, nil); err != nil {
			return fmt.Errorf("sendto: %w", err)
		}
		return nil
	}

	// first timestamp goes out immediately; the ticker paces the rest
	if err := send(); err != nil {
		return err
	}

	recvCh := socket.NewAsyncReceiver(fd, 16)
	tick := time.NewTicker(interval).C

	for {
		select {
		case <-tick:
			if err := send(); err != nil {
				return err
			}

		case pkt := <-recvCh:
			if pkt.Err != nil {
				return pkt.Err
			}
			s, ok, err := replySample(pkt)
			if err != nil {
				return err
			}
			if !ok {
				log.Printf("dropping datagram: %d bytes, want %d", len(pkt.Buf), timestamp.ReplySize)
				continue
			}
			sampleCh <- s
		}
	}
}

// replySample turns one reflected datagram into a sample: the echoed t1,
// the reflector's tau2, and the arrival stamp as t3. A wrong-length
// datagram is reported as not-ok and skipped. A decode failure after the
// length check means the framing invariant is broken and is fatal.
func replySample(pkt socket.Datagram) (timestamp.Sample, bool, error) {
	if len(pkt.Buf) != timestamp.ReplySize {
		return timestamp.Sample{}, false, nil
	}

	t1, err := timestamp.Decode(pkt.Buf[:timestamp.Size])
	if err != nil {
		return timestamp.Sample{}, false, err
	}
	tau2, err := timestamp.Decode(pkt.Buf[timestamp.Size:])
	if err != nil {
		return timestamp.Sample{}, false, err
	}

	return timestamp.Sample{T1: t1, Tau2: tau2, T3: pkt.At}, true, nil
}

func intervalDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
