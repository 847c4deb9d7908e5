package timestamp

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Timestamp is a realtime clock reading split into seconds and nanoseconds,
// matching the wire layout. Nsec is not range-checked anywhere: values
// outside [0, 1e9) are carried as-is and folded in by the wide accumulator.
type Timestamp struct {
	Sec  int64
	Nsec int64
}

const (
	// Size is the encoded width of one Timestamp.
	Size = 16
	// RequestSize is the emitter's datagram: one Timestamp.
	RequestSize = Size
	// ReplySize is the reflector's datagram: the request echoed verbatim
	// plus the reflector's own capture.
	ReplySize = 2 * Size
)

var ErrShortBuffer = errors.New("buffer too short for timestamp")

// Now reads CLOCK_REALTIME. A failure here is fatal to the caller; the tool
// cannot run without a clock.
func Now() (Timestamp, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_REALTIME, &ts); err != nil {
		return Timestamp{}, fmt.Errorf("clock_gettime: %w", err)
	}
	return Timestamp{Sec: int64(ts.Sec), Nsec: int64(ts.Nsec)}, nil
}

// Append encodes t as two little-endian int64s (seconds, nanoseconds) and
// appends the 16 bytes to dst.
func (t Timestamp) Append(dst []byte) []byte {
	// two int64 fields cannot fail to encode
	dst, _ = binary.Append(dst, binary.LittleEndian, &t)
	return dst
}

// Encode returns the 16-byte wire form of t.
func (t Timestamp) Encode() []byte {
	return t.Append(make([]byte, 0, Size))
}

// Decode reads one Timestamp from the first 16 bytes of buf. It never reads
// past len(buf): a short buffer yields ErrShortBuffer.
func Decode(buf []byte) (Timestamp, error) {
	var t Timestamp
	if len(buf) < Size {
		return t, fmt.Errorf("%w: %d bytes, want %d", ErrShortBuffer, len(buf), Size)
	}
	if _, err := binary.Decode(buf[:Size], binary.LittleEndian, &t); err != nil {
		return t, fmt.Errorf("binary.Decode: %w", err)
	}
	return t, nil
}

// AppendReply builds the reflector's datagram: the request bytes echoed
// byte-for-byte (never decoded and re-encoded) followed by the capture ts.
func AppendReply(dst, req []byte, ts Timestamp) []byte {
	dst = append(dst, req...)
	return ts.Append(dst)
}
