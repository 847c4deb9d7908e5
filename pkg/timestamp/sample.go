package timestamp

import "math/big"

var nsPerSec = big.NewInt(1_000_000_000)

// Nanos returns Sec*1e9+Nsec. The product overflows int64 for large epoch
// values, so the total is accumulated in a big.Int.
func (t Timestamp) Nanos() *big.Int {
	n := big.NewInt(t.Sec)
	n.Mul(n, nsPerSec)
	return n.Add(n, big.NewInt(t.Nsec))
}

// Sample is one completed exchange: T1 the emitter's send time (as echoed
// in the reply), Tau2 the reflector's capture, T3 the arrival time of the
// reply. Samples are emitted and discarded; nothing is kept across rounds.
type Sample struct {
	T1   Timestamp
	Tau2 Timestamp
	T3   Timestamp
}

func diffNanos(a, b Timestamp) int64 {
	d := a.Nanos()
	return d.Sub(d, b.Nanos()).Int64()
}

// MinNanos is the lower offset bound t1-tau2 in nanoseconds.
func (s Sample) MinNanos() int64 { return diffNanos(s.T1, s.Tau2) }

// MaxNanos is the upper offset bound t3-tau2 in nanoseconds.
func (s Sample) MaxNanos() int64 { return diffNanos(s.T3, s.Tau2) }

// WindowNanos is the width of the offset uncertainty window, which equals
// the request-to-reply round trip t3-t1.
func (s Sample) WindowNanos() int64 { return diffNanos(s.T3, s.T1) }

// Min is the lower offset bound in seconds.
func (s Sample) Min() float64 { return float64(s.MinNanos()) * 1e-9 }

// Max is the upper offset bound in seconds.
func (s Sample) Max() float64 { return float64(s.MaxNanos()) * 1e-9 }

// Offset is the midpoint estimate in seconds. It is taken as the midpoint
// of the emitted bounds so that Offset == (Min+Max)/2 holds exactly even
// when the nanosecond sum is odd.
func (s Sample) Offset() float64 { return (s.Min() + s.Max()) / 2 }

// OffsetNanos is the midpoint estimate in nanoseconds, used by the stats
// window.
func (s Sample) OffsetNanos() int64 { return (s.MinNanos() + s.MaxNanos()) / 2 }
