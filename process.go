package main

import (
	"fmt"
	"time"

	"clockoffset/pkg/stats"
	"clockoffset/pkg/timestamp"
)

const header = "t1, tau2, t3, offset_min, offset_max, offset"

func b2s(b bool) string {
	if b {
		return "*"
	}
	return "-"
}

// Process consumes samples and writes the data stream to stdout. Nothing
// else writes there; diagnostics go through log on stderr.
func Process(ch <-chan timestamp.Sample, mode string, maxSamples int, maxSpread float64) {
	offset := stats.New[int64](maxSamples, maxSpread)
	window := stats.New[int64](maxSamples, maxSpread)

	if mode != "stats" {
		fmt.Println(header)
	}

	for s := range ch {
		switch mode {
		case "stats":
			offV := offset.Add(s.OffsetNanos())
			winV := window.Add(s.WindowNanos())
			fmt.Printf("%s%s%6d sampl %15v offM %15v offSD %15v winM %15v winSD\n",
				b2s(offV),
				b2s(winV),
				offset.Len(),
				time.Duration(offset.Mean()),
				time.Duration(offset.StdDev()),
				time.Duration(window.Mean()),
				time.Duration(window.StdDev()),
			)
		default:
			fmt.Println(formatSample(s))
		}
	}
}

// formatSample renders one data row: the three raw timestamps with
// zero-padded nanoseconds, then the offset bounds and midpoint as seconds
// with nine fractional digits.
func formatSample(s timestamp.Sample) string {
	return fmt.Sprintf("%d.%09d, %d.%09d, %d.%09d, %.9f, %.9f, %.9f",
		s.T1.Sec, s.T1.Nsec,
		s.Tau2.Sec, s.Tau2.Nsec,
		s.T3.Sec, s.T3.Nsec,
		s.Min(), s.Max(), s.Offset())
}
