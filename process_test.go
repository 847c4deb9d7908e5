package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clockoffset/pkg/timestamp"
)

func TestFormatSample(t *testing.T) {
	s := timestamp.Sample{
		T1:   timestamp.Timestamp{Sec: 1000, Nsec: 0},
		Tau2: timestamp.Timestamp{Sec: 1000, Nsec: 500_000_000},
		T3:   timestamp.Timestamp{Sec: 1000, Nsec: 800_000_000},
	}
	assert.Equal(t,
		"1000.000000000, 1000.500000000, 1000.800000000, -0.500000000, 0.300000000, -0.100000000",
		formatSample(s))
}

func TestFormatSamplePadsNanoseconds(t *testing.T) {
	s := timestamp.Sample{
		T1:   timestamp.Timestamp{Sec: 1700000000, Nsec: 42},
		Tau2: timestamp.Timestamp{Sec: 1700000000, Nsec: 42},
		T3:   timestamp.Timestamp{Sec: 1700000000, Nsec: 42},
	}
	assert.Equal(t,
		"1700000000.000000042, 1700000000.000000042, 1700000000.000000042, 0.000000000, 0.000000000, 0.000000000",
		formatSample(s))
}
