package timestamp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clockoffset/pkg/timestamp"
)

func TestRoundTrip(t *testing.T) {
	for _, ts := range []timestamp.Timestamp{
		{},
		{Sec: 1000, Nsec: 500_000_000},
		{Sec: -1, Nsec: 999_999_999},
		{Sec: 1<<62 - 1, Nsec: 1},
		// out-of-range nanos pass through untouched
		{Sec: 1234, Nsec: -5},
		{Sec: 1234, Nsec: 3_000_000_000},
	} {
		buf := ts.Encode()
		require.Len(t, buf, timestamp.Size)

		got, err := timestamp.Decode(buf)
		require.NoError(t, err)
		assert.Equal(t, ts, got)
	}
}

func TestWireLayout(t *testing.T) {
	ts := timestamp.Timestamp{Sec: 0x0102030405060708, Nsec: 0x1112131415161718}
	assert.Equal(t, []byte{
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
		0x18, 0x17, 0x16, 0x15, 0x14, 0x13, 0x12, 0x11,
	}, ts.Encode())
}

func TestDecodeShortBuffer(t *testing.T) {
	for _, n := range []int{0, 1, 8, 15} {
		_, err := timestamp.Decode(make([]byte, n))
		assert.ErrorIs(t, err, timestamp.ErrShortBuffer)
	}
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	ts := timestamp.Timestamp{Sec: 42, Nsec: 7}
	buf := append(ts.Encode(), 0xff, 0xff)

	got, err := timestamp.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, ts, got)
}

func TestAppendReplyEchoesRequestVerbatim(t *testing.T) {
	req := make([]byte, timestamp.RequestSize)
	for i := range req {
		req[i] = byte(i * 17)
	}
	capture := timestamp.Timestamp{Sec: 999, Nsec: 123_456_789}

	reply := timestamp.AppendReply(nil, req, capture)
	require.Len(t, reply, timestamp.ReplySize)
	assert.Equal(t, req, reply[:timestamp.RequestSize])

	got, err := timestamp.Decode(reply[timestamp.RequestSize:])
	require.NoError(t, err)
	assert.Equal(t, capture, got)
}

func TestNow(t *testing.T) {
	ts, err := timestamp.Now()
	require.NoError(t, err)
	assert.Greater(t, ts.Sec, int64(0))
	assert.GreaterOrEqual(t, ts.Nsec, int64(0))
	assert.Less(t, ts.Nsec, int64(1_000_000_000))
}
