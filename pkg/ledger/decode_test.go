package ledger

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

// encodeNodeDevice builds a device account buffer the way the on-chain
// program lays it out: discriminator, authority, u32-LE uri length, uri
// bytes.
func encodeNodeDevice(authority solana.PublicKey, uri string) []byte {
	buf := make([]byte, 0, discriminatorSize+authoritySize+uriLengthSize+len(uri))
	buf = append(buf, make([]byte, discriminatorSize)...)
	buf = append(buf, authority[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(uri)))
	buf = append(buf, uri...)
	return buf
}

func encodeNetworkStats(totalNodes uint64) []byte {
	buf := make([]byte, 0, networkStatsSize)
	buf = append(buf, make([]byte, discriminatorSize)...)
	buf = binary.LittleEndian.AppendUint64(buf, totalNodes)
	return buf
}

func testAuthority(b byte) solana.PublicKey {
	return solana.PublicKeyFromBytes(bytes.Repeat([]byte{b}, 32))
}

func TestDecodeNodeDeviceRoundTrip(t *testing.T) {
	authority := testAuthority(7)

	for _, uri := range []string{"", "https://node.example.com", "grüße/🛰"} {
		device, err := DecodeNodeDevice(encodeNodeDevice(authority, uri))
		require.NoError(t, err)
		require.Equal(t, authority, device.Authority)
		require.Equal(t, uri, device.URI)
	}
}

func TestDecodeNodeDeviceRejectsTruncation(t *testing.T) {
	full := encodeNodeDevice(testAuthority(1), "https://node.example.com")

	// Any buffer shorter than discriminator+authority+length must fail,
	// never panic or read out of bounds.
	for size := 0; size < discriminatorSize+authoritySize+uriLengthSize; size++ {
		_, err := DecodeNodeDevice(full[:size])
		require.Error(t, err, "size %d", size)
		require.True(t, IsDecodeError(err))
	}
}

func TestDecodeNodeDeviceRejectsLengthOverrun(t *testing.T) {
	buf := encodeNodeDevice(testAuthority(2), "short")
	// Declare more uri bytes than the buffer holds
	binary.LittleEndian.PutUint32(buf[discriminatorSize+authoritySize:], 1000)

	_, err := DecodeNodeDevice(buf)
	require.Error(t, err)
	require.True(t, IsDecodeError(err))
}

func TestDecodeNodeDeviceRejectsInvalidUTF8(t *testing.T) {
	buf := encodeNodeDevice(testAuthority(3), "abcd")
	copy(buf[len(buf)-4:], []byte{0xff, 0xfe, 0xfd, 0xfc})

	_, err := DecodeNodeDevice(buf)
	require.Error(t, err)
	require.True(t, IsDecodeError(err))
}

func TestDecodeNetworkStats(t *testing.T) {
	stats, err := DecodeNetworkStats(encodeNetworkStats(42))
	require.NoError(t, err)
	require.Equal(t, uint64(42), stats.TotalNodes)

	_, err = DecodeNetworkStats(make([]byte, networkStatsSize-1))
	require.Error(t, err)
	require.True(t, IsDecodeError(err))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		layout Layout
	}{
		{"device", encodeNodeDevice(testAuthority(4), "uri"), LayoutNodeDevice},
		{"device at threshold boundary", make([]byte, nodeDeviceThreshold+1), LayoutNodeDevice},
		{"stats", encodeNetworkStats(1), LayoutNetworkStats},
		{"empty", nil, LayoutUnknown},
		{"discriminator only", make([]byte, discriminatorSize), LayoutUnknown},
		{"between stats and device", make([]byte, nodeDeviceThreshold), LayoutUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.layout, Classify(tt.data))
		})
	}
}
