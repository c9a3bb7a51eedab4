package ledger

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/gagliardetto/solana-go"
)

// DecodeNodeDevice parses a device account buffer: behind the
// discriminator sits a 32-byte authority public key, a u32-LE length
// prefix and that many bytes of UTF-8 uri. Pure function, a failure
// never affects other accounts of the same fetch.
func DecodeNodeDevice(data []byte) (*NodeDevice, error) {
	if len(data) < discriminatorSize+authoritySize+uriLengthSize {
		return nil, NewDecodeError(LayoutNodeDevice, len(data), "buffer too short for authority and uri length")
	}

	payload := data[discriminatorSize:]
	authority := solana.PublicKeyFromBytes(payload[:authoritySize])
	payload = payload[authoritySize:]

	uriLen := int(binary.LittleEndian.Uint32(payload[:uriLengthSize]))
	payload = payload[uriLengthSize:]
	if uriLen > len(payload) {
		return nil, NewDecodeError(LayoutNodeDevice, len(data), "declared uri length overruns buffer")
	}

	uri := payload[:uriLen]
	if !utf8.Valid(uri) {
		return nil, NewDecodeError(LayoutNodeDevice, len(data), "uri is not valid UTF-8")
	}

	return &NodeDevice{
		Authority: authority,
		URI:       string(uri),
	}, nil
}

// DecodeNetworkStats parses the aggregate account buffer: the
// discriminator followed by one u64-LE node counter.
func DecodeNetworkStats(data []byte) (*NetworkStats, error) {
	if len(data) < networkStatsSize {
		return nil, NewDecodeError(LayoutNetworkStats, len(data), "buffer too short for total_nodes")
	}

	return &NetworkStats{
		TotalNodes: binary.LittleEndian.Uint64(data[discriminatorSize:networkStatsSize]),
	}, nil
}
