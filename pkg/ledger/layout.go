package ledger

// Account data sizes. Every account of the program starts with the same
// 8-byte framework discriminator, the payload follows.
const (
	discriminatorSize = 8
	authoritySize     = 32
	uriLengthSize     = 4

	// A device account carries at least the authority behind the
	// discriminator, anything longer is treated as a device record.
	nodeDeviceThreshold = discriminatorSize + authoritySize

	// The aggregate account is exactly discriminator plus one u64.
	networkStatsSize = discriminatorSize + 8
)

// Layout is the record layout of a raw account buffer.
type Layout int

const (
	LayoutUnknown Layout = iota
	LayoutNodeDevice
	LayoutNetworkStats
)

func (l Layout) String() string {
	switch l {
	case LayoutNodeDevice:
		return "node_device"
	case LayoutNetworkStats:
		return "network_stats"
	}
	return "unknown"
}

// Classify picks the layout of a raw account buffer by its length
// alone; beyond the shared discriminator prefix the program exposes no
// type tag. The thresholds mirror the on-chain account sizes. The rules
// are a heuristic: the device rule is checked first and wins if the two
// ever collide.
func Classify(data []byte) Layout {
	switch {
	case len(data) > nodeDeviceThreshold:
		return LayoutNodeDevice
	case len(data) == networkStatsSize:
		return LayoutNetworkStats
	}
	return LayoutUnknown
}
