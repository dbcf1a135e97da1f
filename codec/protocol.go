package codec

// ProtocolID identifies a supported protocol family.
type ProtocolID int

const (
	ProtocolUnknown ProtocolID = iota
	ProtocolNEC
	ProtocolCDTV
	ProtocolRC5
)

func (p ProtocolID) String() string {
	switch p {
	case ProtocolNEC:
		return "NEC"
	case ProtocolCDTV:
		return "CDTV"
	case ProtocolRC5:
		return "RC5"
	default:
		return "Unknown"
	}
}

// ParseProtocolID maps a protocol name back to its identifier. Unrecognized
// names yield ProtocolUnknown.
func ParseProtocolID(name string) ProtocolID {
	switch name {
	case "NEC":
		return ProtocolNEC
	case "CDTV":
		return ProtocolCDTV
	case "RC5":
		return ProtocolRC5
	default:
		return ProtocolUnknown
	}
}

// ProtocolConstants is the read-only timing record that parameterizes the
// pulse-distance/width engine for one protocol family. Instances are built
// at start-up and shared by every decode and encode call; nothing mutates
// them. All durations are microseconds.
type ProtocolConstants struct {
	Protocol     ProtocolID
	FrequencyKHz uint8

	HeaderMark  uint32
	HeaderSpace uint32
	OneMark     uint32
	OneSpace    uint32
	ZeroMark    uint32
	ZeroSpace   uint32

	// MSBFirst selects the bit order of the accumulated raw value.
	MSBFirst bool

	RepeatPeriodMillis uint32
	// RepeatSpace is the header space of the protocol's dedicated repeat
	// frame, or 0 when the protocol has none.
	RepeatSpace uint32
}
