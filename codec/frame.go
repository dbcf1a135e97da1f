package codec

// DecodedFrame is the structured result of a successful decode attempt.
// One is created fresh per attempt and ownership passes to the caller; the
// codec keeps no reference. Train points back at the pulse train the
// decoder consulted.
type DecodedFrame struct {
	Protocol ProtocolID
	RawData  uint32
	BitCount int
	Address  uint16
	Command  uint32
	Repeat   bool
	Toggle   bool
	MSBFirst bool
	Train    *PulseTrain
}
