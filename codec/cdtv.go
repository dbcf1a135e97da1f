package codec

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Commodore Amiga CD-TV remote control. 24 data bits, pulse-distance
// coded: the low 12 bits carry the payload and the high 12 bits its
// complement. A held button re-asserts the previous frame with a dedicated
// 4-pulse repeat signal instead of re-sending data.
const (
	CDTVBits = 24

	// timing intervals in usec
	cdtvHeaderMark  = 8850
	cdtvHeaderSpace = 4450
	cdtvBitMark     = 350
	cdtvOneSpace    = 1250
	cdtvZeroSpace   = 450
	cdtvRepeatSpace = 2250

	// frame shapes measured in raw train entries, leading gap included
	cdtvRepeatLength = 4
	cdtvFrameLength  = 52

	cdtvRepeatPeriodMicros = 50000
	cdtvFrequencyKHz       = 40
)

// CDTVConstants parameterizes the pulse-distance/width engine for CD-TV.
var CDTVConstants = ProtocolConstants{
	Protocol:           ProtocolCDTV,
	FrequencyKHz:       cdtvFrequencyKHz,
	HeaderMark:         cdtvHeaderMark,
	HeaderSpace:        cdtvHeaderSpace,
	OneMark:            cdtvBitMark,
	OneSpace:           cdtvOneSpace,
	ZeroMark:           cdtvBitMark,
	ZeroSpace:          cdtvZeroSpace,
	MSBFirst:           true,
	RepeatPeriodMillis: cdtvRepeatPeriodMicros / 1000,
	RepeatSpace:        cdtvRepeatSpace,
}

// CDTVCodec decodes and encodes CD-TV frames. Diag, when set, receives a
// line per failed decode; the zero value stays silent.
type CDTVCodec struct {
	Diag zerolog.Logger
}

// Decode interprets train as a CD-TV frame. A 4-entry repeat signal
// decodes to an all-ones command with 4 reported bits and no checksum
// check; a full 52-entry frame must pass the complement check between its
// two halves.
func (c *CDTVCodec) Decode(train *PulseTrain) (*DecodedFrame, error) {
	if train == nil || train.Len() < 2 {
		return nil, decodeErr(ProtocolCDTV, LengthMismatch)
	}
	if !matchDuration(int64(train.At(1)), cdtvHeaderMark) {
		return nil, decodeErr(ProtocolCDTV, HeaderMismatch)
	}

	if train.Len() == cdtvRepeatLength && matchDuration(int64(train.At(2)), cdtvRepeatSpace) {
		return &DecodedFrame{
			Protocol: ProtocolCDTV,
			Command:  0xFFFFFF,
			BitCount: 4,
			Repeat:   true,
			MSBFirst: true,
			Train:    train,
		}, nil
	}

	if train.Len() != cdtvFrameLength {
		return nil, decodeErr(ProtocolCDTV, LengthMismatch)
	}

	data, err := decodePulseDistanceWidth(train, &CDTVConstants, CDTVBits, 1)
	if err != nil {
		c.Diag.Debug().Err(err).Msg("CDTV: decode failed")
		return nil, err
	}

	// Validate by comparing the lower 12 bits with the inverted higher 12
	// bits: lo XOR hi must give all ones.
	lo := data & 0xFFF
	hi := data >> 12
	if lo^hi != 0xFFF {
		c.Diag.Debug().Uint32("raw", data).Msg("CDTV: checksum failed")
		return nil, decodeErr(ProtocolCDTV, ChecksumFailure)
	}

	return &DecodedFrame{
		Protocol: ProtocolCDTV,
		RawData:  data,
		BitCount: CDTVBits,
		Command:  lo,
		MSBFirst: true,
		Train:    train,
	}, nil
}

// Encode emits data as a CD-TV frame of the given bit count, normally
// CDTVBits. Use MakeRawCDTVData to build a word that will pass the
// receiver-side checksum.
func (c *CDTVCodec) Encode(tx Transmitter, data uint32, bits int) error {
	if bits <= 0 || bits > 32 {
		return fmt.Errorf("codec: bit count %d out of range", bits)
	}
	tx.SetCarrierFrequency(cdtvFrequencyKHz)
	return sendPulseDistanceWidth(tx, &CDTVConstants, data, bits)
}

// EncodeRepeat emits the 4-pulse repeat signal re-asserting the previous
// frame.
func (c *CDTVCodec) EncodeRepeat(tx Transmitter) {
	tx.SetCarrierFrequency(cdtvFrequencyKHz)
	tx.EmitMark(cdtvHeaderMark)
	tx.EmitSpace(cdtvRepeatSpace)
	tx.EmitMark(cdtvBitMark)
	tx.EmitSpace(0)
}

// MakeRawCDTVData pairs a 12-bit command with its complement to form the
// 24-bit word the checksum expects.
func MakeRawCDTVData(command uint16) uint32 {
	lo := uint32(command) & 0xFFF
	return (lo^0xFFF)<<12 | lo
}
