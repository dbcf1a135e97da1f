package codec

import "github.com/rs/zerolog"

// NEC consumer IR protocol: 32 bits, pulse-distance coded LSB first, the
// address low and high bytes followed by the command and its complement.
// Held buttons emit a dedicated short repeat frame instead of re-sending
// data.
//
// https://www.sbprojects.net/knowledge/ir/nec.php
const (
	NECBits = 32

	// timing intervals in usec
	necHeaderMark  = 9000
	necHeaderSpace = 4500
	necBitMark     = 560
	necOneSpace    = 1690
	necZeroSpace   = 560
	necRepeatSpace = 2250

	// frame shapes measured in raw train entries, leading gap included
	necRepeatLength = 4
	necFrameLength  = 68

	necRepeatPeriodMicros = 108000
	necFrequencyKHz       = 38
)

// NECConstants parameterizes the pulse-distance/width engine for NEC.
var NECConstants = ProtocolConstants{
	Protocol:           ProtocolNEC,
	FrequencyKHz:       necFrequencyKHz,
	HeaderMark:         necHeaderMark,
	HeaderSpace:        necHeaderSpace,
	OneMark:            necBitMark,
	OneSpace:           necOneSpace,
	ZeroMark:           necBitMark,
	ZeroSpace:          necZeroSpace,
	MSBFirst:           false,
	RepeatPeriodMillis: necRepeatPeriodMicros / 1000,
	RepeatSpace:        necRepeatSpace,
}

// NECCodec decodes and encodes NEC frames. Diag, when set, receives a line
// per failed decode.
type NECCodec struct {
	Diag zerolog.Logger
}

// Decode interprets train as an NEC frame. The 4-entry repeat frame yields
// a frame with only the repeat flag set; a full 68-entry frame must pass
// the command/inverse-command check.
func (c *NECCodec) Decode(train *PulseTrain) (*DecodedFrame, error) {
	if train == nil || train.Len() < 2 {
		return nil, decodeErr(ProtocolNEC, LengthMismatch)
	}
	if !matchDuration(int64(train.At(1)), necHeaderMark) {
		return nil, decodeErr(ProtocolNEC, HeaderMismatch)
	}

	if train.Len() == necRepeatLength && matchDuration(int64(train.At(2)), necRepeatSpace) {
		return &DecodedFrame{
			Protocol: ProtocolNEC,
			Repeat:   true,
			Train:    train,
		}, nil
	}

	if train.Len() != necFrameLength {
		return nil, decodeErr(ProtocolNEC, LengthMismatch)
	}

	data, err := decodePulseDistanceWidth(train, &NECConstants, NECBits, 1)
	if err != nil {
		c.Diag.Debug().Err(err).Msg("NEC: decode failed")
		return nil, err
	}

	valid, address, command := SplitRawNECData(data)
	if !valid {
		c.Diag.Debug().Uint32("raw", data).Msg("NEC: inverse command check failed")
		return nil, decodeErr(ProtocolNEC, ChecksumFailure)
	}

	return &DecodedFrame{
		Protocol: ProtocolNEC,
		RawData:  data,
		BitCount: NECBits,
		Address:  address,
		Command:  uint32(command),
		Train:    train,
	}, nil
}

// Encode emits one NEC data frame for address and command.
func (c *NECCodec) Encode(tx Transmitter, address uint16, command uint8) error {
	tx.SetCarrierFrequency(necFrequencyKHz)
	return sendPulseDistanceWidth(tx, &NECConstants, MakeRawNECData(address, command), NECBits)
}

// EncodeRepeat emits the short frame a held button produces.
func (c *NECCodec) EncodeRepeat(tx Transmitter) {
	tx.SetCarrierFrequency(necFrequencyKHz)
	tx.EmitMark(necHeaderMark)
	tx.EmitSpace(necRepeatSpace)
	tx.EmitMark(necBitMark)
	tx.EmitSpace(0)
}

// SplitRawNECData breaks a raw 32-bit NEC word into address and command,
// checking the command against its transmitted complement.
func SplitRawNECData(data uint32) (valid bool, address uint16, command uint8) {
	addrLow := uint8(data)
	addrHigh := uint8(data >> 8)
	command = uint8(data >> 16)
	invCommand := uint8(data >> 24)
	return command == ^invCommand, MakeNECAddress(addrLow, addrHigh), command
}

// MakeRawNECData assembles the 32-bit word transmitted for address and
// command.
func MakeRawNECData(address uint16, command uint8) uint32 {
	addrLow, addrHigh := SplitNECAddress(address)
	return uint32(^command)<<24 | uint32(command)<<16 | uint32(addrHigh)<<8 | uint32(addrLow)
}

// SplitNECAddress splits an address into its low and high bytes. Addresses
// in the 8-bit range transmit the inverted low byte as the high byte.
func SplitNECAddress(address uint16) (addrLow, addrHigh uint8) {
	addrLow = uint8(address)
	addrHigh = uint8(address >> 8)
	if addrHigh == 0 {
		addrHigh = ^addrLow
	}
	return addrLow, addrHigh
}

// MakeNECAddress reassembles an address from its transmitted bytes. A high
// byte that is the inverse of the low byte marks an 8-bit address: extended
// coding cannot use those, they would be indistinguishable.
func MakeNECAddress(addrLow, addrHigh uint8) uint16 {
	if addrHigh == ^addrLow {
		return uint16(addrLow)
	}
	return uint16(addrHigh)<<8 | uint16(addrLow)
}
