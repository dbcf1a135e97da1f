package codec

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Philips RC5 and its RC5X extension, biphase coded. The 13-bit word is,
// MSB first: field bit, toggle bit, 5 address bits, 6 command bits. The
// field bit is 1 for plain RC5 and the inverted command bit 6 for RC5X,
// which keeps the original 64 commands wire-compatible.
//
//	S F T AAAAA CCCCCC   (S = start bit, sent but not part of the word)
//
// mark→space encodes 0, space→mark encodes 1.
const (
	rc5AddressBits = 5
	rc5CommandBits = 6
	RC5Bits        = 13

	rc5FieldBitMask  = 1 << (RC5Bits - 1)
	rc5ToggleBitMask = 1 << (rc5AddressBits + rc5CommandBits)

	// A bit cell is 1800us; the engine works in 900us half-cells, two base
	// units each.
	rc5UnitMicros      = 450
	rc5HalfClockMicros = 2 * rc5UnitMicros

	rc5FrameMicros          = (RC5Bits + 1) * 2 * rc5HalfClockMicros
	rc5RepeatPeriodMicros   = 128 * rc5HalfClockMicros
	rc5RepeatDistanceMicros = rc5RepeatPeriodMicros - rc5FrameMicros

	rc5FrequencyKHz = 36

	// Raw train length bounds: alternating bits merge pairs of half-cells
	// into single pulses, identical neighbours keep them apart.
	rc5MinLength = (RC5Bits+1)/2 + 2
	rc5MaxLength = 2*RC5Bits + 2
)

// rc5MaxRepeatDistance is the window within which a frame counts as a
// repeat of its predecessor. Tunable policy, not a protocol constant.
const rc5MaxRepeatDistance = time.Duration(rc5RepeatDistanceMicros+rc5RepeatDistanceMicros/4) * time.Microsecond

// RC5Codec decodes and encodes RC5/RC5X frames. Clock, when set, is
// consulted to flag frames arriving within the repeat window of their
// predecessor; RC5 has no repeat frame of its own. Diag, when set,
// receives a line per failed decode.
type RC5Codec struct {
	Clock FrameClock
	Diag  zerolog.Logger
}

// Decode interprets train as one 13-bit RC5/RC5X word. Commands with a
// cleared field bit are folded back into the extended range 0x40-0x7F.
func (c *RC5Codec) Decode(train *PulseTrain) (*DecodedFrame, error) {
	if train == nil || train.Len() < rc5MinLength || train.Len() > rc5MaxLength {
		return nil, decodeErr(ProtocolRC5, LengthMismatch)
	}

	data, err := decodeBiphase(ProtocolRC5, train, rc5HalfClockMicros, RC5Bits)
	if err != nil {
		c.Diag.Debug().Err(err).Msg("RC5: decode failed")
		return nil, err
	}

	frame := &DecodedFrame{
		Protocol: ProtocolRC5,
		RawData:  data,
		BitCount: RC5Bits,
		Address:  uint16(data>>rc5CommandBits) & 0x1F,
		Command:  data & 0x3F,
		Toggle:   data&rc5ToggleBitMask != 0,
		MSBFirst: true,
		Train:    train,
	}
	// The inverted command bit 6: always 1 for plain RC5, 0 for RC5X.
	if data&rc5FieldBitMask == 0 {
		frame.Command += 0x40
	}

	if c.Clock != nil {
		if since, ok := c.Clock.SinceLastFrame(ProtocolRC5); ok && since <= rc5MaxRepeatDistance {
			frame.Repeat = true
		}
	}
	return frame, nil
}

// Encode sends one frame plus repeats further copies on a fixed raster,
// skipping the delay after the final copy. Commands of 0x40 and above are
// sent as RC5X: bit 6 folds into the field bit.
func (c *RC5Codec) Encode(tx Transmitter, address, command uint8, toggle bool, repeats int) error {
	if repeats < 0 {
		return fmt.Errorf("codec: negative repeat count %d", repeats)
	}

	data := uint32(address&0x1F) << rc5CommandBits
	if command < 0x40 {
		data |= rc5FieldBitMask
	} else {
		command &= 0x3F
	}
	data |= uint32(command)
	if toggle {
		data |= rc5ToggleBitMask
	}

	tx.SetCarrierFrequency(rc5FrequencyKHz)
	for n := repeats + 1; n > 0; n-- {
		if err := sendBiphase(tx, rc5HalfClockMicros, data, RC5Bits); err != nil {
			return err
		}
		if n > 1 {
			tx.BlockingDelay(rc5RepeatDistanceMicros / 1000)
		}
	}
	return nil
}

// EncodeAuto is Encode with the toggle bit taken from session, flipping it
// so consecutive calls alternate.
func (c *RC5Codec) EncodeAuto(tx Transmitter, address, command uint8, repeats int, session *ToggleSession) error {
	return c.Encode(tx, address, command, session.next(), repeats)
}
