package codec

import "fmt"

// decodePulseDistanceWidth is the generic decode half of the
// pulse-distance/width engine: a header mark+space at start, then one
// mark/space pair per bit, each classified against the one/zero nominals in
// c. start indexes the header mark inside the train, past the leading gap.
// The accumulated raw value is returned; nothing is written anywhere on
// failure.
func decodePulseDistanceWidth(train *PulseTrain, c *ProtocolConstants, bitCount, start int) (uint32, error) {
	if train.Len() < start+2+2*bitCount {
		return 0, decodeErr(c.Protocol, LengthMismatch)
	}
	if !matchDuration(int64(train.At(start)), c.HeaderMark) ||
		!matchDuration(int64(train.At(start+1)), c.HeaderSpace) {
		return 0, decodeErr(c.Protocol, HeaderMismatch)
	}

	var data uint32
	for i := 0; i < bitCount; i++ {
		mark := int64(train.At(start + 2 + 2*i))
		space := int64(train.At(start + 3 + 2*i))
		var bit uint32
		switch {
		case matchDuration(mark, c.OneMark) && matchDuration(space, c.OneSpace):
			bit = 1
		case matchDuration(mark, c.ZeroMark) && matchDuration(space, c.ZeroSpace):
			bit = 0
		default:
			return 0, bitErr(c.Protocol, BitMismatch, i)
		}
		if c.MSBFirst {
			data = data<<1 | bit
		} else {
			data >>= 1
			data |= bit << (bitCount - 1)
		}
	}
	return data, nil
}

// sendPulseDistanceWidth emits one whole frame through tx: header, data
// bits in the order declared by c, then the trailing bit mark and a zero
// space to force the emitter idle. Encoding cannot fail beyond the bit
// count precondition.
func sendPulseDistanceWidth(tx Transmitter, c *ProtocolConstants, data uint32, bitCount int) error {
	if bitCount <= 0 || bitCount > 32 {
		return fmt.Errorf("codec: bit count %d out of range", bitCount)
	}

	tx.EmitMark(c.HeaderMark)
	tx.EmitSpace(c.HeaderSpace)

	for i := 0; i < bitCount; i++ {
		var bit uint32
		if c.MSBFirst {
			bit = data >> (bitCount - 1 - i) & 1
		} else {
			bit = data >> i & 1
		}
		if bit != 0 {
			tx.EmitMark(c.OneMark)
			tx.EmitSpace(c.OneSpace)
		} else {
			tx.EmitMark(c.ZeroMark)
			tx.EmitSpace(c.ZeroSpace)
		}
	}

	tx.EmitMark(c.OneMark)
	tx.EmitSpace(0)
	return nil
}
