package codec

import "fmt"

// level is the logical line state within one half-clock cell.
type level int

const (
	levelSpace level = iota
	levelMark
)

// biphaseDecoder walks a pulse train in half-clock-cell steps. Biphase bits
// are decoupled from raw pulse boundaries: one raw pulse spans up to three
// half-cells when consecutive bits share a level, so the decoder keeps a
// cursor plus a count of half-cells already consumed from the current
// pulse. One decoder is built per decode call and discarded afterwards.
type biphaseDecoder struct {
	train     *PulseTrain
	halfClock uint32
	offset    int // cursor into train
	used      int // half-cells consumed from the current pulse
	cells     int // half-cells the current pulse spans
}

// newBiphaseDecoder builds a decoder over train with the given half-cell
// duration. With skipGap set the cursor starts at entry 1: the leading gap
// swallows the space half of the start bit and carries no level of its own.
func newBiphaseDecoder(train *PulseTrain, skipGap bool, halfClock uint32) *biphaseDecoder {
	d := &biphaseDecoder{train: train, halfClock: halfClock}
	if skipGap {
		d.offset = 1
	}
	return d
}

// nextLevel returns the logical level effective at the next half-cell
// boundary. Past the end of the train it reports space: the idle tail after
// the final mark is never captured. A pulse whose duration is not a whole
// number of half-cells (tolerance-matched) is an error.
func (d *biphaseDecoder) nextLevel() (level, error) {
	if d.offset >= d.train.Len() {
		return levelSpace, nil
	}
	lv := levelSpace
	if d.offset%2 == 1 {
		lv = levelMark
	}
	if d.used == 0 {
		width := int64(d.train.At(d.offset))
		switch {
		case matchDuration(width, d.halfClock):
			d.cells = 1
		case matchDuration(width, 2*d.halfClock):
			d.cells = 2
		case matchDuration(width, 3*d.halfClock):
			d.cells = 3
		default:
			return lv, fmt.Errorf("codec: pulse of %dus is no whole number of %dus half-cells", width, d.halfClock)
		}
	}
	d.used++
	if d.used >= d.cells {
		d.used = 0
		d.offset++
	}
	return lv, nil
}

// decodeBiphase reads the mandatory start bit and then bitCount data bits
// from train: a space→mark transition within a bit cell is a one, a
// mark→space transition a zero, accumulated MSB first.
func decodeBiphase(p ProtocolID, train *PulseTrain, halfClock uint32, bitCount int) (uint32, error) {
	d := newBiphaseDecoder(train, true, halfClock)

	// The start bit's space half hides in the leading gap, so the first
	// observable level must be its mark half.
	start, err := d.nextLevel()
	if err != nil || start != levelMark {
		return 0, decodeErr(p, MissingStartBit)
	}

	var data uint32
	for i := 0; i < bitCount; i++ {
		first, err := d.nextLevel()
		if err != nil {
			return 0, bitErr(p, BitMismatch, i)
		}
		second, err := d.nextLevel()
		if err != nil {
			return 0, bitErr(p, BitMismatch, i)
		}
		switch {
		case first == levelSpace && second == levelMark:
			data = data<<1 | 1
		case first == levelMark && second == levelSpace:
			data = data << 1
		default:
			return 0, bitErr(p, NoTransition, i)
		}
	}
	return data, nil
}

// sendBiphase emits data MSB first as biphase half-cells: space then mark
// for a one, mark then space for a zero, the first emitted half-cell being
// the start bit's mark. Its space half merges with the preceding idle, and
// same-level half-cells of adjacent bits merge on the wire by themselves.
func sendBiphase(tx Transmitter, halfClock uint32, data uint32, bitCount int) error {
	if bitCount <= 0 || bitCount > 32 {
		return fmt.Errorf("codec: bit count %d out of range", bitCount)
	}
	tx.EmitMark(halfClock)
	for mask := uint32(1) << (bitCount - 1); mask != 0; mask >>= 1 {
		if data&mask != 0 {
			tx.EmitSpace(halfClock)
			tx.EmitMark(halfClock)
		} else {
			tx.EmitMark(halfClock)
			tx.EmitSpace(halfClock)
		}
	}
	return nil
}
