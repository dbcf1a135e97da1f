package codec

// PulseTrain is an immutable, ordered sequence of pulse durations in
// microseconds, alternating mark/space. Entry 0 is the leading gap recorded
// before the first mark, so marks sit at odd indexes and spaces at even
// ones. A train is produced once per reception event and must not change
// while a decode call is reading it.
type PulseTrain struct {
	durations []uint32
}

// NewPulseTrain copies durations into a fresh train. durations[0] must be
// the leading gap entry.
func NewPulseTrain(durations []uint32) *PulseTrain {
	d := make([]uint32, len(durations))
	copy(d, durations)
	return &PulseTrain{durations: d}
}

// FromTicks converts collector capture data, rows of [mark, space] tick
// counts at the given tick resolution in microseconds, into a train. A
// leading gap entry is synthesized and the final row's space, which is the
// idle tail after the frame rather than part of it, is dropped.
func FromTicks(data [][]int, resolution int) *PulseTrain {
	out := make([]uint32, 0, 2*len(data)+1)
	out = append(out, 0)
	for i, row := range data {
		if len(row) < 2 {
			break
		}
		out = append(out, uint32(row[0]*resolution))
		if i < len(data)-1 {
			out = append(out, uint32(row[1]*resolution))
		}
	}
	return &PulseTrain{durations: out}
}

// Len returns the number of entries, leading gap included.
func (t *PulseTrain) Len() int {
	return len(t.durations)
}

// At returns the duration at index i. i must be below Len.
func (t *PulseTrain) At(i int) uint32 {
	return t.durations[i]
}

// Durations returns a copy of all entries, leading gap included.
func (t *PulseTrain) Durations() []uint32 {
	d := make([]uint32, len(t.durations))
	copy(d, t.durations)
	return d
}
