package codec

// Transmitter drives the hardware emit layer. Implementations own carrier
// generation; encoders only request mark/space intervals and inter-frame
// delays on the calling context.
type Transmitter interface {
	SetCarrierFrequency(khz uint8)
	EmitMark(micros uint32)
	EmitSpace(micros uint32)
	BlockingDelay(millis uint32)
}

type pulseEntry struct {
	mark  bool
	width uint32
}

// TrainRecorder is a Transmitter that captures emitted intervals the way a
// receiver on the other side would see them: adjacent same-level intervals
// merge into one pulse, zero durations vanish, and idle before the first or
// after the last mark is not recorded. A BlockingDelay closes the current
// frame, so repeated emissions land in separate trains.
type TrainRecorder struct {
	freqKHz uint8
	frames  [][]pulseEntry
	current []pulseEntry
	delays  []uint32
}

func (r *TrainRecorder) SetCarrierFrequency(khz uint8) {
	r.freqKHz = khz
}

func (r *TrainRecorder) EmitMark(micros uint32) {
	r.emit(true, micros)
}

func (r *TrainRecorder) EmitSpace(micros uint32) {
	r.emit(false, micros)
}

func (r *TrainRecorder) BlockingDelay(millis uint32) {
	r.delays = append(r.delays, millis)
	r.flush()
}

func (r *TrainRecorder) emit(mark bool, micros uint32) {
	if micros == 0 {
		return
	}
	if n := len(r.current); n > 0 && r.current[n-1].mark == mark {
		r.current[n-1].width += micros
		return
	}
	r.current = append(r.current, pulseEntry{mark: mark, width: micros})
}

func (r *TrainRecorder) flush() {
	if len(r.current) > 0 {
		r.frames = append(r.frames, r.current)
		r.current = nil
	}
}

// CarrierKHz returns the last requested carrier frequency.
func (r *TrainRecorder) CarrierKHz() uint8 {
	return r.freqKHz
}

// Delays returns the inter-frame delays requested so far, in milliseconds.
func (r *TrainRecorder) Delays() []uint32 {
	return r.delays
}

// FrameCount returns the number of captured frames.
func (r *TrainRecorder) FrameCount() int {
	r.flush()
	return len(r.frames)
}

// Train returns the first captured frame as a pulse train.
func (r *TrainRecorder) Train() *PulseTrain {
	return r.TrainAt(0)
}

// TrainAt returns captured frame i as a pulse train, with a synthesized
// leading gap entry. Leading idle folds into the gap and trailing idle is
// trimmed.
func (r *TrainRecorder) TrainAt(i int) *PulseTrain {
	r.flush()
	entries := r.frames[i]
	gap := uint32(0)
	for len(entries) > 0 && !entries[0].mark {
		gap += entries[0].width
		entries = entries[1:]
	}
	for len(entries) > 0 && !entries[len(entries)-1].mark {
		entries = entries[:len(entries)-1]
	}
	out := make([]uint32, 0, len(entries)+1)
	out = append(out, gap)
	for _, e := range entries {
		out = append(out, e.width)
	}
	return &PulseTrain{durations: out}
}

// Pulses returns frame i's mark/space durations without the leading gap
// entry, for comparison against published timing diagrams.
func (r *TrainRecorder) Pulses(i int) []uint32 {
	t := r.TrainAt(i)
	return t.Durations()[1:]
}
