package codec

import "time"

// FrameClock reports the time elapsed since the previous accepted frame of
// a protocol. Decoders consult it for repeat-window checks and for nothing
// else.
type FrameClock interface {
	SinceLastFrame(p ProtocolID) (time.Duration, bool)
}

// FrameTimer is the canonical FrameClock. The dispatch layer calls Observe
// after every accepted frame. Single writer, single reader, no locking:
// decode runs on one calling context by construction.
type FrameTimer struct {
	last map[ProtocolID]time.Time
	now  func() time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: make(map[ProtocolID]time.Time), now: time.Now}
}

// Observe records that a frame of protocol p was accepted now.
func (t *FrameTimer) Observe(p ProtocolID) {
	t.last[p] = t.now()
}

func (t *FrameTimer) SinceLastFrame(p ProtocolID) (time.Duration, bool) {
	at, ok := t.last[p]
	if !ok {
		return 0, false
	}
	return t.now().Sub(at), true
}
