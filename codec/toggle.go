package codec

// ToggleSession carries the RC5 toggle bit across encode calls. The
// protocol tells a held button's repeats from a fresh press of the same
// command by flipping this bit on every new command, so the value must
// outlive individual calls. Callers own the session and pass it into
// EncodeAuto; there is no hidden package state.
type ToggleSession struct {
	last uint8
}

// NewToggleSession starts in the not-yet-toggled state: the first frame
// goes out with toggle 0.
func NewToggleSession() *ToggleSession {
	return &ToggleSession{last: 1}
}

// next flips the stored value and returns the toggle to transmit.
func (s *ToggleSession) next() bool {
	if s.last == 0 {
		s.last = 1
		return true
	}
	s.last = 0
	return false
}
