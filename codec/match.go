package codec

// Tolerance constants shared by every protocol family sending through the
// engines. The relative band absorbs jitter from the host's interrupt
// latency; the absolute floor absorbs quantization on coarse-resolution
// collectors. Loosening either risks making adjacent nominal durations
// ambiguous.
const (
	matchTolerancePercent = 25
	matchMarginMicros     = 100
)

// matchDuration reports whether a measured duration falls inside the
// symmetric tolerance band around nominal. Zero and negative measurements
// never match.
func matchDuration(measured int64, nominal uint32) bool {
	if measured <= 0 {
		return false
	}
	delta := int64(nominal) * matchTolerancePercent / 100
	if delta < matchMarginMicros {
		delta = matchMarginMicros
	}
	return measured >= int64(nominal)-delta && measured <= int64(nominal)+delta
}
