package codec

import (
	"errors"
	"fmt"
)

// DecodeErrorKind classifies the ways a decode attempt can fail. A failure
// is a routine, local outcome: the dispatch layer simply tries the next
// protocol's decoder.
type DecodeErrorKind int

const (
	// LengthMismatch: the raw train length matches no recognized frame
	// shape for the protocol.
	LengthMismatch DecodeErrorKind = iota
	// HeaderMismatch: the leading mark or space is outside tolerance.
	HeaderMismatch
	// BitMismatch: a bit-period mark or space matches no recognized
	// nominal value.
	BitMismatch
	// NoTransition: a biphase bit cell held the same level twice.
	NoTransition
	// ChecksumFailure: the frame decoded cleanly but its integrity check
	// failed.
	ChecksumFailure
	// MissingStartBit: a biphase frame did not open with a mark.
	MissingStartBit
)

func (k DecodeErrorKind) String() string {
	switch k {
	case LengthMismatch:
		return "length mismatch"
	case HeaderMismatch:
		return "header mismatch"
	case BitMismatch:
		return "bit mismatch"
	case NoTransition:
		return "no transition"
	case ChecksumFailure:
		return "checksum failure"
	case MissingStartBit:
		return "missing start bit"
	default:
		return "unknown failure"
	}
}

// DecodeError reports a failed decode attempt. Bit holds the failing bit
// index for bit-level failures and -1 otherwise.
type DecodeError struct {
	Protocol ProtocolID
	Kind     DecodeErrorKind
	Bit      int
}

func (e *DecodeError) Error() string {
	if e.Bit >= 0 {
		return fmt.Sprintf("%s: %s at bit %d", e.Protocol, e.Kind, e.Bit)
	}
	return fmt.Sprintf("%s: %s", e.Protocol, e.Kind)
}

// FailureKind extracts the kind from a decode failure. ok is false when err
// did not come from a decoder.
func FailureKind(err error) (kind DecodeErrorKind, ok bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}

func decodeErr(p ProtocolID, k DecodeErrorKind) *DecodeError {
	return &DecodeError{Protocol: p, Kind: k, Bit: -1}
}

func bitErr(p ProtocolID, k DecodeErrorKind, bit int) *DecodeError {
	return &DecodeError{Protocol: p, Kind: k, Bit: bit}
}
