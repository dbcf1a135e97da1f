package server

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/derktes/ir-pulse-codec/codec"
)

// errNoProtocol reports that every registered decoder rejected the frame.
// Individual decode failures are routine and only logged at debug level.
var errNoProtocol = errors.New("no protocol recognized the frame")

// protocolDecoder is the slice of a codec the dispatcher needs.
type protocolDecoder interface {
	Decode(train *codec.PulseTrain) (*codec.DecodedFrame, error)
}

// dispatcher tries each protocol decoder in turn. The protocol of the last
// accepted frame is tried first: the short repeat frames of NEC and CDTV
// are nearly identical on the wire, and a repeat always follows the data
// frame it re-asserts.
type dispatcher struct {
	timer *codec.FrameTimer
	nec   *codec.NECCodec
	cdtv  *codec.CDTVCodec
	rc5   *codec.RC5Codec
	order []codec.ProtocolID
	byID  map[codec.ProtocolID]protocolDecoder
	last  codec.ProtocolID
	log   zerolog.Logger
}

func newDispatcher(log zerolog.Logger) *dispatcher {
	timer := codec.NewFrameTimer()
	d := &dispatcher{
		timer: timer,
		nec:   &codec.NECCodec{Diag: log},
		cdtv:  &codec.CDTVCodec{Diag: log},
		rc5:   &codec.RC5Codec{Clock: timer, Diag: log},
		order: []codec.ProtocolID{codec.ProtocolNEC, codec.ProtocolCDTV, codec.ProtocolRC5},
		log:   log,
	}
	d.byID = map[codec.ProtocolID]protocolDecoder{
		codec.ProtocolNEC:  d.nec,
		codec.ProtocolCDTV: d.cdtv,
		codec.ProtocolRC5:  d.rc5,
	}
	return d
}

func (d *dispatcher) decode(train *codec.PulseTrain) (*codec.DecodedFrame, error) {
	for _, pid := range d.tryOrder() {
		frame, err := d.byID[pid].Decode(train)
		if err != nil {
			d.log.Debug().Err(err).Stringer("protocol", pid).Msg("decode attempt failed")
			continue
		}
		d.timer.Observe(pid)
		d.last = pid
		return frame, nil
	}
	return nil, errNoProtocol
}

func (d *dispatcher) tryOrder() []codec.ProtocolID {
	if d.last == codec.ProtocolUnknown {
		return d.order
	}
	out := make([]codec.ProtocolID, 0, len(d.order))
	out = append(out, d.last)
	for _, pid := range d.order {
		if pid != d.last {
			out = append(out, pid)
		}
	}
	return out
}

// encode lays out the requested frame as pulse timings through a recorder
// instead of a hardware transmitter.
func (d *dispatcher) encode(req encodeRequest, session *codec.ToggleSession) (*encodeResponse, error) {
	rec := &codec.TrainRecorder{}
	var err error
	pid := codec.ParseProtocolID(req.Protocol)
	switch pid {
	case codec.ProtocolNEC:
		if req.Repeat {
			d.nec.EncodeRepeat(rec)
		} else {
			err = d.nec.Encode(rec, req.Address, uint8(req.Command))
		}
	case codec.ProtocolCDTV:
		if req.Repeat {
			d.cdtv.EncodeRepeat(rec)
		} else {
			err = d.cdtv.Encode(rec, codec.MakeRawCDTVData(uint16(req.Command)), codec.CDTVBits)
		}
	case codec.ProtocolRC5:
		if req.AutoToggle {
			err = d.rc5.EncodeAuto(rec, uint8(req.Address), uint8(req.Command), req.Repeats, session)
		} else {
			err = d.rc5.Encode(rec, uint8(req.Address), uint8(req.Command), req.Toggle, req.Repeats)
		}
	default:
		return nil, fmt.Errorf("unsupported protocol %q", req.Protocol)
	}
	if err != nil {
		return nil, err
	}

	out := &encodeResponse{
		Protocol:     pid.String(),
		FrequencyKHz: rec.CarrierKHz(),
		DelaysMillis: rec.Delays(),
	}
	for i := 0; i < rec.FrameCount(); i++ {
		out.Pulses = append(out.Pulses, rec.Pulses(i))
	}
	return out, nil
}
