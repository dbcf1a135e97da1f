package codec

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

// Capture of a real CD-TV remote, leading gap prepended. Decodes to
// 0x88077F: high half 0x880 is the complement of low half 0x77F.
var cdtvCapture = []uint32{0,
	8900, 4450, 400, 1200, 350, 400, 400, 400, 400, 400,
	400, 1200, 400, 400, 350, 450, 350, 400, 400, 400,
	400, 350, 450, 400, 350, 450, 350, 400, 400, 1200,
	400, 1200, 350, 1200, 400, 450, 350, 1200, 400, 1200,
	350, 1200, 400, 1200, 350, 1250, 350, 1200, 400, 1200,
	350,
}

func TestCDTVDecodeCapture(t *testing.T) {
	c := qt.New(t)

	var cdtv CDTVCodec
	frame, err := cdtv.Decode(NewPulseTrain(cdtvCapture))
	c.Assert(err, qt.IsNil)
	c.Assert(frame.Protocol, qt.Equals, ProtocolCDTV)
	c.Assert(frame.RawData, qt.Equals, uint32(0x88077F))
	c.Assert(frame.BitCount, qt.Equals, CDTVBits)
	c.Assert(frame.Command, qt.Equals, uint32(0x77F))
	c.Assert(frame.Repeat, qt.IsFalse)
	c.Assert(frame.MSBFirst, qt.IsTrue)
}

func TestCDTVDecodeRepeatSignal(t *testing.T) {
	c := qt.New(t)

	var cdtv CDTVCodec
	frame, err := cdtv.Decode(NewPulseTrain([]uint32{0, 8850, 2250, 350}))
	c.Assert(err, qt.IsNil)
	c.Assert(frame.Repeat, qt.IsTrue)
	c.Assert(frame.Command, qt.Equals, uint32(0xFFFFFF))
	c.Assert(frame.BitCount, qt.Equals, 4)
}

func TestCDTVChecksumFailure(t *testing.T) {
	c := qt.New(t)

	// 0x123 XOR 0x456 is not all ones: the frame decodes bit-clean but
	// must be rejected as a checksum failure, not a timing failure.
	var cdtv CDTVCodec
	rec := &TrainRecorder{}
	c.Assert(cdtv.Encode(rec, 0x123456, CDTVBits), qt.IsNil)

	_, err := cdtv.Decode(rec.Train())
	kind, ok := FailureKind(err)
	c.Assert(ok, qt.IsTrue)
	c.Assert(kind, qt.Equals, ChecksumFailure)
}

func TestCDTVEncodeDecodeRoundTrip(t *testing.T) {
	c := qt.New(t)

	var cdtv CDTVCodec
	rec := &TrainRecorder{}
	c.Assert(cdtv.Encode(rec, MakeRawCDTVData(0x77F), CDTVBits), qt.IsNil)
	c.Assert(rec.CarrierKHz(), qt.Equals, uint8(40))

	train := rec.Train()
	c.Assert(train.Len(), qt.Equals, cdtvFrameLength)

	frame, err := cdtv.Decode(train)
	c.Assert(err, qt.IsNil)
	c.Assert(frame.Command, qt.Equals, uint32(0x77F))
	c.Assert(frame.RawData, qt.Equals, uint32(0x88077F))
}

func TestCDTVEncodeRepeatRoundTrip(t *testing.T) {
	c := qt.New(t)

	var cdtv CDTVCodec
	rec := &TrainRecorder{}
	cdtv.EncodeRepeat(rec)

	frame, err := cdtv.Decode(rec.Train())
	c.Assert(err, qt.IsNil)
	c.Assert(frame.Repeat, qt.IsTrue)
	c.Assert(frame.BitCount, qt.Equals, 4)
}

func TestCDTVRejectsUnknownLength(t *testing.T) {
	c := qt.New(t)

	var cdtv CDTVCodec
	_, err := cdtv.Decode(NewPulseTrain(cdtvCapture[:20]))
	kind, ok := FailureKind(err)
	c.Assert(ok, qt.IsTrue)
	c.Assert(kind, qt.Equals, LengthMismatch)
}
