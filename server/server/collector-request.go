package server

import "github.com/derktes/ir-pulse-codec/codec"

// taggedFrame is the ingest payload a collector posts: one captured frame
// tagged with the collector's id.
type taggedFrame struct {
	CollectorID string    `json:"collectorId"`
	Frame       frameData `json:"frame"`
}

// frameData carries [mark, space] tick pairs at the capture resolution in
// microseconds per tick.
type frameData struct {
	Resolution int     `json:"resolution"`
	Data       [][]int `json:"data"`
}

func (f *taggedFrame) train() *codec.PulseTrain {
	return codec.FromTicks(f.Frame.Data, f.Frame.Resolution)
}
