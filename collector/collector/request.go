package collector

// taggedFrame is the publish payload: one captured frame tagged with this
// collector's id. It mirrors the ingest format of the frame server.
type taggedFrame struct {
	CollectorID string    `json:"collectorId"`
	Frame       frameData `json:"frame"`
}

// frameData is one frame as the capture firmware reports it over serial:
// rows of [mark, space] tick counts at the given tick resolution in
// microseconds.
type frameData struct {
	Resolution int     `json:"resolution"`
	Data       [][]int `json:"data"`
}
