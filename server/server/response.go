package server

// valueSummary lists one stored frame value and how many captures back it.
type valueSummary struct {
	Value  string `json:"value"`
	Frames int    `json:"frames"`
}

type protocolSummaryMap map[string][]valueSummary

type collectorSummaryMap map[string]protocolSummaryMap

// newFrameEvent is pushed to stream subscribers for every accepted frame.
type newFrameEvent struct {
	CollectorID string    `json:"collectorId"`
	Protocol    string    `json:"protocol"`
	Value       string    `json:"value"`
	Address     uint16    `json:"address"`
	Command     uint32    `json:"command"`
	Repeat      bool      `json:"repeat"`
	Toggle      bool      `json:"toggle"`
	Pulses      rawPulses `json:"pulses"`
}

// decodedFrameResponse is the body of a successful decode request.
type decodedFrameResponse struct {
	Protocol string `json:"protocol"`
	RawData  uint32 `json:"rawData"`
	Bits     int    `json:"bits"`
	Address  uint16 `json:"address"`
	Command  uint32 `json:"command"`
	Repeat   bool   `json:"repeat"`
	Toggle   bool   `json:"toggle"`
}

// encodeResponse returns the laid-out pulse frames for an encode request.
// Pulses holds one duration slice per frame, marks at even indexes.
type encodeResponse struct {
	Protocol     string     `json:"protocol"`
	FrequencyKHz uint8      `json:"frequencyKHz"`
	Pulses       [][]uint32 `json:"pulses"`
	DelaysMillis []uint32   `json:"delaysMillis"`
}
