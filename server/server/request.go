package server

// encodeRequest asks the server to lay a frame out as pulse timings.
// Repeats and AutoToggle only apply to RC5, Repeat to NEC and CDTV.
type encodeRequest struct {
	Protocol   string `json:"protocol"`
	Address    uint16 `json:"address"`
	Command    uint32 `json:"command"`
	Toggle     bool   `json:"toggle"`
	AutoToggle bool   `json:"autoToggle"`
	Repeat     bool   `json:"repeat"`
	Repeats    int    `json:"repeats"`
}

// decodeRequest carries one capture to decode without storing it.
type decodeRequest struct {
	Frame frameData `json:"frame"`
}
