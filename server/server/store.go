package server

// Storage layout mirrors the query paths of the HTTP API:
// collector id -> protocol name -> frame value -> captured pulse trains.
type rawPulses []uint32

type frameList []rawPulses

type valueFrameListMap map[string]frameList

type protocolValueMap map[string]valueFrameListMap

// frameDatabase is the in-memory store behind the HTTP API. Access is
// serialized through the dbLock/dbUnlock channel pair in server.go.
type frameDatabase struct {
	store     map[string]protocolValueMap
	decoder   *dispatcher
	listeners map[string]chan newFrameEvent
}

func newDatabase(d *dispatcher) *frameDatabase {
	return &frameDatabase{
		store:     make(map[string]protocolValueMap),
		decoder:   d,
		listeners: make(map[string]chan newFrameEvent),
	}
}
