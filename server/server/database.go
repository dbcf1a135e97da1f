package server

import (
	"fmt"

	"github.com/derktes/ir-pulse-codec/codec"
)

// frameKey is the value under which a frame is filed. Protocol-level
// repeat frames carry no payload of their own, so they share one bucket.
func frameKey(frame *codec.DecodedFrame) string {
	if frame.Repeat && frame.RawData == 0 {
		return "repeat"
	}
	return fmt.Sprintf("%08X", frame.RawData)
}

func (db *frameDatabase) insert(tf taggedFrame) (*codec.DecodedFrame, error) {
	frame, err := db.decoder.decode(tf.train())
	if err != nil {
		return nil, err
	}
	protocolName := frame.Protocol.String()
	value := frameKey(frame)

	protocol2Value, ok := db.store[tf.CollectorID]
	if !ok {
		logger.Info().Str("collector", tf.CollectorID).Msg("new collector entry")
		protocol2Value = make(protocolValueMap)
		db.store[tf.CollectorID] = protocol2Value
	}
	value2FrameList, ok := protocol2Value[protocolName]
	if !ok {
		protocol2Value[protocolName] = make(valueFrameListMap)
		value2FrameList = protocol2Value[protocolName]
	}

	pulses := rawPulses(frame.Train.Durations())
	value2FrameList[value] = append(value2FrameList[value], pulses)
	logger.Debug().
		Str("collector", tf.CollectorID).
		Str("protocol", protocolName).
		Str("value", value).
		Int("frames", len(value2FrameList[value])).
		Msg("frame stored")

	db.broadcast(newFrameEvent{
		CollectorID: tf.CollectorID,
		Protocol:    protocolName,
		Value:       value,
		Address:     frame.Address,
		Command:     frame.Command,
		Repeat:      frame.Repeat,
		Toggle:      frame.Toggle,
		Pulses:      pulses,
	})
	return frame, nil
}

func (db *frameDatabase) broadcast(evt newFrameEvent) {
	for subscriber, ch := range db.listeners {
		select {
		case ch <- evt:
		default:
			logger.Warn().Str("subscriber", subscriber).Msg("dropping frame event, subscriber too slow")
		}
	}
}

func (db *frameDatabase) notify(subscriber string) (<-chan newFrameEvent, error) {
	if _, ok := db.listeners[subscriber]; ok {
		return nil, fmt.Errorf("subscriber '%s' already registered", subscriber)
	}
	ch := make(chan newFrameEvent, 16)
	db.listeners[subscriber] = ch
	return ch, nil
}

func (db *frameDatabase) unNotify(subscriber string) error {
	ch, ok := db.listeners[subscriber]
	if !ok {
		return fmt.Errorf("subscriber '%s' is not registered", subscriber)
	}
	close(ch)
	delete(db.listeners, subscriber)
	return nil
}

func (db *frameDatabase) getCollectorIDList() []string {
	collectorIDList := make([]string, 0, len(db.store))
	for cid := range db.store {
		collectorIDList = append(collectorIDList, cid)
	}
	return collectorIDList
}

func (db *frameDatabase) getProtocolNames(collectorID string) ([]string, error) {
	protocol2Value, ok := db.store[collectorID]
	if !ok {
		return nil, fmt.Errorf("collector ID '%s' cannot be found", collectorID)
	}
	names := make([]string, 0, len(protocol2Value))
	for name := range protocol2Value {
		names = append(names, name)
	}
	return names, nil
}

func (db *frameDatabase) getValues(collectorID, protocolName string) ([]string, error) {
	protocol2Value, ok := db.store[collectorID]
	if !ok {
		return nil, fmt.Errorf("collector ID '%s' cannot be found", collectorID)
	}
	value2FrameList, ok := protocol2Value[protocolName]
	if !ok {
		return nil, fmt.Errorf("protocol '%s' cannot be found", protocolName)
	}
	values := make([]string, 0, len(value2FrameList))
	for value := range value2FrameList {
		values = append(values, value)
	}
	return values, nil
}

func (db *frameDatabase) getFrameList(collectorID, protocolName, value string) (frameList, error) {
	protocol2Value, ok := db.store[collectorID]
	if !ok {
		return nil, fmt.Errorf("collector ID '%s' cannot be found", collectorID)
	}
	value2FrameList, ok := protocol2Value[protocolName]
	if !ok {
		return nil, fmt.Errorf("protocol '%s' cannot be found", protocolName)
	}
	frames, ok := value2FrameList[value]
	if !ok {
		return nil, fmt.Errorf("value '%s' cannot be found", value)
	}
	return frames, nil
}

// summary walks the whole store into the nested map the query API serves.
func (db *frameDatabase) summary() collectorSummaryMap {
	out := make(collectorSummaryMap, len(db.store))
	for cid, protocol2Value := range db.store {
		protocols := make(protocolSummaryMap, len(protocol2Value))
		for name, value2FrameList := range protocol2Value {
			values := make([]valueSummary, 0, len(value2FrameList))
			for value, frames := range value2FrameList {
				values = append(values, valueSummary{Value: value, Frames: len(frames)})
			}
			protocols[name] = values
		}
		out[cid] = protocols
	}
	return out
}
