package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derktes/ir-pulse-codec/codec"
)

// ticksFor converts a recorded frame into the [mark, space] tick rows a
// collector posts, padding the trailing idle space the receiver would see.
func ticksFor(t *testing.T, rec *codec.TrainRecorder, frame int) [][]int {
	t.Helper()
	pulses := rec.Pulses(frame)
	require.NotEmpty(t, pulses)
	var rows [][]int
	for i := 0; i < len(pulses); i += 2 {
		row := []int{int(pulses[i]), 30000}
		if i+1 < len(pulses) {
			row[1] = int(pulses[i+1])
		}
		rows = append(rows, row)
	}
	return rows
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	handler(w, r)
	return w
}

func getJSON(t *testing.T, handler http.HandlerFunc, target string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	handler(w, r)
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func necTaggedFrame(t *testing.T, collectorID string, address uint16, command uint8) map[string]interface{} {
	t.Helper()
	rec := &codec.TrainRecorder{}
	nec := &codec.NECCodec{}
	require.NoError(t, nec.Encode(rec, address, command))
	return map[string]interface{}{
		"collectorId": collectorID,
		"frame": map[string]interface{}{
			"resolution": 1,
			"data":       ticksFor(t, rec, 0),
		},
	}
}

func TestFramePostAndSummary(t *testing.T) {
	initState(zerolog.Nop())

	w := postJSON(t, frameQueryHandler, "/ir/frame", necTaggedFrame(t, "livingroom", 0x0010, 0x2F))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp decodedFrameResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NEC", resp.Protocol)
	assert.Equal(t, uint16(0x0010), resp.Address)
	assert.Equal(t, uint32(0x2F), resp.Command)
	assert.Equal(t, codec.NECBits, resp.Bits)
	assert.False(t, resp.Repeat)

	var summary collectorSummaryMap
	w = getJSON(t, frameQueryHandler, "/ir/frame", &summary)
	require.Equal(t, http.StatusOK, w.Code)
	value := fmt.Sprintf("%08X", codec.MakeRawNECData(0x0010, 0x2F))
	assert.Equal(t, []valueSummary{{Value: value, Frames: 1}}, summary["livingroom"]["NEC"])

	w = getJSON(t, frameQueryHandler, "/ir/frame?cid=kitchen", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFramePostRejectsUndecodableFrame(t *testing.T) {
	initState(zerolog.Nop())

	w := postJSON(t, frameQueryHandler, "/ir/frame", map[string]interface{}{
		"collectorId": "livingroom",
		"frame": map[string]interface{}{
			"resolution": 1,
			"data":       [][]int{{100, 100}, {100, 30000}},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestFrameBrowsePaths(t *testing.T) {
	initState(zerolog.Nop())

	w := postJSON(t, frameQueryHandler, "/ir/frame", necTaggedFrame(t, "livingroom", 0x0010, 0x2F))
	require.Equal(t, http.StatusCreated, w.Code)

	var protocols []string
	w = getJSON(t, frameBrowseHandler, "/ir/frames/livingroom", &protocols)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"NEC"}, protocols)

	value := fmt.Sprintf("%08X", codec.MakeRawNECData(0x0010, 0x2F))
	var values []string
	w = getJSON(t, frameBrowseHandler, "/ir/frames/livingroom/NEC", &values)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{value}, values)

	var frames frameList
	w = getJSON(t, frameBrowseHandler, "/ir/frames/livingroom/NEC/"+value, &frames)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, frames, 1)
	assert.NotEmpty(t, frames[0])

	w = getJSON(t, frameBrowseHandler, "/ir/frames/kitchen", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCollectorQuery(t *testing.T) {
	initState(zerolog.Nop())

	w := postJSON(t, frameQueryHandler, "/ir/frame", necTaggedFrame(t, "livingroom", 0x0010, 0x2F))
	require.Equal(t, http.StatusCreated, w.Code)

	var collectors []string
	w = getJSON(t, collectorQueryHandler, "/ir/collectors", &collectors)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"livingroom"}, collectors)
}

func TestDecodeHandlerCDTV(t *testing.T) {
	initState(zerolog.Nop())

	rec := &codec.TrainRecorder{}
	cdtv := &codec.CDTVCodec{}
	require.NoError(t, cdtv.Encode(rec, codec.MakeRawCDTVData(0x77F), codec.CDTVBits))

	w := postJSON(t, decodeHandler, "/ir/decode", map[string]interface{}{
		"frame": map[string]interface{}{
			"resolution": 1,
			"data":       ticksFor(t, rec, 0),
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp decodedFrameResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CDTV", resp.Protocol)
	assert.Equal(t, uint32(0x88077F), resp.RawData)
	assert.Equal(t, uint32(0x77F), resp.Command)
}

func TestEncodeHandlerRC5(t *testing.T) {
	initState(zerolog.Nop())

	w := postJSON(t, encodeHandler, "/ir/encode", encodeRequest{
		Protocol: "RC5",
		Address:  0x11,
		Command:  0x36,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp encodeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "RC5", resp.Protocol)
	assert.Equal(t, uint8(36), resp.FrequencyKHz)
	require.Len(t, resp.Pulses, 1)
	assert.Equal(t, []uint32{
		900, 900, 1800, 1800, 1800, 900, 900, 900, 900, 1800,
		900, 900, 900, 900, 1800, 1800, 900, 900, 1800,
	}, resp.Pulses[0])
}

func TestEncodeHandlerRejectsUnknownProtocol(t *testing.T) {
	initState(zerolog.Nop())

	w := postJSON(t, encodeHandler, "/ir/encode", encodeRequest{Protocol: "SIRC"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDispatcherRepeatFollowsLastProtocol(t *testing.T) {
	d := newDispatcher(zerolog.Nop())

	rec := &codec.TrainRecorder{}
	cdtv := &codec.CDTVCodec{}
	require.NoError(t, cdtv.Encode(rec, codec.MakeRawCDTVData(0x77F), codec.CDTVBits))
	frame, err := d.decode(rec.Train())
	require.NoError(t, err)
	assert.Equal(t, codec.ProtocolCDTV, frame.Protocol)

	// The 4-entry repeat frames of CDTV and NEC are indistinguishable
	// within tolerance. The dispatcher must file this one under the
	// protocol of the frame it follows.
	rec = &codec.TrainRecorder{}
	cdtv.EncodeRepeat(rec)
	frame, err = d.decode(rec.Train())
	require.NoError(t, err)
	assert.Equal(t, codec.ProtocolCDTV, frame.Protocol)
	assert.True(t, frame.Repeat)
}

func BenchmarkDatabaseInsert(b *testing.B) {
	initState(zerolog.Nop())

	rec := &codec.TrainRecorder{}
	nec := &codec.NECCodec{}
	if err := nec.Encode(rec, 0x0010, 0x2F); err != nil {
		b.Fatal(err)
	}
	pulses := rec.Pulses(0)
	var rows [][]int
	for i := 0; i < len(pulses); i += 2 {
		row := []int{int(pulses[i]), 30000}
		if i+1 < len(pulses) {
			row[1] = int(pulses[i+1])
		}
		rows = append(rows, row)
	}
	payload, err := json.Marshal(map[string]interface{}{
		"collectorId": "bench",
		"frame":       map[string]interface{}{"resolution": 1, "data": rows},
	})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/ir/frame", bytes.NewReader(payload))
		frameQueryHandler(w, r)
	}
}
