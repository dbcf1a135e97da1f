package server

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/derktes/ir-pulse-codec/codec"
)

// frameQueryHandler ingests captured frames on POST and serves the whole
// store as a per-collector summary on GET.
func frameQueryHandler(w http.ResponseWriter, r *http.Request) {
	db := <-dbLock
	defer func() { dbUnlock <- db }()
	switch r.Method {
	case http.MethodPost:
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error().Err(err).Msg("reading request body")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var tf taggedFrame
		if err := json.Unmarshal(payload, &tf); err != nil {
			logger.Warn().Err(err).Msg("unmarshaling tagged frame")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		frame, err := db.insert(tf)
		if err != nil {
			logger.Warn().Err(err).Str("collector", tf.CollectorID).Msg("frame rejected")
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		writeJSON(w, http.StatusCreated, frameResponse(frame))
	case http.MethodGet:
		summary := db.summary()
		cid := r.URL.Query().Get("cid")
		if cid != "" {
			protocols, ok := summary[cid]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			summary = collectorSummaryMap{cid: protocols}
		}
		writeJSON(w, http.StatusOK, summary)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// frameBrowseHandler serves the drill-down query paths:
//
//	/ir/frames/{collectorID}
//	/ir/frames/{collectorID}/{protocol}
//	/ir/frames/{collectorID}/{protocol}/{value}
func frameBrowseHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/ir/frames"), "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	db := <-dbLock
	defer func() { dbUnlock <- db }()

	var (
		out interface{}
		err error
	)
	switch len(parts) {
	case 1:
		out, err = db.getProtocolNames(parts[0])
	case 2:
		out, err = db.getValues(parts[0], parts[1])
	case 3:
		out, err = db.getFrameList(parts[0], parts[1], parts[2])
	default:
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err != nil {
		logger.Debug().Err(err).Str("path", r.URL.Path).Msg("browse lookup failed")
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func collectorQueryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	db := <-dbLock
	defer func() { dbUnlock <- db }()
	writeJSON(w, http.StatusOK, db.getCollectorIDList())
}

// decodeHandler decodes one capture without storing it.
func decodeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req decodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	db := <-dbLock
	defer func() { dbUnlock <- db }()
	frame, err := db.decoder.decode(codec.FromTicks(req.Frame.Data, req.Frame.Resolution))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, frameResponse(frame))
}

// encodeHandler lays out a frame as pulse timings for a transmitter to
// replay.
func encodeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req encodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	db := <-dbLock
	defer func() { dbUnlock <- db }()
	resp, err := db.decoder.encode(req, toggleSession)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func frameStreamHandler(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: []string{"localhost:*", "192.168.*.*:*"}})
	if err != nil {
		logger.Error().Err(err).Msg("websocket accept failed")
		return
	}
	logger.Info().Str("remote", r.RemoteAddr).Msg("accepted websocket subscriber")
	defer logger.Info().Str("remote", r.RemoteAddr).Msg("closing websocket subscriber")
	defer c.Close(websocket.StatusNormalClosure, "handler exits")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	subscriber := getSubscriberID(r.RemoteAddr)
	db := <-dbLock
	onNewFrame, err := db.notify(subscriber)
	dbUnlock <- db
	if err != nil {
		logger.Debug().Err(err).Msg("subscription refused")
		c.Close(websocket.StatusPolicyViolation, "already subscribed")
		return
	}
	defer func() {
		db := <-dbLock
		if err := db.unNotify(subscriber); err != nil {
			logger.Debug().Err(err).Msg("unsubscribe failed")
		}
		dbUnlock <- db
	}()

	ctx = c.CloseRead(ctx)
	for {
		select {
		case f := <-onNewFrame:
			if err := writeFrameEvent(ctx, c, f); err != nil {
				logger.Debug().Err(err).Msg("writing frame event")
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func writeFrameEvent(ctx context.Context, c *websocket.Conn, f newFrameEvent) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return wsjson.Write(ctx, c, f)
}

func frameResponse(frame *codec.DecodedFrame) decodedFrameResponse {
	return decodedFrameResponse{
		Protocol: frame.Protocol.String(),
		RawData:  frame.RawData,
		Bits:     frame.BitCount,
		Address:  frame.Address,
		Command:  frame.Command,
		Repeat:   frame.Repeat,
		Toggle:   frame.Toggle,
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	out, err := json.Marshal(body)
	if err != nil {
		logger.Error().Err(err).Msg("marshaling response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.Header().Add("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	w.Write(out)
}

func writeError(w http.ResponseWriter, status int, err error) {
	body := map[string]string{"error": err.Error()}
	var derr *codec.DecodeError
	if errors.As(err, &derr) {
		body["protocol"] = derr.Protocol.String()
		body["kind"] = derr.Kind.String()
	}
	writeJSON(w, status, body)
}

func getSubscriberID(data string) string {
	h := sha1.Sum([]byte(data))
	return hex.EncodeToString(h[:])
}
