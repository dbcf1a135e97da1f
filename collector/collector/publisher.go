package collector

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type publishClient struct {
	serverURL string
	http      *http.Client
}

func newPublishClient(serverAddr string) *publishClient {
	return &publishClient{
		serverURL: fmt.Sprintf("http://%s/ir/frame", serverAddr),
		http:      &http.Client{Timeout: 5 * time.Second},
	}
}

func (pc *publishClient) publish(payload []byte, log zerolog.Logger) {
	resp, err := pc.http.Post(pc.serverURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Error().Err(err).Msg("publishing frame")
		return
	}
	resp.Body.Close()
	log.Debug().Int("status", resp.StatusCode).Msg("published frame")
}
