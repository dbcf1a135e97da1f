package collector

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/tarm/serial"

	"github.com/derktes/ir-pulse-codec/codec"
)

// Start opens the serial port and forwards captured frames to the server
// until interrupted. The capture firmware writes one JSON frame per line.
// Frames that decode locally are logged with their protocol and command
// before publishing, which makes a collector usable on its own for
// inspecting a remote.
func Start(cfg Config, log zerolog.Logger) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if _, err := os.Stat(cfg.SerialPort); err != nil {
		return fmt.Errorf("checking serial port: %w", err)
	}
	port, err := serial.OpenPort(&serial.Config{Name: cfg.SerialPort, Baud: cfg.BaudRate})
	if err != nil {
		return fmt.Errorf("opening serial port: %w", err)
	}
	defer port.Close()
	log.Info().Str("port", cfg.SerialPort).Int("baud", cfg.BaudRate).Msg("opened serial port")

	client := newPublishClient(cfg.ServerAddr)
	log.Info().Str("url", client.serverURL).Msg("frames will be published")

	preview := newPreviewDecoder(log)

	go func() {
		intr := make(chan os.Signal, 1)
		signal.Notify(intr, os.Interrupt)
		<-intr
		log.Info().Msg("closing serial port")
		// unblocks the line scanner below
		port.Close()
	}()

	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		line := scanner.Bytes()
		var frame frameData
		if err := json.Unmarshal(line, &frame); err != nil {
			log.Warn().Err(err).Str("line", string(line)).Msg("discarding unparsable frame")
			continue
		}
		if frame.Resolution == 0 {
			frame.Resolution = cfg.Resolution
		}
		preview.log(frame)

		payload, err := json.Marshal(taggedFrame{CollectorID: cfg.CollectorID, Frame: frame})
		if err != nil {
			log.Error().Err(err).Msg("marshaling tagged frame")
			continue
		}
		go client.publish(payload, log)
	}
	return scanner.Err()
}

// previewDecoder runs captured frames through the protocol decoders for
// local logging only. The server stays the single point of record.
type previewDecoder struct {
	codecs []interface {
		Decode(train *codec.PulseTrain) (*codec.DecodedFrame, error)
	}
	timer *codec.FrameTimer
	diag  zerolog.Logger
}

func newPreviewDecoder(log zerolog.Logger) *previewDecoder {
	timer := codec.NewFrameTimer()
	d := &previewDecoder{timer: timer, diag: log}
	d.codecs = append(d.codecs,
		&codec.NECCodec{Diag: log},
		&codec.CDTVCodec{Diag: log},
		&codec.RC5Codec{Clock: timer, Diag: log},
	)
	return d
}

func (d *previewDecoder) log(frame frameData) {
	train := codec.FromTicks(frame.Data, frame.Resolution)
	for _, c := range d.codecs {
		decoded, err := c.Decode(train)
		if err != nil {
			continue
		}
		d.timer.Observe(decoded.Protocol)
		d.diag.Info().
			Stringer("protocol", decoded.Protocol).
			Uint("address", uint(decoded.Address)).
			Uint("command", uint(decoded.Command)).
			Bool("repeat", decoded.Repeat).
			Msg("received frame")
		return
	}
	d.diag.Debug().Int("pulses", train.Len()-1).Msg("received frame, no protocol matched")
}
