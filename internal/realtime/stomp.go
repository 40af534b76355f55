package realtime

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-stomp/stomp/v3/frame"
)

const (
	cmdConnect      = "CONNECT"
	cmdConnected    = "CONNECTED"
	cmdSubscribe    = "SUBSCRIBE"
	cmdMessage      = "MESSAGE"
	cmdError        = "ERROR"
	cmdReceipt      = "RECEIPT"
	cmdDisconnect   = "DISCONNECT"
	hdrHeartBeat    = "heart-beat"
	hdrDestination  = "destination"
	hdrSubscription = "subscription"
)

func encodeFrame(f *frame.Frame) ([]byte, error) {
	var buf bytes.Buffer
	if err := frame.NewWriter(&buf).Write(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeFrames parses every frame carried by one websocket message. Heart-beats
// yield no frame.
func decodeFrames(data []byte) ([]*frame.Frame, error) {
	r := frame.NewReader(bytes.NewReader(data))
	var frames []*frame.Frame
	for {
		f, err := r.Read()
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		if f != nil {
			frames = append(frames, f)
		}
	}
}

// negotiateHeartBeat applies the STOMP rule: no heart-beats unless both sides want
// them, otherwise the slower of the two.
func negotiateHeartBeat(local, remote time.Duration) time.Duration {
	if local <= 0 || remote <= 0 {
		return 0
	}
	return max(local, remote)
}

func heartBeatHeader(outgoing, incoming time.Duration) string {
	return fmt.Sprintf("%d,%d", outgoing.Milliseconds(), incoming.Milliseconds())
}

func parseHeartBeat(value string) (time.Duration, time.Duration, error) {
	if value == "" {
		return 0, 0, nil
	}
	return frame.ParseHeartBeat(value)
}
