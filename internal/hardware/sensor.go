package hardware

import "context"

// ChannelSensor is a [CredentialSensor] fed through a Go channel. The
// fingerprint endpoint (and tests) deliver samples into Feed; Capture
// hands them to the enrollment service one at a time.
type ChannelSensor struct {
	samples chan string
}

// NewChannelSensor returns a sensor buffering up to size pending samples.
func NewChannelSensor(size int) *ChannelSensor {
	return &ChannelSensor{samples: make(chan string, size)}
}

// Feed delivers one raw sample to the sensor. Returns false when the
// buffer is full and the sample was dropped.
func (s *ChannelSensor) Feed(sample string) bool {
	select {
	case s.samples <- sample:
		return true
	default:
		return false
	}
}

// Capture implements [CredentialSensor].
func (s *ChannelSensor) Capture(ctx context.Context) (string, error) {
	select {
	case sample := <-s.samples:
		return sample, nil
	case <-ctx.Done():
		return "", ErrCaptureTimeout
	}
}
