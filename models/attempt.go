package models

import "time"

// Channel is an input modality tracked independently for failure
// counting. Failures are counted against the channel, not an account,
// since the attacker identity is unknown at attempt time.
type Channel string

const (
	// ChannelKeypad is the physical keypad passcode channel.
	ChannelKeypad Channel = "keypad"

	// ChannelFingerprint is the fingerprint reader channel.
	ChannelFingerprint Channel = "fingerprint"
)

// AttemptState is the failure-tracking state of a single channel.
type AttemptState struct {
	// Channel identifies the input modality this state belongs to.
	Channel Channel `json:"channel"`

	// FailedCount is the number of consecutive failed attempts.
	// Reset to zero on success or administrative reset.
	FailedCount int `json:"failed_count"`

	// LockedOut reports whether the channel refuses all attempts.
	// Once set it is cleared only by an explicit reset.
	LockedOut bool `json:"locked_out"`

	// LockoutStartedAt is stamped when the channel transitions into
	// lockout. Nil while the channel is open.
	LockoutStartedAt *time.Time `json:"lockout_started_at,omitempty"`
}
