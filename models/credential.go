package models

// CredentialKind distinguishes the ways a credential can be presented.
type CredentialKind string

const (
	// CredentialPasscode is a keypad or web-entered passcode.
	CredentialPasscode CredentialKind = "passcode"

	// CredentialTemplate is a fingerprint template captured by a sensor.
	CredentialTemplate CredentialKind = "template"

	// CredentialAccount is an already-authenticated account operating
	// the door through the web API.
	CredentialAccount CredentialKind = "account"
)

// CredentialInput is a single presented credential, fed to the policy
// engine for authorization.
type CredentialInput struct {
	// Kind selects which of the payload fields is meaningful.
	Kind CredentialKind `json:"kind"`

	// Channel is the input modality the credential arrived on.
	Channel Channel `json:"channel"`

	// Passcode is the presented code for CredentialPasscode inputs.
	Passcode string `json:"passcode,omitempty"`

	// TemplateDigest is the digest of the captured fingerprint template
	// for CredentialTemplate inputs.
	TemplateDigest string `json:"template_digest,omitempty"`

	// Username names the acting account for CredentialAccount inputs.
	Username string `json:"username,omitempty"`
}

// Template is an aggregated fingerprint template produced by an
// enrollment sequence of sensor captures.
type Template struct {
	// TemplateID uniquely identifies the stored template.
	TemplateID string `json:"template_id"`

	// Digest is the HMAC-SHA256 digest of the aggregated capture
	// samples. Raw biometric data never leaves the sensor layer.
	Digest string `json:"digest"`
}
