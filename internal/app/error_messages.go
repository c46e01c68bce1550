// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-door-keeper server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSONProvided is returned when the request body cannot be
	// decoded as JSON.
	MsgInvalidJSONProvided = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when a decoded request fails basic
	// validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied username/password
	// combination does not match any existing account.
	MsgInvalidLoginPassword = "invalid username/password"

	// MsgAccountNotApproved is returned when an account exists but has not
	// yet been approved by an administrator.
	MsgAccountNotApproved = "account not approved"

	// MsgUsernameAlreadyExists is returned when a signup or pre-registration
	// is rejected because the requested username is already in use.
	MsgUsernameAlreadyExists = "username already exists"

	// MsgUserNotFound is returned when an operation targets an account that
	// does not exist.
	MsgUserNotFound = "user not found"

	// MsgCannotDeleteSelf is returned when an administrator attempts to
	// delete their own account.
	MsgCannotDeleteSelf = "cannot delete yourself"

	// MsgPermissionDenied is returned when the authenticated account lacks
	// the capability a route requires.
	MsgPermissionDenied = "permission denied"

	// MsgUnknownAction is returned when a door toggle request names an
	// action other than "lock" or "unlock".
	MsgUnknownAction = "unknown action"

	// MsgDoorControlError is returned when the bolt actuator fails to
	// complete a lock or unlock transition.
	MsgDoorControlError = "door control error"

	// MsgPasscodeRequired is returned when a passcode entry request arrives
	// with an empty passcode.
	MsgPasscodeRequired = "passcode required"

	// MsgKeyRequired is returned when a keypad simulation request arrives
	// with an empty key.
	MsgKeyRequired = "key required"

	// MsgKeypadNotAvailable is returned when a keypad simulation request
	// arrives but no keypad is attached to the controller.
	MsgKeypadNotAvailable = "keypad not available"

	// MsgUsernameRequired is returned when an enrollment request arrives
	// with an empty username.
	MsgUsernameRequired = "username required"

	// MsgFingerprintCaptureFailed is returned when the fingerprint sensor
	// fails to produce a sample.
	MsgFingerprintCaptureFailed = "fingerprint capture failed"
)
