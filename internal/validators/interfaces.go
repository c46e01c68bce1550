// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the validation rules for data crossing the
// controller's trust boundary: user records coming in from the admin
// API and door settings before they are persisted. Keeping the rules
// behind an interface lets services validate input without knowing
// which checks apply to which type.
package validators

import "context"

// Validator checks an input value against its domain rules. The
// optional field names restrict the check to those fields, which the
// user validator relies on for partial updates.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
