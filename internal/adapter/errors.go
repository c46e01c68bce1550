package adapter

import "errors"

// ErrWebhookRejected indicates the webhook endpoint answered with a
// non-2xx status.
var ErrWebhookRejected = errors.New("webhook rejected")
