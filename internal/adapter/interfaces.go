// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides outbound integrations of the go-door-keeper
// daemon.
//
// The primary abstraction is [Notifier], which decouples the service layer
// from the delivery mechanism for security events. The package ships an
// HTTP webhook implementation ([NewWebhookNotifier]) that POSTs each event
// as JSON to a configured endpoint, and a no-op implementation used when no
// endpoint is configured.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-door-keeper/models"
)

// Notifier delivers security events to an external receiver. Delivery is
// best-effort and detached from the caller: a slow or unreachable receiver
// must never delay a door decision.
type Notifier interface {
	// Notify queues event for delivery. It returns immediately; failures
	// are logged, never surfaced to the caller.
	Notify(ctx context.Context, event models.NotificationEvent)
}
