// Package server wires and runs the controller's HTTP server.
//
// It provides startup, signal handling, and graceful shutdown for the
// transport serving the dashboard and device APIs.
package server
