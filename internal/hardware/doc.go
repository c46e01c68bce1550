// Package hardware isolates the physical periphery of the controller:
// the bolt actuator, the keypad, and the fingerprint sensor.
//
// Everything above this package talks to interfaces only, so the whole
// stack runs unchanged on a workstation with the in-memory drivers.
package hardware
