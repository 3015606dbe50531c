// Package messaging is the UDP transport between the editor and the host.
// Payloads that do not fit in one receive buffer are sent over TCP to the
// same address instead; there is no other framing.
package messaging

import "errors"

// ErrPayloadTooLarge indicates a stream payload exceeded MaxStreamSize.
var ErrPayloadTooLarge = errors.New("payload too large")
