// Package transport defines the call/response contract between the
// wallet layer and a physical signing device. Implementations own the
// wire protocol, command serialization and cancellation; this package
// only fixes the shape both sides agree on.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
)

// Device methods consumed by the wallet layer.
const (
	MethodGetDeviceInfo    = "getDeviceInfo"
	MethodGetAppAndVersion = "getAppAndVersion"
	MethodOpenApp          = "openApp"
)

// Device is the opaque descriptor of a connected device, read from the
// transport's handle rather than constructed here.
type Device struct {
	SerialNumber string
	ProductName  string
}

// Response is the outcome of a single device command. Success false
// carries the device's own error string in Error; Payload is only
// meaningful on success.
type Response struct {
	Success bool
	Payload json.RawMessage
	Error   string
}

// Decode unmarshals the response payload into out.
func (r *Response) Decode(out any) error {
	return json.Unmarshal(r.Payload, out)
}

// Transport is a serialized command channel to a signing device. At most
// one command is in flight at a time; Call blocks until the device
// responds or ctx is done. Implementations must be safe to hand to a
// single wallet session; they need not tolerate concurrent callers.
type Transport interface {
	// Call issues one command and waits for the device's reply.
	Call(ctx context.Context, method string, args ...any) (*Response, error)

	// Device returns the descriptor of the connected device.
	Device() Device
}

// CallError tags a transport failure with the command that produced it.
// The underlying error is surfaced unmodified: no retry, no rewrite.
type CallError struct {
	Method string
	Err    error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("transport call %q failed: %v", e.Method, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}
