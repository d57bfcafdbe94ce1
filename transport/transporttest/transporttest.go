// Package transporttest provides a scripted in-memory transport for
// exercising wallet logic without a physical device.
package transporttest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/Ethenwilde/hdwallet/transport"
)

// Call records a single command issued through the fake.
type Call struct {
	Method string
	Args   []any
}

// Transport is a scripted transport.Transport: responses are registered
// per method and every call is recorded for later assertions.
type Transport struct {
	mu        sync.Mutex
	device    transport.Device
	responses map[string][]*transport.Response
	errs      map[string]error
	calls     []Call
}

// New creates a scripted transport reporting the given device descriptor.
func New(device transport.Device) *Transport {
	return &Transport{
		device:    device,
		responses: make(map[string][]*transport.Response),
		errs:      make(map[string]error),
	}
}

// Respond queues a successful response for method, with payload
// marshalled to JSON.
func (t *Transport) Respond(method string, payload any) *Transport {
	raw, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responses[method] = append(t.responses[method], &transport.Response{
		Success: true,
		Payload: raw,
	})
	return t
}

// RespondError queues an unsuccessful device response for method.
func (t *Transport) RespondError(method string, deviceError string) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responses[method] = append(t.responses[method], &transport.Response{
		Success: false,
		Error:   deviceError,
	})
	return t
}

// Fail makes every call to method return err at the transport level.
func (t *Transport) Fail(method string, err error) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errs[method] = err
	return t
}

// Call implements transport.Transport. Queued responses are consumed in
// order; the last one sticks for repeated calls.
func (t *Transport) Call(_ context.Context, method string, args ...any) (*transport.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.calls = append(t.calls, Call{Method: method, Args: args})

	if err, ok := t.errs[method]; ok {
		return nil, err
	}

	queued := t.responses[method]
	if len(queued) == 0 {
		return nil, errors.Errorf("transporttest: no response scripted for method %q", method)
	}

	response := queued[0]
	if len(queued) > 1 {
		t.responses[method] = queued[1:]
	}
	return response, nil
}

// Device implements transport.Transport.
func (t *Transport) Device() transport.Device {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.device
}

// Calls returns a copy of every recorded call.
func (t *Transport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	calls := make([]Call, len(t.calls))
	copy(calls, t.calls)
	return calls
}

// CallCount returns how many times method was invoked.
func (t *Transport) CallCount(method string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	count := 0
	for _, call := range t.calls {
		if call.Method == method {
			count++
		}
	}
	return count
}
