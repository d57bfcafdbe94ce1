package ledger

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrMissingCoin is returned when an operation that requires a coin is
// invoked without one.
var ErrMissingCoin = errors.New("no coin provided")

// UnknownAppMappingError is returned when a coin has no known device
// application binding.
type UnknownAppMappingError struct {
	Coin string
}

func (e *UnknownAppMappingError) Error() string {
	return fmt.Sprintf("no device application known for coin %q", e.Coin)
}

// WrongAppError is returned when the device's active application does
// not match the one the requested coin needs. It is distinguishable from
// transport failures so callers can prompt the user to switch apps.
type WrongAppError struct {
	Vendor      string
	ExpectedApp string
}

func (e *WrongAppError) Error() string {
	return fmt.Sprintf("open the %s app on your %s device", e.ExpectedApp, e.Vendor)
}

// UnsupportedAppError is returned by batched key retrieval when the
// device's active application matches no known backend.
type UnsupportedAppError struct {
	App string
}

func (e *UnsupportedAppError) Error() string {
	return fmt.Sprintf("unsupported device application %q", e.App)
}
