// Package ledger drives a Ledger-style hardware signing device through a
// vendor-neutral wallet surface. The transport channel and the
// coin-specific payload encodings are collaborators; this package owns
// path classification, the pre-operation application state guard and the
// routing of batched key requests on the device's active application.
package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github.com/Ethenwilde/hdwallet/internal/util"
	"github.com/Ethenwilde/hdwallet/metrics"
	"github.com/Ethenwilde/hdwallet/path"
	"github.com/Ethenwilde/hdwallet/transport"
)

// Wallet is the stateful device surface. It composes the stateless Info
// queries with transport-backed operations, running the application
// state guard before anything that changes device state.
//
// A Wallet owns a single logical device session. The transport
// serializes commands; callers must not issue overlapping operations
// against the same Wallet.
type Wallet struct {
	*Info

	transport transport.Transport
	btc       BTCBackend
	eth       ETHBackend
	metrics   *metrics.Metrics
}

// Option configures a Wallet.
type Option func(*Wallet)

// WithMetrics attaches prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Wallet) {
		w.metrics = m
	}
}

// WithDescriber overrides the generic path describer used for
// non-Ethereum coins.
func WithDescriber(describer path.Describer) Option {
	return func(w *Wallet) {
		w.Info = NewInfo(describer)
	}
}

// New creates a wallet over one device session.
func New(t transport.Transport, btc BTCBackend, eth ETHBackend, opts ...Option) *Wallet {
	w := &Wallet{
		Info:      NewInfo(nil),
		transport: t,
		btc:       btc,
		eth:       eth,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// call issues one transport command, tagging failures with the
// originating method. Device-reported failures and transport failures
// are surfaced unmodified beyond that tag.
func (w *Wallet) call(ctx context.Context, method string, args ...any) (*transport.Response, error) {
	response, err := w.transport.Call(ctx, method, args...)
	if err != nil {
		w.metrics.ObserveDeviceCall(method, metrics.OutcomeTransportError)
		return nil, &transport.CallError{Method: method, Err: err}
	}
	if !response.Success {
		w.metrics.ObserveDeviceCall(method, metrics.OutcomeDeviceError)
		return nil, &transport.CallError{Method: method, Err: errors.New(response.Error)}
	}
	w.metrics.ObserveDeviceCall(method, metrics.OutcomeOK)
	return response, nil
}

// GetPublicKeys retrieves a batch of extended public keys. The whole
// batch is served by whichever backend matches the device's currently
// active application; the requests' own coin fields are ignored, since
// the device can only ever answer for the application it is running.
func (w *Wallet) GetPublicKeys(ctx context.Context, reqs []GetPublicKeyRequest) ([]*PublicKey, error) {
	app, err := w.activeApp(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case utxoAppNames[app.Name]:
		return w.btc.GetPublicKeys(ctx, w.transport, reqs)
	case app.Name == appForCoin[coinEthereum]:
		return w.eth.GetPublicKeys(ctx, w.transport, reqs)
	default:
		util.LogFromContext(ctx).Debug().
			Str("active_app", app.Name).
			Int("batch_size", len(reqs)).
			Msg("No backend for active application")
		w.metrics.ObserveUnsupportedBatch()
		return nil, &UnsupportedAppError{App: app.Name}
	}
}

// BTCSignTx signs a UTXO transaction after confirming the coin's
// application is open.
func (w *Wallet) BTCSignTx(ctx context.Context, req *BTCSignTxRequest) (*BTCSignedTx, error) {
	if err := w.ValidateCurrentApp(ctx, req.Coin); err != nil {
		return nil, err
	}
	if req.Network == nil {
		req.Network = NetworkForCoin(req.Coin)
	}
	return w.btc.SignTx(ctx, w.transport, req)
}

// BTCGetAddress returns the address at a derivation path, optionally
// displaying it on-device.
func (w *Wallet) BTCGetAddress(ctx context.Context, req *BTCGetAddressRequest) (string, error) {
	if err := w.ValidateCurrentApp(ctx, req.Coin); err != nil {
		return "", err
	}
	if req.Network == nil {
		req.Network = NetworkForCoin(req.Coin)
	}
	return w.btc.GetAddress(ctx, w.transport, req)
}

// BTCSignMessage signs a message with the key at a derivation path.
func (w *Wallet) BTCSignMessage(ctx context.Context, req *BTCSignMessageRequest) (*BTCSignedMessage, error) {
	if err := w.ValidateCurrentApp(ctx, req.Coin); err != nil {
		return nil, err
	}
	return w.btc.SignMessage(ctx, w.transport, req)
}

// ETHSignTx signs an Ethereum transaction after confirming the Ethereum
// application is open.
func (w *Wallet) ETHSignTx(ctx context.Context, req *ETHSignTxRequest) (*types.Transaction, error) {
	if err := w.ValidateCurrentApp(ctx, coinEthereum); err != nil {
		return nil, err
	}
	return w.eth.SignTx(ctx, w.transport, req)
}

// ETHGetAddress returns the Ethereum address at a derivation path.
func (w *Wallet) ETHGetAddress(ctx context.Context, req *ETHGetAddressRequest) (common.Address, error) {
	if err := w.ValidateCurrentApp(ctx, coinEthereum); err != nil {
		return common.Address{}, err
	}
	return w.eth.GetAddress(ctx, w.transport, req)
}

// ETHSignMessage signs a personal message with the key at a derivation
// path.
func (w *Wallet) ETHSignMessage(ctx context.Context, req *ETHSignMessageRequest) (*ETHSignedMessage, error) {
	if err := w.ValidateCurrentApp(ctx, coinEthereum); err != nil {
		return nil, err
	}
	return w.eth.SignMessage(ctx, w.transport, req)
}

// OpenApp asks the device to open the named application. The device
// prompts the user; the call returns once the device acknowledges.
func (w *Wallet) OpenApp(ctx context.Context, name string) error {
	_, err := w.call(ctx, transport.MethodOpenApp, name)
	return err
}

// deviceInfo is the device's self-report, read via getDeviceInfo.
type deviceInfo struct {
	Version string `json:"version"`
}

// FirmwareVersion returns the device's firmware version string.
func (w *Wallet) FirmwareVersion(ctx context.Context) (string, error) {
	response, err := w.call(ctx, transport.MethodGetDeviceInfo)
	if err != nil {
		return "", err
	}

	var info deviceInfo
	if err := response.Decode(&info); err != nil {
		return "", errors.Wrap(err, "failed to decode device info response")
	}
	return info.Version, nil
}

// DeviceID returns the device serial number from the transport's handle.
func (w *Wallet) DeviceID() string {
	return w.transport.Device().SerialNumber
}

// Model returns the device product name from the transport's handle.
func (w *Wallet) Model() string {
	return w.transport.Device().ProductName
}

// Label returns the user-facing device label. The device has no
// configurable label, so the product name stands in.
func (w *Wallet) Label() string {
	return w.Model()
}

// IsInitialized reports whether the device holds a seed. The device
// exposes no such introspection, so the answer is a fixed conservative
// default.
func (w *Wallet) IsInitialized() bool {
	return true
}

// IsLocked reports whether the device needs unlocking. Fixed default;
// see IsInitialized.
func (w *Wallet) IsLocked() bool {
	return false
}

// HasOnDevicePinEntry reports whether the PIN is entered on the device.
func (w *Wallet) HasOnDevicePinEntry() bool {
	return true
}

// HasOnDevicePassphrase reports whether a passphrase is entered on the
// device. Passphrase entry happens host-side for this vendor.
func (w *Wallet) HasOnDevicePassphrase() bool {
	return false
}

// HasOnDeviceDisplay reports whether the device can display addresses.
func (w *Wallet) HasOnDeviceDisplay() bool {
	return true
}

// HasOnDeviceRecovery reports whether seed recovery happens on the
// device.
func (w *Wallet) HasOnDeviceRecovery() bool {
	return true
}

// ClearSession is a no-op: the device keeps no session state this layer
// could clear.
func (w *Wallet) ClearSession() {}

// Ping is a no-op: the device has no ping command.
func (w *Wallet) Ping(_ context.Context) error {
	return nil
}
