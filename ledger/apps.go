package ledger

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"

	"github.com/Ethenwilde/hdwallet/internal/util"
	"github.com/Ethenwilde/hdwallet/metrics"
	"github.com/Ethenwilde/hdwallet/transport"
)

// Vendor is the device vendor name reported in errors and prompts.
const Vendor = "Ledger"

// coinEthereum is the only EVM coin this adapter serves.
const coinEthereum = "Ethereum"

// appForCoin binds coin names to the device application that must be
// open before any operation on that coin. The device runs exactly one
// application at a time.
var appForCoin = map[string]string{
	"Bitcoin":     "Bitcoin",
	"Testnet":     "Bitcoin Test",
	"Litecoin":    "Litecoin",
	"Dogecoin":    "Dogecoin",
	"Dash":        "Dash",
	"DigiByte":    "Digibyte",
	"BitcoinCash": "Bitcoin Cash",
	coinEthereum:  "Ethereum",
}

// utxoAppNames is the set of application names bound to a UTXO coin,
// used by batched key retrieval to route on the active app.
var utxoAppNames = func() map[string]bool {
	names := make(map[string]bool, len(appForCoin))
	for coin, app := range appForCoin {
		if coin != coinEthereum {
			names[app] = true
		}
	}
	return names
}()

// AppForCoin returns the device application name a coin requires.
func AppForCoin(coin string) (string, bool) {
	app, ok := appForCoin[coin]
	return app, ok
}

// NetworkForCoin returns the btcd chain parameters for coins whose
// networks btcd ships; nil for the rest.
func NetworkForCoin(coin string) *chaincfg.Params {
	switch coin {
	case "Bitcoin":
		return &chaincfg.MainNetParams
	case "Testnet":
		return &chaincfg.TestNet3Params
	default:
		return nil
	}
}

// appAndVersion is the device's report of its active application.
type appAndVersion struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// activeApp issues the single read-only round-trip both the guard and
// batched key retrieval route on.
func (w *Wallet) activeApp(ctx context.Context) (*appAndVersion, error) {
	response, err := w.call(ctx, transport.MethodGetAppAndVersion)
	if err != nil {
		return nil, err
	}

	var app appAndVersion
	if err := response.Decode(&app); err != nil {
		return nil, errors.Wrap(err, "failed to decode app and version response")
	}
	return &app, nil
}

// ValidateCurrentApp confirms the device has the coin's application open.
// It issues one read-only round-trip and is safe to call repeatedly;
// every state-changing operation runs it first so no signing is ever
// attempted against the wrong application.
func (w *Wallet) ValidateCurrentApp(ctx context.Context, coin string) error {
	if coin == "" {
		w.metrics.ObserveGuardFailure(metrics.ReasonMissingCoin)
		return ErrMissingCoin
	}

	requiredApp, ok := AppForCoin(coin)
	if !ok {
		w.metrics.ObserveGuardFailure(metrics.ReasonUnknownMapping)
		return &UnknownAppMappingError{Coin: coin}
	}

	app, err := w.activeApp(ctx)
	if err != nil {
		return err
	}

	if app.Name != requiredApp {
		util.LogFromContext(ctx).Debug().
			Str("active_app", app.Name).
			Str("required_app", requiredApp).
			Msg("Device has the wrong application open")
		w.metrics.ObserveGuardFailure(metrics.ReasonWrongApp)
		return &WrongAppError{Vendor: Vendor, ExpectedApp: requiredApp}
	}

	return nil
}
